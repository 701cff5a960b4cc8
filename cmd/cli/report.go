package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anstrom/nmapreport/internal/config"
	"github.com/anstrom/nmapreport/internal/report"
)

var (
	reportOpenOnly  bool
	reportExcel     bool
	reportHTML      bool
	reportJSON      bool
	reportOutputDir string
)

// reportCmd represents the report command.
var reportCmd = &cobra.Command{
	Use:   "report [flags] FILE...",
	Short: "Generate report artifacts from nmap XML output",
	Long: `Parse one or more nmap XML documents and render them as report
artifacts. A CSV table of every (host, port) record is always written;
an Excel workbook, a self-contained HTML dashboard, and a JSON export
can be requested in addition.

Files that do not exist, lack the .xml extension, or fail to parse are
skipped with a warning and the remaining files are still processed. The
command fails without writing anything when no file could be read, when
the inputs held no records, or when --open filtered every record away.`,
	Example: `  nmapreport report scan.xml
  nmapreport report scan1.xml scan2.xml --open
  nmapreport report scan.xml --xlsx --html --output-dir ./out
  nmapreport report scan.xml --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolVar(&reportOpenOnly, "open", false, "Keep only records whose state is 'open'")
	reportCmd.Flags().BoolVar(&reportExcel, "xlsx", false, "Also write the Excel workbook")
	reportCmd.Flags().BoolVar(&reportHTML, "html", false, "Also write the HTML dashboard")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Also write the JSON export")
	reportCmd.Flags().StringVar(&reportOutputDir, "output-dir", "", "Directory for artifacts (default from config, else '.')")

	// Bind output settings to viper so NMAPREPORT_* env vars and the
	// config file fill in anything the flags leave unset
	if err := viper.BindPFlag("report.output_dir", reportCmd.Flags().Lookup("output-dir")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind output-dir flag: %v\n", err)
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	opts, err := buildReportOptions(cmd, args)
	if err != nil {
		return err
	}

	result, err := report.Generate(opts)
	if err != nil {
		return err
	}

	report.PrintSummary(cmd.OutOrStdout(), result)
	return nil
}

// buildReportOptions merges the config file, environment and flags into
// report options. Flags win over the config file; the config file wins over
// built-in defaults.
func buildReportOptions(cmd *cobra.Command, args []string) (report.Options, error) {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return report.Options{}, fmt.Errorf("failed to load config: %w", err)
	}

	opts := report.DefaultOptions()
	opts.InputPaths = args
	opts.OutputDir = cfg.Report.OutputDir
	opts.OpenOnly = cfg.Filter.OpenOnly
	opts.Excel = cfg.Report.Excel
	opts.HTML = cfg.Report.HTML
	opts.JSON = cfg.Report.JSON
	if cfg.Report.TopServices > 0 {
		opts.TopServices = cfg.Report.TopServices
	}
	if len(cfg.Filter.CriticalServices) > 0 {
		opts.CriticalServices = cfg.Filter.CriticalServices
	}

	if cmd.Flags().Changed("output-dir") {
		opts.OutputDir = reportOutputDir
	} else if dir := viper.GetString("report.output_dir"); dir != "" {
		opts.OutputDir = dir
	}
	if reportOpenOnly {
		opts.OpenOnly = true
	}
	if reportExcel {
		opts.Excel = true
	}
	if reportHTML {
		opts.HTML = true
	}
	if reportJSON {
		opts.JSON = true
	}

	return opts, nil
}
