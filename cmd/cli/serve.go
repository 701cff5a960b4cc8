package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anstrom/nmapreport/internal/config"
	"github.com/anstrom/nmapreport/internal/preview"
)

var (
	serveDir    string
	serveListen string
	servePort   int
)

// serveCmd represents the serve command.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve generated report artifacts over local HTTP",
	Long: `Start a local HTTP server for the artifacts written by a previous
'report' run so the HTML dashboard can be opened in a browser. The server
is read-only: it serves the fixed artifact file names and nothing else,
and never recomputes report data. Stop it with Ctrl+C.`,
	Example: `  nmapreport serve
  nmapreport serve --dir ./out
  nmapreport serve --listen 0.0.0.0 --port 9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveDir, "dir", "", "Directory holding generated artifacts (default from config, else '.')")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (default from config, else 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (default from config, else 8743)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("dir") {
		cfg.Preview.Directory = serveDir
	}
	if cmd.Flags().Changed("listen") {
		cfg.Preview.ListenAddr = serveListen
	}
	if cmd.Flags().Changed("port") {
		cfg.Preview.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	server, err := preview.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create preview server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Preview server listening on http://%s\n", server.GetAddress())
	fmt.Fprintf(cmd.OutOrStdout(), "Open http://%s/report for the HTML dashboard. Press Ctrl+C to stop.\n",
		server.GetAddress())

	return server.Start(ctx)
}
