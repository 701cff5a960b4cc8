package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// PrintSummary writes the end-of-run summary to w: run totals, the open
// service ranking, critical findings, any per-file warnings, and the
// artifacts that were written.
func PrintSummary(w io.Writer, result *Result) {
	if result == nil || result.Set == nil {
		fmt.Fprintln(w, "No report available")
		return
	}
	set := result.Set
	stats := set.Stats

	header := color.New(color.FgCyan, color.Bold)
	header.Fprintln(w, "Nmap Report Summary")
	header.Fprintln(w, "===================")
	fmt.Fprintf(w, "Sources: %s\n", strings.Join(set.Sources, ", "))
	if set.OpenOnly {
		fmt.Fprintf(w, "Total records: %d (open ports only)\n", stats.TotalRecords)
	} else {
		fmt.Fprintf(w, "Total records: %d\n", stats.TotalRecords)
	}
	fmt.Fprintf(w, "Hosts: %d, Services: %d\n", stats.DistinctHosts, stats.DistinctServices)
	fmt.Fprintf(w, "States: %d open, %d closed, %d filtered\n\n",
		stats.OpenCount, stats.ClosedCount, stats.FilteredCount)

	printTopServices(w, stats.TopServices)
	printCritical(w, stats)
	printWarnings(w, set.Warnings)
	printArtifacts(w, result.Artifacts)
}

func printTopServices(w io.Writer, top []ServiceCount) {
	fmt.Fprintln(w, "Top Open Services:")
	if len(top) == 0 {
		fmt.Fprintln(w, "No open ports found")
		fmt.Fprintln(w)
		return
	}

	table := tablewriter.NewWriter(w)
	table.Header("Rank", "Service", "Open Ports")
	for i, entry := range top {
		_ = table.Append([]string{
			strconv.Itoa(i + 1),
			entry.Service,
			strconv.Itoa(entry.Count),
		})
	}
	_ = table.Render()
	fmt.Fprintln(w)
}

func printCritical(w io.Writer, stats Stats) {
	if len(stats.Critical) == 0 {
		color.New(color.FgGreen).Fprintln(w, "No critical services found open")
		fmt.Fprintln(w)
		return
	}

	color.New(color.FgRed, color.Bold).Fprintf(w, "Critical Services (%d):\n", len(stats.Critical))
	table := tablewriter.NewWriter(w)
	table.Header("IP", "Port", "Protocol", "Service", "Details")
	for i := range stats.Critical {
		rec := &stats.Critical[i]
		_ = table.Append([]string{
			rec.IP,
			rec.PortNumber,
			rec.Protocol,
			rec.Service,
			rec.Details,
		})
	}
	_ = table.Render()
	fmt.Fprintln(w)
}

func printWarnings(w io.Writer, warnings []Warning) {
	if len(warnings) == 0 {
		return
	}

	yellow := color.New(color.FgYellow)
	yellow.Fprintf(w, "Warnings (%d):\n", len(warnings))
	for _, warning := range warnings {
		yellow.Fprintf(w, "  - %s: %v\n", warning.File, warning.Err)
	}
	fmt.Fprintln(w)
}

func printArtifacts(w io.Writer, artifacts []string) {
	fmt.Fprintln(w, "Artifacts:")
	for _, artifact := range artifacts {
		fmt.Fprintf(w, "  - %s\n", artifact)
	}
}
