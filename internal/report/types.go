// Package report aggregates extracted scan records, computes run
// statistics, and renders the output artifacts: the CSV table, the
// optional xlsx workbook, HTML page, and JSON export, plus the console
// summary.
package report

import (
	"time"

	"github.com/anstrom/nmapreport/internal/nmapxml"
)

// Fixed artifact names. Consumers rely on these being stable across runs.
const (
	CSVFileName   = "nmap_parser_output.csv"
	ExcelFileName = "nmap_parser_output.xlsx"
	HTMLFileName  = "nmap_report.html"
	JSONFileName  = "nmap_parser_output.json"
)

// Columns is the fixed column order shared by the tabular outputs.
var Columns = []string{
	"IP", "Hostname", "Port Number", "Protocol", "State", "Service", "Details", "Source File",
}

// defaultCriticalServices are the service names treated as high risk when
// the port carrying them is open.
var defaultCriticalServices = []string{
	"ssh", "telnet", "ftp", "http", "https", "rdp",
	"ms-wbt-server", "mysql", "postgresql", "mssql", "smb", "microsoft-ds",
}

// DefaultCriticalServices returns the built-in allow-list of service names
// counted as critical. The caller owns the returned slice.
func DefaultCriticalServices() []string {
	out := make([]string, len(defaultCriticalServices))
	copy(out, defaultCriticalServices)
	return out
}

// Warning describes one input file that was skipped during collection.
type Warning struct {
	File string
	Err  error
}

// ServiceCount pairs a service name with how many open ports carry it.
type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

// Stats summarizes a record table. All numbers refer to the table after any
// filtering, never to the raw inputs.
type Stats struct {
	TotalRecords     int              `json:"total_records"`
	DistinctHosts    int              `json:"distinct_hosts"`
	DistinctServices int              `json:"distinct_services"`
	OpenCount        int              `json:"open"`
	ClosedCount      int              `json:"closed"`
	FilteredCount    int              `json:"filtered"`
	TopServices      []ServiceCount   `json:"top_services"`
	Critical         []nmapxml.Record `json:"critical"`
}

// ReportSet is the full in-memory table for one run: the ordered records,
// the warnings accumulated while collecting them, and the derived
// statistics. Records are never mutated after the set is built.
type ReportSet struct {
	Records     []nmapxml.Record
	Warnings    []Warning
	Sources     []string
	Stats       Stats
	OpenOnly    bool
	GeneratedAt time.Time
	ID          string
}

// rowValues flattens one record into the fixed column order.
func rowValues(rec *nmapxml.Record) []string {
	return []string{
		rec.IP,
		rec.Hostname,
		rec.PortNumber,
		rec.Protocol,
		rec.State,
		rec.Service,
		rec.Details,
		rec.SourceFile,
	}
}
