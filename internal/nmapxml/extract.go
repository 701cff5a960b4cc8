package nmapxml

import (
	"encoding/xml"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"
)

// IsXMLFile reports whether path carries the .xml extension. The check is
// case-insensitive so SCAN.XML from other tooling is accepted.
func IsXMLFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

// Extract decodes one scan document from r and flattens it into records.
// The source name is stamped on every record; pass the file's base name when
// reading from disk. A document that is not well-formed XML yields a single
// ParseError naming the source.
func Extract(r io.Reader, source string) ([]Record, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		parseErr := errors.ErrParseFailed(source, err)
		if syntaxErr, ok := err.(*xml.SyntaxError); ok {
			parseErr.WithLine(syntaxErr.Line)
		}
		return nil, parseErr
	}

	return flatten(&doc, source), nil
}

// ExtractFile opens and decodes a scan document from disk.
func ExtractFile(path string) ([]Record, error) {
	file, err := os.Open(path) //nolint:gosec // caller-supplied input path
	if err != nil {
		if os.IsPermission(err) {
			return nil, errors.WrapParseErrorWithFile(
				errors.CodeFilePermission, "Input file could not be read", path, err)
		}
		return nil, errors.ErrFileNotFound(path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logging.Warn("failed to close input file", "file", path, "error", cerr)
		}
	}()

	return Extract(file, filepath.Base(path))
}

// flatten walks the top-level hosts of a decoded document and produces one
// record per port.
func flatten(doc *Document, source string) []Record {
	records := make([]Record, 0)
	src := orSentinel(source, SentinelUnknown)

	for i := range doc.Hosts {
		records = append(records, flattenHost(&doc.Hosts[i], src)...)
	}

	return records
}

// flattenHost converts one host element into records. Hosts without an
// address child or without a ports container contribute nothing.
func flattenHost(host *Host, source string) []Record {
	if len(host.Addresses) == 0 || host.Ports == nil {
		return nil
	}

	ip := orSentinel(host.Addresses[0].Addr, SentinelUnknown)

	hostname := SentinelNotAvailable
	if len(host.Hostnames) > 0 {
		hostname = orSentinel(host.Hostnames[0].Name, SentinelNotAvailable)
	}

	records := make([]Record, 0, len(host.Ports.Ports))
	for _, port := range host.Ports.Ports {
		records = append(records, Record{
			IP:         ip,
			Hostname:   hostname,
			PortNumber: orSentinel(port.PortID, SentinelUnknown),
			Protocol:   orSentinel(port.Protocol, SentinelUnknown),
			State:      orSentinel(port.State.State, SentinelUnknown),
			Service:    orSentinel(port.Service.Name, SentinelUnknown),
			Details:    composeDetails(port.Service),
			SourceFile: source,
		})
	}

	return records
}

// orSentinel returns value unchanged unless it is empty, in which case the
// sentinel is returned instead. Absent elements and absent attributes both
// decode to the empty string, so the two cases are deliberately equivalent.
func orSentinel(value, sentinel string) string {
	if value == "" {
		return sentinel
	}
	return value
}

// composeDetails joins the present service attributes into one description:
// the product, then the version wrapped in parentheses, then the extra info,
// separated by single spaces. When none are present the result is the
// Unknown sentinel, never a partially empty string.
func composeDetails(svc PortService) string {
	parts := make([]string, 0, 3)
	if svc.Product != "" {
		parts = append(parts, svc.Product)
	}
	if svc.Version != "" {
		parts = append(parts, "("+svc.Version+")")
	}
	if svc.ExtraInfo != "" {
		parts = append(parts, svc.ExtraInfo)
	}
	if len(parts) == 0 {
		return SentinelUnknown
	}
	return strings.Join(parts, " ")
}
