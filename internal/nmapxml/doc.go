// Package nmapxml decodes nmap XML scan documents and flattens them into
// normalized scan records.
//
// This package contains the extraction half of the nmapreport pipeline. It
// knows nothing about report generation: its only job is to turn one scan
// document into a flat sequence of Record values, one per (host, port) pair,
// with every field populated.
//
// # Overview
//
// The package is built around the Document structure, which mirrors the
// subset of the nmap XML schema the extractor cares about, and the Record
// structure, which is the normalized output row. The main entry points are
// Extract, which decodes from any reader, and ExtractFile, which opens and
// decodes a document from disk.
//
// # Main Components
//
// ## Document Model
//
// The scan document schema is represented by:
//   - Document: root element with its top-level host children
//   - Host: one scanned host with addresses, hostnames, and ports
//   - Port: one scanned port with its state and service child elements
//   - PortState, PortService: nested per-port detail elements
//
// Port identifiers are kept as text rather than parsed into integers because
// some scanner builds emit non-numeric identifiers; preserving the raw value
// keeps the output faithful to the document.
//
// # Traversal Rules
//
// Extraction visits only top-level host elements and applies a small set of
// rules:
//   - A host without an address child is skipped entirely.
//   - A host without a ports container is skipped entirely.
//   - The first address and the first hostname in document order win.
//   - Each port element under a host produces exactly one record sharing
//     that host's address and hostname.
//
// Missing optional data is never an error. Absent elements and absent
// attributes are treated identically and replaced with a sentinel value
// (Unknown, or N/A for hostnames), so every Record field is always populated
// and downstream consumers never branch on missingness.
//
// # Usage
//
//	records, err := nmapxml.ExtractFile("subnet1.xml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, rec := range records {
//		fmt.Printf("%s:%s %s %s\n", rec.IP, rec.PortNumber, rec.State, rec.Service)
//	}
//
// # Error Handling
//
// Only document-level failures surface as errors: a file that cannot be
// opened or is not well-formed XML yields a single typed ParseError naming
// the offending file. Callers processing multiple files are expected to
// treat these as per-file warnings and continue with the remaining inputs.
package nmapxml
