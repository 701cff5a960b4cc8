package report

import (
	"path/filepath"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"
	"github.com/anstrom/nmapreport/internal/nmapxml"
)

// Collect reads every input path in order and folds the results into one
// record list. Files that lack the .xml extension, do not exist, or fail to
// parse are skipped with a warning; the remaining files are still
// processed. The returned sources list names the files that were read
// successfully, in the order they were supplied, so callers can tell "every
// file failed" apart from "files parsed but held no results".
func Collect(paths []string) (records []nmapxml.Record, warnings []Warning, sources []string) {
	records = make([]nmapxml.Record, 0)
	warnings = make([]Warning, 0)
	sources = make([]string, 0, len(paths))

	for _, path := range paths {
		if !nmapxml.IsXMLFile(path) {
			err := errors.ErrBadExtension(path)
			warnings = append(warnings, Warning{File: path, Err: err})
			logging.WarnParse("skipping input file", path, err)
			continue
		}

		extracted, err := nmapxml.ExtractFile(path)
		if err != nil {
			warnings = append(warnings, Warning{File: path, Err: err})
			logging.WarnParse("skipping input file", path, err)
			continue
		}

		records = append(records, extracted...)
		sources = append(sources, filepath.Base(path))
		logging.InfoParse("parsed scan document", path, "records", len(extracted))
	}

	return records, warnings, sources
}

// FilterOpen returns the records whose state is exactly "open", preserving
// their order.
func FilterOpen(records []nmapxml.Record) []nmapxml.Record {
	filtered := make([]nmapxml.Record, 0, len(records))
	for _, rec := range records {
		if rec.IsOpen() {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}
