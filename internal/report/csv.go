package report

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"
)

// RenderCSV writes the merged record table to w as CSV. The header row
// always comes first, followed by one row per record in record order, so
// the same report set renders to identical bytes on every call.
func RenderCSV(set *ReportSet, w io.Writer) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns); err != nil {
		return errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to write csv header", CSVFileName, err)
	}
	for i := range set.Records {
		if err := writer.Write(rowValues(&set.Records[i])); err != nil {
			return errors.WrapReportErrorWithArtifact(
				errors.CodeRenderFailed, "failed to write csv row", CSVFileName, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return errors.ErrWriteFailed(CSVFileName, err)
	}
	return nil
}

// WriteCSV renders the record table into the file at path, replacing any
// previous run's output.
func WriteCSV(set *ReportSet, path string) error {
	file, err := os.Create(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return errors.ErrWriteFailed(CSVFileName, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close csv file", "path", path, "error", err)
		}
	}()

	return RenderCSV(set, file)
}
