package report

import (
	"encoding/json"
	"io"
	"os"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"

	"github.com/anstrom/nmapreport/internal/nmapxml"
)

// jsonReport is the wire shape of the JSON export. It carries no
// timestamps or run IDs so identical inputs produce identical bytes.
type jsonReport struct {
	Sources  []string         `json:"sources"`
	OpenOnly bool             `json:"open_only"`
	Stats    Stats            `json:"stats"`
	Records  []nmapxml.Record `json:"records"`
}

// RenderJSON writes the report set to w as indented JSON: the source
// files, the computed statistics, and every record in table order.
func RenderJSON(set *ReportSet, w io.Writer) error {
	payload := jsonReport{
		Sources:  set.Sources,
		OpenOnly: set.OpenOnly,
		Stats:    set.Stats,
		Records:  set.Records,
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return errors.ErrRenderFailed(JSONFileName, err)
	}
	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return errors.ErrWriteFailed(JSONFileName, err)
	}
	return nil
}

// WriteJSON renders the report set into the file at path, replacing any
// previous run's output.
func WriteJSON(set *ReportSet, path string) error {
	file, err := os.Create(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return errors.ErrWriteFailed(JSONFileName, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.Warn("failed to close json file", "path", path, "error", err)
		}
	}()

	return RenderJSON(set, file)
}
