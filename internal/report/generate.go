package report

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"
)

const outputDirPerm = 0750

// Options controls one report generation run.
type Options struct {
	// InputPaths are the scan documents to read, in the order their
	// records should appear in the merged table.
	InputPaths []string `validate:"required,min=1"`

	// OutputDir receives every artifact.
	OutputDir string `validate:"required"`

	// OpenOnly drops every record whose state is not exactly "open"
	// before statistics and rendering.
	OpenOnly bool

	// Excel, HTML and JSON request the optional artifacts. The CSV table
	// is always written.
	Excel bool
	HTML  bool
	JSON  bool

	// TopServices caps the open-service ranking.
	TopServices int `validate:"gt=0"`

	// CriticalServices overrides the built-in allow-list when non-nil.
	CriticalServices []string
}

// DefaultOptions returns options with the built-in defaults filled in.
func DefaultOptions() Options {
	return Options{
		OutputDir:        ".",
		TopServices:      5,
		CriticalServices: DefaultCriticalServices(),
	}
}

// Result describes a finished run: the report set that was built and the
// artifact paths that were written, in write order.
type Result struct {
	Set       *ReportSet
	Artifacts []string
}

var validate = validator.New()

// Generate runs the full pipeline: collect records from every input,
// apply the optional open-only filter, compute statistics, and render the
// requested artifacts. It fails without writing anything when no input
// could be read, when the inputs held no records, or when filtering removed
// every record.
func Generate(opts Options) (*Result, error) {
	if err := validate.Struct(opts); err != nil {
		return nil, errors.WrapConfigError(errors.CodeValidation, "invalid report options", err)
	}
	if opts.CriticalServices == nil {
		opts.CriticalServices = DefaultCriticalServices()
	}

	records, warnings, sources := Collect(opts.InputPaths)
	if len(sources) == 0 {
		return nil, errors.ErrNoInput()
	}
	if len(records) == 0 {
		return nil, errors.ErrNoRecords()
	}

	if opts.OpenOnly {
		records = FilterOpen(records)
		if len(records) == 0 {
			return nil, errors.ErrEmptyFilter()
		}
	}

	set := &ReportSet{
		Records:     records,
		Warnings:    warnings,
		Sources:     sources,
		OpenOnly:    opts.OpenOnly,
		GeneratedAt: time.Now(),
		ID:          uuid.New().String(),
	}
	set.Stats = ComputeStats(records, opts.CriticalServices, opts.TopServices)

	if err := os.MkdirAll(opts.OutputDir, outputDirPerm); err != nil {
		return nil, errors.WrapReportError(
			errors.CodeDirectoryCreate, "failed to create output directory", err)
	}

	result := &Result{Set: set}

	csvPath := filepath.Join(opts.OutputDir, CSVFileName)
	if err := WriteCSV(set, csvPath); err != nil {
		return result, err
	}
	result.Artifacts = append(result.Artifacts, csvPath)
	logging.InfoReport("wrote csv table", "artifact", csvPath, "rows", len(set.Records))

	if opts.Excel {
		excelPath := filepath.Join(opts.OutputDir, ExcelFileName)
		if err := WriteExcel(set, excelPath); err != nil {
			return result, err
		}
		result.Artifacts = append(result.Artifacts, excelPath)
		logging.InfoReport("wrote excel workbook", "artifact", excelPath, "rows", len(set.Records))
	}

	if opts.HTML {
		htmlPath := filepath.Join(opts.OutputDir, HTMLFileName)
		if err := WriteHTML(set, htmlPath); err != nil {
			return result, err
		}
		result.Artifacts = append(result.Artifacts, htmlPath)
		logging.InfoReport("wrote html report", "artifact", htmlPath, "rows", len(set.Records))
	}

	if opts.JSON {
		jsonPath := filepath.Join(opts.OutputDir, JSONFileName)
		if err := WriteJSON(set, jsonPath); err != nil {
			return result, err
		}
		result.Artifacts = append(result.Artifacts, jsonPath)
		logging.InfoReport("wrote json export", "artifact", jsonPath, "rows", len(set.Records))
	}

	return result, nil
}
