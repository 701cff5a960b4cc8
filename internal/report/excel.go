package report

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/anstrom/nmapreport/internal/errors"
	"github.com/anstrom/nmapreport/internal/logging"
)

const excelSheetName = "Scan Results"

// buildExcel assembles the workbook in memory: one sheet holding the header
// row followed by one row per record, in record order.
func buildExcel(set *ReportSet) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName(f.GetSheetName(0), excelSheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to create header style", ExcelFileName, err)
	}

	header := make([]interface{}, len(Columns))
	for i, name := range Columns {
		header[i] = name
	}
	if err := f.SetSheetRow(excelSheetName, "A1", &header); err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to write header row", ExcelFileName, err)
	}
	lastCol, err := excelize.CoordinatesToCellName(len(Columns), 1)
	if err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to compute header range", ExcelFileName, err)
	}
	if err := f.SetCellStyle(excelSheetName, "A1", lastCol, headerStyle); err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to style header row", ExcelFileName, err)
	}

	for i := range set.Records {
		values := rowValues(&set.Records[i])
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.WrapReportErrorWithArtifact(
				errors.CodeRenderFailed, "failed to compute row position", ExcelFileName, err)
		}
		if err := f.SetSheetRow(excelSheetName, cell, &row); err != nil {
			return nil, errors.WrapReportErrorWithArtifact(
				errors.CodeRenderFailed, "failed to write record row", ExcelFileName, err)
		}
	}

	if err := f.SetColWidth(excelSheetName, "A", "B", 18); err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to size columns", ExcelFileName, err)
	}
	if err := f.SetColWidth(excelSheetName, "C", "F", 12); err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to size columns", ExcelFileName, err)
	}
	if err := f.SetColWidth(excelSheetName, "G", "H", 30); err != nil {
		return nil, errors.WrapReportErrorWithArtifact(
			errors.CodeRenderFailed, "failed to size columns", ExcelFileName, err)
	}

	return f, nil
}

// RenderExcel writes the record table to w as an xlsx workbook.
func RenderExcel(set *ReportSet, w io.Writer) error {
	f, err := buildExcel(set)
	if err != nil {
		return err
	}
	defer closeWorkbook(f)

	if err := f.Write(w); err != nil {
		return errors.ErrWriteFailed(ExcelFileName, err)
	}
	return nil
}

// WriteExcel renders the record table into the workbook at path, replacing
// any previous run's output.
func WriteExcel(set *ReportSet, path string) error {
	f, err := buildExcel(set)
	if err != nil {
		return err
	}
	defer closeWorkbook(f)

	if err := f.SaveAs(path); err != nil {
		return errors.ErrWriteFailed(ExcelFileName, err)
	}
	return nil
}

func closeWorkbook(f *excelize.File) {
	if err := f.Close(); err != nil {
		logging.Warn("failed to close excel workbook", "error", err)
	}
}
