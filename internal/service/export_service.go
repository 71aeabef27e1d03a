package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"psa-proofing-web/internal/models"
)

const (
	DataWorkbookName   = "PSA_Data.xlsx"
	ReportWorkbookName = "Validation_Report.xlsx"
)

// ExportService renders a processing run into the downloadable
// archive: one workbook with the three normalized tables and one with
// the validation report.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// BuildArchive packs the two workbooks into a ZIP.
func (s *ExportService) BuildArchive(result *models.ProcessResult, generatedAt time.Time) ([]byte, error) {
	dataBytes, err := s.buildDataWorkbook(result)
	if err != nil {
		return nil, fmt.Errorf("build data workbook: %w", err)
	}
	reportBytes, err := s.buildValidationReport(result, generatedAt)
	if err != nil {
		return nil, fmt.Errorf("build validation report: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct {
		name string
		data []byte
	}{
		{DataWorkbookName, dataBytes},
		{ReportWorkbookName, reportBytes},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize zip: %w", err)
	}
	return buf.Bytes(), nil
}

// buildDataWorkbook writes one sheet per extracted table. Tables that
// failed extraction are simply absent. The planogram sheet highlights
// the first derived columns so reviewers can see where positional
// data ends.
func (s *ExportService) buildDataWorkbook(result *models.ProcessResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	derivedStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "000000"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFFF00"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	wroteSheet := false
	for _, part := range []struct {
		name  string
		table *models.Table
	}{
		{"Product", result.Product.Table},
		{"Planogram", result.Planogram.Table},
		{"Fixture", result.Fixture.Table},
	} {
		if part.table == nil {
			continue
		}
		if _, err := f.NewSheet(part.name); err != nil {
			return nil, err
		}
		if err := writeTableSheet(f, part.name, part.table, headerStyle); err != nil {
			return nil, err
		}
		if part.name == "Planogram" {
			// Offset through Category are smart-mapped, not positional.
			start, _ := excelize.CoordinatesToCellName(8, 1)
			end, _ := excelize.CoordinatesToCellName(11, 1)
			if err := f.SetCellStyle(part.name, start, end, derivedStyle); err != nil {
				return nil, err
			}
		}
		wroteSheet = true
	}

	if wroteSheet {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTableSheet(f *excelize.File, sheet string, table *models.Table, headerStyle int) error {
	header := make([]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if len(table.Columns) > 0 {
		end, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", end, headerStyle); err != nil {
			return err
		}
	}

	for i, row := range table.Rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}

// buildValidationReport writes the Summary, Failed Checks and All
// Checks sheets over the combined (prefixed) check list.
func (s *ExportService) buildValidationReport(result *models.ProcessResult, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	passStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "006100"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"C6EFCE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	failStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFC7CE"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	warnStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "9C6500"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"FFEB9C"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	statusStyle := func(status models.Status) int {
		switch status {
		case models.StatusFail:
			return failStyle
		case models.StatusWarning:
			return warnStyle
		default:
			return passStyle
		}
	}

	// Summary sheet
	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return nil, err
	}
	f.SetCellValue(summary, "A1", "PSA Data Validation Report")
	f.SetCellStyle(summary, "A1", "D1", titleStyle)
	f.MergeCell(summary, "A1", "D1")
	f.SetCellValue(summary, "A2", fmt.Sprintf("Generated: %s", generatedAt.Format("2006-01-02 15:04:05")))

	f.SetCellValue(summary, "A4", "Overall Status:")
	f.SetCellValue(summary, "B4", string(result.Combined.OverallStatus))
	f.SetCellStyle(summary, "B4", "B4", statusStyle(result.Combined.OverallStatus))

	stats := []struct {
		label string
		value int
	}{
		{"Total Checks Run:", result.Combined.TotalChecks},
		{"Passed:", result.Combined.Passed},
		{"Failed:", result.Combined.Failed},
		{"Warnings:", result.Combined.Warnings},
		{"Total Errors Found:", result.Combined.TotalErrors},
		{"Total Records:", result.Combined.TotalRecords},
	}
	f.SetCellValue(summary, "A6", "Check Statistics")
	row := 7
	for _, stat := range stats {
		f.SetCellValue(summary, fmt.Sprintf("A%d", row), stat.label)
		f.SetCellValue(summary, fmt.Sprintf("B%d", row), stat.value)
		row++
	}
	f.SetColWidth(summary, "A", "A", 25)
	f.SetColWidth(summary, "B", "B", 15)
	f.SetColWidth(summary, "C", "C", 50)

	// Failed Checks sheet
	const failedSheet = "Failed Checks"
	if _, err := f.NewSheet(failedSheet); err != nil {
		return nil, err
	}
	var failed []models.CheckResult
	for _, check := range result.AllChecks {
		if check.Status == models.StatusFail {
			failed = append(failed, check)
		}
	}
	if len(failed) == 0 {
		f.SetCellValue(failedSheet, "A1", "No Failed Checks")
		f.SetCellStyle(failedSheet, "A1", "A1", passStyle)
	} else {
		writeCheckSheet(f, failedSheet, failed, headerStyle, statusStyle)
	}

	// All Checks sheet
	const allSheet = "All Checks"
	if _, err := f.NewSheet(allSheet); err != nil {
		return nil, err
	}
	writeCheckSheet(f, allSheet, result.AllChecks, headerStyle, statusStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeCheckSheet(f *excelize.File, sheet string, checks []models.CheckResult, headerStyle int, statusStyle func(models.Status) int) {
	header := []interface{}{"Check Name", "Status", "Pass Count", "Error Count", "Message", "Details"}
	f.SetSheetRow(sheet, "A1", &header)
	f.SetCellStyle(sheet, "A1", "F1", headerStyle)

	for i, check := range checks {
		row := i + 2
		values := []interface{}{check.Name, string(check.Status), check.PassCount, check.ErrorCount, check.Message, check.Details}
		f.SetSheetRow(sheet, fmt.Sprintf("A%d", row), &values)
		f.SetCellStyle(sheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), statusStyle(check.Status))
	}

	f.SetColWidth(sheet, "A", "A", 35)
	f.SetColWidth(sheet, "B", "B", 10)
	f.SetColWidth(sheet, "E", "E", 50)
	f.SetColWidth(sheet, "F", "F", 60)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}
