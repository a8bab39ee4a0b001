package exporter

import (
	"fmt"

	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet = "Summary"
	changesSheet = "Changes"
	notesSheet   = "Notes"
)

// ExcelExporter writes an audit workbook listing every rescaled cell
type ExcelExporter struct {
	// Stateless
}

// NewExcelExporter creates a new ExcelExporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export generates the Excel audit report
func (e *ExcelExporter) Export(report *model.Report, cfg *config.Config) error {
	if err := cfg.EnsureReportDir(); err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	styler, err := NewStyler(f)
	if err != nil {
		return err
	}

	if err := e.writeSummary(f, styler, report); err != nil {
		return err
	}
	if err := e.writeChanges(f, styler, report.Changes); err != nil {
		return err
	}
	if err := e.writeNotes(f, styler, report.Notes); err != nil {
		return err
	}

	// Remove default "Sheet1"
	if idx, err := f.GetSheetIndex("Sheet1"); err == nil && idx != -1 {
		f.DeleteSheet("Sheet1")
	}
	if idx, err := f.GetSheetIndex(summarySheet); err == nil && idx != -1 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(cfg.GetReportPath(".xlsx")); err != nil {
		return fmt.Errorf("failed to save Excel report: %w", err)
	}
	return nil
}

// --- Summary Sheet Logic ---

func (e *ExcelExporter) writeSummary(f *excelize.File, s *Styler, report *model.Report) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}

	e.writeRow(f, summarySheet, 1, []string{"Item", "Value"}, s.HeaderStyle)

	items := []struct {
		Key string
		Val interface{}
	}{
		{"Source File", report.SourceName},
		{"Output File", report.OutputName},
		{"Converted At", report.ConvertedDate()},
		{"Rounding", report.Rounding},
		{"Processed Rows", report.ProcessedCount},
		{"Notes Written", len(report.Notes)},
	}

	row := 2
	for _, item := range items {
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), item.Key)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), item.Val)
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.LabelStyle)
		f.SetCellStyle(summarySheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		row++
	}

	f.SetColWidth(summarySheet, "A", "A", 20)
	f.SetColWidth(summarySheet, "B", "B", 50)
	return nil
}

// --- Changes Sheet Logic ---

func (e *ExcelExporter) writeChanges(f *excelize.File, s *Styler, changes []model.CellChange) error {
	if _, err := f.NewSheet(changesSheet); err != nil {
		return err
	}

	e.writeRow(f, changesSheet, 1, []string{"No", "Cell", "Before", "After", "Difference"}, s.HeaderStyle)

	f.SetPanes(changesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	row := 2
	for i, c := range changes {
		f.SetCellValue(changesSheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(changesSheet, fmt.Sprintf("B%d", row), c.Cell)
		f.SetCellValue(changesSheet, fmt.Sprintf("C%d", row), c.Before)
		f.SetCellValue(changesSheet, fmt.Sprintf("D%d", row), c.After)
		f.SetCellFormula(changesSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("D%d-C%d", row, row))

		f.SetCellStyle(changesSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), s.DefaultStyle)
		f.SetCellStyle(changesSheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), s.NumberStyle)
		f.SetCellStyle(changesSheet, fmt.Sprintf("D%d", row), fmt.Sprintf("D%d", row), s.ChangedStyle)
		f.SetCellStyle(changesSheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), s.NumberStyle)
		row++
	}

	f.SetColWidth(changesSheet, "A", "B", 10)
	f.SetColWidth(changesSheet, "C", "E", 16)
	return nil
}

// --- Notes Sheet Logic ---

func (e *ExcelExporter) writeNotes(f *excelize.File, s *Styler, notes []model.NoteEntry) error {
	if _, err := f.NewSheet(notesSheet); err != nil {
		return err
	}

	e.writeRow(f, notesSheet, 1, []string{"Cell", "Text"}, s.HeaderStyle)

	for i, n := range notes {
		row := i + 2
		f.SetCellValue(notesSheet, fmt.Sprintf("A%d", row), n.Cell())
		f.SetCellValue(notesSheet, fmt.Sprintf("B%d", row), n.Text)
		f.SetCellStyle(notesSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), s.DefaultStyle)
		f.SetCellStyle(notesSheet, fmt.Sprintf("B%d", row), fmt.Sprintf("B%d", row), s.NoteStyle)
	}

	f.SetColWidth(notesSheet, "A", "A", 10)
	f.SetColWidth(notesSheet, "B", "B", 80)
	return nil
}

func (e *ExcelExporter) writeRow(f *excelize.File, sheet string, row int, values []string, style int) {
	for i, val := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, row)
		f.SetCellValue(sheet, cell, val)
		f.SetCellStyle(sheet, cell, cell, style)
	}
}
