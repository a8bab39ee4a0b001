package main

import (
	"fmt"
	"log"
	"math"
	"os"

	"xlsx-rescaler/internal/rescaler"

	"github.com/xuri/excelize/v2"
)

func main() {
	// Check which file to verify
	filename := "(変換済み)sample.xlsx"
	if len(os.Args) > 1 {
		filename = os.Args[1]
	}

	f, err := excelize.OpenFile(filename)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	fmt.Printf("=== CONVERTED FILE CHECK: %s ===\n", filename)

	check, err := verifyConverted(f)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Numeric cells from %s%d: %d\n", rescaler.ScanColumn, rescaler.StartRow, check.Count)
	if check.StoppedAt != "" {
		fmt.Printf("Scan ends at %s\n", check.StoppedAt)
	}
	for _, p := range check.Problems {
		fmt.Printf("❌ %s\n", p)
	}

	fmt.Println()
	if len(check.Problems) > 0 {
		fmt.Println("❌ Converted file check: FAILED")
		os.Exit(1)
	}
	fmt.Println("✅ Converted file check: OK")
}

// verification is what verifyConverted found in a converted workbook
type verification struct {
	Count     int      // whole numbers from H5 down
	StoppedAt string   // first cell that ended the run
	Problems  []string // empty when the workbook looks converted
}

// verifyConverted walks the scanned run with the rescaler's own cell rules and
// row bound, then checks every note cell.
// Numeric text, formulas and date-styled numbers end the run exactly where the
// conversion stopped.
func verifyConverted(f *excelize.File) (*verification, error) {
	sheet := rescaler.SheetName
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		return nil, fmt.Errorf("sheet %s not found", sheet)
	}

	lastRow, err := rescaler.LastOccupiedRow(f, sheet)
	if err != nil {
		return nil, err
	}

	v := &verification{}
	for row := rescaler.StartRow; row <= lastRow; row++ {
		addr := fmt.Sprintf("%s%d", rescaler.ScanColumn, row)
		cell, err := rescaler.ReadCell(f, sheet, addr)
		if err != nil {
			return nil, err
		}
		if !cell.IsFiniteNumber() {
			v.StoppedAt = fmt.Sprintf("%s (%s %q)", addr, cell.Kind, cell.String())
			break
		}
		if cell.Number != math.Trunc(cell.Number) {
			v.Problems = append(v.Problems, fmt.Sprintf("%s = %v is not rounded", addr, cell.Number))
		}
		v.Count++
	}

	for _, note := range rescaler.NoteEntries() {
		got, err := f.GetCellValue(sheet, note.Cell())
		if err != nil {
			return nil, err
		}
		if got != note.Text {
			v.Problems = append(v.Problems, fmt.Sprintf("%s = %q, expected %q", note.Cell(), got, note.Text))
		}
	}

	return v, nil
}
