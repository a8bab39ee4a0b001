package rescaler

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"xlsx-rescaler/internal/model"

	"github.com/xuri/excelize/v2"
)

// buildWorkbook creates an in-memory xlsx with the given cells on sheet
func buildWorkbook(t *testing.T, sheet string, cells map[string]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("Failed to rename sheet: %v", err)
		}
	}
	for addr, v := range cells {
		if err := f.SetCellValue(sheet, addr, v); err != nil {
			t.Fatalf("Failed to set %s: %v", addr, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func openResult(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to reopen output: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func cellValue(t *testing.T, f *excelize.File, addr string) string {
	t.Helper()
	v, err := f.GetCellValue(SheetName, addr)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", addr, err)
	}
	return v
}

func TestTransformStopsAtFirstNonNumeric(t *testing.T) {
	data := buildWorkbook(t, SheetName, map[string]interface{}{
		"H4":  "仕入れ単価",
		"H5":  100,
		"H6":  200,
		"H7":  300,
		"H8":  400,
		"H9":  500,
		"H11": 1000,
		"H12": "小計",
	})

	res, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if res.ProcessedCount != 5 {
		t.Errorf("ProcessedCount = %d, expected 5", res.ProcessedCount)
	}
	if len(res.Changes) != 5 {
		t.Fatalf("len(Changes) = %d, expected 5", len(res.Changes))
	}

	f := openResult(t, res.Bytes)
	expected := map[string]string{
		"H4":  "仕入れ単価",
		"H5":  "90",
		"H6":  "180",
		"H7":  "270",
		"H8":  "360",
		"H9":  "450",
		"H10": "",
		"H11": "1000",
		"H12": "小計",
	}
	for addr, want := range expected {
		if got := cellValue(t, f, addr); got != want {
			t.Errorf("%s = %q, expected %q", addr, got, want)
		}
	}

	if res.Changes[0].Cell != "H5" || res.Changes[4].Cell != "H9" {
		t.Errorf("Changes cover %s..%s, expected H5..H9", res.Changes[0].Cell, res.Changes[4].Cell)
	}
	if res.StoppedAt != "H10" || res.StopValue.Kind != model.CellKindBlank {
		t.Errorf("Stopped at %s (%s), expected H10 (BLANK)", res.StoppedAt, res.StopValue.Kind)
	}
}

func TestTransformStopPosition(t *testing.T) {
	tests := []struct {
		name      string
		cells     map[string]interface{}
		stoppedAt string
		kind      model.CellKind
		raw       string
	}{
		{"text", map[string]interface{}{"H5": 10, "H6": "合計"}, "H6", model.CellKindText, "合計"},
		{"end of data", map[string]interface{}{"H5": 10, "H6": 20}, "H7", model.CellKindBlank, ""},
		{"empty sheet", map[string]interface{}{}, "H5", model.CellKindBlank, ""},
		{"boolean first", map[string]interface{}{"H5": true}, "H5", model.CellKindOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transform(buildWorkbook(t, SheetName, tt.cells))
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if res.StoppedAt != tt.stoppedAt {
				t.Errorf("StoppedAt = %s, expected %s", res.StoppedAt, tt.stoppedAt)
			}
			if res.StopValue.Kind != tt.kind {
				t.Errorf("StopValue.Kind = %s, expected %s", res.StopValue.Kind, tt.kind)
			}
			if got := res.StopValue.String(); tt.kind != model.CellKindOther && got != tt.raw {
				t.Errorf("StopValue = %q, expected %q", got, tt.raw)
			}
		})
	}
}

func TestTransformRounding(t *testing.T) {
	tests := []struct {
		name     string
		rounding Rounding
		input    float64
		expected string
	}{
		{"exact", RoundHalfAwayFromZero, 100, "90"},
		{"round up", RoundHalfAwayFromZero, 101, "91"},
		{"below half", RoundHalfAwayFromZero, 11, "10"},
		{"positive half", RoundHalfAwayFromZero, 55, "50"},
		{"negative half", RoundHalfAwayFromZero, -55, "-50"},
		{"decimal input", RoundHalfAwayFromZero, 1234.5, "1111"},
		{"half-up positive half", RoundHalfUp, 55, "50"},
		{"half-up negative half", RoundHalfUp, -55, "-49"},
		{"half-up round up", RoundHalfUp, 101, "91"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildWorkbook(t, SheetName, map[string]interface{}{"H5": tt.input})

			res, err := New(Options{Rounding: tt.rounding}).Transform(data)
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if res.ProcessedCount != 1 {
				t.Fatalf("ProcessedCount = %d, expected 1", res.ProcessedCount)
			}

			f := openResult(t, res.Bytes)
			if got := cellValue(t, f, "H5"); got != tt.expected {
				t.Errorf("H5 = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestTransformWritesNotesWithoutRows(t *testing.T) {
	data := buildWorkbook(t, SheetName, map[string]interface{}{
		"H5": "未定",
		"H6": 100,
		"J3": "old note",
	})

	res, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if res.ProcessedCount != 0 {
		t.Errorf("ProcessedCount = %d, expected 0", res.ProcessedCount)
	}

	f := openResult(t, res.Bytes)
	for _, n := range Notes {
		if got := cellValue(t, f, n.Cell()); got != n.Text {
			t.Errorf("%s = %q, expected %q", n.Cell(), got, n.Text)
		}
	}
	if got := cellValue(t, f, "H6"); got != "100" {
		t.Errorf("H6 = %q, expected untouched 100", got)
	}
	if got := cellValue(t, f, "H5"); got != "未定" {
		t.Errorf("H5 = %q, expected untouched text", got)
	}
}

func TestTransformEmptySheet(t *testing.T) {
	data := buildWorkbook(t, SheetName, nil)

	res, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if res.ProcessedCount != 0 {
		t.Errorf("ProcessedCount = %d, expected 0", res.ProcessedCount)
	}

	f := openResult(t, res.Bytes)
	for _, n := range Notes {
		if got := cellValue(t, f, n.Cell()); got != n.Text {
			t.Errorf("%s = %q, expected %q", n.Cell(), got, n.Text)
		}
	}
}

func TestTransformMissingSheet(t *testing.T) {
	tests := []struct {
		name      string
		sheet     string
		hintInErr bool
	}{
		{"other name", "Data", false},
		{"full-width name", "Ｓｈｅｅｔ１", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildWorkbook(t, tt.sheet, map[string]interface{}{"H5": 100})

			res, err := Transform(data)
			if !errors.Is(err, ErrMissingSheet) {
				t.Fatalf("Expected ErrMissingSheet, got %v", err)
			}
			if res != nil {
				t.Error("Expected no result on missing sheet")
			}
			if tt.hintInErr && !strings.Contains(err.Error(), tt.sheet) {
				t.Errorf("Error should name the near match: %v", err)
			}
		})
	}
}

func TestTransformInvalidBytes(t *testing.T) {
	res, err := Transform([]byte("this is not a zip package"))
	if !errors.Is(err, ErrDeserialization) {
		t.Fatalf("Expected ErrDeserialization, got %v", err)
	}
	if errors.Is(err, ErrSerialization) {
		t.Error("Deserialization error should not match ErrSerialization")
	}
	var fe *FormatError
	if !errors.As(err, &fe) || fe.Op != OpDeserialize {
		t.Errorf("Expected *FormatError with Op %q, got %v", OpDeserialize, err)
	}
	if res != nil {
		t.Error("Expected no result on invalid input")
	}
}

func TestTransformLeavesOtherCellsAlone(t *testing.T) {
	data := buildWorkbook(t, SheetName, map[string]interface{}{
		"A1": "仕入れ表",
		"A5": "商品A",
		"B5": 3,
		"G5": 150,
		"I5": 100,
		"H5": 100,
		"H6": 250,
	})

	res, err := Transform(data)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	f := openResult(t, res.Bytes)
	expected := map[string]string{
		"A1": "仕入れ表",
		"A5": "商品A",
		"B5": "3",
		"G5": "150",
		"I5": "100",
		"H5": "90",
		"H6": "225",
	}
	for addr, want := range expected {
		if got := cellValue(t, f, addr); got != want {
			t.Errorf("%s = %q, expected %q", addr, got, want)
		}
	}
}

func TestTransformStopsAtNonNumberKinds(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *excelize.File) error
	}{
		{"formula", func(f *excelize.File) error {
			return f.SetCellFormula(SheetName, "H6", "H5*2")
		}},
		{"boolean", func(f *excelize.File) error {
			return f.SetCellValue(SheetName, "H6", true)
		}},
		{"date", func(f *excelize.File) error {
			return f.SetCellValue(SheetName, "H6", time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))
		}},
		{"numeric text", func(f *excelize.File) error {
			return f.SetCellStr(SheetName, "H6", "123")
		}},
		{"elapsed hours", func(f *excelize.File) error {
			return setStyledNumber(f, "H6", 100, "[h]:mm")
		}},
		{"minutes and seconds", func(f *excelize.File) error {
			return setStyledNumber(f, "H6", 100, "mm:ss")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := excelize.NewFile()
			defer f.Close()
			if err := f.SetCellValue(SheetName, "H5", 100); err != nil {
				t.Fatal(err)
			}
			if err := tt.setup(f); err != nil {
				t.Fatalf("Failed to prepare H6: %v", err)
			}
			if err := f.SetCellValue(SheetName, "H7", 100); err != nil {
				t.Fatal(err)
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				t.Fatal(err)
			}

			res, err := Transform(buf.Bytes())
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if res.ProcessedCount != 1 {
				t.Errorf("ProcessedCount = %d, expected 1", res.ProcessedCount)
			}

			out := openResult(t, res.Bytes)
			if got := cellValue(t, out, "H7"); got != "100" {
				t.Errorf("H7 = %q, expected untouched 100", got)
			}
		})
	}
}

// setStyledNumber writes v to addr with a custom number format
func setStyledNumber(f *excelize.File, addr string, v float64, numFmt string) error {
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, addr, v); err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, addr, addr, style)
}

func TestTransformStopsAtTimeStyledFirstCell(t *testing.T) {
	for _, numFmt := range []string{"[h]:mm", "mm:ss"} {
		t.Run(numFmt, func(t *testing.T) {
			f := excelize.NewFile()
			defer f.Close()
			if err := setStyledNumber(f, "H5", 100, numFmt); err != nil {
				t.Fatalf("Failed to prepare H5: %v", err)
			}
			buf, err := f.WriteToBuffer()
			if err != nil {
				t.Fatal(err)
			}

			res, err := Transform(buf.Bytes())
			if err != nil {
				t.Fatalf("Transform failed: %v", err)
			}
			if res.ProcessedCount != 0 {
				t.Errorf("ProcessedCount = %d, expected 0", res.ProcessedCount)
			}
			raw, err := openResult(t, res.Bytes).GetCellValue(SheetName, "H5", excelize.Options{RawCellValue: true})
			if err != nil {
				t.Fatal(err)
			}
			if raw != "100" {
				t.Errorf("H5 = %q, expected untouched 100", raw)
			}
		})
	}
}

func TestTransformProgress(t *testing.T) {
	data := buildWorkbook(t, SheetName, map[string]interface{}{
		"H5": 10,
		"H6": 20,
		"H7": 30,
	})

	var rows []int
	r := New(Options{Progress: func(row, processed int) {
		rows = append(rows, row)
		if processed != len(rows) {
			t.Errorf("processed = %d at row %d, expected %d", processed, row, len(rows))
		}
	}})

	if _, err := r.Transform(data); err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if len(rows) != 3 || rows[0] != 5 || rows[2] != 7 {
		t.Errorf("Progress rows = %v, expected [5 6 7]", rows)
	}
}
