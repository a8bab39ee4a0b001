package main

import (
	"bytes"
	"strings"
	"testing"

	"xlsx-rescaler/internal/rescaler"

	"github.com/xuri/excelize/v2"
)

func TestVerifyConverted(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "H5", 100)
	f.SetCellValue("Sheet1", "H6", 101)
	f.SetCellStr("Sheet1", "H7", "123")
	f.SetCellValue("Sheet1", "H8", 7.5)

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	res, err := rescaler.Transform(buf.Bytes())
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	out, err := excelize.OpenReader(bytes.NewReader(res.Bytes))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()

	check, err := verifyConverted(out)
	if err != nil {
		t.Fatalf("verifyConverted failed: %v", err)
	}
	if check.Count != 2 {
		t.Errorf("Count = %d, expected 2", check.Count)
	}
	// Numeric text ends the run, so H8 is never inspected
	if !strings.HasPrefix(check.StoppedAt, "H7 (TEXT") {
		t.Errorf("StoppedAt = %q, expected H7 as text", check.StoppedAt)
	}
	if len(check.Problems) != 0 {
		t.Errorf("Unexpected problems: %v", check.Problems)
	}
}

func TestVerifyConvertedReportsProblems(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	f.SetCellValue("Sheet1", "H5", 90)
	f.SetCellValue("Sheet1", "H6", 90.9)

	check, err := verifyConverted(f)
	if err != nil {
		t.Fatalf("verifyConverted failed: %v", err)
	}

	// One unrounded value plus every missing note
	expected := 1 + len(rescaler.Notes)
	if len(check.Problems) != expected {
		t.Errorf("len(Problems) = %d, expected %d: %v", len(check.Problems), expected, check.Problems)
	}
	if check.StoppedAt != "" {
		t.Errorf("StoppedAt = %q, expected the run to reach the last row", check.StoppedAt)
	}
}

func TestVerifyConvertedMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", "Prices"); err != nil {
		t.Fatal(err)
	}

	if _, err := verifyConverted(f); err == nil {
		t.Error("Expected error for workbook without Sheet1")
	}
}
