package model

import "time"

// CellChange records one rescaled cell
type CellChange struct {
	Cell   string  // e.g. "H5"
	Row    int     // 1-based row number
	Before float64 // value read from the cell
	After  float64 // rounded value written back
}

// Result is the outcome of a single transform call
type Result struct {
	Bytes          []byte
	ProcessedCount int
	Changes        []CellChange

	// StoppedAt is the first scanned cell that was left alone, with the value that ended the scan.
	// It is empty when the scan ran to the last row of the sheet format.
	StoppedAt string
	StopValue CellValue
}

// Report summarizes one converted file for the exporters
type Report struct {
	SourceName     string // Input file name as uploaded
	OutputName     string // Converted file name
	OutputPath     string // Where the converted file was written
	ConvertedAt    time.Time
	Rounding       string
	ProcessedCount int
	Changes        []CellChange
	Notes          []NoteEntry
}

// ConvertedDate formats the conversion date for report headers
func (r *Report) ConvertedDate() string {
	return r.ConvertedAt.Format("2006-01-02 15:04:05")
}
