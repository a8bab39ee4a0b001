package model

import (
	"fmt"
	"math"
	"strconv"
)

// CellKind represents what a worksheet cell holds at read time
type CellKind string

const (
	CellKindBlank  CellKind = "BLANK"
	CellKindNumber CellKind = "NUMBER"
	CellKindText   CellKind = "TEXT"
	CellKindOther  CellKind = "OTHER" // booleans, errors, formulas, dates
)

// CellValue is a tagged cell value.
// Only one of Number/Text/Raw is meaningful, depending on Kind.
type CellValue struct {
	Kind   CellKind
	Number float64
	Text   string
	Raw    string
}

// Blank returns an empty cell value
func Blank() CellValue {
	return CellValue{Kind: CellKindBlank}
}

// Number returns a numeric cell value
func Number(v float64) CellValue {
	return CellValue{Kind: CellKindNumber, Number: v}
}

// Text returns a string cell value
func Text(s string) CellValue {
	return CellValue{Kind: CellKindText, Text: s}
}

// Other returns a value that is neither number, text nor blank
func Other(raw string) CellValue {
	return CellValue{Kind: CellKindOther, Raw: raw}
}

// IsFiniteNumber reports whether the value is a number that is not NaN or ±Inf
func (v CellValue) IsFiniteNumber() bool {
	return v.Kind == CellKindNumber && !math.IsNaN(v.Number) && !math.IsInf(v.Number, 0)
}

// String renders the value the way it is shown in reports
func (v CellValue) String() string {
	switch v.Kind {
	case CellKindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case CellKindText:
		return v.Text
	case CellKindOther:
		return v.Raw
	default:
		return ""
	}
}

// NoteEntry is one fixed annotation stamped onto the worksheet
type NoteEntry struct {
	Column string
	Row    int
	Text   string
}

// Cell returns the A1-style address of the note
func (n NoteEntry) Cell() string {
	return fmt.Sprintf("%s%d", n.Column, n.Row)
}
