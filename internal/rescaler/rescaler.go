// Package rescaler rewrites the purchase price column of an uploaded workbook.
//
// The transform reads column H of Sheet1 from row 5 downward, multiplies each
// numeric value by Factor, rounds it, writes it back to the same cell and stops
// at the first cell that is not a finite number. The fixed Notes table is then
// stamped onto the sheet and the workbook is serialized again.
package rescaler

import (
	"bytes"
	"fmt"

	"xlsx-rescaler/internal/model"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/width"
)

const (
	// SheetName is the only worksheet that is read
	SheetName = "Sheet1"
	// ScanColumn holds the values to rescale
	ScanColumn = "H"
	// StartRow is the first scanned row (1-based)
	StartRow = 5
	// Factor is multiplied into every scanned value
	Factor = 0.9
	// MaxScanRows is the xlsx row limit; the scan never goes past it
	MaxScanRows = excelize.TotalRows
)

// Options configures a Rescaler
type Options struct {
	Rounding Rounding
	// Progress, when set, is called after every rewritten row
	Progress func(row, processed int)
}

// DefaultOptions returns options with half-away-from-zero rounding
func DefaultOptions() Options {
	return Options{Rounding: RoundHalfAwayFromZero}
}

// Rescaler applies the rescale-and-annotate transform
type Rescaler struct {
	opts Options
}

// New creates a Rescaler
func New(opts Options) *Rescaler {
	if opts.Rounding == "" {
		opts.Rounding = RoundHalfAwayFromZero
	}
	return &Rescaler{opts: opts}
}

// Transform runs the transform with default options
func Transform(data []byte) (*model.Result, error) {
	return New(DefaultOptions()).Transform(data)
}

// Transform converts the workbook in data and returns the new workbook bytes.
// No output is returned on error.
func (r *Rescaler) Transform(data []byte) (*model.Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, newFormatError(OpDeserialize, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(SheetName); err != nil || idx == -1 {
		return nil, missingSheetError(f.GetSheetList())
	}

	changes, stop, err := r.rescaleColumn(f)
	if err != nil {
		return nil, err
	}

	if err := writeNotes(f, Notes); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, newFormatError(OpSerialize, err)
	}

	return &model.Result{
		Bytes:          buf.Bytes(),
		ProcessedCount: len(changes),
		Changes:        changes,
		StoppedAt:      stop.cell,
		StopValue:      stop.value,
	}, nil
}

// scanStop is where the H column walk ended
type scanStop struct {
	cell  string
	value model.CellValue
}

// rescaleColumn walks H5, H6, ... and rewrites every finite number in place.
// The walk is bounded by the sheet's occupied row count.
func (r *Rescaler) rescaleColumn(f *excelize.File) ([]model.CellChange, scanStop, error) {
	lastRow, err := LastOccupiedRow(f, SheetName)
	if err != nil {
		return nil, scanStop{}, err
	}

	var changes []model.CellChange
	row := StartRow
	for ; row <= lastRow; row++ {
		addr := scanCell(row)
		value, err := ReadCell(f, SheetName, addr)
		if err != nil {
			return nil, scanStop{}, &CellError{Cell: addr, Op: "read", Err: err}
		}
		if !value.IsFiniteNumber() {
			return changes, scanStop{cell: addr, value: value}, nil
		}

		next := r.opts.Rounding.Rescale(value.Number)
		if err := f.SetCellValue(SheetName, addr, next); err != nil {
			return nil, scanStop{}, &CellError{Cell: addr, Op: "write", Err: err}
		}

		changes = append(changes, model.CellChange{
			Cell:   addr,
			Row:    row,
			Before: value.Number,
			After:  next,
		})
		if r.opts.Progress != nil {
			r.opts.Progress(row, len(changes))
		}
	}

	// Past the last occupied row every cell is blank
	if row > MaxScanRows {
		return changes, scanStop{}, nil
	}
	return changes, scanStop{cell: scanCell(row), value: model.Blank()}, nil
}

func scanCell(row int) string {
	return fmt.Sprintf("%s%d", ScanColumn, row)
}

// writeNotes overwrites each note cell with its text, in table order
func writeNotes(f *excelize.File, notes []model.NoteEntry) error {
	for _, n := range notes {
		if err := f.SetCellValue(SheetName, n.Cell(), n.Text); err != nil {
			return &CellError{Cell: n.Cell(), Op: "note", Err: err}
		}
	}
	return nil
}

// LastOccupiedRow returns the number of the last row holding any cell, capped at MaxScanRows
func LastOccupiedRow(f *excelize.File, sheet string) (int, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return 0, fmt.Errorf("failed to read rows of %s: %w", sheet, err)
	}
	return min(len(rows), MaxScanRows), nil
}

// missingSheetError names a sheet that only differs from SheetName by character width,
// which is what full-width input on a Japanese keyboard produces.
func missingSheetError(sheets []string) error {
	for _, name := range sheets {
		if width.Fold.String(name) == SheetName {
			return fmt.Errorf("%w (found %q, check for full-width characters)", ErrMissingSheet, name)
		}
	}
	return ErrMissingSheet
}
