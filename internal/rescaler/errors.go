package rescaler

import (
	"errors"
	"fmt"
)

// ErrMissingSheet indicates the workbook has no worksheet named SheetName.
var ErrMissingSheet = errors.New("worksheet not found: " + SheetName)

// ErrDeserialization indicates the input bytes are not a readable xlsx package.
var ErrDeserialization = errors.New("invalid xlsx format")

// ErrSerialization indicates the modified workbook could not be written back.
var ErrSerialization = errors.New("failed to write xlsx")

// Op names the workbook operation that failed
type Op string

const (
	OpDeserialize Op = "deserialize"
	OpSerialize   Op = "serialize"
)

// FormatError represents a failure reading or writing the spreadsheet package.
type FormatError struct {
	Op  Op
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("xlsx %s failed: %v", e.Op, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match the sentinel for the failing operation.
func (e *FormatError) Is(target error) bool {
	switch e.Op {
	case OpDeserialize:
		return target == ErrDeserialization
	case OpSerialize:
		return target == ErrSerialization
	}
	return false
}

func newFormatError(op Op, err error) *FormatError {
	return &FormatError{Op: op, Err: err}
}

// CellError represents a failure reading or writing one cell of SheetName.
type CellError struct {
	Cell string
	Op   string // "read", "write" or "note"
	Err  error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("cell %s!%s (%s): %v", SheetName, e.Cell, e.Op, e.Err)
}

func (e *CellError) Unwrap() error {
	return e.Err
}
