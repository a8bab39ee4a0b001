package rescaler

import (
	"regexp"
	"strconv"
	"strings"

	"xlsx-rescaler/internal/model"

	"github.com/xuri/excelize/v2"
)

// Built-in number formats that render a serial number as a date or time.
// 27-36 and 50-58 are the East Asian date formats.
var dateNumFmts = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// quoted literals, [color]/[$-411] sections and escaped characters carry no date tokens
var numFmtLiteral = regexp.MustCompile(`"[^"]*"|\[[^\]]*\]|\\.`)

// ReadCell classifies the cell at addr into a tagged value.
// Formula cells, booleans, errors and date or time formatted numbers are Other.
func ReadCell(f *excelize.File, sheet, addr string) (model.CellValue, error) {
	formula, err := f.GetCellFormula(sheet, addr)
	if err != nil {
		return model.Blank(), err
	}
	if formula != "" {
		return model.Other("=" + formula), nil
	}

	cellType, err := f.GetCellType(sheet, addr)
	if err != nil {
		return model.Blank(), err
	}

	raw, err := f.GetCellValue(sheet, addr, excelize.Options{RawCellValue: true})
	if err != nil {
		return model.Blank(), err
	}

	switch cellType {
	case excelize.CellTypeBool, excelize.CellTypeError, excelize.CellTypeDate:
		return model.Other(raw), nil
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return model.Text(raw), nil
	}

	// Unset or Number: numeric text in <v>, or nothing at all
	if strings.TrimSpace(raw) == "" {
		return model.Blank(), nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return model.Other(raw), nil
	}

	isDate, err := hasDateFormat(f, sheet, addr)
	if err != nil {
		return model.Blank(), err
	}
	if isDate {
		return model.Other(raw), nil
	}
	return model.Number(n), nil
}

// hasDateFormat reports whether the cell style displays its number as a date or time
func hasDateFormat(f *excelize.File, sheet, addr string) (bool, error) {
	styleID, err := f.GetCellStyle(sheet, addr)
	if err != nil {
		return false, err
	}
	if styleID == 0 {
		return false, nil
	}
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt), nil
	}
	return dateNumFmts[style.NumFmt], nil
}

// isDateFormatCode checks a custom number format code for date/time tokens:
// year, month/minute, day, hour, second and the Buddhist era year (b).
// Elapsed-time codes such as [h]:mm and mm:ss count as dates.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(numFmtLiteral.ReplaceAllString(code, ""))
	if code == "" || code == "general" {
		return false
	}
	return strings.ContainsAny(code, "ymdhsb")
}
