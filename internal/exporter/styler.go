package exporter

import (
	"github.com/xuri/excelize/v2"
)

// Styler handles Excel styling of the audit workbook
type Styler struct {
	File *excelize.File

	// Pre-defined styles
	HeaderStyle  int
	LabelStyle   int
	NumberStyle  int
	ChangedStyle int
	NoteStyle    int
	DefaultStyle int
}

// NewStyler creates a new Styler and explicitly registers styles
func NewStyler(f *excelize.File) (*Styler, error) {
	s := &Styler{File: f}
	var err error

	// Header Style: Bold, Gray Background, Center Aligned
	s.HeaderStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#000000"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Label Style: Bold key column of the summary sheet
	s.LabelStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Number Style: thousands separator, values before rescaling may carry decimals
	numFmt := "#,##0.##"
	s.NumberStyle, err = f.NewStyle(&excelize.Style{
		CustomNumFmt: &numFmt,
		Alignment:    &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:       createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Changed Style: Blue bold integer (the value written back)
	s.ChangedStyle, err = f.NewStyle(&excelize.Style{
		NumFmt:    3, // #,##0
		Font:      &excelize.Font{Bold: true, Color: "#0000FF"},
		Alignment: &excelize.Alignment{Horizontal: "right", Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Note Style: Red wrapped text, like the stamped notes
	s.NoteStyle, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Color: "#D32F2F"},
		Alignment: &excelize.Alignment{Vertical: "center", WrapText: true},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	// Default Style
	s.DefaultStyle, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    createBorder(),
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

func createBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "D4D4D4", Style: 1},
		{Type: "top", Color: "D4D4D4", Style: 1},
		{Type: "bottom", Color: "D4D4D4", Style: 1},
		{Type: "right", Color: "D4D4D4", Style: 1},
	}
}
