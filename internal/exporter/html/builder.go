package html

import (
	"fmt"
	"html/template"
	"os"

	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/model"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Japanese)

type HTMLExporter struct{}

func NewHTMLExporter() *HTMLExporter {
	return &HTMLExporter{}
}

func (e *HTMLExporter) Export(report *model.Report, cfg *config.Config) error {
	if err := cfg.EnsureReportDir(); err != nil {
		return err
	}

	tmpl, err := template.New("rescale-report").Funcs(template.FuncMap{
		"number": formatNumber,
		"diff": func(c model.CellChange) string {
			return formatNumber(c.After - c.Before)
		},
		"inc": func(i int) int {
			return i + 1
		},
	}).Parse(ReportTemplate)
	if err != nil {
		return err
	}

	f, err := os.Create(cfg.GetReportPath(".html"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := tmpl.Execute(f, report); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return f.Close()
}

// formatNumber groups thousands the way the source sheets display prices
func formatNumber(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}
