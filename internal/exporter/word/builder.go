package word

import (
	"embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/model"

	"github.com/nguyenthenguyen/docx"
)

//go:embed template.docx
var templateFS embed.FS

type WordExporter struct{}

func NewWordExporter() *WordExporter {
	return &WordExporter{}
}

func (e *WordExporter) Export(report *model.Report, cfg *config.Config) error {
	if err := cfg.EnsureReportDir(); err != nil {
		return err
	}

	// docx only opens from a path, so the embedded template goes through a temp file
	templateBytes, err := templateFS.ReadFile("template.docx")
	if err != nil {
		return fmt.Errorf("failed to read embedded template: %w", err)
	}

	tmpFile, err := os.CreateTemp("", "xlsx-rescaler-template-*.docx")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.Write(templateBytes); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write template to temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	r, err := docx.ReadDocxFile(tmpFile.Name())
	if err != nil {
		return fmt.Errorf("failed to read docx from temp file: %w", err)
	}
	defer r.Close()

	doc := r.Editable()

	replacements := []struct {
		placeholder string
		value       string
	}{
		{"{{Source}}", report.SourceName},
		{"{{Output}}", report.OutputName},
		{"{{Date}}", report.ConvertedDate()},
		{"{{Rounding}}", report.Rounding},
		{"{{ProcessedCount}}", strconv.Itoa(report.ProcessedCount)},
		{"{{Content}}", buildContent(report)},
	}
	for _, rep := range replacements {
		if err := doc.Replace(rep.placeholder, rep.value, -1); err != nil {
			return fmt.Errorf("failed to replace %s: %w", rep.placeholder, err)
		}
	}

	if err := doc.WriteToFile(cfg.GetReportPath(".docx")); err != nil {
		return fmt.Errorf("failed to write Word document: %w", err)
	}
	return nil
}

// buildContent renders the change list and notes as plain text
func buildContent(report *model.Report) string {
	var sb strings.Builder

	sb.WriteString("CHANGED CELLS\n")
	sb.WriteString(fmt.Sprintf("%-8s %15s %15s\n", "Cell", "Before", "After"))
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	if len(report.Changes) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, c := range report.Changes {
		sb.WriteString(fmt.Sprintf("%-8s %15s %15s\n",
			c.Cell,
			strconv.FormatFloat(c.Before, 'f', -1, 64),
			strconv.FormatFloat(c.After, 'f', -1, 64)))
	}

	sb.WriteString("\nNOTES\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	for _, n := range report.Notes {
		sb.WriteString(fmt.Sprintf("%-8s %s\n", n.Cell(), n.Text))
	}

	return sb.String()
}
