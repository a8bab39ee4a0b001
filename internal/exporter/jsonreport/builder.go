package jsonreport

import (
	"encoding/json"
	"fmt"
	"os"

	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/model"
)

// Document is the JSON shape of a conversion report
type Document struct {
	Source         string   `json:"source"`
	Output         string   `json:"output"`
	OutputPath     string   `json:"outputPath"`
	ConvertedAt    string   `json:"convertedAt"`
	Rounding       string   `json:"rounding"`
	ProcessedCount int      `json:"processedCount"`
	Changes        []Change `json:"changes"`
	Notes          []Note   `json:"notes"`
}

type Change struct {
	Cell   string  `json:"cell"`
	Row    int     `json:"row"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

type Note struct {
	Cell string `json:"cell"`
	Text string `json:"text"`
}

// JSONExporter writes the machine-readable report
type JSONExporter struct {
	// Stateless
}

func NewJSONExporter() *JSONExporter {
	return &JSONExporter{}
}

func (e *JSONExporter) Export(report *model.Report, cfg *config.Config) error {
	if err := cfg.EnsureReportDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(NewDocument(report), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON report: %w", err)
	}

	return os.WriteFile(cfg.GetReportPath(".json"), data, 0644)
}

// NewDocument converts a report into its JSON form.
// Changes and Notes are never null so consumers can iterate without checks.
func NewDocument(report *model.Report) Document {
	doc := Document{
		Source:         report.SourceName,
		Output:         report.OutputName,
		OutputPath:     report.OutputPath,
		ConvertedAt:    report.ConvertedAt.Format("2006-01-02T15:04:05Z07:00"),
		Rounding:       report.Rounding,
		ProcessedCount: report.ProcessedCount,
		Changes:        make([]Change, 0, len(report.Changes)),
		Notes:          make([]Note, 0, len(report.Notes)),
	}

	for _, c := range report.Changes {
		doc.Changes = append(doc.Changes, Change{Cell: c.Cell, Row: c.Row, Before: c.Before, After: c.After})
	}
	for _, n := range report.Notes {
		doc.Notes = append(doc.Notes, Note{Cell: n.Cell(), Text: n.Text})
	}

	return doc
}
