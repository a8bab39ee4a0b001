package exporter

import (
	"strings"

	"xlsx-rescaler/internal/exporter/html"
	"xlsx-rescaler/internal/exporter/jsonreport"
	"xlsx-rescaler/internal/exporter/word"
)

// GetExporters returns a list of Exporters based on requested formats
// Unknown formats are ignored; duplicates and aliases are collapsed
func GetExporters(formats []string) []Exporter {
	exporters := []Exporter{}
	seen := make(map[string]bool)

	for _, fmtStr := range formats {
		name := canonicalFormat(fmtStr)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case "excel":
			exporters = append(exporters, NewExcelExporter())
		case "html":
			exporters = append(exporters, html.NewHTMLExporter())
		case "word":
			exporters = append(exporters, word.NewWordExporter())
		case "json":
			exporters = append(exporters, jsonreport.NewJSONExporter())
		}
	}

	return exporters
}

func canonicalFormat(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "excel", "xlsx":
		return "excel"
	case "html":
		return "html"
	case "word", "docx":
		return "word"
	case "json":
		return "json"
	}
	return ""
}
