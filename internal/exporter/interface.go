package exporter

import (
	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/model"
)

// Exporter writes a conversion report in one format
type Exporter interface {
	Export(report *model.Report, cfg *config.Config) error
}
