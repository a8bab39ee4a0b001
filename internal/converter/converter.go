// Package converter turns one uploaded .xlsx file into its converted copy.
//
// It is the file-system side of the rescaler: it reads the input, runs the
// transform, writes "(変換済み)<name>" and describes the result in a Report.
package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/logger"
	"xlsx-rescaler/internal/model"
	"xlsx-rescaler/internal/rescaler"
	"xlsx-rescaler/internal/ui"

	"golang.org/x/text/unicode/norm"
)

// ErrUnsupportedFile indicates the input is not an .xlsx file.
var ErrUnsupportedFile = errors.New("only .xlsx files are supported")

// Phases are the progress phases of one conversion
var Phases = []ui.Phase{ui.PhaseLoading, ui.PhaseRescaling, ui.PhaseSaving}

// Converter converts single files according to cfg
type Converter struct {
	cfg      *config.Config
	pipeline *ui.Pipeline
	now      func() time.Time
}

// New creates a Converter.
// pipeline may be nil, in which case no progress is drawn.
func New(cfg *config.Config, pipeline *ui.Pipeline) *Converter {
	if pipeline == nil {
		pipeline = ui.NewPipelineWithOutput(Phases, io.Discard)
		pipeline.Disable()
	}
	return &Converter{cfg: cfg, pipeline: pipeline, now: time.Now}
}

// Convert reads inputPath, rescales it and writes the converted copy.
// Nothing is written when any step fails.
func (c *Converter) Convert(ctx context.Context, inputPath string) (*model.Report, error) {
	if !strings.EqualFold(filepath.Ext(inputPath), ".xlsx") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, filepath.Base(inputPath))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- Loading ---
	loadBar := c.pipeline.NextPhase(1)
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	loadBar.Increment()
	logger.Debug("Loaded %s (%d bytes)", inputPath, len(data))

	// --- Rescaling ---
	scanBar := c.pipeline.NextPhase(-1)
	rounding := c.cfg.Rounding()
	r := rescaler.New(rescaler.Options{
		Rounding: rounding,
		Progress: func(row, processed int) {
			scanBar.Set(processed)
		},
	})

	result, err := r.Transform(data)
	if err != nil {
		var cellErr *rescaler.CellError
		if errors.As(err, &cellErr) {
			logger.LogCellError(cellErr)
		}
		return nil, fmt.Errorf("failed to convert %s: %w", filepath.Base(inputPath), err)
	}
	for _, c := range result.Changes {
		logger.LogChange(c)
	}
	logger.LogScanStop(result.StoppedAt, result.StopValue)
	logger.Debug("Rescaled %d cells in %s!%s", result.ProcessedCount, rescaler.SheetName, rescaler.ScanColumn)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// --- Saving ---
	saveBar := c.pipeline.NextPhase(1)
	outputName := OutputName(c.cfg.Output.Prefix, inputPath)
	outputDir := c.cfg.OutputDirFor(inputPath)
	if err := c.cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}
	outputPath := filepath.Join(outputDir, outputName)
	if err := writeFileAtomic(outputPath, result.Bytes); err != nil {
		return nil, err
	}
	saveBar.Increment()
	c.pipeline.Finish()
	c.pipeline.PrintSummary(fmt.Sprintf("%s -> %s (%d cells)", filepath.Base(inputPath), outputName, result.ProcessedCount))

	return &model.Report{
		SourceName:     filepath.Base(inputPath),
		OutputName:     outputName,
		OutputPath:     outputPath,
		ConvertedAt:    c.now(),
		Rounding:       string(rounding),
		ProcessedCount: result.ProcessedCount,
		Changes:        result.Changes,
		Notes:          rescaler.NoteEntries(),
	}, nil
}

// OutputName returns the converted file name for inputPath.
// The base name is NFC-normalized so names dropped from macOS (NFD) match what users type.
func OutputName(prefix, inputPath string) string {
	return prefix + norm.NFC.String(filepath.Base(inputPath))
}

// writeFileAtomic writes data to a temp file next to path and renames it into place
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".xlsx-rescaler-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}
