package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar wraps the progressbar library with our custom styling.
// A nil *ProgressBar ignores all calls.
type ProgressBar struct {
	bar   *progressbar.ProgressBar
	phase string
	done  bool
}

// Phase represents a stage of one conversion
type Phase string

const (
	PhaseLoading   Phase = "Loading"
	PhaseRescaling Phase = "Rescaling"
	PhaseSaving    Phase = "Saving"
	PhaseReporting Phase = "Reporting"
)

// NewProgressBarWithOutput creates a new progress bar writing to output
func NewProgressBarWithOutput(phase Phase, total int, output io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(output),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", phase)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionEnableColorCodes(true),
	)

	return &ProgressBar{
		bar:   bar,
		phase: string(phase),
	}
}

// Increment increments the progress bar by 1
func (pb *ProgressBar) Increment() error {
	if pb == nil {
		return nil
	}
	return pb.bar.Add(1)
}

// Set sets the progress bar to a specific value
func (pb *ProgressBar) Set(n int) error {
	if pb == nil {
		return nil
	}
	return pb.bar.Set(n)
}

// Finish completes the progress bar. Later calls do nothing.
func (pb *ProgressBar) Finish() error {
	if pb == nil || pb.done {
		return nil
	}
	pb.done = true
	return pb.bar.Finish()
}

// Describe updates the description of the progress bar
func (pb *ProgressBar) Describe(description string) {
	if pb == nil {
		return
	}
	pb.bar.Describe(fmt.Sprintf("[%s] %s", pb.phase, description))
}

// Pipeline tracks the phases of one conversion, one bar per phase
type Pipeline struct {
	phases   []Phase
	current  int
	bars     []*ProgressBar
	disabled bool
	output   io.Writer
}

// NewPipeline creates a pipeline drawing to stdout.
// Bars are disabled when stdout is not a terminal (pipes, CI logs).
func NewPipeline(phases []Phase) *Pipeline {
	p := NewPipelineWithOutput(phases, os.Stdout)
	if !IsTerminal(os.Stdout) {
		p.Disable()
	}
	return p
}

// NewPipelineWithOutput creates a new pipeline with custom output
func NewPipelineWithOutput(phases []Phase, output io.Writer) *Pipeline {
	return &Pipeline{
		phases:  phases,
		current: -1,
		bars:    make([]*ProgressBar, 0, len(phases)),
		output:  output,
	}
}

// IsTerminal reports whether f is an interactive terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Disable disables the progress bar output
func (p *Pipeline) Disable() {
	p.disabled = true
}

// NextPhase finishes the running phase and starts the next one.
// It returns nil once every phase has been started.
func (p *Pipeline) NextPhase(total int) *ProgressBar {
	if p.current >= 0 && p.current < len(p.bars) {
		p.bars[p.current].Finish()
	}

	p.current++
	if p.current >= len(p.phases) {
		return nil
	}

	output := p.output
	if p.disabled {
		output = io.Discard
	}

	bar := NewProgressBarWithOutput(p.phases[p.current], total, output)
	p.bars = append(p.bars, bar)
	return bar
}

// Finish completes all phases
func (p *Pipeline) Finish() {
	if p.current >= 0 && p.current < len(p.bars) {
		p.bars[p.current].Finish()
	}
}

// PrintSummary prints a line after the bars when output is enabled
func (p *Pipeline) PrintSummary(message string) {
	if !p.disabled {
		fmt.Fprintln(p.output, message)
	}
}
