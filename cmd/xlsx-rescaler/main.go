package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"xlsx-rescaler/internal/config"
	"xlsx-rescaler/internal/converter"
	"xlsx-rescaler/internal/exporter"
	"xlsx-rescaler/internal/logger"
	"xlsx-rescaler/internal/model"
	"xlsx-rescaler/internal/rescaler"
	"xlsx-rescaler/internal/ui"
)

const (
	appName    = "xlsx-rescaler"
	appVersion = "1.0.0"
	appDesc    = "Rescales the purchase price column of an Excel sheet and stamps the standard notes"

	// Rows listed in the console change table
	tableLimit = 20
)

var (
	configPath  string
	verbose     bool
	showVersion bool
	outputDir   string
	formats     string
	rounding    string
	noWait      bool
)

func init() {
	flag.StringVar(&configPath, "config", "config.yaml", "Path to configuration file")
	flag.StringVar(&configPath, "c", "config.yaml", "Path to configuration file (shorthand)")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose logging (DEBUG level)")
	flag.BoolVar(&verbose, "v", false, "Enable verbose logging (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.StringVar(&outputDir, "output", "", "Override output directory from config")
	flag.StringVar(&formats, "format", "", "Comma-separated report formats (excel,html,word,json)")
	flag.StringVar(&rounding, "rounding", "", "Override rounding mode (half-away-from-zero, half-up)")
	flag.BoolVar(&noWait, "no-wait", false, "Exit without waiting for Enter")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <input.xlsx>\n\n%s\n\n", appName, appDesc)
		flag.PrintDefaults()
	}
}

func main() {
	// Keep the console window open when started by drag-and-drop onto the exe
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("\n❌ PANIC: %v\n", r)
			if !noWait {
				waitForEnter()
			}
			os.Exit(1)
		}
	}()

	exitCode := run()
	if !noWait {
		waitForEnter()
	}
	os.Exit(exitCode)
}

func run() int {
	flag.Parse()

	if showVersion {
		fmt.Printf("%s v%s\n%s\n", appName, appVersion, appDesc)
		return 0
	}

	if flag.NArg() != 1 {
		flag.Usage()
		return 2
	}
	inputPath := flag.Arg(0)

	printBanner()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("❌ Failed to load configuration: %v\n", err)
		return 1
	}
	if err := applyOverrides(cfg); err != nil {
		fmt.Printf("❌ %v\n", err)
		return 2
	}

	logPath := filepath.Join(cfg.OutputDirFor(inputPath), appName+".log")
	if err := logger.Init(os.Stdout, logPath, verbose); err != nil {
		fmt.Printf("❌ Failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	if logger.IsVerbose() {
		cfg.Print()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report, err := convert(ctx, cfg, inputPath)
	fmt.Println(converter.Message(report, err))
	if err != nil {
		logger.Error("Conversion failed: %v", err)
		return 1
	}

	logger.Info("✅ Saved [%s]", report.OutputPath)
	return 0
}

// applyOverrides copies command-line overrides into cfg
func applyOverrides(cfg *config.Config) error {
	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return fmt.Errorf("invalid -output: %w", err)
		}
		cfg.Output.Dir = abs
	}
	if formats != "" {
		cfg.Report.Formats = strings.Split(formats, ",")
	}
	if rounding != "" {
		if _, err := rescaler.ParseRounding(rounding); err != nil {
			return err
		}
		cfg.Rescale.Rounding = rounding
	}
	return nil
}

func convert(ctx context.Context, cfg *config.Config, inputPath string) (*model.Report, error) {
	phases := append([]ui.Phase{}, converter.Phases...)
	pipeline := ui.NewPipeline(append(phases, ui.PhaseReporting))
	if !cfg.UI.Progress {
		pipeline.Disable()
	}

	logger.Info("Converting %s ...", filepath.Base(inputPath))
	report, err := converter.New(cfg, pipeline).Convert(ctx, inputPath)
	if err != nil {
		var cellErr *rescaler.CellError
		if errors.As(err, &cellErr) {
			logger.Warn("Stopped at cell %s, see %s", cellErr.Cell, logger.GetLogFilePath())
		}
		return nil, err
	}

	if report.ProcessedCount > 0 {
		logger.Console("%s", ui.RenderChanges(report.Changes, tableLimit))
	} else {
		logger.Warn("No numeric values found from %s%d", rescaler.ScanColumn, rescaler.StartRow)
	}

	exportReports(cfg, report, pipeline)
	return report, nil
}

// exportReports writes the configured reports; failures do not affect the converted file
func exportReports(cfg *config.Config, report *model.Report, pipeline *ui.Pipeline) {
	exporters := exporter.GetExporters(cfg.Report.Formats)
	if len(exporters) == 0 {
		return
	}

	bar := pipeline.NextPhase(len(exporters))
	failed := 0
	for i, exp := range exporters {
		bar.Describe(fmt.Sprintf("%d/%d", i+1, len(exporters)))
		if err := exp.Export(report, cfg); err != nil {
			logger.Error("Report export failed: %v", err)
			failed++
		}
		bar.Increment()
	}
	pipeline.Finish()

	if failed > 0 {
		logger.Warn("%d of %d reports failed", failed, len(exporters))
		return
	}
	logger.Info("Reports written to [%s]", cfg.Report.Dir)
}

// waitForEnter pauses execution and waits for user to press Enter
func waitForEnter() {
	fmt.Println("\n==========================================")
	fmt.Println("Execution Finished. Press 'Enter' to exit.")
	fmt.Println("==========================================")
	bufio.NewReader(os.Stdin).ReadBytes('\n')
}

func printBanner() {
	banner := `
╔═══════════════════════════════════════════════════════════╗
║                    XLSX RESCALER v1.0.0                   ║
║        仕入れ単価 0.9倍変換 + 注意事項の書き込み          ║
╚═══════════════════════════════════════════════════════════╝
`
	fmt.Println(banner)
}
