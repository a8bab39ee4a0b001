package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"xlsx-rescaler/internal/rescaler"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Output  OutputConfig  `mapstructure:"output"`
	Report  ReportConfig  `mapstructure:"report"`
	Rescale RescaleConfig `mapstructure:"rescale"`
	UI      UIConfig      `mapstructure:"ui"`
}

// OutputConfig holds settings for the converted workbook
type OutputConfig struct {
	Dir    string `mapstructure:"dir"`    // Output directory; empty writes next to the input file
	Prefix string `mapstructure:"prefix"` // Prepended to the input file name
}

// ReportConfig holds settings for the optional conversion reports
type ReportConfig struct {
	Formats  []string `mapstructure:"formats"`   // excel, html, word, json
	Dir      string   `mapstructure:"dir"`       // Report directory
	FileName string   `mapstructure:"file_name"` // Report file name (without extension)
}

// RescaleConfig holds transform behavior settings
type RescaleConfig struct {
	Rounding string `mapstructure:"rounding"` // half-away-from-zero or half-up
}

// UIConfig holds console settings
type UIConfig struct {
	Progress bool `mapstructure:"progress"` // Draw progress bars when attached to a terminal
}

// Load reads the configuration from a file or uses defaults
// If configPath is empty, it looks for "config.yaml" in the current directory
// A missing file is not an error
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath == "" {
		configPath = "config.yaml"
	}
	v.SetConfigFile(configPath)

	v.SetEnvPrefix("XLSX_RESCALER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) || strings.Contains(err.Error(), "no such file") ||
			strings.Contains(err.Error(), "cannot find") {
			fmt.Println("Config file not found. Using defaults.")
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		fmt.Printf("Loaded config from: %s\n", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.normalizePaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults configures sensible default values
func setDefaults(v *viper.Viper) {
	v.SetDefault("output.dir", "")
	v.SetDefault("output.prefix", "(変換済み)")

	v.SetDefault("report.formats", []string{})
	v.SetDefault("report.dir", "./reports")
	v.SetDefault("report.file_name", "rescale-report")

	v.SetDefault("rescale.rounding", string(rescaler.RoundHalfAwayFromZero))

	v.SetDefault("ui.progress", true)
}

// normalizePaths converts relative directories to absolute paths
func (c *Config) normalizePaths() error {
	if c.Output.Dir != "" {
		absOutput, err := filepath.Abs(c.Output.Dir)
		if err != nil {
			return fmt.Errorf("failed to resolve output.dir: %w", err)
		}
		c.Output.Dir = absOutput
	}

	absReport, err := filepath.Abs(c.Report.Dir)
	if err != nil {
		return fmt.Errorf("failed to resolve report.dir: %w", err)
	}
	c.Report.Dir = absReport

	return nil
}

// EnsureOutputDir creates the output directory if one is configured
func (c *Config) EnsureOutputDir() error {
	if c.Output.Dir == "" {
		return nil
	}
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// EnsureReportDir creates the report directory if it doesn't exist
func (c *Config) EnsureReportDir() error {
	if err := os.MkdirAll(c.Report.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	return nil
}

// OutputDirFor returns where the converted copy of inputPath is written
func (c *Config) OutputDirFor(inputPath string) string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return filepath.Dir(inputPath)
}

// GetReportPath returns the report path for the given extension (e.g. ".html")
func (c *Config) GetReportPath(ext string) string {
	return filepath.Join(c.Report.Dir, c.Report.FileName+ext)
}

// Rounding returns the configured rounding mode
func (c *Config) Rounding() rescaler.Rounding {
	r, err := rescaler.ParseRounding(c.Rescale.Rounding)
	if err != nil {
		return rescaler.RoundHalfAwayFromZero
	}
	return r
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Prefix) == "" {
		return fmt.Errorf("output.prefix cannot be empty")
	}

	if strings.ContainsAny(c.Output.Prefix, `/\`) {
		return fmt.Errorf("output.prefix must not contain path separators: %q", c.Output.Prefix)
	}

	if _, err := rescaler.ParseRounding(c.Rescale.Rounding); err != nil {
		return fmt.Errorf("rescale.rounding: %w", err)
	}

	if len(c.Report.Formats) > 0 && c.Report.FileName == "" {
		return fmt.Errorf("report.file_name cannot be empty when reports are enabled")
	}

	return nil
}

// Print displays the current configuration
func (c *Config) Print() {
	outputDir := c.Output.Dir
	if outputDir == "" {
		outputDir = "(next to input file)"
	}

	fmt.Println("=== xlsx-rescaler Configuration ===")
	fmt.Printf("Output Directory: %s\n", outputDir)
	fmt.Printf("Output Prefix:    %s\n", c.Output.Prefix)
	fmt.Printf("Rounding:         %s\n", c.Rounding())
	fmt.Printf("Report Formats:   %v\n", c.Report.Formats)
	fmt.Printf("Report Directory: %s\n", c.Report.Dir)
	fmt.Printf("Progress Bars:    %v\n", c.UI.Progress)
	fmt.Println("===================================")
}
