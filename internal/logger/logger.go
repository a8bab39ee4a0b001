// Package logger writes conversion progress to the console and to a log file
// kept next to the converted workbook.
//
// Every message reaches the file. The console only shows INFO and above, or
// everything when verbose. Cell-level detail (each rescaled value, the cell that
// ended the scan, unreadable cells) is written through the helpers at the bottom
// of this file so the log reads as a record of what happened to the sheet.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"xlsx-rescaler/internal/model"
	"xlsx-rescaler/internal/rescaler"
)

// Level represents the logging level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// consolePrefix decorates console lines; INFO stays bare
var consolePrefix = map[Level]string{
	LevelDebug: "[DEBUG] ",
	LevelWarn:  "⚠️  ",
	LevelError: "❌ ",
}

// Logger is the dual-sink logger behind the package functions
type Logger struct {
	console  *log.Logger
	file     *log.Logger
	logFile  *os.File
	minLevel Level
}

var std *Logger

// Init opens (or appends to) logFilePath and routes console output to w.
func Init(w io.Writer, logFilePath string, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	minLevel := LevelInfo
	if verbose {
		minLevel = LevelDebug
	}

	std = &Logger{
		console:  log.New(w, "", 0),
		file:     log.New(logFile, "", log.LstdFlags),
		logFile:  logFile,
		minLevel: minLevel,
	}
	return nil
}

// Close closes the log file
func Close() {
	if std != nil && std.logFile != nil {
		std.logFile.Close()
	}
}

func Debug(format string, args ...interface{}) { logf(LevelDebug, format, args...) }
func Info(format string, args ...interface{}) { logf(LevelInfo, format, args...) }
func Warn(format string, args ...interface{}) { logf(LevelWarn, format, args...) }
func Error(format string, args ...interface{}) { logf(LevelError, format, args...) }

func logf(level Level, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)

	if std == nil {
		// Not initialized: only the console exists
		if level > LevelDebug {
			fmt.Println(consolePrefix[level] + msg)
		}
		return
	}

	std.file.Printf("[%s] %s", level, msg)
	if level >= std.minLevel {
		std.console.Print(consolePrefix[level] + msg)
	}
}

// Console prints to the console only, without prefix.
// Used for rendered tables that would clutter the log file.
func Console(format string, args ...interface{}) {
	if std == nil {
		fmt.Printf(format+"\n", args...)
		return
	}
	std.console.Printf(format, args...)
}

// fileOnly writes a tagged line that never reaches the console
func fileOnly(tag, format string, args ...interface{}) {
	if std == nil {
		return
	}
	std.file.Printf("[%s] %s", tag, fmt.Sprintf(format, args...))
}

// LogCellError records a cell the rescaler could not read or write.
// The console gets a short warning from the caller; the file keeps the cause.
func LogCellError(err *rescaler.CellError) {
	if err == nil {
		return
	}
	fileOnly("CELL_ERROR", "%s!%s op=%s: %v", rescaler.SheetName, err.Cell, err.Op, err.Err)
}

// LogChange records one rescaled cell
func LogChange(c model.CellChange) {
	fileOnly("CHANGE", "%s!%s %s -> %s",
		rescaler.SheetName, c.Cell,
		strconv.FormatFloat(c.Before, 'f', -1, 64),
		strconv.FormatFloat(c.After, 'f', -1, 64))
}

// LogScanStop records the cell that ended the numeric scan and what it held
func LogScanStop(cell string, v model.CellValue) {
	if cell == "" {
		Debug("Scan reached the last row of %s", rescaler.SheetName)
		return
	}
	Debug("Scan stopped at %s!%s (%s %q)", rescaler.SheetName, cell, v.Kind, v.String())
}

// GetLogFilePath returns the path to the current log file
func GetLogFilePath() string {
	if std != nil && std.logFile != nil {
		return std.logFile.Name()
	}
	return ""
}

// IsVerbose reports whether DEBUG lines reach the console
func IsVerbose() bool {
	return std != nil && std.minLevel == LevelDebug
}
