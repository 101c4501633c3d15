// Package logger provides logging implementations for sassglob runs.
//
// The logger package offers leveled logging plus per-file and per-run reporting
// of wildcard expansion. Implementations are thread-safe so the pipeline can
// log from concurrent workers.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/harrison/sassglob/internal/models"
)

// ConsoleLogger logs run progress to a writer with timestamps and thread safety.
// All output is prefixed with [HH:MM:SS] timestamps.
// Color output is automatically enabled for terminal output (os.Stdout/os.Stderr).
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// If logLevel is empty or invalid, defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		// fatih/color honours NO_COLOR and TTY detection
		return !color.NoColor
	}
	return false
}

// Level returns the normalized log level.
func (cl *ConsoleLogger) Level() string {
	return cl.logLevel
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return enabled(cl.logLevel, messageLevel)
}

// LogTrace logs a trace-level message (most verbose).
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

// logWithLevel formats "[HH:MM:SS] [LEVEL] message" if filtering allows it.
func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	ts := timestamp()
	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, levelColor(level).Sprint(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", ts, level, message)
	}
	cl.write(formatted)
}

func (cl *ConsoleLogger) write(s string) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.writer.Write([]byte(s))
}

// LogFileResult logs the outcome of one file.
// Failures are logged at ERROR, changed files at INFO, untouched files at DEBUG.
// Format: "[HH:MM:SS] <path>: <n> directive(s) -> <m> import(s) (<duration>)"
func (cl *ConsoleLogger) LogFileResult(result models.FileResult) {
	if cl.writer == nil {
		return
	}

	level := "debug"
	switch {
	case result.Failed():
		level = "error"
	case result.Changed:
		level = "info"
	}
	if !cl.shouldLog(level) {
		return
	}

	ts := timestamp()
	var message string
	if result.Failed() {
		status := "FAILED"
		if cl.colorOutput {
			status = color.New(color.FgRed).Sprint(status)
		}
		message = fmt.Sprintf("[%s] %s: %s: %v\n", ts, result.Path, status, result.Error)
	} else if cl.colorOutput {
		message = fmt.Sprintf("[%s] %s: %s (%s)\n", ts, color.New(color.Bold).Sprint(result.Path),
			formatColorizedFileMetrics(result), formatDuration(result.Duration))
	} else {
		message = fmt.Sprintf("[%s] %s: %d directive(s) -> %d import(s) (%s)\n", ts, result.Path,
			result.Directives, result.Targets, formatDuration(result.Duration))
	}
	cl.write(message)
}

// LogProgress logs "[HH:MM:SS] Progress: [=====     ] 5/10 (50%)" at INFO level.
func (cl *ConsoleLogger) LogProgress(done, total int) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}
	pb := NewProgressBar(total, 10, cl.colorOutput)
	pb.Update(done)
	cl.write(fmt.Sprintf("[%s] Progress: %s\n", timestamp(), pb.Render()))
}

// LogSummary logs the run summary with totals at INFO level.
func (cl *ConsoleLogger) LogSummary(summary models.RunSummary) {
	if cl.writer == nil || !cl.shouldLog("info") {
		return
	}

	ts := timestamp()
	var b strings.Builder

	header := "=== Expansion Summary ==="
	failed := fmt.Sprintf("Failed: %d", summary.Failed)
	if cl.colorOutput {
		header = color.New(color.Bold).Sprint(header)
		if summary.Failed > 0 {
			failed = color.New(color.FgRed).Sprint(failed)
		}
	}

	fmt.Fprintf(&b, "[%s] %s\n", ts, header)
	fmt.Fprintf(&b, "[%s] Files: %d (%d changed)\n", ts, summary.TotalFiles, summary.Changed)
	fmt.Fprintf(&b, "[%s] Directives: %d -> %d imports\n", ts, summary.Directives, summary.Targets)
	fmt.Fprintf(&b, "[%s] Size: %s -> %s\n", ts, humanize.Bytes(uint64(summary.BytesIn)), humanize.Bytes(uint64(summary.BytesOut)))
	fmt.Fprintf(&b, "[%s] %s\n", ts, failed)
	fmt.Fprintf(&b, "[%s] Duration: %s\n", ts, formatDuration(summary.Duration))

	if len(summary.FailedFiles) > 0 {
		fmt.Fprintf(&b, "[%s] Failed files:\n", ts)
		for _, f := range summary.FailedFiles {
			fmt.Fprintf(&b, "[%s]   - %s: %v\n", ts, f.Path, f.Error)
		}
	}

	cl.write(b.String())
}

// timestamp returns the current time formatted as "15:04:05" (HH:MM:SS).
func timestamp() string {
	return time.Now().Format("15:04:05")
}

// formatDuration converts a time.Duration to a short human-readable string.
// Examples: "850µs", "12ms", "1.2s", "1m30s"
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		minutes := d / time.Minute
		seconds := (d % time.Minute) / time.Second
		if seconds == 0 {
			return fmt.Sprintf("%dm", minutes)
		}
		return fmt.Sprintf("%dm%ds", minutes, seconds)
	case d >= time.Second:
		return fmt.Sprintf("%.1fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
}

// NoOpLogger discards all log messages.
// Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// NewNoOpLogger creates a NoOpLogger instance.
func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (n *NoOpLogger) LogTrace(string)                 {}
func (n *NoOpLogger) LogDebug(string)                 {}
func (n *NoOpLogger) LogInfo(string)                  {}
func (n *NoOpLogger) LogWarn(string)                  {}
func (n *NoOpLogger) LogError(string)                 {}
func (n *NoOpLogger) LogFileResult(models.FileResult) {}
func (n *NoOpLogger) LogProgress(int, int)            {}
func (n *NoOpLogger) LogSummary(models.RunSummary)    {}
