package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/harrison/sassglob/internal/models"
)

// FileLogger writes a per-run log to a log directory.
// Each run gets a timestamped run-YYYYMMDD-HHMMSS.log file tagged with a run id,
// and latest.log is a symlink to the most recent run.
// It is thread-safe and supports log level filtering.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger in logDir with the given level.
// The directory is created if missing.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		if err := os.Remove(symlinkPath); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), symlinkPath); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		runID:    uuid.New().String(),
		logLevel: normalizeLogLevel(logLevel),
	}

	fl.writeRunLog("=== sassglob run log ===\n")
	fl.writeRunLog(fmt.Sprintf("Run ID: %s\n", fl.runID))
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunID returns the identifier written in the log header.
func (fl *FileLogger) RunID() string {
	return fl.runID
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

// LogTrace logs a trace-level message (most verbose).
func (fl *FileLogger) LogTrace(message string) {
	fl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (fl *FileLogger) LogDebug(message string) {
	fl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
func (fl *FileLogger) LogInfo(message string) {
	fl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (fl *FileLogger) LogWarn(message string) {
	fl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (fl *FileLogger) LogError(message string) {
	fl.logWithLevel("ERROR", message)
}

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !enabled(fl.logLevel, strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogFileResult records one processed file. Every file is recorded at INFO,
// including untouched ones, so the run log doubles as an audit trail.
func (fl *FileLogger) LogFileResult(result models.FileResult) {
	level := "info"
	if result.Failed() {
		level = "error"
	}
	if !enabled(fl.logLevel, level) {
		return
	}

	ts := timestamp()
	var b strings.Builder
	if result.Failed() {
		fmt.Fprintf(&b, "[%s] FAILED %s: %v\n", ts, result.Path, result.Error)
	} else {
		fmt.Fprintf(&b, "[%s] %s: changed=%t directives=%d imports=%d size=%d->%d duration=%s\n",
			ts, result.Path, result.Changed, result.Directives, result.Targets,
			result.BytesIn, result.BytesOut, formatDuration(result.Duration))
		if result.Output != "" {
			fmt.Fprintf(&b, "[%s]   written to %s\n", ts, result.Output)
		}
		for _, pattern := range result.Empty {
			fmt.Fprintf(&b, "[%s]   empty expansion: %q\n", ts, pattern)
		}
	}
	fl.writeRunLog(b.String())
}

// LogProgress is a no-op; progress bars are console-only.
func (fl *FileLogger) LogProgress(done, total int) {}

// LogSummary logs the final statistics and overall status at INFO level.
func (fl *FileLogger) LogSummary(summary models.RunSummary) {
	if !enabled(fl.logLevel, "info") {
		return
	}

	status := "SUCCESS"
	if summary.Failed > 0 {
		if summary.Processed == 0 {
			status = "FAILED"
		} else {
			status = "PARTIAL"
		}
	}

	ts := timestamp()
	message := fmt.Sprintf(
		"\n[%s] === RUN SUMMARY ===\n"+
			"[%s] Files:        %d\n"+
			"[%s] Changed:      %d\n"+
			"[%s] Failed:       %d\n"+
			"[%s] Directives:   %d -> %d imports\n"+
			"[%s] Size:         %s -> %s\n"+
			"[%s] Total time:   %s\n"+
			"[%s] Status:       %s (%d/%d files)\n"+
			"[%s] Completed at: %s\n",
		ts,
		ts, summary.TotalFiles,
		ts, summary.Changed,
		ts, summary.Failed,
		ts, summary.Directives, summary.Targets,
		ts, humanize.Bytes(uint64(summary.BytesIn)), humanize.Bytes(uint64(summary.BytesOut)),
		ts, formatDuration(summary.Duration),
		ts, status, summary.Processed, summary.TotalFiles,
		ts, time.Now().Format(time.RFC3339),
	)
	fl.writeRunLog(message)
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		if err := fl.runLog.Sync(); err != nil {
			return fmt.Errorf("failed to sync run log: %w", err)
		}
		if err := fl.runLog.Close(); err != nil {
			return fmt.Errorf("failed to close run log: %w", err)
		}
		fl.runLog = nil
	}
	return nil
}

// writeRunLog is a thread-safe helper to write to the run log file.
func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
