package logger

import "github.com/harrison/sassglob/internal/models"

// Logger is implemented by every sassglob logger.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
	LogFileResult(result models.FileResult)
	LogProgress(done, total int)
	LogSummary(summary models.RunSummary)
}

var (
	_ Logger = (*ConsoleLogger)(nil)
	_ Logger = (*FileLogger)(nil)
	_ Logger = (*NoOpLogger)(nil)
	_ Logger = (*MultiLogger)(nil)
)

// MultiLogger forwards every call to each of its loggers in order.
type MultiLogger struct {
	loggers []Logger
}

// NewMultiLogger creates a MultiLogger; nil loggers are skipped.
func NewMultiLogger(loggers ...Logger) *MultiLogger {
	ml := &MultiLogger{}
	for _, l := range loggers {
		if l != nil {
			ml.loggers = append(ml.loggers, l)
		}
	}
	return ml
}

// LogTrace forwards to all loggers
func (ml *MultiLogger) LogTrace(message string) {
	for _, l := range ml.loggers {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (ml *MultiLogger) LogDebug(message string) {
	for _, l := range ml.loggers {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (ml *MultiLogger) LogInfo(message string) {
	for _, l := range ml.loggers {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (ml *MultiLogger) LogWarn(message string) {
	for _, l := range ml.loggers {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (ml *MultiLogger) LogError(message string) {
	for _, l := range ml.loggers {
		l.LogError(message)
	}
}

// LogFileResult forwards to all loggers
func (ml *MultiLogger) LogFileResult(result models.FileResult) {
	for _, l := range ml.loggers {
		l.LogFileResult(result)
	}
}

// LogProgress forwards to all loggers
func (ml *MultiLogger) LogProgress(done, total int) {
	for _, l := range ml.loggers {
		l.LogProgress(done, total)
	}
}

// LogSummary forwards to all loggers
func (ml *MultiLogger) LogSummary(summary models.RunSummary) {
	for _, l := range ml.loggers {
		l.LogSummary(summary)
	}
}
