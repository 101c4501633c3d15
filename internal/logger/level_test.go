package logger

import (
	"bytes"
	"strings"
	"testing"
)

// TestLogLevelFiltering verifies that messages are filtered based on log level
func TestLogLevelFiltering(t *testing.T) {
	tests := []struct {
		name         string
		logLevel     string
		messageLevel string
		shouldAppear bool
	}{
		{name: "trace sees trace", logLevel: "trace", messageLevel: "trace", shouldAppear: true},
		{name: "trace sees error", logLevel: "trace", messageLevel: "error", shouldAppear: true},
		{name: "debug blocks trace", logLevel: "debug", messageLevel: "trace", shouldAppear: false},
		{name: "debug sees debug", logLevel: "debug", messageLevel: "debug", shouldAppear: true},
		{name: "info blocks debug", logLevel: "info", messageLevel: "debug", shouldAppear: false},
		{name: "info sees info", logLevel: "info", messageLevel: "info", shouldAppear: true},
		{name: "info sees warn", logLevel: "info", messageLevel: "warn", shouldAppear: true},
		{name: "warn blocks info", logLevel: "warn", messageLevel: "info", shouldAppear: false},
		{name: "warn sees error", logLevel: "warn", messageLevel: "error", shouldAppear: true},
		{name: "error blocks warn", logLevel: "error", messageLevel: "warn", shouldAppear: false},
		{name: "error sees error", logLevel: "error", messageLevel: "error", shouldAppear: true},
		{name: "invalid defaults to info", logLevel: "loud", messageLevel: "debug", shouldAppear: false},
		{name: "uppercase level accepted", logLevel: "DEBUG", messageLevel: "debug", shouldAppear: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := NewConsoleLogger(buf, tt.logLevel)
			message := tt.messageLevel + " message"

			switch tt.messageLevel {
			case "trace":
				logger.LogTrace(message)
			case "debug":
				logger.LogDebug(message)
			case "info":
				logger.LogInfo(message)
			case "warn":
				logger.LogWarn(message)
			case "error":
				logger.LogError(message)
			}

			contains := strings.Contains(buf.String(), message)
			if contains != tt.shouldAppear {
				t.Errorf("level %q message %q: appeared=%v, want %v (output %q)",
					tt.logLevel, tt.messageLevel, contains, tt.shouldAppear, buf.String())
			}
		})
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error", " Info "} {
		if !IsValidLevel(level) {
			t.Errorf("IsValidLevel(%q) = false, want true", level)
		}
	}
	for _, level := range []string{"", "verbose", "warning"} {
		if IsValidLevel(level) {
			t.Errorf("IsValidLevel(%q) = true, want false", level)
		}
	}
}
