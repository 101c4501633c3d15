package logger

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/harrison/sassglob/internal/models"
)

func TestMultiLoggerFansOut(t *testing.T) {
	var a, b bytes.Buffer
	ml := NewMultiLogger(NewConsoleLogger(&a, "debug"), nil, NewConsoleLogger(&b, "warn"))

	ml.LogDebug("resolving")
	ml.LogWarn("nothing matched")
	ml.LogFileResult(models.FileResult{Path: "/p/main.scss", Error: errors.New("boom")})

	if !strings.Contains(a.String(), "resolving") || !strings.Contains(a.String(), "nothing matched") {
		t.Errorf("debug logger missing messages: %q", a.String())
	}
	if strings.Contains(b.String(), "resolving") {
		t.Errorf("warn logger should filter debug: %q", b.String())
	}
	if !strings.Contains(b.String(), "nothing matched") || !strings.Contains(b.String(), "boom") {
		t.Errorf("warn logger missing messages: %q", b.String())
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	ml := NewMultiLogger()
	ml.LogInfo("ignored")
	ml.LogSummary(models.RunSummary{})
	ml.LogProgress(1, 2)
}
