package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/sassglob/internal/models"
)

// colorScheme defines consistent colors for file metrics.
// Green: imports emitted
// Yellow: directives that expanded to nothing
// Cyan: labels
type colorScheme struct {
	success *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// levelColor returns the color used for a level tag.
func levelColor(level string) *color.Color {
	switch strings.ToUpper(level) {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "INFO":
		return color.New(color.FgBlue)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.Reset)
	}
}

// formatColorizedMetric formats "label: value" with a cyan label.
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatColorizedFileMetrics formats "directives: N, imports: N, empty: N".
// The empty count is only shown when non-zero.
func formatColorizedFileMetrics(result models.FileResult) string {
	scheme := newColorScheme()
	parts := []string{
		formatColorizedMetric("directives", result.Directives, scheme),
		fmt.Sprintf("%s: %s", scheme.success.Sprint("imports"), scheme.value.Sprintf("%d", result.Targets)),
	}
	if len(result.Empty) > 0 {
		parts = append(parts, scheme.warn.Sprintf("empty: %d", len(result.Empty)))
	}
	return strings.Join(parts, ", ")
}
