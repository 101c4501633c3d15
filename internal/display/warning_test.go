package display

import (
	"bytes"
	"strings"
	"testing"
)

func TestDisplayWarning_TitleOnly(t *testing.T) {
	var buf bytes.Buffer
	w := Warning{Title: "Wildcard matched no stylesheets"}

	w.Display(&buf)
	output := buf.String()

	if !strings.Contains(output, "Warning: Wildcard matched no stylesheets") {
		t.Errorf("expected title in output, got %q", output)
	}
	// bytes.Buffer is not a terminal
	if strings.Contains(output, "\x1b[") {
		t.Errorf("expected no ANSI codes for a non-terminal writer, got %q", output)
	}
}

func TestDisplayWarning_AllSections(t *testing.T) {
	w := Warning{
		Title:      "Wildcard matched no stylesheets",
		Message:    "These directives were removed from the output.",
		Files:      []string{"main.scss: components/*", "print.sass: print/*"},
		Suggestion: "Check include_paths.",
	}

	output := w.Render(false)

	expected := "Warning: Wildcard matched no stylesheets\n" +
		"    These directives were removed from the output.\n" +
		"    Affected files:\n" +
		"      1. main.scss: components/*\n" +
		"      2. print.sass: print/*\n" +
		"    Suggestion:\n" +
		"    Check include_paths.\n"
	if output != expected {
		t.Errorf("Render() =\n%q\nwant\n%q", output, expected)
	}
}

func TestDisplayWarning_SingleFile(t *testing.T) {
	output := Warning{Title: "t", Files: []string{"a.scss"}}.Render(false)
	if !strings.Contains(output, "Affected file:\n") {
		t.Errorf("expected singular label, got %q", output)
	}
}

func TestDisplayWarning_Colorized(t *testing.T) {
	output := Warning{Title: "t"}.Render(true)
	if !strings.Contains(output, "\x1b[33m") {
		t.Errorf("expected yellow ANSI code, got %q", output)
	}
	if !strings.Contains(output, "\x1b[0m") {
		t.Errorf("expected ANSI reset code, got %q", output)
	}
}

func TestWarnEmptyExpansions(t *testing.T) {
	if _, ok := WarnEmptyExpansions(nil, "/p"); ok {
		t.Error("expected no warning for an empty map")
	}

	w, ok := WarnEmptyExpansions(map[string][]string{
		"/p/src/b.scss":     {"x/*"},
		"/p/src/a.scss":     {"one/*", "two/*"},
		"/elsewhere/c.scss": {"c/*"},
	}, "/p")
	if !ok {
		t.Fatal("expected a warning")
	}

	want := []string{
		"/elsewhere/c.scss: c/*",
		"src/a.scss: one/*",
		"src/a.scss: two/*",
		"src/b.scss: x/*",
	}
	if strings.Join(w.Files, "|") != strings.Join(want, "|") {
		t.Errorf("Files = %v, want %v", w.Files, want)
	}
}
