package display

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning, in yellow when out is a terminal.
func (w Warning) Display(out io.Writer) {
	fmt.Fprint(out, w.Render(colorWriter(out)))
}

// Render formats the warning. When colorize is false no escape codes are emitted.
func (w Warning) Render(colorize bool) string {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected file:\n")
		} else {
			b.WriteString("Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	if !colorize {
		return b.String()
	}
	yellow := color.New(color.FgYellow)
	yellow.EnableColor()
	return yellow.Sprint(b.String())
}

// WarnEmptyExpansions builds a warning listing wildcard patterns that matched
// no stylesheets, one "file: pattern" entry per pattern. Paths are shown
// relative to baseDir when possible. It returns false when there is nothing to report.
func WarnEmptyExpansions(empty map[string][]string, baseDir string) (Warning, bool) {
	if len(empty) == 0 {
		return Warning{}, false
	}

	files := make([]string, 0, len(empty))
	for file := range empty {
		files = append(files, file)
	}
	sort.Strings(files)

	var entries []string
	for _, file := range files {
		for _, pattern := range empty[file] {
			entries = append(entries, fmt.Sprintf("%s: %s", relativeTo(baseDir, file), pattern))
		}
	}

	return Warning{
		Title:      "Wildcard matched no stylesheets",
		Message:    "These directives were removed from the output.",
		Files:      entries,
		Suggestion: "Check the pattern, include_paths and ignore_paths.",
	}, true
}

func relativeTo(baseDir, path string) string {
	if baseDir == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(baseDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
