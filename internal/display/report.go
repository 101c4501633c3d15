package display

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/harrison/sassglob/internal/expander"
)

// CheckReport prints each stylesheet's wildcard directives and what they resolve to.
type CheckReport struct {
	writer     io.Writer
	baseDir    string
	totalFiles int
	current    int
	directives int
	empty      int
	colorize   bool
}

// NewCheckReport creates a report for total files. Paths are shown relative to baseDir.
func NewCheckReport(w io.Writer, total int, baseDir string) *CheckReport {
	return &CheckReport{
		writer:     w,
		baseDir:    baseDir,
		totalFiles: total,
		colorize:   colorWriter(w),
	}
}

func (r *CheckReport) paint(attr color.Attribute, s string) string {
	if !r.colorize {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

// Start displays the header message
func (r *CheckReport) Start() {
	fmt.Fprintf(r.writer, "Checking %d stylesheet(s):\n", r.totalFiles)
}

// Step displays one file: "[N/Total] path" followed by its directives.
// Files without wildcard directives get the header line only.
func (r *CheckReport) Step(path string, expansions []expander.Expansion) {
	r.current++
	fmt.Fprintf(r.writer, "%s\n", r.paint(color.FgCyan,
		fmt.Sprintf("  [%d/%d] %s", r.current, r.totalFiles, relativeTo(r.baseDir, path))))

	for _, exp := range expansions {
		r.directives++
		count := fmt.Sprintf("%d file(s)", len(exp.Targets))
		if len(exp.Targets) == 0 {
			r.empty++
			count = r.paint(color.FgYellow, "no matches")
		}
		fmt.Fprintf(r.writer, "      line %d: @%s %q -> %s\n", exp.Line, exp.Keyword, exp.Pattern, count)
		for _, target := range exp.Targets {
			fmt.Fprintf(r.writer, "        %s\n", target)
		}
	}
}

// Fail displays a file that could not be expanded.
func (r *CheckReport) Fail(path string, err error) {
	r.current++
	fmt.Fprintf(r.writer, "%s\n", r.paint(color.FgRed,
		fmt.Sprintf("  [%d/%d] %s: %v", r.current, r.totalFiles, relativeTo(r.baseDir, path), err)))
}

// Complete displays the totals line
func (r *CheckReport) Complete() {
	mark := r.paint(color.FgGreen, "✓")
	if r.empty > 0 {
		mark = r.paint(color.FgYellow, "!")
	}
	fmt.Fprintf(r.writer, "%s Resolved %d wildcard directive(s), %d with no matches\n", mark, r.directives, r.empty)
}

// EmptyCount returns the number of directives that matched nothing so far.
func (r *CheckReport) EmptyCount() int {
	return r.empty
}
