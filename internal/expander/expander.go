// Package expander rewrites wildcard @import, @use and @forward directives
// into one concrete directive per matching stylesheet.
//
// Each wildcard target is globbed against a list of search bases: the source
// file's own directory first, then the configured include paths. The first
// basis that yields any match wins. Matches are filtered (the source file
// itself, non-stylesheets and ignored paths are dropped) and the directive line
// is replaced by the surviving directives in glob order.
package expander

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/sassglob/internal/fileutil"
	"github.com/harrison/sassglob/internal/models"
)

// Logger is the subset of the console logger the expander reports through.
type Logger interface {
	LogTrace(message string)
	LogDebug(message string)
}

type noopLogger struct{}

func (noopLogger) LogTrace(string) {}
func (noopLogger) LogDebug(string) {}

// Options configures an Expander. The zero value resolves against the
// current working directory with no include paths and no ignore patterns.
type Options struct {
	// BaseDir is the root relative search bases are resolved against
	BaseDir string
	// IncludePaths are extra search bases, consulted in order after the file's directory
	IncludePaths []string
	// IgnorePaths are glob patterns; matching targets are dropped
	IgnorePaths []string
	// CanonicalPaths emits "dir/name" instead of "dir/_name.scss"
	CanonicalPaths bool
}

// Expansion records how one wildcard directive was rewritten.
type Expansion struct {
	Line      int      // 1-based line of the directive in the input
	Directive string   // Original directive text
	Keyword   string   // import, use or forward
	Pattern   string   // Wildcard target
	Basis     string   // Search basis that produced matches ("" when none did)
	Targets   []string // Emitted targets, relative to the source file
}

// Result describes the expansion of one file.
type Result struct {
	Changed    bool
	Expansions []Expansion
}

// Targets returns the number of concrete directives emitted.
func (r *Result) Targets() int {
	n := 0
	for _, exp := range r.Expansions {
		n += len(exp.Targets)
	}
	return n
}

// Empty returns the patterns that expanded to no files.
func (r *Result) Empty() []string {
	var out []string
	for _, exp := range r.Expansions {
		if len(exp.Targets) == 0 {
			out = append(out, exp.Pattern)
		}
	}
	return out
}

// Expander rewrites wildcard directives. It holds only read-only configuration
// and is safe for concurrent use.
type Expander struct {
	baseDir      string
	includePaths []string
	ignorePaths  []string
	canonical    bool
	log          Logger

	isStylesheet func(path string) (bool, error)
}

// New creates an Expander. BaseDir defaults to the working directory, include
// paths are made absolute against BaseDir and carry a trailing separator.
func New(opts Options, log Logger) (*Expander, error) {
	baseDir := opts.BaseDir
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		baseDir = wd
	}
	baseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base dir %s: %w", opts.BaseDir, err)
	}

	includes := make([]string, 0, len(opts.IncludePaths))
	for _, p := range opts.IncludePaths {
		includes = append(includes, NormalizeIncludePath(baseDir, p))
	}

	for _, pattern := range opts.IgnorePaths {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidIgnorePattern, pattern)
		}
	}

	if log == nil {
		log = noopLogger{}
	}

	return &Expander{
		baseDir:      baseDir,
		includePaths: includes,
		ignorePaths:  append([]string(nil), opts.IgnorePaths...),
		canonical:    opts.CanonicalPaths,
		log:          log,
		isStylesheet: fileutil.IsStylesheet,
	}, nil
}

// NormalizeIncludePath makes p absolute against baseDir and appends a trailing separator.
func NormalizeIncludePath(baseDir, p string) string {
	if !filepath.IsAbs(p) {
		p = filepath.Join(baseDir, p)
	}
	p = filepath.Clean(p)
	if !strings.HasSuffix(p, string(filepath.Separator)) {
		p += string(filepath.Separator)
	}
	return p
}

// BaseDir returns the absolute base directory.
func (e *Expander) BaseDir() string {
	return e.baseDir
}

// IncludePaths returns the normalized include paths in search order.
func (e *Expander) IncludePaths() []string {
	return append([]string(nil), e.includePaths...)
}

// Expand rewrites every wildcard directive in file.Contents in place.
//
// The scan is bounded by the input's line count. Each search starts at an
// explicit cursor placed just past the previous replacement, so growing or
// shrinking the buffer never causes a directive to be skipped or re-expanded.
// A filesystem error aborts the file and leaves its contents untouched.
func (e *Expander) Expand(file *models.SourceFile) (*Result, error) {
	original := file.Text()
	text := original
	limit := strings.Count(original, "\n") + 1

	result := &Result{}
	cursor := 0
	lineShift := 0

	for i := 0; i < limit; i++ {
		d := findDirective(text, cursor)
		if d == nil {
			break
		}

		replacement, exp, err := e.expandDirective(file, d)
		if err != nil {
			return nil, err
		}

		line := strings.Count(text[:d.start], "\n") + 1
		exp.Line = line - lineShift
		lineShift += strings.Count(replacement, "\n")
		result.Expansions = append(result.Expansions, *exp)

		text = text[:d.start] + replacement + text[d.end:]
		cursor = d.start + len(replacement)
	}

	if text != original {
		result.Changed = true
		file.SetText(text)
	}
	return result, nil
}

// expandDirective resolves one directive and renders its replacement.
func (e *Expander) expandDirective(file *models.SourceFile, d *directive) (string, *Expansion, error) {
	matches, basis, err := e.resolve(file, d.pattern)
	if err != nil {
		return "", nil, err
	}

	kept, err := e.filter(file, d.pattern, matches)
	if err != nil {
		return "", nil, err
	}

	targets := make([]string, 0, len(kept))
	for _, path := range kept {
		target, err := e.targetPath(file, path)
		if err != nil {
			return "", nil, &ResolveError{File: file.Path, Pattern: d.pattern, Path: path, Err: err}
		}
		targets = append(targets, target)
	}

	e.log.LogDebug(fmt.Sprintf("%s: @%s %q -> %d file(s)", file.Path, d.keyword, d.pattern, len(targets)))

	exp := &Expansion{
		Directive: d.text,
		Keyword:   d.keyword,
		Pattern:   d.pattern,
		Basis:     basis,
		Targets:   targets,
	}
	return d.render(targets, file.Dialect().Terminator()), exp, nil
}

// ExpandFile reads path and expands it.
func (e *Expander) ExpandFile(path string) (*models.SourceFile, *Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	file, err := models.NewSourceFile(path, data)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	result, err := e.Expand(file)
	if err != nil {
		return nil, nil, err
	}
	return file, result, nil
}
