package models

import (
	"path/filepath"
	"strings"
)

// Dialect identifies the stylesheet syntax of a source file.
type Dialect int

const (
	// DialectSCSS is the brace-based syntax; statements end with ';'.
	DialectSCSS Dialect = iota
	// DialectSass is the indentation-based syntax; statements have no terminator.
	DialectSass
)

// String returns the file extension name of the dialect
func (d Dialect) String() string {
	if d == DialectSass {
		return "sass"
	}
	return "scss"
}

// Terminator returns the statement terminator emitted after a directive.
func (d Dialect) Terminator() string {
	if d == DialectSass {
		return ""
	}
	return ";"
}

// DialectOf classifies a path by its extension. Anything that is not .sass
// is treated as brace-based.
func DialectOf(path string) Dialect {
	if strings.EqualFold(filepath.Ext(path), ".sass") {
		return DialectSass
	}
	return DialectSCSS
}

// SourceFile is a single stylesheet handed to the expander.
// Path is absolute and never changes; Contents is replaced when directives are expanded.
type SourceFile struct {
	Path     string
	Contents []byte
}

// NewSourceFile creates a SourceFile with an absolute path.
func NewSourceFile(path string, contents []byte) (*SourceFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &SourceFile{Path: abs, Contents: contents}, nil
}

// Dialect returns the dialect derived from the file extension.
func (f *SourceFile) Dialect() Dialect {
	return DialectOf(f.Path)
}

// IsIndented reports whether the file uses the indentation-based syntax.
func (f *SourceFile) IsIndented() bool {
	return f.Dialect() == DialectSass
}

// Dir returns the directory containing the file.
func (f *SourceFile) Dir() string {
	return filepath.Dir(f.Path)
}

// Text returns the buffer as a string.
func (f *SourceFile) Text() string {
	return string(f.Contents)
}

// SetText replaces the buffer.
func (f *SourceFile) SetText(text string) {
	f.Contents = []byte(text)
}
