package expander

import (
	"errors"
	"fmt"
)

// ErrInvalidIgnorePattern is returned by New when an ignore pattern cannot be compiled.
var ErrInvalidIgnorePattern = errors.New("invalid ignore pattern")

// ResolveError represents a filesystem failure while resolving a wildcard directive.
// It aborts the expansion of the whole file.
type ResolveError struct {
	File    string // Source file being expanded
	Pattern string // Wildcard target of the directive
	Path    string // Path being inspected when the error occurred (optional)
	Err     error  // Underlying error
}

// Error implements the error interface for ResolveError.
func (e *ResolveError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: resolving %q: %s: %v", e.File, e.Pattern, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: resolving %q: %v", e.File, e.Pattern, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *ResolveError) Unwrap() error {
	return e.Err
}
