package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// StylesheetExtensions lists the extensions the expander accepts as targets
var StylesheetExtensions = []string{".scss", ".sass"}

// IsStylesheetExt reports whether name carries a stylesheet extension (case-insensitive).
func IsStylesheetExt(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range StylesheetExtensions {
		if ext == want {
			return true
		}
	}
	return false
}

// IsStylesheet reports whether path is a regular stylesheet file.
// Stat errors are returned unchanged; a path that vanished between globbing
// and this check is an error, not a miss.
func IsStylesheet(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	return IsStylesheetExt(path), nil
}

// IsPartial reports whether the file name marks a Sass partial ("_name.scss").
func IsPartial(name string) bool {
	return strings.HasPrefix(filepath.Base(name), "_")
}

// Slash converts platform separators to forward slashes.
func Slash(path string) string {
	return filepath.ToSlash(path)
}

// HasMeta reports whether s contains glob metacharacters.
func HasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// CollectInputs expands CLI arguments into absolute stylesheet paths.
// Directories are scanned with opts, glob arguments are resolved with doublestar,
// and plain files are taken as given. Order follows the arguments; duplicates are dropped.
func CollectInputs(args []string, opts ScanOptions) ([]string, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = StylesheetExtensions
	}

	skip := pathSet(opts.SkipPaths)
	seen := make(map[string]bool)
	var files []string
	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to resolve path %s: %w", path, err)
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
		return nil
	}

	for _, arg := range args {
		if HasMeta(arg) {
			matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
			}
			for _, m := range matches {
				if !IsStylesheetExt(m) || (opts.SkipPartials && IsPartial(m)) || skip.covers(m) {
					continue
				}
				if err := add(m); err != nil {
					return nil, err
				}
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("failed to access %s: %w", arg, err)
		}
		if !info.IsDir() {
			if err := add(arg); err != nil {
				return nil, err
			}
			continue
		}

		result, err := ScanDirectory(arg, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range result.Files {
			if err := add(f); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

// Glob returns the paths matching an absolute filesystem pattern in lexical
// order. Directories are included; callers filter them.
//
// Wildcards do not match names starting with a dot unless the pattern itself
// spells out the dot, so editor backups and hidden directories stay out.
func Glob(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, err
	}

	base, rest := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if !strings.HasPrefix(rest, ".") && !strings.Contains(rest, "/.") {
		visible := matches[:0]
		for _, m := range matches {
			if !hiddenBelow(filepath.ToSlash(m), base) {
				visible = append(visible, m)
			}
		}
		matches = visible
	}

	sort.Strings(matches)
	return matches, nil
}

// hiddenBelow reports whether any segment of path after base starts with a dot.
func hiddenBelow(path, base string) bool {
	rel := path
	if base != "." {
		rel = strings.TrimPrefix(strings.TrimPrefix(path, base), "/")
	}
	for _, seg := range strings.Split(rel, "/") {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
