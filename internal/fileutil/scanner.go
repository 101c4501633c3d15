package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// ScanOptions configures the directory scanning behavior
type ScanOptions struct {
	// Pattern is a regex pattern to match filenames (without extension)
	Pattern string
	// Extensions is a list of file extensions to include (e.g., ".scss", ".sass")
	Extensions []string
	// Recursive enables recursive directory scanning
	Recursive bool
	// ExcludeDirs is a list of directory names to exclude (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// MaxDepth limits recursion depth (0 = unlimited, 1 = current dir only)
	MaxDepth int
	// SkipPartials drops files whose name starts with an underscore
	SkipPartials bool
	// SkipPaths lists directories never scanned, such as an output directory
	// nested in the input tree
	SkipPaths []string
}

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Files contains the absolute paths of all matched files
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// ScanDirectory scans a directory for files matching the provided options
func ScanDirectory(dir string, opts ScanOptions) (*ScanResult, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", dir)
	}

	result := &ScanResult{
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	var patternRegex *regexp.Regexp
	if opts.Pattern != "" {
		patternRegex, err = regexp.Compile(opts.Pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern: %w", err)
		}
	}

	extMap := extensionSet(opts.Extensions)

	excludeMap := make(map[string]bool)
	for _, name := range opts.ExcludeDirs {
		excludeMap[name] = true
	}

	skip := pathSet(opts.SkipPaths)

	err = filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			return nil // Continue walking
		}

		if path == dir {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || strings.HasPrefix(d.Name(), ".") || skip.covers(path) {
				return filepath.SkipDir
			}
			if !opts.Recursive {
				return filepath.SkipDir
			}
			if opts.MaxDepth > 0 {
				relPath, _ := filepath.Rel(dir, path)
				depth := strings.Count(relPath, string(filepath.Separator)) + 1
				if depth >= opts.MaxDepth {
					return filepath.SkipDir
				}
			}
			return nil
		}

		filename := d.Name()

		if len(extMap) > 0 && !extMap[strings.ToLower(filepath.Ext(filename))] {
			return nil
		}

		if opts.SkipPartials && IsPartial(filename) {
			return nil
		}

		if patternRegex != nil {
			nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))
			if !patternRegex.MatchString(nameWithoutExt) {
				return nil
			}
		}

		absPath, err := filepath.Abs(path)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("failed to resolve path %s: %w", path, err))
			return nil
		}

		result.Files = append(result.Files, absPath)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	// Sort files for consistent output
	sort.Strings(result.Files)

	return result, nil
}

// extensionSet builds a lowercase lookup set, adding a leading dot when missing.
func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[strings.ToLower(ext)] = true
	}
	return set
}

// skipSet holds absolute directories excluded from input discovery.
type skipSet []string

func pathSet(paths []string) skipSet {
	var set skipSet
	for _, p := range paths {
		if p == "" {
			continue
		}
		if abs, err := filepath.Abs(p); err == nil {
			set = append(set, abs)
		}
	}
	return set
}

// covers reports whether path is one of the directories or lies beneath one.
func (s skipSet) covers(path string) bool {
	if len(s) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	for _, dir := range s {
		if abs == dir || strings.HasPrefix(abs, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}
