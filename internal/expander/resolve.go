package expander

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/sassglob/internal/fileutil"
	"github.com/harrison/sassglob/internal/models"
)

// searchBases returns the absolute directories a wildcard is resolved against:
// the file's own directory (taken relative to the base dir) followed by the
// include paths in configured order.
func (e *Expander) searchBases(file *models.SourceFile) []string {
	bases := make([]string, 0, len(e.includePaths)+1)

	rel, err := filepath.Rel(e.baseDir, file.Dir())
	if err != nil {
		// Different volume; the file directory is already absolute.
		bases = append(bases, file.Dir())
	} else {
		bases = append(bases, filepath.Join(e.baseDir, rel))
	}

	for _, inc := range e.includePaths {
		bases = append(bases, filepath.Clean(inc))
	}
	return bases
}

// resolve globs pattern against each basis in order and returns the matches of
// the first basis that produced any, together with that basis.
// Later bases are not consulted once one matches, even if every match is
// filtered out afterwards.
func (e *Expander) resolve(file *models.SourceFile, pattern string) ([]string, string, error) {
	for _, basis := range e.searchBases(file) {
		glob := filepath.Join(basis, filepath.FromSlash(pattern))
		matches, err := fileutil.Glob(glob)
		if err != nil {
			return nil, "", &ResolveError{File: file.Path, Pattern: pattern, Err: err}
		}
		if len(matches) > 0 {
			return matches, basis, nil
		}
		e.log.LogTrace(fmt.Sprintf("%s: no match for %q in %s", file.Path, pattern, basis))
	}
	return nil, "", nil
}

// filter drops the source file itself, directories and non-stylesheets, and
// anything matched by an ignore pattern. Order is preserved.
func (e *Expander) filter(file *models.SourceFile, pattern string, matches []string) ([]string, error) {
	kept := make([]string, 0, len(matches))
	self := filepath.Clean(file.Path)
	for _, m := range matches {
		m = filepath.Clean(m)
		if m == self {
			continue
		}
		ok, err := e.isStylesheet(m)
		if err != nil {
			return nil, &ResolveError{File: file.Path, Pattern: pattern, Path: m, Err: err}
		}
		if !ok {
			continue
		}
		if e.ignored(m) {
			e.log.LogTrace(fmt.Sprintf("%s: ignoring %s", file.Path, m))
			continue
		}
		kept = append(kept, m)
	}
	return kept, nil
}

// ignored reports whether path matches any ignore pattern. Patterns are tried
// against the slash form of the absolute path and of the path relative to the base dir.
func (e *Expander) ignored(path string) bool {
	if len(e.ignorePaths) == 0 {
		return false
	}
	candidates := []string{fileutil.Slash(path)}
	if rel, err := filepath.Rel(e.baseDir, path); err == nil {
		candidates = append(candidates, fileutil.Slash(rel))
	}
	for _, pattern := range e.ignorePaths {
		for _, c := range candidates {
			if ok, _ := doublestar.Match(pattern, c); ok {
				return true
			}
		}
	}
	return false
}

// targetPath expresses a resolved file relative to the source file's directory
// with forward slashes. With canonical paths the partial underscore and the
// extension are dropped, matching how Sass resolves module URLs.
func (e *Expander) targetPath(file *models.SourceFile, path string) (string, error) {
	rel, err := filepath.Rel(file.Dir(), path)
	if err != nil {
		return "", err
	}
	rel = fileutil.Slash(rel)
	if !e.canonical {
		return rel, nil
	}

	dir, name := "", rel
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		dir, name = rel[:i+1], rel[i+1:]
	}
	if fileutil.IsStylesheetExt(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	name = strings.TrimPrefix(name, "_")
	return dir + name, nil
}
