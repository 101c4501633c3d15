// Package fileutil provides stylesheet discovery and path helpers shared by the
// expander, the pipeline and the CLI.
//
// # Purpose
//
// The fileutil package is designed for:
//   - Directory traversal for stylesheet inputs with depth limits
//   - Extension classification for .scss and .sass files
//   - Turning CLI arguments (files, directories, glob patterns) into an input list
//   - Forward-slash path normalization for emitted directives
//
// # Main Components
//
// ScanOptions - Configuration struct for directory scanning:
//   - Pattern: Regex pattern to match filenames (without extension)
//   - Extensions: List of file extensions to include (case-insensitive)
//   - Recursive: Enable/disable subdirectory traversal
//   - ExcludeDirs: Directory names to skip (e.g., "node_modules")
//   - MaxDepth: Limit recursion depth (0 = unlimited, 1 = current dir only)
//   - SkipPartials: Skip files whose name starts with "_"
//
// ScanResult - Results of directory scan:
//   - Files: Absolute paths of all matched files (sorted alphabetically)
//   - Errors: Non-fatal errors encountered during scan
//
// CollectInputs - Expands CLI arguments into a de-duplicated list of absolute paths.
//
// # Usage Examples
//
// Entry stylesheets of a project, partials excluded:
//
//	result, err := fileutil.ScanDirectory("styles", fileutil.ScanOptions{
//	    Extensions:   fileutil.StylesheetExtensions,
//	    Recursive:    true,
//	    ExcludeDirs:  []string{"node_modules"},
//	    SkipPartials: true,
//	})
//
// Mixed CLI arguments:
//
//	files, err := fileutil.CollectInputs([]string{"styles/main.scss", "themes/", "pages/**/*.sass"}, opts)
//
// # Error Tolerance
//
// The scanner collects non-fatal errors (e.g., permission denied on a subdirectory)
// and continues scanning. Only fatal errors (e.g., root directory doesn't exist,
// invalid regex pattern) cause immediate failure.
//
// Directories starting with "." are skipped during recursive scans.
package fileutil
