// Package display provides terminal output for sassglob commands: warnings
// for directives that matched nothing and the per-file report printed by
// `sassglob check`.
//
// # Warning Messages
//
//	warning := display.Warning{
//	    Title:      "Wildcard matched no stylesheets",
//	    Files:      []string{"src/main.scss: components/*"},
//	    Suggestion: "Check include_paths and ignore_paths",
//	}
//	warning.Display(os.Stderr)
//
// # Check Reports
//
//	report := display.NewCheckReport(os.Stdout, len(files), baseDir)
//	report.Start()
//	for _, r := range results {
//	    report.Step(r.Path, r.Expansions)
//	}
//	report.Complete()
//
// Colour is applied with fatih/color and only when the writer is a terminal
// (see IsColorTerminal). All functions accept io.Writer for testability.
package display
