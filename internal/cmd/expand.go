package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harrison/sassglob/internal/config"
	"github.com/harrison/sassglob/internal/display"
	"github.com/harrison/sassglob/internal/expander"
	"github.com/harrison/sassglob/internal/logger"
	"github.com/harrison/sassglob/internal/models"
	"github.com/spf13/cobra"
)

// NewExpandCommand creates the expand command
func NewExpandCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand [file-directory-or-glob]...",
		Short: "Expand wildcard directives",
		Long: `Expand wildcard @import, @use and @forward directives.

Arguments may be stylesheets, directories (scanned recursively for .scss and
.sass files) or glob patterns. With no arguments the base directory is scanned.

Expanded stylesheets are written to stdout by default, one after another in
argument order. Use --out-dir to mirror them into another directory or
--in-place to rewrite the inputs.

Examples:
  # Expand one file to stdout
  sassglob expand src/main.scss

  # Mirror every entry point under build/
  sassglob expand src --out-dir build

  # Filter mode for other build tools
  cat src/main.scss | sassglob expand --stdin-filename src/main.scss

  # Search node_modules after the file's own directory
  sassglob expand -I node_modules src/main.scss`,
		RunE: runExpand,
	}

	addSharedFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().String("stdin-filename", "", "Read the stylesheet from stdin as though it were this file")

	return cmd
}

func runExpand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	exp, err := newExpander(cfg, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if stdinName, _ := cmd.Flags().GetString("stdin-filename"); stdinName != "" {
		if len(args) > 0 {
			return fmt.Errorf("--stdin-filename cannot be combined with file arguments")
		}
		return expandStdin(ctx, cmd, cfg, exp, log, stdinName)
	}

	inputs, err := collectInputs(args, exp, cfg)
	if err != nil {
		return err
	}

	summary, err := expandAll(ctx, cmd, cfg, exp, log, inputs)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", summary.Failed, summary.TotalFiles)
	}
	return nil
}

// expandAll runs the pipeline over inputs, logs the summary and warns about
// wildcards that matched nothing.
func expandAll(ctx context.Context, cmd *cobra.Command, cfg *config.Config, exp *expander.Expander, log logger.Logger, inputs []string) (*models.RunSummary, error) {
	log.LogDebug(fmt.Sprintf("Expanding %d stylesheet(s) from %s", len(inputs), exp.BaseDir()))

	p := newPipeline(cmd, cfg, exp, log)
	summary, err := p.Run(ctx, inputs)
	if summary != nil {
		log.LogSummary(*summary)
		if warning, ok := display.WarnEmptyExpansions(summary.EmptyExpansions(), exp.BaseDir()); ok {
			warning.Display(cmd.ErrOrStderr())
		}
	}
	if err != nil {
		return summary, fmt.Errorf("expansion aborted: %w", err)
	}
	return summary, nil
}

func expandStdin(ctx context.Context, cmd *cobra.Command, cfg *config.Config, exp *expander.Expander, log logger.Logger, name string) error {
	if cfg.OutDir != "" || cfg.InPlace {
		return fmt.Errorf("--stdin-filename writes to stdout; drop --out-dir and --in-place")
	}

	p := newPipeline(cmd, cfg, exp, log)
	result := p.ProcessReader(ctx, name, cmd.InOrStdin())
	if result.Failed() {
		return result.Error
	}
	if len(result.Empty) > 0 {
		warning, _ := display.WarnEmptyExpansions(map[string][]string{result.Path: result.Empty}, exp.BaseDir())
		warning.Display(cmd.ErrOrStderr())
	}
	return nil
}
