package cmd

import (
	"fmt"

	"github.com/harrison/sassglob/internal/display"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command
func NewCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [file-directory-or-glob]...",
		Short: "Report how wildcard directives resolve without writing anything",
		Long: `Report every wildcard directive and the stylesheets it resolves to.

Nothing is written. Directives that match no stylesheets are flagged; with
--strict they make the command fail, which is useful in CI.

Exit code: 0 if every file was expanded (and, with --strict, every wildcard matched), 1 otherwise`,
		RunE: runCheck,
	}

	addSharedFlags(cmd)
	cmd.Flags().Bool("strict", false, "Fail when a wildcard matches no stylesheets")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	inputs, err := collectInputs(args, exp, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report := display.NewCheckReport(out, len(inputs), exp.BaseDir())
	report.Start()

	failed := 0
	for _, path := range inputs {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		_, result, err := exp.ExpandFile(path)
		if err != nil {
			failed++
			report.Fail(path, err)
			if cfg.FailFast {
				break
			}
			continue
		}
		report.Step(path, result.Expansions)
	}
	report.Complete()

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed", failed, len(inputs))
	}
	if strict, _ := cmd.Flags().GetBool("strict"); strict && report.EmptyCount() > 0 {
		return fmt.Errorf("%d wildcard directive(s) matched no stylesheets", report.EmptyCount())
	}
	return nil
}
