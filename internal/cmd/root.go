package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for sassglob
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sassglob",
		Short: "Expand wildcard @import, @use and @forward directives in Sass stylesheets",
		Long: `sassglob rewrites wildcard directives such as

  @import "components/*";

into one concrete directive per matching stylesheet, so a Sass compiler that
does not understand globs can consume the result.

Patterns are resolved against the stylesheet's own directory first, then each
include path in order. The first location with any match wins.

Configuration is loaded from .sassglob/config.yaml (searched upwards from the
working directory) or the file named by SASSGLOB_CONFIG.
CLI flags override configuration file settings.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewExpandCommand())
	cmd.AddCommand(NewCheckCommand())
	cmd.AddCommand(NewWatchCommand())

	return cmd
}
