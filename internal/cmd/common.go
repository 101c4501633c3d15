package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/harrison/sassglob/internal/config"
	"github.com/harrison/sassglob/internal/expander"
	"github.com/harrison/sassglob/internal/fileutil"
	"github.com/harrison/sassglob/internal/logger"
	"github.com/harrison/sassglob/internal/pipeline"
	"github.com/spf13/cobra"
)

// errNoInputs is returned when the arguments name no stylesheets
var errNoInputs = errors.New("no stylesheets found")

// addSharedFlags registers the flags every subcommand accepts.
func addSharedFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: nearest .sassglob/config.yaml)")
	cmd.Flags().String("base-dir", "", "Directory relative search bases resolve against (default: working directory)")
	cmd.Flags().StringArrayP("include-path", "I", nil, "Additional directory to search for matches (repeatable, searched in order)")
	cmd.Flags().StringArray("ignore", nil, "Glob pattern for stylesheets to leave out of expansions (repeatable)")
	cmd.Flags().Bool("canonical", false, "Emit canonical targets (dir/name instead of dir/_name.scss)")
	cmd.Flags().Bool("skip-partials", true, "Skip _partial stylesheets when scanning input directories")
	cmd.Flags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Write a per-run log file to this directory")
	cmd.Flags().Int("max-concurrency", 0, "Maximum number of files processed in parallel (0 = number of CPUs)")
	cmd.Flags().Bool("fail-fast", false, "Stop after the first file that fails")
}

// addOutputFlags registers the flags that choose where expanded files go.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().String("out-dir", "", "Mirror expanded stylesheets under this directory")
	cmd.Flags().Bool("in-place", false, "Rewrite input stylesheets")
	cmd.Flags().Bool("dry-run", false, "Expand without writing anything")
}

// stringFlag returns a pointer to the flag value when it was set on the command line.
func stringFlag(cmd *cobra.Command, name string) *string {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func boolFlag(cmd *cobra.Command, name string) *bool {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetBool(name)
	return &v
}

func intFlag(cmd *cobra.Command, name string) *int {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}

// loadConfig loads the configuration file, merges CLI flags and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		cfg, _, err = config.Load(wd)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	includes, _ := cmd.Flags().GetStringArray("include-path")
	ignores, _ := cmd.Flags().GetStringArray("ignore")

	cfg.MergeWithFlags(config.Overrides{
		BaseDir:        stringFlag(cmd, "base-dir"),
		IncludePaths:   includes,
		IgnorePaths:    ignores,
		CanonicalPaths: boolFlag(cmd, "canonical"),
		SkipPartials:   boolFlag(cmd, "skip-partials"),
		LogLevel:       stringFlag(cmd, "log-level"),
		LogDir:         stringFlag(cmd, "log-dir"),
		MaxConcurrency: intFlag(cmd, "max-concurrency"),
		FailFast:       boolFlag(cmd, "fail-fast"),
		OutDir:         stringFlag(cmd, "out-dir"),
		InPlace:        boolFlag(cmd, "in-place"),
		DryRun:         boolFlag(cmd, "dry-run"),
	})

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the console logger on stderr, plus a file logger when log_dir is set.
// The returned close function must be called when the command finishes.
func newLogger(cmd *cobra.Command, cfg *config.Config) (logger.Logger, func(), error) {
	consoleLog := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if cfg.LogDir == "" {
		return consoleLog, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	consoleLog.LogDebug(fmt.Sprintf("Run %s logging to %s", fileLog.RunID(), fileLog.RunFile()))

	return logger.NewMultiLogger(consoleLog, fileLog), func() { fileLog.Close() }, nil
}

// newExpander creates the expander for cfg.
func newExpander(cfg *config.Config, log logger.Logger) (*expander.Expander, error) {
	exp, err := expander.New(cfg.ExpanderOptions(), log)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return exp, nil
}

// collectInputs resolves the command arguments to stylesheets, defaulting to
// the base directory when no arguments are given.
func collectInputs(args []string, exp *expander.Expander, cfg *config.Config) ([]string, error) {
	if len(args) == 0 {
		args = []string{exp.BaseDir()}
	}
	files, err := fileutil.CollectInputs(args, cfg.ScanOptions())
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errNoInputs
	}
	return files, nil
}

// newSink picks the output destination from the configuration. Streaming to
// stdout is the default.
func newSink(cmd *cobra.Command, cfg *config.Config, exp *expander.Expander) pipeline.Sink {
	switch {
	case cfg.DryRun:
		return pipeline.Discard{}
	case cfg.OutDir != "":
		return &pipeline.DirSink{OutDir: cfg.OutDir, BaseDir: exp.BaseDir()}
	case cfg.InPlace:
		return pipeline.InPlaceSink{}
	default:
		return pipeline.NewWriterSink(cmd.OutOrStdout())
	}
}

// newPipeline wires the expander, sink and logger together.
func newPipeline(cmd *cobra.Command, cfg *config.Config, exp *expander.Expander, log logger.Logger) *pipeline.Pipeline {
	p := pipeline.New(exp, newSink(cmd, cfg, exp), log)
	p.MaxConcurrency = cfg.MaxConcurrency
	p.FailFast = cfg.FailFast
	return p
}
