package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/harrison/sassglob/internal/expander"
	"github.com/harrison/sassglob/internal/watch"
	"github.com/spf13/cobra"
)

var errWatchInPlace = errors.New("watch cannot write in place: expanded sources no longer contain wildcards to re-resolve; use --out-dir")

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file-directory-or-glob]...",
		Short: "Expand, then re-expand whenever a stylesheet changes",
		Long: `Expand the inputs once, then watch their directories, the base directory
and every include path. Any stylesheet created, written or removed triggers a
new run, since a new partial can change what a wildcard matches.

Output goes to --out-dir, or nowhere with --dry-run. --in-place is refused:
the first run would replace the wildcards in the sources, so later runs
would have nothing left to expand.

Examples:
  sassglob watch src --out-dir build
  sassglob watch src --out-dir build --debounce 250ms`,
		RunE: runWatch,
	}

	addSharedFlags(cmd)
	addOutputFlags(cmd)
	cmd.Flags().Duration("debounce", watch.DefaultDebounceDelay, "Quiet period before a change triggers a run")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.InPlace {
		return errWatchInPlace
	}
	if cfg.OutDir == "" && !cfg.DryRun {
		return fmt.Errorf("watch needs --out-dir or --dry-run")
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

	// Failures are logged; the watcher keeps running until interrupted
	runOnce := func() {
		inputs, err := collectInputs(args, exp, cfg)
		if err != nil {
			log.LogWarn(err.Error())
			return
		}
		if _, err := expandAll(ctx, cmd, cfg, exp, log, inputs); err != nil && ctx.Err() == nil {
			log.LogError(err.Error())
		}
	}

	runOnce()

	debounce, _ := cmd.Flags().GetDuration("debounce")
	opts := watch.Options{
		Roots:       watchRoots(args, exp),
		ExcludeDirs: cfg.ExcludeDirs,
		Debounce:    debounce,
	}
	if cfg.OutDir != "" {
		opts.IgnoreDirs = []string{cfg.OutDir}
	}
	if cfg.LogDir != "" {
		opts.IgnoreDirs = append(opts.IgnoreDirs, cfg.LogDir)
	}

	w, err := watch.New(opts)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	log.LogInfo(fmt.Sprintf("Watching %s", strings.Join(w.Roots(), ", ")))

	return w.Run(ctx, func(batch []watch.Event) error {
		for _, ev := range batch {
			log.LogDebug(fmt.Sprintf("%s %s", ev.Path, ev.Op))
		}
		log.LogInfo(fmt.Sprintf("%d stylesheet(s) changed, expanding", len(batch)))
		runOnce()
		return nil
	}, func(err error) {
		log.LogWarn(fmt.Sprintf("watcher: %v", err))
	})
}

// watchRoots returns the directories to watch: the base directory, every
// include path and the directory of each argument, without nested duplicates.
func watchRoots(args []string, exp *expander.Expander) []string {
	candidates := []string{exp.BaseDir()}
	candidates = append(candidates, exp.IncludePaths()...)
	for _, arg := range args {
		dir := arg
		if info, err := os.Stat(arg); err != nil || !info.IsDir() {
			dir = filepath.Dir(globBase(arg))
		}
		if abs, err := filepath.Abs(dir); err == nil {
			candidates = append(candidates, abs)
		}
	}
	return dedupeRoots(candidates)
}

// globBase trims a pattern to the part before its first metacharacter.
func globBase(pattern string) string {
	if i := strings.IndexAny(pattern, "*?[{"); i >= 0 {
		return pattern[:i]
	}
	return pattern
}

// dedupeRoots drops directories that are equal to or nested in another root.
func dedupeRoots(dirs []string) []string {
	var roots []string
	for _, dir := range dirs {
		dir = filepath.Clean(dir)
		covered := false
		for i, root := range roots {
			if within(dir, root) {
				covered = true
				break
			}
			if within(root, dir) {
				roots[i] = dir
				covered = true
				break
			}
		}
		if !covered {
			roots = append(roots, dir)
		}
	}
	return dedupeOnce(roots)
}

func dedupeOnce(dirs []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, d := range dirs {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out
}

// within reports whether path equals dir or lies beneath it.
func within(path, dir string) bool {
	return path == dir || strings.HasPrefix(path, dir+string(filepath.Separator))
}
