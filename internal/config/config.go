package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/harrison/sassglob/internal/expander"
	"github.com/harrison/sassglob/internal/fileutil"
	"github.com/harrison/sassglob/internal/logger"
	"gopkg.in/yaml.v3"
)

// ErrOutputConflict is returned when more than one output destination is configured
var ErrOutputConflict = errors.New("out_dir and in_place are mutually exclusive")

// Config represents sassglob configuration options
type Config struct {
	// BaseDir is the root search bases are resolved against (default: working directory)
	BaseDir string `yaml:"base_dir"`

	// IncludePaths are extra search bases tried in order after the file's own directory
	IncludePaths []string `yaml:"include_paths"`

	// IgnorePaths are glob patterns; matching targets are dropped from expansions
	IgnorePaths []string `yaml:"ignore_paths"`

	// CanonicalPaths emits "dir/name" instead of "dir/_name.scss"
	CanonicalPaths bool `yaml:"canonical_paths"`

	// SkipPartials skips "_name.scss" files when scanning input directories
	SkipPartials bool `yaml:"skip_partials"`

	// ExcludeDirs are directory names skipped when scanning input directories
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables a per-run log file in this directory when set
	LogDir string `yaml:"log_dir"`

	// MaxConcurrency bounds parallel file processing (0 = number of CPUs)
	MaxConcurrency int `yaml:"max_concurrency"`

	// FailFast stops scheduling files after the first failure
	FailFast bool `yaml:"fail_fast"`

	// OutDir mirrors expanded files under this directory
	OutDir string `yaml:"out_dir"`

	// InPlace rewrites input files
	InPlace bool `yaml:"in_place"`

	// DryRun expands without writing anything
	DryRun bool `yaml:"dry_run"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		LogLevel:       "info",
		MaxConcurrency: 0,
		ExcludeDirs:    []string{"node_modules", "vendor"},
		SkipPartials:   true,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
// Relative base_dir, out_dir and log_dir values are resolved against the
// project root (the directory holding .sassglob/).
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Booleans that default to true need presence detection
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	present := func(key string) bool {
		_, ok := rawMap[key]
		return ok
	}

	root := ProjectRootFor(path)
	if fileCfg.BaseDir != "" {
		cfg.BaseDir = resolveAgainst(root, fileCfg.BaseDir)
	}
	if fileCfg.IncludePaths != nil {
		cfg.IncludePaths = fileCfg.IncludePaths
	}
	if fileCfg.IgnorePaths != nil {
		cfg.IgnorePaths = fileCfg.IgnorePaths
	}
	if present("exclude_dirs") {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if present("skip_partials") {
		cfg.SkipPartials = fileCfg.SkipPartials
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = resolveAgainst(root, fileCfg.LogDir)
	}
	if fileCfg.OutDir != "" {
		cfg.OutDir = resolveAgainst(root, fileCfg.OutDir)
	}
	if fileCfg.MaxConcurrency != 0 {
		cfg.MaxConcurrency = fileCfg.MaxConcurrency
	}
	cfg.CanonicalPaths = fileCfg.CanonicalPaths
	cfg.FailFast = fileCfg.FailFast
	cfg.InPlace = fileCfg.InPlace
	cfg.DryRun = fileCfg.DryRun

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .sassglob/config.yaml in the specified directory.
// If the directory or file doesn't exist, returns default configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ConfigDirName, ConfigFileName))
}

func resolveAgainst(root, p string) string {
	if p == "" || filepath.IsAbs(p) || root == "" {
		return p
	}
	return filepath.Join(root, p)
}

// Overrides carries CLI flag values; nil fields leave the configuration untouched.
type Overrides struct {
	BaseDir        *string
	IncludePaths   []string
	IgnorePaths    []string
	CanonicalPaths *bool
	SkipPartials   *bool
	LogLevel       *string
	LogDir         *string
	MaxConcurrency *int
	FailFast       *bool
	OutDir         *string
	InPlace        *bool
	DryRun         *bool
}

// MergeWithFlags merges CLI flags into the configuration.
// Scalar flags replace configured values; include and ignore lists are
// appended after the configured entries so the file's search order is kept.
func (c *Config) MergeWithFlags(o Overrides) {
	if o.BaseDir != nil {
		c.BaseDir = *o.BaseDir
	}
	c.IncludePaths = append(c.IncludePaths, o.IncludePaths...)
	c.IgnorePaths = append(c.IgnorePaths, o.IgnorePaths...)
	if o.CanonicalPaths != nil {
		c.CanonicalPaths = *o.CanonicalPaths
	}
	if o.SkipPartials != nil {
		c.SkipPartials = *o.SkipPartials
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.MaxConcurrency != nil {
		c.MaxConcurrency = *o.MaxConcurrency
	}
	if o.FailFast != nil {
		c.FailFast = *o.FailFast
	}
	if o.OutDir != nil {
		c.OutDir = *o.OutDir
	}
	if o.InPlace != nil {
		c.InPlace = *o.InPlace
	}
	if o.DryRun != nil {
		c.DryRun = *o.DryRun
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}

	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.OutDir != "" && c.InPlace {
		return ErrOutputConflict
	}

	for _, pattern := range c.IgnorePaths {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid ignore_paths pattern %q", pattern)
		}
	}

	if c.BaseDir != "" {
		info, err := os.Stat(c.BaseDir)
		if err != nil {
			return fmt.Errorf("base_dir %s: %w", c.BaseDir, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("base_dir %s is not a directory", c.BaseDir)
		}
	}

	return nil
}

// ExpanderOptions maps the configuration to expander options.
func (c *Config) ExpanderOptions() expander.Options {
	return expander.Options{
		BaseDir:        c.BaseDir,
		IncludePaths:   c.IncludePaths,
		IgnorePaths:    c.IgnorePaths,
		CanonicalPaths: c.CanonicalPaths,
	}
}

// ScanOptions maps the configuration to input discovery options.
func (c *Config) ScanOptions() fileutil.ScanOptions {
	return fileutil.ScanOptions{
		Extensions:   fileutil.StylesheetExtensions,
		Recursive:    true,
		ExcludeDirs:  c.ExcludeDirs,
		SkipPartials: c.SkipPartials,
		SkipPaths:    c.generatedDirs(),
	}
}

// generatedDirs returns the directories sassglob itself writes to, so a run
// never reads its own output back as input.
func (c *Config) generatedDirs() []string {
	var dirs []string
	for _, dir := range []string{c.OutDir, c.LogDir} {
		if dir == "" {
			continue
		}
		if abs, err := filepath.Abs(dir); err == nil {
			dirs = append(dirs, abs)
		}
	}
	return dirs
}
