package config

import (
	"os"
	"path/filepath"
)

const (
	// ConfigDirName is the per-project configuration directory
	ConfigDirName = ".sassglob"
	// ConfigFileName is the configuration file inside ConfigDirName
	ConfigFileName = "config.yaml"
	// ConfigEnvVar overrides config discovery with an explicit file
	ConfigEnvVar = "SASSGLOB_CONFIG"
)

// FindConfigFile returns the configuration file to load.
// Priority order:
//  1. SASSGLOB_CONFIG environment variable (if set)
//  2. The nearest .sassglob/config.yaml walking up from start
//
// Returns "" when none exists.
func FindConfigFile(start string) (string, error) {
	if path := os.Getenv(ConfigEnvVar); path != "" {
		return path, nil
	}

	current, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(current, ConfigDirName, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return "", nil
		}
		current = parent
	}
}

// ProjectRootFor returns the directory relative config values are resolved
// against: the parent of .sassglob/ for the standard layout, otherwise the
// directory containing the file.
func ProjectRootFor(configPath string) string {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return ""
	}
	dir := filepath.Dir(abs)
	if filepath.Base(dir) == ConfigDirName {
		return filepath.Dir(dir)
	}
	return dir
}

// Load finds and loads the configuration for start, falling back to defaults.
func Load(start string) (*Config, string, error) {
	path, err := FindConfigFile(start)
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		return DefaultConfig(), "", nil
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}
