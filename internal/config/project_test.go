package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindConfigFileWalksUp(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	root := t.TempDir()
	path := writeConfig(t, root, "log_level: debug\n")

	nested := filepath.Join(root, "styles", "components")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindConfigFile(nested)
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}
	if got != path {
		t.Errorf("FindConfigFile() = %q, want %q", got, path)
	}
}

func TestFindConfigFileEnvOverride(t *testing.T) {
	t.Setenv(ConfigEnvVar, "/custom/sassglob.yaml")

	got, err := FindConfigFile(t.TempDir())
	if err != nil {
		t.Fatalf("FindConfigFile() error = %v", err)
	}
	if got != "/custom/sassglob.yaml" {
		t.Errorf("FindConfigFile() = %q", got)
	}
}

func TestProjectRootFor(t *testing.T) {
	root := t.TempDir()
	if got := ProjectRootFor(filepath.Join(root, ".sassglob", "config.yaml")); got != root {
		t.Errorf("ProjectRootFor(standard) = %q, want %q", got, root)
	}
	if got := ProjectRootFor(filepath.Join(root, "ci", "sassglob.yaml")); got != filepath.Join(root, "ci") {
		t.Errorf("ProjectRootFor(custom) = %q", got)
	}
}

func TestLoadWithoutConfig(t *testing.T) {
	t.Setenv(ConfigEnvVar, "")
	dir := t.TempDir()

	cfg, path, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	// A config above the temp dir would be picked up; only assert when none was found
	if path == "" && cfg.LogLevel != "info" {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}
