package course

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Config{
		ContentRepo: "https://github.com/example/course-content.git",
		Branch:      "main",
		ContentDir:  filepath.Join(dir, "content"),
		Version:     "1.0",
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}
	if cfg.InitTime == 0 {
		t.Error("InitTime not set on first save")
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.ContentRepo != cfg.ContentRepo {
		t.Errorf("ContentRepo = %q, want %q", loaded.ContentRepo, cfg.ContentRepo)
	}
	if loaded.Branch != "main" {
		t.Errorf("Branch = %q", loaded.Branch)
	}
	if loaded.InitTime != cfg.InitTime {
		t.Errorf("InitTime = %d, want %d", loaded.InitTime, cfg.InitTime)
	}
}

func TestConfigFilePermissions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("config file mode = %o, want 0600", info.Mode().Perm())
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFrom() should fail for a missing file")
	}
}

func TestLoadFromFillsContentDirDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("content_repo: https://github.com/x/y.git\n"), 0600); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if loaded.ContentDir == "" {
		t.Error("ContentDir default not applied")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ContentDir == "" {
		t.Error("ContentDir should default to the data directory")
	}
	if !strings.Contains(cfg.ContentDir, appName) {
		t.Errorf("ContentDir = %q, expected it to contain %q", cfg.ContentDir, appName)
	}
	if cfg.Version != "1.0" {
		t.Errorf("Version = %q", cfg.Version)
	}
}
