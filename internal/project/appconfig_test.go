package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/cutplan/internal/model"
)

func TestSaveAndLoadAppConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfWidth = 4.0
	cfg.DefaultPriority = model.PriorityLow
	cfg.ReportTitle = "Kitchen"
	cfg.RecentProjects = []string{"/tmp/proj1.cutplan", "/tmp/proj2.cutplan"}

	if err := SaveAppConfig(path, cfg); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}

	if loaded.DefaultKerfWidth != 4.0 {
		t.Errorf("expected DefaultKerfWidth=4.0, got %f", loaded.DefaultKerfWidth)
	}
	if loaded.DefaultPriority != model.PriorityLow {
		t.Errorf("expected DefaultPriority=low, got %s", loaded.DefaultPriority)
	}
	if loaded.ReportTitle != "Kitchen" {
		t.Errorf("expected ReportTitle=Kitchen, got %s", loaded.ReportTitle)
	}
	if len(loaded.RecentProjects) != 2 {
		t.Errorf("expected 2 recent projects, got %d", len(loaded.RecentProjects))
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}

	defaults := model.DefaultAppConfig()
	if cfg.DefaultKerfWidth != defaults.DefaultKerfWidth {
		t.Errorf("expected default kerf width %f, got %f", defaults.DefaultKerfWidth, cfg.DefaultKerfWidth)
	}
}

func TestLoadAppConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_kerf_width": 2.5}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.DefaultKerfWidth != 2.5 {
		t.Errorf("expected kerf 2.5, got %f", cfg.DefaultKerfWidth)
	}
	if cfg.ReportTitle != "Cutting Plan" {
		t.Errorf("expected default report title, got %q", cfg.ReportTitle)
	}
}

func TestLoadAppConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{invalid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadAppConfig(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
	if !strings.Contains(err.Error(), "parse config") {
		t.Errorf("expected parse context in error, got %v", err)
	}
}

func TestSaveAppConfigCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "c", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("expected config file to exist")
	}
}

func TestLoadAppConfigNilRecentProjects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"default_kerf_width": 3.0, "recent_projects": null}`), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil after loading")
	}
}

func TestDefaultPaths(t *testing.T) {
	if filepath.Base(DefaultConfigDir()) != ".cutplan" {
		t.Errorf("unexpected config dir %s", DefaultConfigDir())
	}
	if filepath.Dir(DefaultConfigPath()) != DefaultConfigDir() {
		t.Errorf("config path %s not inside %s", DefaultConfigPath(), DefaultConfigDir())
	}
	if filepath.Dir(DefaultInventoryPath()) != DefaultConfigDir() {
		t.Errorf("inventory path %s not inside %s", DefaultInventoryPath(), DefaultConfigDir())
	}
}
