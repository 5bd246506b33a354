package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cutplan/internal/model"
)

func TestExportAndImportAllData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfWidth = 2.0
	inv := model.DefaultInventory()
	inv.AddOffcuts([]model.Offcut{{ID: "o1", Width: 500, Length: 500, Thickness: 18}})

	if err := ExportAllData(path, cfg, inv); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected CreatedAt to be set")
	}
	if backup.Config.DefaultKerfWidth != 2.0 {
		t.Errorf("expected kerf 2.0, got %f", backup.Config.DefaultKerfWidth)
	}
	if len(backup.Inventory.Stocks) != len(inv.Stocks) {
		t.Errorf("expected %d stocks, got %d", len(inv.Stocks), len(backup.Inventory.Stocks))
	}
	if len(backup.Inventory.Offcuts) != 1 || backup.Inventory.Offcuts[0].ID != "o1" {
		t.Errorf("unexpected offcuts %+v", backup.Inventory.Offcuts)
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	if _, err := ImportAllData(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportAllDataInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestImportAllDataMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"config": {}}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ImportAllData(path); err == nil {
		t.Error("expected error for missing version")
	}
}

func TestImportAllDataNormalizesLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0", "config": {"recent_projects": null}}`), 0644); err != nil {
		t.Fatal(err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Config.RecentProjects == nil || backup.Inventory.Stocks == nil || backup.Inventory.Offcuts == nil {
		t.Error("expected nil lists to be normalised")
	}
}
