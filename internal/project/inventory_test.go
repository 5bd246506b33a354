package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cutplan/internal/model"
)

func TestSaveAndLoadInventory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.json")

	inv := model.Inventory{
		Stocks:  []model.StockPreset{model.NewStockPreset("Oak 2000x600x27", 600, 2000, 27, "Oak")},
		Offcuts: []model.Offcut{{ID: "o1", SheetLabel: "Oak", Width: 300, Length: 600, Thickness: 27}},
	}
	if err := SaveInventory(path, inv); err != nil {
		t.Fatalf("SaveInventory failed: %v", err)
	}

	loaded, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(loaded.Stocks) != 1 || loaded.Stocks[0].Thickness != 27 {
		t.Errorf("unexpected stocks %+v", loaded.Stocks)
	}
	if len(loaded.Offcuts) != 1 || loaded.Offcuts[0].ID != "o1" {
		t.Errorf("unexpected offcuts %+v", loaded.Offcuts)
	}
}

func TestLoadInventoryCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "inventory.json")

	inv, err := LoadInventory(path)
	if err != nil {
		t.Fatalf("LoadInventory failed: %v", err)
	}
	if len(inv.Stocks) != len(model.DefaultInventory().Stocks) {
		t.Errorf("expected default stocks, got %d", len(inv.Stocks))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected default inventory to be written: %v", err)
	}
}

func TestImportInventoryMerges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "import.json")

	existing := model.Inventory{
		Stocks:  []model.StockPreset{{ID: "s1", Name: "A", Width: 100, Length: 100, Thickness: 18}},
		Offcuts: []model.Offcut{{ID: "o1"}},
	}
	incoming := model.Inventory{
		Stocks: []model.StockPreset{
			{ID: "s1", Name: "A duplicate"},
			{ID: "s2", Name: "B", Width: 200, Length: 200, Thickness: 18},
		},
		Offcuts: []model.Offcut{{ID: "o1"}, {ID: "o2"}},
	}
	if err := SaveInventory(path, incoming); err != nil {
		t.Fatal(err)
	}

	merged, err := ImportInventory(path, existing)
	if err != nil {
		t.Fatalf("ImportInventory failed: %v", err)
	}
	if len(merged.Stocks) != 2 || merged.Stocks[0].Name != "A" || merged.Stocks[1].ID != "s2" {
		t.Errorf("unexpected merged stocks %+v", merged.Stocks)
	}
	if len(merged.Offcuts) != 2 {
		t.Errorf("expected 2 offcuts after merge, got %d", len(merged.Offcuts))
	}
}

func TestImportInventoryMissingFileKeepsExisting(t *testing.T) {
	existing := model.DefaultInventory()
	got, err := ImportInventory(filepath.Join(t.TempDir(), "nope.json"), existing)
	if err == nil {
		t.Error("expected error for missing file")
	}
	if len(got.Stocks) != len(existing.Stocks) {
		t.Error("existing inventory should be returned unchanged")
	}
}
