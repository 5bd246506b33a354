package model

import (
	"github.com/google/uuid"
)

// StockPreset represents a reusable stock sheet definition.
type StockPreset struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Width     float64 `json:"width"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Material  string  `json:"material"`
}

// NewStockPreset creates a new StockPreset with a generated ID.
func NewStockPreset(name string, width, length, thickness float64, material string) StockPreset {
	return StockPreset{
		ID:        uuid.New().String()[:8],
		Name:      name,
		Width:     width,
		Length:    length,
		Thickness: thickness,
		Material:  material,
	}
}

// ToSheet converts a StockPreset into a sheet request.
func (sp StockPreset) ToSheet(qty int, priority Priority) Sheet {
	return NewSheet(sp.Name, sp.Width, sp.Length, sp.Thickness, priority, qty)
}

// Inventory is the workshop stock kept between projects: board presets
// and remnants left over from earlier plans.
type Inventory struct {
	Stocks  []StockPreset `json:"stocks"`
	Offcuts []Offcut      `json:"offcuts"`
}

// DefaultInventory returns an inventory populated with common boards.
func DefaultInventory() Inventory {
	return Inventory{
		Stocks: []StockPreset{
			NewStockPreset("Plywood 2440x1220x18", 1220, 2440, 18, "Plywood"),
			NewStockPreset("Plywood 2440x1220x12", 1220, 2440, 12, "Plywood"),
			NewStockPreset("MDF 2440x1220x18", 1220, 2440, 18, "MDF"),
			NewStockPreset("MDF 2800x2070x18", 2070, 2800, 18, "MDF"),
			NewStockPreset("Birch 1525x1525x18", 1525, 1525, 18, "Birch plywood"),
			NewStockPreset("Hardboard 2440x1220x3", 1220, 2440, 3, "Hardboard"),
		},
		Offcuts: []Offcut{},
	}
}

// FindStockByID returns a pointer to the stock preset with the given ID, or nil.
func (inv *Inventory) FindStockByID(id string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].ID == id {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// FindStockByName returns a pointer to the first stock preset with the given name, or nil.
func (inv *Inventory) FindStockByName(name string) *StockPreset {
	for i := range inv.Stocks {
		if inv.Stocks[i].Name == name {
			return &inv.Stocks[i]
		}
	}
	return nil
}

// StockNames returns a list of stock preset names for UI dropdowns.
func (inv *Inventory) StockNames() []string {
	names := make([]string, len(inv.Stocks))
	for i, s := range inv.Stocks {
		names[i] = s.Name
	}
	return names
}

// AddOffcuts stores remnants, skipping any whose ID is already held.
func (inv *Inventory) AddOffcuts(offcuts []Offcut) int {
	held := make(map[string]bool, len(inv.Offcuts))
	for _, o := range inv.Offcuts {
		held[o.ID] = true
	}
	added := 0
	for _, o := range offcuts {
		if held[o.ID] {
			continue
		}
		inv.Offcuts = append(inv.Offcuts, o)
		held[o.ID] = true
		added++
	}
	return added
}

// TakeOffcuts returns the stored remnants of the given thicknesses as
// high-priority sheet requests. With no thicknesses every remnant is returned.
// Labels are made unique so the sheets can join a project's list.
func (inv *Inventory) TakeOffcuts(thicknesses ...float64) []Sheet {
	want := make(map[float64]bool, len(thicknesses))
	for _, t := range thicknesses {
		want[t] = true
	}
	seen := make(map[string]int)
	var sheets []Sheet
	for _, o := range inv.Offcuts {
		if len(want) > 0 && !want[o.Thickness] {
			continue
		}
		s := o.ToSheet()
		seen[s.Label]++
		if n := seen[s.Label]; n > 1 {
			s.Label = o.label(n)
		}
		sheets = append(sheets, s)
	}
	return sheets
}

// RemoveOffcutsUsed drops the remnants that the plan cut into and returns
// how many were removed.
func (inv *Inventory) RemoveOffcutsUsed(plan Plan) int {
	used := make(map[string]bool, len(plan.Sheets))
	for _, sp := range plan.Sheets {
		used[sp.SheetID] = true
	}
	kept := inv.Offcuts[:0:0]
	for _, o := range inv.Offcuts {
		if !used[o.ID] {
			kept = append(kept, o)
		}
	}
	removed := len(inv.Offcuts) - len(kept)
	inv.Offcuts = kept
	return removed
}
