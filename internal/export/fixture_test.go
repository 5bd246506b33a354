package export

import (
	"time"

	"github.com/piwi3910/cutplan/internal/model"
)

// buildTestPlan creates a realistic two-sheet plan with one unplaced cut
// and one spare sheet.
func buildTestPlan() model.Plan {
	first := model.SheetPlan{
		SheetID: "b", InstanceID: "b#0", SheetLabel: "Birch #1",
		Width: 1220, Length: 2440, Thickness: 18,
		Assignments: []model.Assignment{
			{CutID: "side", CutLabel: "Side Panel", SheetID: "b", SheetLabel: "Birch #1", X: 0, Y: 0, Sequence: 1, Width: 600, Length: 720, Thickness: 18},
			{CutID: "side", CutLabel: "Side Panel", SheetID: "b", SheetLabel: "Birch #1", X: 603, Y: 0, Sequence: 2, Width: 600, Length: 720, Thickness: 18},
			{CutID: "shelf", CutLabel: "Shelf", SheetID: "b", SheetLabel: "Birch #1", X: 0, Y: 723, Rotation: 90, Sequence: 3, Width: 300, Length: 560, Thickness: 18},
		},
	}
	second := model.SheetPlan{
		SheetID: "m", InstanceID: "m", SheetLabel: "MDF",
		Width: 1200, Length: 600, Thickness: 12,
		Assignments: []model.Assignment{
			{CutID: "back", CutLabel: "Back Panel", SheetID: "m", SheetLabel: "MDF", X: 0, Y: 0, Sequence: 1, Width: 800, Length: 500, Thickness: 12},
		},
	}
	plan := model.Plan{
		ID:         "plan-test",
		CreatedAt:  time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		KerfWidth:  3,
		SheetsUsed: 2,
		Sheets:     []model.SheetPlan{first, second},
		Unplaced: []model.UnplacedCut{
			{CutID: "glass", CutLabel: "Glass Door", Width: 400, Length: 700, Thickness: 4,
				Reason: model.ReasonNoMatchingThickness, Message: "No stock sheet with 4mm thickness"},
		},
		Unused: []model.UnusedSheet{
			{SheetID: "b", Label: "Birch", Width: 1220, Length: 2440, Thickness: 18, Quantity: 1, Priority: model.PriorityNormal},
		},
	}
	for i := range plan.Sheets {
		sp := &plan.Sheets[i]
		for _, a := range sp.Assignments {
			sp.UsedArea += a.Width * a.Length
		}
		sp.WasteArea = sp.TotalArea() - sp.UsedArea
		plan.TotalWaste += sp.WasteArea
	}
	return plan
}

func emptyPlan() model.Plan {
	return model.Plan{ID: "empty", Sheets: []model.SheetPlan{}}
}
