package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/piwi3910/cutplan/internal/model"
)

// Plan validates the inputs, runs the optimizer and turns the result into a
// cutting plan with per-sheet waste and unused stock.
func (o *Optimizer) Plan(cuts []model.Cut, sheets []model.Sheet) (model.Plan, error) {
	if err := model.ValidateInputs(cuts, sheets, o.Settings.KerfWidth); err != nil {
		return model.Plan{}, fmt.Errorf("cannot optimize: %w", err)
	}

	log := Logger()
	result := o.Optimize(cuts, sheets)
	plan := BuildPlan(sheets, o.Settings.KerfWidth, result)

	for _, sp := range plan.Sheets {
		log.Debug("sheet packed",
			"sheet", sp.SheetLabel,
			"cuts", len(sp.Assignments),
			"efficiency", fmt.Sprintf("%.1f%%", sp.Efficiency()))
	}
	for _, u := range plan.Unplaced {
		log.Warn("cut not placed", "cut", u.CutLabel, "reason", u.Reason.String())
	}
	log.Info("plan built",
		"id", plan.ID,
		"sheets_used", plan.SheetsUsed,
		"placed", plan.AssignmentCount(),
		"unplaced", len(plan.Unplaced),
		"total_waste", plan.TotalWaste)

	return plan, nil
}

// BuildPlan groups placements by stock unit in the order units were first
// used, computes waste per unit (sheet area minus placed piece area) and
// lists stock that was never touched. sheets must be the same list that
// was passed to Optimize.
func BuildPlan(sheets []model.Sheet, kerf float64, result model.OptimizeResult) model.Plan {
	plan := model.Plan{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		KerfWidth: kerf,
		Sheets:    []model.SheetPlan{},
		Unplaced:  []model.UnplacedCut{},
		Unused:    []model.UnusedSheet{},
	}

	byUnit := make(map[string]int)
	for _, p := range result.Placements {
		idx, ok := byUnit[p.Stock.ID]
		if !ok {
			idx = len(plan.Sheets)
			byUnit[p.Stock.ID] = idx
			plan.Sheets = append(plan.Sheets, model.SheetPlan{
				SheetID:    p.Stock.SourceID,
				InstanceID: p.Stock.ID,
				SheetLabel: p.Stock.Label,
				Width:      p.Stock.Width,
				Length:     p.Stock.Length,
				Thickness:  p.Stock.Thickness,
			})
		}
		sp := &plan.Sheets[idx]
		rotation := 0
		if p.Rotated {
			rotation = 90
		}
		sp.Assignments = append(sp.Assignments, model.Assignment{
			CutID:      p.Piece.ID,
			CutLabel:   p.Piece.Label,
			SheetID:    p.Stock.SourceID,
			SheetLabel: p.Stock.Label,
			X:          p.X,
			Y:          p.Y,
			Rotation:   rotation,
			Sequence:   len(sp.Assignments) + 1,
			Width:      p.Piece.Width,
			Length:     p.Piece.Length,
			Thickness:  p.Piece.Thickness,
		})
		sp.UsedArea += p.Area()
	}

	usedPerSheet := make(map[string]int)
	for i := range plan.Sheets {
		sp := &plan.Sheets[i]
		sp.WasteArea = sp.TotalArea() - sp.UsedArea
		plan.TotalWaste += sp.WasteArea
		usedPerSheet[sp.SheetID]++
	}
	plan.SheetsUsed = len(plan.Sheets)

	for _, u := range result.Unplaced {
		plan.Unplaced = append(plan.Unplaced, model.UnplacedCut{
			CutID:     u.Piece.ID,
			CutLabel:  u.Piece.Label,
			Width:     u.Piece.Width,
			Length:    u.Piece.Length,
			Thickness: u.Piece.Thickness,
			Reason:    u.Reason,
			Message:   u.Message(),
		})
	}

	for _, s := range sheets {
		left := s.Quantity - usedPerSheet[s.ID]
		if left <= 0 {
			continue
		}
		plan.Unused = append(plan.Unused, model.UnusedSheet{
			SheetID:   s.ID,
			Label:     s.Label,
			Width:     s.Width,
			Length:    s.Length,
			Thickness: s.Thickness,
			Quantity:  left,
			Priority:  s.Priority,
		})
	}

	return plan
}
