package engine

import (
	"github.com/piwi3910/cutplan/internal/model"
)

// Optimizer runs the cutting-stock assignment with a fixed set of settings.
type Optimizer struct {
	Settings model.CutSettings
}

func New(settings model.CutSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// Optimize assigns cuts to sheets using the optimizer's kerf width.
func (o *Optimizer) Optimize(cuts []model.Cut, sheets []model.Sheet) model.OptimizeResult {
	return Optimize(cuts, sheets, o.Settings.KerfWidth)
}

// Optimize assigns every unit of the requested cuts to stock of identical
// thickness, filling high-priority and larger sheets first. It never fails:
// pieces that cannot be placed are returned in Unplaced with a reason.
//
// The caller's slices are never modified or retained, so concurrent calls
// on shared inputs are safe. Inputs are expected to be validated already
// (see model.ValidateInputs).
func Optimize(cuts []model.Cut, sheets []model.Sheet, kerf float64) model.OptimizeResult {
	remaining := ExpandCuts(cuts)
	SortPieces(remaining)

	units := ExpandSheets(sheets)
	SortStockUnits(units)

	available := make(map[float64]bool, len(units))
	for _, u := range units {
		available[u.Thickness] = true
	}

	result := model.OptimizeResult{}
	for _, unit := range units {
		if len(remaining) == 0 {
			break
		}

		matching, other := partitionByThickness(remaining, unit.Thickness)
		if len(matching) == 0 {
			continue
		}

		placements, leftover := newSheetPacker(unit, matching, kerf).pack()
		result.Placements = append(result.Placements, placements...)
		remaining = append(leftover, other...)
	}

	for _, p := range remaining {
		reason := model.ReasonInsufficientSpace
		if !available[p.Thickness] {
			reason = model.ReasonNoMatchingThickness
		}
		result.Unplaced = append(result.Unplaced, model.UnplacedPiece{Piece: p, Reason: reason})
	}
	return result
}

// partitionByThickness splits pieces into those with exactly the given
// thickness and all others, preserving order in both.
func partitionByThickness(pieces []model.Piece, thickness float64) (matching, other []model.Piece) {
	for _, p := range pieces {
		if p.Thickness == thickness {
			matching = append(matching, p)
		} else {
			other = append(other, p)
		}
	}
	return matching, other
}
