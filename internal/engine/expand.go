package engine

import (
	"fmt"

	"github.com/piwi3910/cutplan/internal/model"
)

// ExpandCuts turns quantity-bearing cut requests into one Piece per
// physical unit. The input slice is only read.
func ExpandCuts(cuts []model.Cut) []model.Piece {
	total := 0
	for _, c := range cuts {
		total += c.Quantity
	}
	pieces := make([]model.Piece, 0, total)
	for _, c := range cuts {
		for i := 0; i < c.Quantity; i++ {
			pieces = append(pieces, model.Piece{
				ID:        c.ID,
				Label:     c.Label,
				Width:     c.Width,
				Length:    c.Length,
				Thickness: c.Thickness,
				Quantity:  1,
			})
		}
	}
	return pieces
}

// ExpandSheets turns quantity-bearing sheet requests into one StockUnit per
// physical board. A sheet with quantity 1 keeps its ID and label; otherwise
// unit i gets ID "<id>#<i>" and label "<label> #<i+1>".
func ExpandSheets(sheets []model.Sheet) []model.StockUnit {
	total := 0
	for _, s := range sheets {
		total += s.Quantity
	}
	units := make([]model.StockUnit, 0, total)
	for _, s := range sheets {
		for i := 0; i < s.Quantity; i++ {
			u := model.StockUnit{
				ID:        s.ID,
				SourceID:  s.ID,
				Label:     s.Label,
				Width:     s.Width,
				Length:    s.Length,
				Thickness: s.Thickness,
				Priority:  s.Priority,
			}
			if s.Quantity > 1 {
				u.ID = InstanceID(s.ID, i)
				u.Label = fmt.Sprintf("%s #%d", s.Label, i+1)
			}
			units = append(units, u)
		}
	}
	return units
}

// InstanceID returns the identity of the ordinal-th unit of a multi-quantity sheet.
func InstanceID(sheetID string, ordinal int) string {
	return fmt.Sprintf("%s#%d", sheetID, ordinal)
}
