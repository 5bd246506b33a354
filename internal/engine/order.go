package engine

import (
	"sort"

	"github.com/piwi3910/cutplan/internal/model"
)

// SortPieces orders pieces by descending area, largest first. Equal areas
// keep their relative order.
func SortPieces(pieces []model.Piece) {
	sort.SliceStable(pieces, func(i, j int) bool {
		return pieces[i].Area() > pieces[j].Area()
	})
}

// SortStockUnits orders stock by priority rank (high first) and, within
// the same priority, by descending area.
func SortStockUnits(units []model.StockUnit) {
	sort.SliceStable(units, func(i, j int) bool {
		ri, rj := units[i].Priority.Rank(), units[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return units[i].Area() > units[j].Area()
	})
}
