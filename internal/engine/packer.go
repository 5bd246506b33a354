package engine

import "github.com/piwi3910/cutplan/internal/model"

// canFit reports whether a piece of w x l fits in region with kerf clearance
// added once per dimension, and whether it has to be turned 90 degrees to
// do so. The unrotated orientation wins when both fit.
func canFit(w, l, kerf float64, region model.FreeRegion) (fits, rotated bool) {
	if w+kerf <= region.Width && l+kerf <= region.Length {
		return true, false
	}
	if l+kerf <= region.Width && w+kerf <= region.Length {
		return true, true
	}
	return false, false
}

// splitRegion makes a single guillotine cut around a piece placed at the
// region origin with footprint placedW x placedL. It returns the right
// remainder (full region length) and the top remainder (only as wide as
// the padded footprint), omitting either when it would be empty.
func splitRegion(region model.FreeRegion, placedW, placedL, kerf float64) []model.FreeRegion {
	pw := placedW + kerf
	pl := placedL + kerf

	children := make([]model.FreeRegion, 0, 2)
	if region.Width > pw {
		children = append(children, model.FreeRegion{
			X:      region.X + pw,
			Y:      region.Y,
			Width:  region.Width - pw,
			Length: region.Length,
		})
	}
	if region.Length > pl {
		children = append(children, model.FreeRegion{
			X:      region.X,
			Y:      region.Y + pl,
			Width:  pw,
			Length: region.Length - pl,
		})
	}
	return children
}

// sheetPacker greedily fills one stock unit. It owns its free-region list
// and its working copy of the pieces; neither is shared with the caller.
type sheetPacker struct {
	stock   model.StockUnit
	kerf    float64
	regions []model.FreeRegion // Scan order matters: older regions first, new children appended
	pieces  []model.Piece
}

func newSheetPacker(stock model.StockUnit, pieces []model.Piece, kerf float64) *sheetPacker {
	working := make([]model.Piece, len(pieces))
	copy(working, pieces)
	return &sheetPacker{
		stock: stock,
		kerf:  kerf,
		regions: []model.FreeRegion{
			{X: 0, Y: 0, Width: stock.Width, Length: stock.Length},
		},
		pieces: working,
	}
}

// pack places as many pieces as possible, in list order, and returns the
// placements plus the pieces that did not fit on this sheet.
//
// The cursor walks the working list. After a placement the piece is removed,
// which shifts its successor into the cursor slot; the cursor then steps
// back one position (never below 0) and scanning resumes from there. A
// piece that fits nowhere is skipped and left for a later sheet.
func (sp *sheetPacker) pack() ([]model.Placement, []model.Piece) {
	var placements []model.Placement

	cursor := 0
	for cursor < len(sp.pieces) {
		placement, ok := sp.place(sp.pieces[cursor])
		if !ok {
			cursor++
			continue
		}
		placements = append(placements, placement)
		sp.removePiece(cursor)
		if cursor > 0 {
			cursor--
		}
	}
	return placements, sp.pieces
}

// place puts piece into the first free region it fits, in current region order.
func (sp *sheetPacker) place(piece model.Piece) (model.Placement, bool) {
	for i, region := range sp.regions {
		fits, rotated := canFit(piece.Width, piece.Length, sp.kerf, region)
		if !fits {
			continue
		}
		placement := model.Placement{
			Piece:   piece,
			Stock:   sp.stock,
			X:       region.X,
			Y:       region.Y,
			Rotated: rotated,
		}
		sp.removeRegion(i)
		sp.regions = append(sp.regions, splitRegion(region, placement.PlacedWidth(), placement.PlacedLength(), sp.kerf)...)
		return placement, true
	}
	return model.Placement{}, false
}

func (sp *sheetPacker) removeRegion(i int) {
	sp.regions = append(sp.regions[:i], sp.regions[i+1:]...)
}

func (sp *sheetPacker) removePiece(i int) {
	sp.pieces = append(sp.pieces[:i], sp.pieces[i+1:]...)
}
