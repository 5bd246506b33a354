package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cutplan/internal/model"
)

func TestCanFit_Normal(t *testing.T) {
	region := model.FreeRegion{Width: 100, Length: 200}

	fits, rotated := canFit(50, 100, 3, region)

	assert.True(t, fits)
	assert.False(t, rotated)
}

func TestCanFit_Rotated(t *testing.T) {
	region := model.FreeRegion{Width: 100, Length: 200}

	fits, rotated := canFit(150, 80, 3, region)

	assert.True(t, fits)
	assert.True(t, rotated, "150 wide only fits when turned")
}

func TestCanFit_NoFit(t *testing.T) {
	region := model.FreeRegion{Width: 100, Length: 200}

	fits, _ := canFit(300, 300, 3, region)

	assert.False(t, fits)
}

func TestCanFit_PrefersUnrotatedWhenBothFit(t *testing.T) {
	region := model.FreeRegion{Width: 1000, Length: 1000}

	fits, rotated := canFit(300, 200, 3, region)

	assert.True(t, fits)
	assert.False(t, rotated)
}

func TestCanFit_KerfCountsAgainstExactFit(t *testing.T) {
	region := model.FreeRegion{Width: 100, Length: 100}

	fits, _ := canFit(100, 100, 0, region)
	assert.True(t, fits, "exact fit without kerf")

	fits, _ = canFit(98, 98, 3, region)
	assert.False(t, fits, "98 + 3 exceeds 100")

	fits, _ = canFit(97, 97, 3, region)
	assert.True(t, fits, "97 + 3 equals 100")
}

func TestSplitRegion_RightAndTop(t *testing.T) {
	region := model.FreeRegion{X: 0, Y: 0, Width: 100, Length: 200}

	children := splitRegion(region, 50, 100, 3)

	require.Len(t, children, 2)
	assert.Equal(t, model.FreeRegion{X: 53, Y: 0, Width: 47, Length: 200}, children[0], "right region spans full length")
	assert.Equal(t, model.FreeRegion{X: 0, Y: 103, Width: 53, Length: 97}, children[1], "top region only spans the padded footprint")
}

func TestSplitRegion_OffsetOrigin(t *testing.T) {
	region := model.FreeRegion{X: 200, Y: 300, Width: 400, Length: 400}

	children := splitRegion(region, 100, 100, 0)

	require.Len(t, children, 2)
	assert.Equal(t, model.FreeRegion{X: 300, Y: 300, Width: 300, Length: 400}, children[0])
	assert.Equal(t, model.FreeRegion{X: 200, Y: 400, Width: 100, Length: 300}, children[1])
}

func TestSplitRegion_ExactFitLeavesNothing(t *testing.T) {
	region := model.FreeRegion{Width: 103, Length: 103}

	children := splitRegion(region, 100, 100, 3)

	assert.Empty(t, children)
}

func TestSplitRegion_NeverProducesEmptyRegions(t *testing.T) {
	cases := []struct {
		w, l, pw, pl, kerf float64
	}{
		{100, 100, 100, 50, 0},
		{100, 100, 50, 100, 0},
		{100, 100, 97, 97, 3},
		{100, 100, 10, 10, 3},
		{1220, 2440, 600, 2437, 3},
	}
	for _, c := range cases {
		for _, child := range splitRegion(model.FreeRegion{Width: c.w, Length: c.l}, c.pw, c.pl, c.kerf) {
			assert.Greater(t, child.Width, 0.0)
			assert.Greater(t, child.Length, 0.0)
		}
	}
}

func testStock(w, l float64) model.StockUnit {
	return model.StockUnit{ID: "s1", SourceID: "s1", Label: "Test Sheet", Width: w, Length: l, Thickness: 18}
}

func testPiece(id string, w, l float64) model.Piece {
	return model.Piece{ID: id, Label: id, Width: w, Length: l, Thickness: 18, Quantity: 1}
}

func TestPack_TwoPieces(t *testing.T) {
	pieces := []model.Piece{testPiece("cut1", 400, 400), testPiece("cut2", 300, 300)}

	placements, remaining := newSheetPacker(testStock(1000, 2000), pieces, 3).pack()

	require.Len(t, placements, 2)
	assert.Empty(t, remaining)
	assert.Equal(t, "cut1", placements[0].Piece.ID)
	assert.Equal(t, 0.0, placements[0].X)
	assert.Equal(t, 0.0, placements[0].Y)
	assert.False(t, placements[0].Rotated)
	// Second piece goes into the right remainder, which precedes the top one
	assert.Equal(t, "cut2", placements[1].Piece.ID)
	assert.Equal(t, 403.0, placements[1].X)
	assert.Equal(t, 0.0, placements[1].Y)
}

func TestPack_RegionOrderRegression(t *testing.T) {
	pieces := []model.Piece{
		testPiece("a", 500, 500),
		testPiece("b", 500, 500),
		testPiece("c", 500, 500),
		testPiece("d", 500, 500),
	}

	placements, remaining := newSheetPacker(testStock(1000, 1000), pieces, 0).pack()

	type pos struct {
		ID   string
		X, Y float64
	}
	var got []pos
	for _, p := range placements {
		got = append(got, pos{p.Piece.ID, p.X, p.Y})
	}
	want := []pos{
		{"a", 0, 0},
		{"b", 500, 0},
		{"c", 0, 500},
		{"d", 500, 500},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, remaining)
}

func TestPack_SkipsPieceThatDoesNotFit(t *testing.T) {
	pieces := []model.Piece{
		testPiece("big", 600, 600),
		testPiece("s1", 200, 200),
		testPiece("s2", 200, 200),
	}

	placements, remaining := newSheetPacker(testStock(500, 500), pieces, 0).pack()

	require.Len(t, placements, 2)
	assert.Equal(t, "s1", placements[0].Piece.ID)
	assert.Equal(t, "s2", placements[1].Piece.ID)
	assert.Equal(t, 200.0, placements[1].X)
	require.Len(t, remaining, 1)
	assert.Equal(t, "big", remaining[0].ID)
}

func TestPack_RetriesShiftedSlotAfterPlacement(t *testing.T) {
	// After "mid" is placed, "tail" shifts into its slot and must still be tried.
	pieces := []model.Piece{
		testPiece("huge", 900, 900),
		testPiece("mid", 300, 300),
		testPiece("tail", 100, 100),
	}

	placements, remaining := newSheetPacker(testStock(500, 500), pieces, 0).pack()

	require.Len(t, placements, 2)
	assert.Equal(t, "mid", placements[0].Piece.ID)
	assert.Equal(t, "tail", placements[1].Piece.ID)
	require.Len(t, remaining, 1)
	assert.Equal(t, "huge", remaining[0].ID)
}

func TestPack_RotatesWhenOnlyRotatedFits(t *testing.T) {
	pieces := []model.Piece{testPiece("long", 800, 400)}

	placements, remaining := newSheetPacker(testStock(500, 1000), pieces, 0).pack()

	require.Len(t, placements, 1)
	assert.Empty(t, remaining)
	assert.True(t, placements[0].Rotated)
	assert.Equal(t, 400.0, placements[0].PlacedWidth())
	assert.Equal(t, 800.0, placements[0].PlacedLength())
}

func TestPack_DoesNotTouchCallerSlice(t *testing.T) {
	pieces := []model.Piece{testPiece("a", 100, 100), testPiece("b", 100, 100), testPiece("c", 900, 900)}
	before := append([]model.Piece(nil), pieces...)

	newSheetPacker(testStock(500, 500), pieces, 3).pack()

	assert.Equal(t, before, pieces)
}
