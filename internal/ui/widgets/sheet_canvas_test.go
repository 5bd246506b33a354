package widgets

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/cutplan/internal/model"
)

func testSheetPlan() model.SheetPlan {
	return model.SheetPlan{
		SheetID: "b", SheetLabel: "Birch", Width: 1000, Length: 2000, Thickness: 18,
		Assignments: []model.Assignment{
			{CutID: "side", CutLabel: "Side", Sequence: 1, Width: 400, Length: 800},
			{CutID: "side", CutLabel: "Side", X: 403, Sequence: 2, Width: 400, Length: 800},
			{CutID: "shelf", CutLabel: "Shelf", Y: 803, Rotation: 90, Sequence: 3, Width: 100, Length: 900},
		},
		UsedArea: 2*400*800 + 100*900,
	}
}

func TestSheetCanvas_MinSizeKeepsAspect(t *testing.T) {
	test.NewTempApp(t)
	sc := NewSheetCanvas(testSheetPlan(), nil, 600, 400)

	size := sc.MinSize()

	if size.Width != 200 || size.Height != 400 {
		t.Errorf("expected 200x400, got %.0fx%.0f", size.Width, size.Height)
	}
}

func TestSheetCanvas_DrawsEveryAssignment(t *testing.T) {
	test.NewTempApp(t)
	sc := NewSheetCanvas(testSheetPlan(), nil, 600, 400)

	r := test.TempWidgetRenderer(t, sc)

	rects, texts := 0, 0
	for _, o := range r.Objects() {
		switch o.(type) {
		case *canvas.Rectangle:
			rects++
		case *canvas.Text:
			texts++
		}
	}
	if rects != 2+3 {
		t.Errorf("expected background, border and 3 cut rectangles, got %d", rects)
	}
	if texts != 3 {
		t.Errorf("expected 3 labels, got %d", texts)
	}
}

func TestSheetCanvas_SharedColorsPerCut(t *testing.T) {
	colors := make(map[string]int)
	sc := NewSheetCanvas(testSheetPlan(), colors, 600, 400)

	first := sc.colorFor("side")
	if sc.colorFor("shelf") == first {
		t.Error("different cuts should get different colors")
	}
	other := NewSheetCanvas(testSheetPlan(), colors, 600, 400)
	if other.colorFor("side") != first {
		t.Error("canvases sharing a color map should agree on a cut's color")
	}
}

func TestRenderPlan_Empty(t *testing.T) {
	test.NewTempApp(t)

	if _, ok := RenderPlan(nil).(*widget.Label); !ok {
		t.Error("nil plan should render a placeholder label")
	}
}

func TestRenderPlan_Sheets(t *testing.T) {
	test.NewTempApp(t)
	plan := &model.Plan{SheetsUsed: 1, Sheets: []model.SheetPlan{testSheetPlan()}}

	scroll, ok := RenderPlan(plan).(*container.Scroll)
	if !ok {
		t.Fatal("expected a scroll container")
	}
	box, ok := scroll.Content.(*fyne.Container)
	if !ok {
		t.Fatal("expected a box inside the scroll container")
	}
	canvases := 0
	for _, o := range box.Objects {
		if _, ok := o.(*SheetCanvas); ok {
			canvases++
		}
	}
	if canvases != 1 {
		t.Errorf("expected 1 sheet canvas, got %d", canvases)
	}
}

func TestThicknessBreakdown(t *testing.T) {
	thin := model.SheetPlan{Width: 100, Length: 100, Thickness: 6, UsedArea: 5000,
		Assignments: []model.Assignment{{CutID: "x"}}}
	plan := model.Plan{Sheets: []model.SheetPlan{testSheetPlan(), thin, thin}}

	lines := ThicknessBreakdown(plan)

	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
	if lines[0] != "  18 mm: 1 sheet(s), 3 cuts, 36.5% efficiency" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if lines[1] != "  6 mm: 2 sheet(s), 2 cuts, 50.0% efficiency" {
		t.Errorf("unexpected second line %q", lines[1])
	}
}
