package widgets

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/piwi3910/cutplan/internal/model"
)

// Cut colors, repeated units of one cut share a color.
var cutColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// SheetCanvas draws one sheet plan scaled into a bounding box, with each
// assignment labelled by its cutting sequence number.
type SheetCanvas struct {
	widget.BaseWidget
	sheet     model.SheetPlan
	colors    map[string]int
	maxWidth  float32
	maxHeight float32
}

// NewSheetCanvas creates a canvas for sp. colors maps cut IDs to palette
// slots and is shared between the canvases of one plan; pass nil for a
// private map.
func NewSheetCanvas(sp model.SheetPlan, colors map[string]int, maxW, maxH float32) *SheetCanvas {
	if colors == nil {
		colors = make(map[string]int)
	}
	sc := &SheetCanvas{
		sheet:     sp,
		colors:    colors,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	sc.ExtendBaseWidget(sc)
	return sc
}

func (sc *SheetCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := &sheetCanvasRenderer{sc: sc}
	r.rebuild()
	return r
}

// scale returns the factor that fits the sheet inside the bounding box.
func (sc *SheetCanvas) scale() float32 {
	w, l := float32(sc.sheet.Width), float32(sc.sheet.Length)
	if w <= 0 || l <= 0 {
		return 0
	}
	return min(sc.maxWidth/w, sc.maxHeight/l)
}

func (sc *SheetCanvas) colorFor(cutID string) color.NRGBA {
	i, ok := sc.colors[cutID]
	if !ok {
		i = len(sc.colors)
		sc.colors[cutID] = i
	}
	return cutColors[i%len(cutColors)]
}

type sheetCanvasRenderer struct {
	sc      *SheetCanvas
	objects []fyne.CanvasObject
}

func (r *sheetCanvasRenderer) rebuild() {
	r.objects = nil

	sp := r.sc.sheet
	scale := r.sc.scale()
	canvasW := float32(sp.Width) * scale
	canvasL := float32(sp.Length) * scale

	bg := canvas.NewRectangle(color.NRGBA{R: 210, G: 180, B: 140, A: 255}) // wood
	bg.Resize(fyne.NewSize(canvasW, canvasL))
	r.objects = append(r.objects, bg)

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasL))
	r.objects = append(r.objects, border)

	for _, a := range sp.Assignments {
		w := float32(a.PlacedWidth()) * scale
		l := float32(a.PlacedLength()) * scale
		pos := fyne.NewPos(float32(a.X)*scale, float32(a.Y)*scale)

		rect := canvas.NewRectangle(r.sc.colorFor(a.CutID))
		rect.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		rect.StrokeWidth = 1
		rect.Resize(fyne.NewSize(w, l))
		rect.Move(pos)
		r.objects = append(r.objects, rect)

		if w > 30 && l > 16 {
			text := fmt.Sprintf("%d. %s", a.Sequence, a.CutLabel)
			if l > 30 {
				text = fmt.Sprintf("%d. %s\n%.0fx%.0f", a.Sequence, a.CutLabel, a.Width, a.Length)
			}
			label := canvas.NewText(text, color.Black)
			label.TextSize = 10
			label.Move(pos.AddXY(3, 2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *sheetCanvasRenderer) Layout(fyne.Size)             {}
func (r *sheetCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *sheetCanvasRenderer) Destroy()                     {}
func (r *sheetCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *sheetCanvasRenderer) MinSize() fyne.Size {
	scale := r.sc.scale()
	return fyne.NewSize(float32(r.sc.sheet.Width)*scale, float32(r.sc.sheet.Length)*scale)
}

// RenderPlan creates a scrollable view of every sheet of a plan followed by
// the unplaced cuts and a summary line.
func RenderPlan(plan *model.Plan) fyne.CanvasObject {
	if plan == nil || (len(plan.Sheets) == 0 && len(plan.Unplaced) == 0) {
		return widget.NewLabel("No plan yet. Open a project or add cuts and sheets, then click Optimize.")
	}

	colors := make(map[string]int)
	var items []fyne.CanvasObject

	for i, sp := range plan.Sheets {
		header := widget.NewLabel(fmt.Sprintf(
			"Sheet %d: %s (%.0f × %.0f × %g mm) - %d cuts, %.1f%% efficiency",
			i+1, sp.SheetLabel, sp.Width, sp.Length, sp.Thickness,
			len(sp.Assignments), sp.Efficiency(),
		))
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header, NewSheetCanvas(sp, colors, 600, 400), widget.NewSeparator())
	}

	if len(plan.Unplaced) > 0 {
		warning := widget.NewLabel(fmt.Sprintf("WARNING: %d cuts could not be placed:", len(plan.Unplaced)))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
		for _, u := range plan.Unplaced {
			items = append(items, widget.NewLabel(fmt.Sprintf("  %s - %s", u.CutLabel, u.Message)))
		}
	}

	if lines := ThicknessBreakdown(*plan); len(lines) > 1 {
		items = append(items, widget.NewSeparator())
		header := widget.NewLabel("By Thickness:")
		header.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, header)
		for _, line := range lines {
			items = append(items, widget.NewLabel(line))
		}
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Total: %d sheets used, %d cuts placed, %.1f%% overall efficiency",
		plan.SheetsUsed, plan.AssignmentCount(), plan.TotalEfficiency(),
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// ThicknessBreakdown summarises used sheets per thickness in first-seen order.
func ThicknessBreakdown(plan model.Plan) []string {
	type stats struct {
		sheets, cuts int
		used, total  float64
	}
	var order []float64
	byThickness := make(map[float64]*stats)

	for _, sp := range plan.Sheets {
		s, ok := byThickness[sp.Thickness]
		if !ok {
			s = &stats{}
			byThickness[sp.Thickness] = s
			order = append(order, sp.Thickness)
		}
		s.sheets++
		s.cuts += len(sp.Assignments)
		s.used += sp.UsedArea
		s.total += sp.TotalArea()
	}

	lines := make([]string, 0, len(order))
	for _, t := range order {
		s := byThickness[t]
		eff := 0.0
		if s.total > 0 {
			eff = s.used / s.total * 100
		}
		lines = append(lines, fmt.Sprintf("  %g mm: %d sheet(s), %d cuts, %.1f%% efficiency", t, s.sheets, s.cuts, eff))
	}
	return lines
}
