package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/cutplan/internal/model"
)

// sheetGap is the horizontal spacing between sheets in the drawing, in mm.
const sheetGap = 200.0

// DXFLayerName returns the layer holding the n-th (1-based) sheet layout.
func DXFLayerName(n int) string {
	return fmt.Sprintf("SHEET_%d", n)
}

// ExportDXF writes the plan as a 2D drawing for CAD or CNC software. Sheets
// are laid side by side along X, each on its own layer with the sheet
// outline, one rectangle per cut and a text label per cut. The Y axis points
// up, so plan coordinates are mirrored against the sheet length.
func ExportDXF(path string, plan model.Plan) error {
	if len(plan.Sheets) == 0 {
		return ErrEmptyPlan
	}

	d := dxf.NewDrawing()
	originX := 0.0
	for i, sp := range plan.Sheets {
		layer := DXFLayerName(i + 1)
		if _, err := d.AddLayer(layer, color.ColorNumber(1+i%6), dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("add layer %s: %w", layer, err)
		}

		if err := dxfRect(d, originX, 0, sp.Width, sp.Length); err != nil {
			return err
		}
		title := fmt.Sprintf("%s %s %gmm", sp.SheetLabel, dims(sp.Width, sp.Length), sp.Thickness)
		if _, err := d.Text(title, originX, sp.Length+20, 0, 30); err != nil {
			return err
		}

		for _, a := range sp.Assignments {
			w, l := a.PlacedWidth(), a.PlacedLength()
			x := originX + a.X
			y := sp.Length - a.Y - l
			if err := dxfRect(d, x, y, w, l); err != nil {
				return err
			}
			height := textHeight(w, l)
			label := fmt.Sprintf("%d %s", a.Sequence, a.CutLabel)
			if _, err := d.Text(label, x+height/2, y+l/2, 0, height); err != nil {
				return err
			}
		}

		originX += sp.Width + sheetGap
	}

	return d.SaveAs(path)
}

// dxfRect draws an axis-aligned rectangle as four lines.
func dxfRect(d *drawing.Drawing, x, y, w, l float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + l}, {x, y + l}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}

// textHeight scales label text to the cut, within readable bounds.
func textHeight(w, l float64) float64 {
	h := min(w, l) / 8
	return max(10, min(h, 40))
}
