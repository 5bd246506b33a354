package export

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/piwi3910/cutplan/internal/model"
)

// Diagram bounds on an A4 portrait page, in mm.
const (
	diagramMaxWidth  = 170.0
	diagramMaxLength = 150.0
)

// cutPage is the view model of one printed cut instruction.
type cutPage struct {
	Number      int
	Total       int
	Sequence    int
	CutLabel    string
	Width       float64
	Length      float64
	Thickness   float64
	SheetLabel  string
	SheetWidth  float64
	SheetLength float64
	X           float64
	Y           float64
	Rotated     bool
	Kerf        float64
	Diagram     diagram
}

// diagram holds SVG coordinates scaled to fit the page.
type diagram struct {
	W, L             float64
	CutX, CutY       float64
	CutW, CutL       float64
	CenterX, CenterY float64
}

type printView struct {
	Title    string
	Pages    []cutPage
	Unplaced []model.UnplacedCut
}

var printTemplate = template.Must(template.New("print").Funcs(template.FuncMap{
	"mm": func(v float64) string { return fmt.Sprintf("%g", v) },
	"f1": func(v float64) string { return fmt.Sprintf("%.1f", v) },
}).Parse(printHTML))

// ExportHTML writes a printable document with one A4 page per placed cut,
// in sheet and cutting-sequence order.
func ExportHTML(path string, plan model.Plan, opts Options) error {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, plan, opts); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// WriteHTML renders the printable document to w.
func WriteHTML(w io.Writer, plan model.Plan, opts Options) error {
	if len(plan.Sheets) == 0 {
		return ErrEmptyPlan
	}

	view := printView{Title: opts.title(), Unplaced: plan.Unplaced}
	total := plan.AssignmentCount()
	for _, sp := range plan.Sheets {
		for _, a := range sp.Assignments {
			view.Pages = append(view.Pages, cutPage{
				Number:      len(view.Pages) + 1,
				Total:       total,
				Sequence:    a.Sequence,
				CutLabel:    a.CutLabel,
				Width:       a.Width,
				Length:      a.Length,
				Thickness:   a.Thickness,
				SheetLabel:  sp.SheetLabel,
				SheetWidth:  sp.Width,
				SheetLength: sp.Length,
				X:           a.X,
				Y:           a.Y,
				Rotated:     a.Rotated(),
				Kerf:        plan.KerfWidth,
				Diagram:     scaleDiagram(sp, a),
			})
		}
	}

	return printTemplate.Execute(w, view)
}

func scaleDiagram(sp model.SheetPlan, a model.Assignment) diagram {
	scale := math.Min(diagramMaxWidth/sp.Width, diagramMaxLength/sp.Length)
	d := diagram{
		W:    sp.Width * scale,
		L:    sp.Length * scale,
		CutX: a.X * scale,
		CutY: a.Y * scale,
		CutW: a.PlacedWidth() * scale,
		CutL: a.PlacedLength() * scale,
	}
	d.CenterX = d.CutX + d.CutW/2
	d.CenterY = d.CutY + d.CutL/2
	return d
}

const printHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}} - Print</title>
<style>
@page { size: A4 portrait; margin: 15mm; }
body { font-family: Arial, sans-serif; }
.page { width: 210mm; min-height: 297mm; padding: 15mm; box-sizing: border-box; page-break-after: always; }
.page:last-child { page-break-after: auto; }
.header { border-bottom: 2px solid #000; padding-bottom: 10mm; margin-bottom: 10mm; }
.cut-number { font-size: 24pt; font-weight: bold; margin-bottom: 5mm; }
.cut-label { font-size: 18pt; margin-bottom: 5mm; }
.dimensions { font-size: 16pt; margin-bottom: 3mm; }
.sheet-info { font-size: 14pt; color: #333; margin-bottom: 5mm; }
.diagram { margin: 10mm 0; border: 1px solid #ccc; padding: 5mm; background: #f9f9f9; }
.instructions { font-size: 12pt; margin-top: 10mm; padding: 5mm; background: #f0f0f0; border-left: 4px solid #333; }
.unplaced { color: #b00; }
@media screen {
  body { background: #e0e0e0; padding: 20px; }
  .page { background: white; margin: 0 auto 20px; box-shadow: 0 2px 10px rgba(0,0,0,0.1); }
}
@media print { .print-button { display: none; } }
</style>
</head>
<body>
<button class="print-button" onclick="window.print()">Print All Pages</button>
{{range .Pages}}
<div class="page" data-seq="{{.Sequence}}">
  <div class="header">
    <div class="cut-number">Cut {{.Number}} of {{.Total}}</div>
    <div class="cut-label">{{.CutLabel}}</div>
  </div>
  <div class="dimensions"><strong>Dimensions:</strong> {{mm .Width}}mm × {{mm .Length}}mm × {{mm .Thickness}}mm</div>
  <div class="sheet-info"><strong>Source Sheet:</strong> {{.SheetLabel}} ({{mm .SheetWidth}}mm × {{mm .SheetLength}}mm), step {{.Sequence}}</div>
  <div class="sheet-info"><strong>Position:</strong> X={{mm .X}}mm, Y={{mm .Y}}mm{{if .Rotated}} (Rotated 90°){{end}}</div>
  <div class="diagram">
    <svg width="{{f1 .Diagram.W}}mm" height="{{f1 .Diagram.L}}mm" viewBox="0 0 {{f1 .Diagram.W}} {{f1 .Diagram.L}}">
      <rect class="sheet" x="0" y="0" width="{{f1 .Diagram.W}}" height="{{f1 .Diagram.L}}" fill="none" stroke="#000" stroke-width="1"/>
      <rect class="cut" x="{{f1 .Diagram.CutX}}" y="{{f1 .Diagram.CutY}}" width="{{f1 .Diagram.CutW}}" height="{{f1 .Diagram.CutL}}" fill="#ff8800" fill-opacity="0.3" stroke="#ff8800" stroke-width="1"/>
      <line x1="0" y1="{{f1 .Diagram.CutY}}" x2="{{f1 .Diagram.CutX}}" y2="{{f1 .Diagram.CutY}}" stroke="#999" stroke-dasharray="3,3"/>
      <line x1="{{f1 .Diagram.CutX}}" y1="0" x2="{{f1 .Diagram.CutX}}" y2="{{f1 .Diagram.CutY}}" stroke="#999" stroke-dasharray="3,3"/>
      <text x="{{f1 .Diagram.CenterX}}" y="{{f1 .Diagram.CenterY}}" text-anchor="middle" font-size="6">{{mm .Width}}×{{mm .Length}}</text>
    </svg>
  </div>
  <div class="instructions">
    <strong>Cutting Instructions:</strong><br>
    1. Locate the {{.SheetLabel}}<br>
    2. Measure {{mm .X}}mm from the left edge and {{mm .Y}}mm from the top edge<br>
    3. Mark the cutting area: {{mm .Width}}mm × {{mm .Length}}mm{{if .Rotated}}, turned 90°{{end}}<br>
    4. Account for {{mm .Kerf}}mm blade kerf when cutting<br>
    5. Label the cut piece as "{{.CutLabel}}" after cutting
  </div>
</div>
{{end}}
{{if .Unplaced}}
<div class="page unplaced">
  <div class="header"><div class="cut-number">Not Placed</div></div>
  <ul>
  {{range .Unplaced}}<li>{{.CutLabel}}: {{mm .Width}}mm × {{mm .Length}}mm × {{mm .Thickness}}mm ({{.Message}})</li>
  {{end}}
  </ul>
</div>
{{end}}
</body>
</html>
`
