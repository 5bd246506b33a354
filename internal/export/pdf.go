// Package export writes cutting plans to PDF reports, QR label sheets,
// Excel workbooks, DXF drawings and printable HTML.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/cutplan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a cutting plan. Each used sheet is
// rendered on its own page with a layout diagram, followed by a summary page.
func ExportPDF(path string, plan model.Plan, opts Options) error {
	if len(plan.Sheets) == 0 {
		return ErrEmptyPlan
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	nums := opts.numbers()
	colors := make(map[string]int)

	for i, sp := range plan.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, tr, nums, colors, sp, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, tr, nums, plan, opts.title())

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet plan on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, tr func(string) string, nums numbers, colors map[string]int, sp model.SheetPlan, sheetNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d: %s (%s, %gmm)", sheetNum, sp.SheetLabel, dims(sp.Width, sp.Length), sp.Thickness)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cuts: %d | Used: %s | Waste: %s | Efficiency: %s",
		len(sp.Assignments), nums.area(sp.UsedArea), nums.area(sp.WasteArea), nums.percent(sp.Efficiency()))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tr(stats), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	scale := math.Min(drawWidth/sp.Width, drawHeight/sp.Length)
	canvasW := sp.Width * scale
	canvasH := sp.Length * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stock sheet background (wood color)
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for _, a := range sp.Assignments {
		col := colorFor(colors, a.CutID)
		pw := a.PlacedWidth() * scale
		ph := a.PlacedLength() * scale
		px := offsetX + a.X*scale
		py := offsetY + a.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Label only if the rectangle is large enough
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := tr(fmt.Sprintf("%d. %s", a.Sequence, a.CutLabel))
			size := fmt.Sprintf("%.0fx%.0f", a.Width, a.Length)
			if a.Rotated() {
				size += " R"
			}

			labelW := pdf.GetStringWidth(label)
			sizeW := pdf.GetStringWidth(size)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && sizeW < pw-2 {
				pdf.SetXY(px+(pw-sizeW)/2, py+ph/2)
				pdf.CellFormat(sizeW, 4, size, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sp, offsetX, offsetY, canvasW, canvasH)
	drawCutsLegend(pdf, tr, colors, sp, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds width and length labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sp model.SheetPlan, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", sp.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Length runs down the left edge, rotated
	lengthLabel := fmt.Sprintf("%.0f mm", sp.Length)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX-3-lLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCutsLegend renders a compact legend of placed cuts in cutting order.
func drawCutsLegend(pdf *fpdf.Fpdf, tr func(string) string, colors map[string]int, sp model.SheetPlan, startY float64) {
	if len(sp.Assignments) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cutting order:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, a := range sp.Assignments {
		col := colorFor(colors, a.CutID)
		label := tr(fmt.Sprintf("%d. %s (%.0fx%.0f)", a.Sequence, a.CutLabel, a.Width, a.Length))
		if a.Rotated() {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics,
// unplaced cuts and stock left unused.
func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, nums numbers, plan model.Plan, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, tr(title+" Summary"), "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Sheets Used", nums.count(plan.SheetsUsed)},
		{"Cuts Placed", nums.count(plan.AssignmentCount())},
		{"Cuts Unplaced", nums.count(len(plan.Unplaced))},
		{"Overall Efficiency", nums.percent(plan.TotalEfficiency())},
		{"Total Waste", nums.area(plan.TotalWaste)},
		{"Kerf Width", fmt.Sprintf("%.1f mm", plan.KerfWidth)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{15, 65, 45, 20, 20, 30, 70}
	headers := []string{"#", "Sheet", "Dimensions", "Thick", "Cuts", "Efficiency", "Used / Waste Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sp := range plan.Sheets {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			sp.SheetLabel,
			dims(sp.Width, sp.Length),
			fmt.Sprintf("%g", sp.Thickness),
			fmt.Sprintf("%d", len(sp.Assignments)),
			nums.percent(sp.Efficiency()),
			nums.area(sp.UsedArea) + " / " + nums.area(sp.WasteArea),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, tr(cell), "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(plan.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, u := range plan.Unplaced {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %s, %gmm (%s)", u.CutLabel, dims(u.Width, u.Length), u.Thickness, u.Message)
			pdf.CellFormat(250, 5, tr(text), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	if len(plan.Unused) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "Unused Stock", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		for _, u := range plan.Unused {
			if y > pageHeight-marginBottom-10 {
				pdf.AddPage()
				y = marginTop
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %s, %gmm x %d (%s priority)", u.Label, dims(u.Width, u.Length), u.Thickness, u.Quantity, u.Priority)
			pdf.CellFormat(250, 5, tr(text), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	footer := fmt.Sprintf("Plan %s - %s - generated by cutplan", plan.ID, plan.CreatedAt.Format("2006-01-02 15:04 MST"))
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, footer, "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
