package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/cutplan/internal/model"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	CutID      string  `json:"cut_id"`
	CutLabel   string  `json:"label"`
	Width      float64 `json:"width_mm"`
	Length     float64 `json:"length_mm"`
	Thickness  float64 `json:"thickness_mm"`
	SheetIndex int     `json:"sheet"`
	SheetLabel string  `json:"sheet_label"`
	Sequence   int     `json:"seq"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per placed cut unit,
// in plan order. Each label shows the cut name, size, sheet and cutting
// sequence, with a QR code encoding the same data as JSON.
func ExportLabels(path string, plan model.Plan) error {
	if len(plan.Sheets) == 0 {
		return ErrEmptyPlan
	}

	labels := CollectLabelInfos(plan)
	if len(labels) == 0 {
		return errors.New("no cuts placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.CutLabel, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, n int, info LabelInfo) error {
	// Light border as a cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", n)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	cutLabel := tr(info.CutLabel)
	if pdf.GetStringWidth(cutLabel) > textW {
		for len(cutLabel) > 0 && pdf.GetStringWidth(cutLabel+"...") > textW {
			cutLabel = cutLabel[:len(cutLabel)-1]
		}
		cutLabel += "..."
	}
	pdf.CellFormat(textW, 4.5, cutLabel, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	size := fmt.Sprintf("%s, %gmm", dims(info.Width, info.Length), info.Thickness)
	pdf.CellFormat(textW, 3.5, size, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	sheetInfo := fmt.Sprintf("Sheet %d #%d @ (%.0f, %.0f)", info.SheetIndex, info.Sequence, info.X, info.Y)
	pdf.CellFormat(textW, 3, sheetInfo, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, tr("Rotated 90°"), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label information from a plan, one entry per
// assignment in sheet then sequence order.
func CollectLabelInfos(plan model.Plan) []LabelInfo {
	var labels []LabelInfo
	for sheetIdx, sp := range plan.Sheets {
		for _, a := range sp.Assignments {
			labels = append(labels, LabelInfo{
				CutID:      a.CutID,
				CutLabel:   a.CutLabel,
				Width:      a.Width,
				Length:     a.Length,
				Thickness:  a.Thickness,
				SheetIndex: sheetIdx + 1,
				SheetLabel: sp.SheetLabel,
				Sequence:   a.Sequence,
				Rotated:    a.Rotated(),
				X:          a.X,
				Y:          a.Y,
			})
		}
	}
	return labels
}
