package model

import "math"

// PurchaseEstimate holds the results of a sheet purchasing calculation.
type PurchaseEstimate struct {
	Thickness         float64 `json:"thickness"`           // Only cuts of this thickness are counted
	CutCount          int     `json:"cut_count"`           // Cut units of matching thickness
	TotalCutArea      float64 `json:"total_cut_area"`      // Area of matching cuts incl. kerf allowance (sq mm)
	SheetArea         float64 `json:"sheet_area"`          // Area of one sheet (sq mm)
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Exact fractional number of sheets
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Ceiling of exact
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Recommended sheets including waste factor
	WastePercent      float64 `json:"waste_percent"`
	KerfWidth         float64 `json:"kerf_width"`
}

// EstimatePurchase computes how many sheets like sheet are needed for the
// cuts that share its thickness. It is an area bound, not a packing.
func EstimatePurchase(cuts []Cut, sheet Sheet, kerfWidth, wastePercent float64) PurchaseEstimate {
	est := PurchaseEstimate{
		Thickness:    sheet.Thickness,
		WastePercent: wastePercent,
		KerfWidth:    kerfWidth,
	}
	for _, c := range cuts {
		if c.Thickness != sheet.Thickness {
			continue
		}
		est.CutCount += c.Quantity
		est.TotalCutArea += (c.Width + kerfWidth) * (c.Length + kerfWidth) * float64(c.Quantity)
	}

	est.SheetArea = sheet.Width * sheet.Length
	if est.SheetArea <= 0 {
		return est
	}

	est.SheetsNeededExact = est.TotalCutArea / est.SheetArea
	est.SheetsNeededMin = int(math.Ceil(est.SheetsNeededExact))

	wasteFactor := 1.0 + (wastePercent / 100.0)
	est.SheetsWithWaste = int(math.Ceil(est.SheetsNeededExact * wasteFactor))
	if est.SheetsWithWaste < est.SheetsNeededMin {
		est.SheetsWithWaste = est.SheetsNeededMin
	}
	return est
}
