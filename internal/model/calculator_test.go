package model

import (
	"math"
	"testing"
)

func TestEstimatePurchaseBasic(t *testing.T) {
	cuts := []Cut{
		{Label: "Part1", Width: 500, Length: 300, Thickness: 18, Quantity: 4},
	}
	sheet := Sheet{Width: 2440, Length: 1220, Thickness: 18}
	est := EstimatePurchase(cuts, sheet, 3.0, 15.0)

	// Each cut with kerf: 503 x 303 = 152409 sq mm, x4 = 609636
	expectedArea := 503.0 * 303.0 * 4
	if math.Abs(est.TotalCutArea-expectedArea) > 0.1 {
		t.Errorf("expected total area %.1f, got %.1f", expectedArea, est.TotalCutArea)
	}
	if est.CutCount != 4 {
		t.Errorf("expected 4 cut units, got %d", est.CutCount)
	}
	if est.SheetsNeededMin != 1 {
		t.Errorf("expected 1 sheet, got %d", est.SheetsNeededMin)
	}
	if est.SheetsWithWaste < est.SheetsNeededMin {
		t.Error("sheets with waste should be >= minimum sheets")
	}
}

func TestEstimatePurchaseOnlyCountsMatchingThickness(t *testing.T) {
	cuts := []Cut{
		{Label: "A", Width: 1000, Length: 1000, Thickness: 18, Quantity: 1},
		{Label: "B", Width: 1000, Length: 1000, Thickness: 12, Quantity: 5},
	}
	est := EstimatePurchase(cuts, Sheet{Width: 1000, Length: 1000, Thickness: 18}, 0, 0)
	if est.CutCount != 1 {
		t.Errorf("expected 1 matching unit, got %d", est.CutCount)
	}
	if est.SheetsNeededMin != 1 || est.SheetsWithWaste != 1 {
		t.Errorf("expected exactly 1 sheet, got min=%d waste=%d", est.SheetsNeededMin, est.SheetsWithWaste)
	}
}

func TestEstimatePurchaseWasteRoundsUp(t *testing.T) {
	cuts := []Cut{{Label: "A", Width: 1000, Length: 1000, Thickness: 18, Quantity: 2}}
	est := EstimatePurchase(cuts, Sheet{Width: 1000, Length: 1000, Thickness: 18}, 0, 10)
	if est.SheetsNeededExact != 2 {
		t.Errorf("expected exact 2, got %.2f", est.SheetsNeededExact)
	}
	if est.SheetsWithWaste != 3 {
		t.Errorf("expected 3 sheets with 10%% waste, got %d", est.SheetsWithWaste)
	}
}

func TestEstimatePurchaseZeroSheetArea(t *testing.T) {
	cuts := []Cut{{Label: "P1", Width: 100, Length: 100, Thickness: 18, Quantity: 1}}
	est := EstimatePurchase(cuts, Sheet{Thickness: 18}, 3.0, 15.0)
	if est.SheetsNeededMin != 0 || est.SheetsWithWaste != 0 {
		t.Errorf("expected zero sheets for zero sheet area, got %d/%d", est.SheetsNeededMin, est.SheetsWithWaste)
	}
}
