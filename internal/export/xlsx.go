package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cutplan/internal/model"
)

// Workbook sheet names.
const (
	xlsxSummary     = "Summary"
	xlsxSheets      = "Sheets"
	xlsxAssignments = "Assignments"
	xlsxUnplaced    = "Unplaced"
	xlsxUnused      = "Unused Stock"
)

// ExportExcel writes a plan workbook with a summary, one row per used
// sheet, one row per assignment in cutting order, and the unplaced cuts and
// unused stock.
func ExportExcel(path string, plan model.Plan, opts Options) error {
	if len(plan.Sheets) == 0 {
		return ErrEmptyPlan
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSummary); err != nil {
		return err
	}
	for _, name := range []string{xlsxSheets, xlsxAssignments, xlsxUnplaced, xlsxUnused} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create worksheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	w := &sheetWriter{f: f, header: bold}

	w.rows(xlsxSummary, []string{"Field", "Value"}, [][]interface{}{
		{"Title", opts.title()},
		{"Plan ID", plan.ID},
		{"Created", plan.CreatedAt.Format("2006-01-02 15:04:05 MST")},
		{"Kerf Width (mm)", plan.KerfWidth},
		{"Sheets Used", plan.SheetsUsed},
		{"Cuts Placed", plan.AssignmentCount()},
		{"Cuts Unplaced", len(plan.Unplaced)},
		{"Total Waste (mm²)", plan.TotalWaste},
		{"Efficiency (%)", round1(plan.TotalEfficiency())},
	})

	var sheetRows, assignRows [][]interface{}
	for i, sp := range plan.Sheets {
		sheetRows = append(sheetRows, []interface{}{
			i + 1, sp.InstanceID, sp.SheetLabel, sp.Width, sp.Length, sp.Thickness,
			len(sp.Assignments), sp.UsedArea, sp.WasteArea, round1(sp.Efficiency()),
		})
		for _, a := range sp.Assignments {
			assignRows = append(assignRows, []interface{}{
				i + 1, sp.SheetLabel, a.Sequence, a.CutLabel, a.Width, a.Length, a.Thickness,
				a.X, a.Y, a.Rotation,
			})
		}
	}
	w.rows(xlsxSheets, []string{"#", "Instance", "Sheet", "Width", "Length", "Thickness", "Cuts", "Used Area", "Waste Area", "Efficiency (%)"}, sheetRows)
	w.rows(xlsxAssignments, []string{"Sheet #", "Sheet", "Seq", "Cut", "Width", "Length", "Thickness", "X", "Y", "Rotation"}, assignRows)

	var unplacedRows [][]interface{}
	for _, u := range plan.Unplaced {
		unplacedRows = append(unplacedRows, []interface{}{u.CutLabel, u.Width, u.Length, u.Thickness, u.Reason.String(), u.Message})
	}
	w.rows(xlsxUnplaced, []string{"Cut", "Width", "Length", "Thickness", "Reason", "Message"}, unplacedRows)

	var unusedRows [][]interface{}
	for _, u := range plan.Unused {
		unusedRows = append(unusedRows, []interface{}{u.Label, u.Width, u.Length, u.Thickness, u.Quantity, u.Priority.String()})
	}
	w.rows(xlsxUnused, []string{"Sheet", "Width", "Length", "Thickness", "Quantity", "Priority"}, unusedRows)

	if w.err != nil {
		return w.err
	}
	return f.SaveAs(path)
}

// sheetWriter writes header-plus-rows tables and keeps the first error.
type sheetWriter struct {
	f      *excelize.File
	header int
	err    error
}

func (w *sheetWriter) rows(sheet string, header []string, rows [][]interface{}) {
	if w.err != nil {
		return
	}
	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if w.err = w.f.SetSheetRow(sheet, "A1", &headerRow); w.err != nil {
		return
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if w.err = w.f.SetCellStyle(sheet, "A1", last, w.header); w.err != nil {
		return
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if w.err = w.f.SetSheetRow(sheet, cell, &r); w.err != nil {
			return
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	w.err = w.f.SetColWidth(sheet, "A", lastCol, 16)
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
