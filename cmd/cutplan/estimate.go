package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/cutplan/internal/engine"
	"github.com/piwi3910/cutplan/internal/model"
)

func runEstimate(args []string, stdout, stderr io.Writer) (int, error) {
	var in inputFlags
	var waste float64
	var sheetLabel string
	fs := newFlagSet("estimate", stderr)
	in.register(fs)
	fs.Float64Var(&waste, "waste", 10, "extra waste allowance in percent")
	fs.StringVar(&sheetLabel, "sheet", "", "only estimate for the sheet with this label")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}
	if waste < 0 {
		return exitUsage, usagef("-waste must not be negative")
	}

	log := newLogger(stderr, in.verbose)
	ws, err := loadWorkspace(fs, in, log)
	if err != nil {
		return exitIncomplete, err
	}
	kerf := ws.project.Settings.KerfWidth
	if err := model.ValidateKerf(kerf); err != nil {
		return exitIncomplete, err
	}
	if len(ws.project.Sheets) == 0 {
		return exitIncomplete, model.ErrNoSheets
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Sheet\tThickness\tCuts\tCut area (m²)\tExact\tMinimum\tWith waste")
	matched := 0
	for _, s := range ws.project.Sheets {
		if sheetLabel != "" && s.Label != sheetLabel {
			continue
		}
		matched++
		est := model.EstimatePurchase(ws.project.Cuts, s, kerf, waste)
		fmt.Fprintf(tw, "%s\t%g mm\t%d\t%.2f\t%.2f\t%d\t%d\n",
			s.Label, est.Thickness, est.CutCount, est.TotalCutArea/1e6,
			est.SheetsNeededExact, est.SheetsNeededMin, est.SheetsWithWaste)
	}
	if err := tw.Flush(); err != nil {
		return exitIncomplete, err
	}
	if matched == 0 {
		return exitIncomplete, fmt.Errorf("no sheet labelled %q: %w", sheetLabel, model.ErrNotFound)
	}
	engine.Logger().Debug("estimate done", "sheets", matched, "waste_percent", waste)
	return exitOK, nil
}
