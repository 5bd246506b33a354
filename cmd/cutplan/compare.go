package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/piwi3910/cutplan/internal/engine"
)

func runCompare(args []string, stdout, stderr io.Writer) (int, error) {
	var in inputFlags
	fs := newFlagSet("compare", stderr)
	in.register(fs)
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	log := newLogger(stderr, in.verbose)
	ws, err := loadWorkspace(fs, in, log)
	if err != nil {
		return exitIncomplete, err
	}

	scenarios := engine.BuildDefaultScenarios(ws.project.Settings)
	results, err := engine.CompareScenarios(scenarios, ws.project.Cuts, ws.project.Sheets)
	if err != nil {
		return exitIncomplete, err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Scenario\tKerf\tSheets\tPlaced\tUnplaced\tWaste")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%g mm\t%d\t%d\t%d\t%.1f%%\n",
			r.Scenario.Name, r.Scenario.Settings.KerfWidth, r.SheetsUsed, r.Placed, r.UnplacedCount, r.WastePercent)
	}
	if err := tw.Flush(); err != nil {
		return exitIncomplete, err
	}
	return exitOK, nil
}
