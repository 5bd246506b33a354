package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/text/language"

	"github.com/piwi3910/cutplan/internal/engine"
	"github.com/piwi3910/cutplan/internal/export"
	"github.com/piwi3910/cutplan/internal/model"
	"github.com/piwi3910/cutplan/internal/project"
)

type optimizeFlags struct {
	inputFlags
	pdfPath       string
	labelsPath    string
	xlsxPath      string
	dxfPath       string
	htmlPath      string
	jsonPath      string
	title         string
	lang          string
	save          bool
	useInventory  bool
	keepOffcuts   bool
	inventoryPath string
}

func runOptimize(args []string, stdout, stderr io.Writer) (int, error) {
	var f optimizeFlags
	fs := newFlagSet("optimize", stderr)
	f.register(fs)
	fs.StringVar(&f.pdfPath, "pdf", "", "write the PDF report to `file`")
	fs.StringVar(&f.labelsPath, "labels", "", "write QR part labels to `file`")
	fs.StringVar(&f.xlsxPath, "xlsx", "", "write the plan workbook to `file`")
	fs.StringVar(&f.dxfPath, "dxf", "", "write the sheet layouts as DXF to `file`")
	fs.StringVar(&f.htmlPath, "html", "", "write the printable cut pages to `file`")
	fs.StringVar(&f.jsonPath, "json", "", "write the plan as JSON to `file` (- for stdout)")
	fs.StringVar(&f.title, "title", "", "report title (default from config)")
	fs.StringVar(&f.lang, "lang", "en", "language tag for number formatting in reports")
	fs.BoolVar(&f.save, "save", false, "store the plan in the project file")
	fs.BoolVar(&f.useInventory, "inventory", false, "add stored offcuts of matching thickness to the stock")
	fs.BoolVar(&f.keepOffcuts, "keep-offcuts", false, "store the plan's usable offcuts in the inventory")
	fs.StringVar(&f.inventoryPath, "inventory-file", project.DefaultInventoryPath(), "inventory `file`")
	if err := parseFlags(fs, args); err != nil {
		return exitUsage, err
	}

	tag, err := language.Parse(f.lang)
	if err != nil {
		return exitUsage, usagef("invalid -lang %q: %v", f.lang, err)
	}
	if f.save && fs.NArg() == 0 {
		return exitUsage, usagef("-save needs a project file")
	}

	log := newLogger(stderr, f.verbose)
	ws, err := loadWorkspace(fs, f.inputFlags, log)
	if err != nil {
		return exitIncomplete, err
	}

	sheets := ws.project.Sheets
	var inv model.Inventory
	if f.useInventory || f.keepOffcuts {
		if inv, err = project.LoadInventory(f.inventoryPath); err != nil {
			return exitIncomplete, fmt.Errorf("load inventory: %w", err)
		}
	}
	if f.useInventory {
		offcuts := inv.TakeOffcuts(cutThicknesses(ws.project.Cuts)...)
		log.Info("using stored offcuts", "count", len(offcuts))
		sheets = append(append([]model.Sheet(nil), sheets...), offcuts...)
	}

	plan, err := engine.New(ws.project.Settings).Plan(ws.project.Cuts, sheets)
	if err != nil {
		return exitIncomplete, err
	}

	// Keep stdout clean for the JSON plan.
	summary := stdout
	if f.jsonPath == "-" {
		summary = stderr
	}
	printPlan(summary, plan)

	title := f.title
	if title == "" {
		title = ws.cfg.ReportTitle
	}
	if err := writeOutputs(f, plan, export.Options{Title: title, Language: tag}, stdout); err != nil {
		return exitIncomplete, err
	}

	if f.useInventory || f.keepOffcuts {
		if err := updateInventory(f, &inv, plan, log); err != nil {
			return exitIncomplete, err
		}
	}

	if f.save {
		ws.project.Plan = &plan
		if err := project.SaveProject(ws.projectPath, ws.project); err != nil {
			return exitIncomplete, fmt.Errorf("save project: %w", err)
		}
		ws.cfg.AddRecentProject(ws.projectPath)
		if err := project.SaveAppConfig(f.configPath, ws.cfg); err != nil {
			log.Warn("config not saved", "path", f.configPath, "err", err)
		}
		log.Info("project saved", "path", ws.projectPath)
	}

	if !plan.Complete() {
		return exitIncomplete, nil
	}
	return exitOK, nil
}

func cutThicknesses(cuts []model.Cut) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, c := range cuts {
		if !seen[c.Thickness] {
			seen[c.Thickness] = true
			out = append(out, c.Thickness)
		}
	}
	return out
}

// updateInventory drops the offcuts the plan consumed and, with
// -keep-offcuts, stores the new ones.
func updateInventory(f optimizeFlags, inv *model.Inventory, plan model.Plan, log *slog.Logger) error {
	removed := 0
	if f.useInventory {
		removed = inv.RemoveOffcutsUsed(plan)
	}
	added := 0
	if f.keepOffcuts {
		added = inv.AddOffcuts(model.DetectAllOffcuts(plan))
	}
	if removed == 0 && added == 0 {
		return nil
	}
	if err := project.SaveInventory(f.inventoryPath, *inv); err != nil {
		return fmt.Errorf("save inventory: %w", err)
	}
	log.Info("inventory updated", "offcuts_used", removed, "offcuts_added", added)
	return nil
}

func writeOutputs(f optimizeFlags, plan model.Plan, opts export.Options, stdout io.Writer) error {
	if len(plan.Sheets) == 0 && f.jsonPath == "" {
		return nil
	}
	outputs := []struct {
		path  string
		write func(string) error
	}{
		{f.pdfPath, func(p string) error { return export.ExportPDF(p, plan, opts) }},
		{f.labelsPath, func(p string) error { return export.ExportLabels(p, plan) }},
		{f.xlsxPath, func(p string) error { return export.ExportExcel(p, plan, opts) }},
		{f.dxfPath, func(p string) error { return export.ExportDXF(p, plan) }},
		{f.htmlPath, func(p string) error { return export.ExportHTML(p, plan, opts) }},
		{f.jsonPath, func(p string) error { return writePlanJSON(p, plan, stdout) }},
	}
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		if err := out.write(out.path); err != nil {
			return fmt.Errorf("write %s: %w", out.path, err)
		}
	}
	return nil
}

func writePlanJSON(path string, plan model.Plan, stdout io.Writer) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if path == "-" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printPlan(w io.Writer, plan model.Plan) {
	fmt.Fprintf(w, "Sheets used: %d   Cuts placed: %d   Unplaced: %d   Efficiency: %.1f%%\n",
		plan.SheetsUsed, plan.AssignmentCount(), len(plan.Unplaced), plan.TotalEfficiency())
	for i, sp := range plan.Sheets {
		fmt.Fprintf(w, "\nSheet %d: %s (%gx%g mm, %g mm) - %d cuts, %.1f%% used\n",
			i+1, sp.SheetLabel, sp.Width, sp.Length, sp.Thickness, len(sp.Assignments), sp.Efficiency())
		for _, a := range sp.Assignments {
			rot := ""
			if a.Rotated() {
				rot = " rotated"
			}
			fmt.Fprintf(w, "  %3d. %-24s %gx%g at (%g, %g)%s\n",
				a.Sequence, a.CutLabel, a.Width, a.Length, a.X, a.Y, rot)
		}
	}
	if len(plan.Unplaced) > 0 {
		fmt.Fprintln(w, "\nNot placed:")
		for _, u := range plan.Unplaced {
			fmt.Fprintf(w, "  %-24s %s\n", u.CutLabel, u.Message)
		}
	}
	if len(plan.Unused) > 0 {
		fmt.Fprintln(w, "\nUnused stock:")
		for _, u := range plan.Unused {
			fmt.Fprintf(w, "  %-24s %gx%g mm, %g mm x%d\n", u.Label, u.Width, u.Length, u.Thickness, u.Quantity)
		}
	}
}
