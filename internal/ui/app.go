package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/cutplan/internal/engine"
	"github.com/piwi3910/cutplan/internal/export"
	"github.com/piwi3910/cutplan/internal/importer"
	"github.com/piwi3910/cutplan/internal/model"
	"github.com/piwi3910/cutplan/internal/project"
	"github.com/piwi3910/cutplan/internal/ui/widgets"
)

// App holds the viewer state and the widgets that reflect it.
type App struct {
	window  fyne.Window
	theme   *compactTheme
	config  model.AppConfig
	project model.Project
	path    string // where the project was loaded from or saved to
	history *History
	log     *slog.Logger

	inventoryPath string

	tabs            *container.AppTabs
	cutsContainer   *fyne.Container
	sheetsContainer *fyne.Container
	planContainer   *fyne.Container
	status          *widget.Label
}

// NewApp creates the viewer for window. The config provides the kerf for
// new projects and the recent project list.
func NewApp(a fyne.App, window fyne.Window, config model.AppConfig, log *slog.Logger) *App {
	if log == nil {
		log = engine.Logger()
	}
	app := &App{
		window:  window,
		theme:   newCompactTheme(),
		config:  config,
		history: NewHistory(),
		log:     log,

		inventoryPath: project.DefaultInventoryPath(),
	}
	app.project = app.newProject()
	a.Settings().SetTheme(app.theme)
	return app
}

func (a *App) newProject() model.Project {
	p := model.NewProject()
	a.config.ApplyToSettings(&p.Settings)
	return p
}

// SetupMenus installs the main menu.
func (a *App) SetupMenus() {
	recent := fyne.NewMenuItem("Open Recent", nil)
	recent.ChildMenu = fyne.NewMenu("")
	for _, path := range a.config.RecentProjects {
		recent.ChildMenu.Items = append(recent.ChildMenu.Items, fyne.NewMenuItem(path, func() {
			a.OpenProject(path)
		}))
	}
	recent.Disabled = len(a.config.RecentProjects) == 0

	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Project", func() {
			a.setProject(a.newProject(), "")
		}),
		fyne.NewMenuItem("Open Project...", a.showOpenProject),
		recent,
		fyne.NewMenuItem("Save Project...", a.showSaveProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Cuts...", func() { a.showImport(importer.KindCuts) }),
		fyne.NewMenuItem("Import Sheets...", func() { a.showImport(importer.KindSheets) }),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export PDF Report...", func() { a.showExport("plan.pdf", a.exportPDF) }),
		fyne.NewMenuItem("Export Print Pages...", func() { a.showExport("plan.html", a.exportHTML) }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", a.undo),
		fyne.NewMenuItem("Redo", a.redo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear Cuts", a.clearCuts),
		fyne.NewMenuItem("Clear Sheets", a.clearSheets),
		fyne.NewMenuItem("Add Stored Offcuts", a.addStoredOffcuts),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Light Theme", func() { a.setDark(false) }),
		fyne.NewMenuItem("Dark Theme", func() { a.setDark(true) }),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Optimize", a.runOptimize),
	)

	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu))
}

// Build constructs the window content.
func (a *App) Build() fyne.CanvasObject {
	a.cutsContainer = container.NewVBox()
	a.sheetsContainer = container.NewVBox()
	a.planContainer = container.NewStack()
	a.status = widget.NewLabel("")

	a.tabs = container.NewAppTabs(
		container.NewTabItem("Cuts", container.NewVScroll(a.cutsContainer)),
		container.NewTabItem("Sheets", container.NewVScroll(a.sheetsContainer)),
		container.NewTabItem("Plan", a.planContainer),
	)

	toolbar := container.NewHBox(
		iconButton(theme.FolderOpenIcon(), "Open project", a.showOpenProject),
		iconButton(theme.DocumentSaveIcon(), "Save project", a.showSaveProject),
		widget.NewSeparator(),
		iconButton(theme.ContentUndoIcon(), "Undo", a.undo),
		iconButton(theme.ContentRedoIcon(), "Redo", a.redo),
		iconButton(theme.ContentClearIcon(), "Clear cuts", a.clearCuts),
		layout.NewSpacer(),
		widget.NewButtonWithIcon("Optimize", theme.MediaPlayIcon(), a.runOptimize),
	)

	a.refreshAll()
	content := container.NewBorder(toolbar, a.status, nil, nil, a.tabs)
	return fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas())
}

func (a *App) setDark(dark bool) {
	a.theme.setDark(dark)
	a.window.Content().Refresh()
}

func (a *App) setProject(p model.Project, path string) {
	a.project = p
	a.path = path
	a.history.Clear()
	a.refreshAll()
	if path != "" {
		a.window.SetTitle(fmt.Sprintf("cutplan - %s", filepath.Base(path)))
	}
}

func (a *App) refreshAll() {
	a.refreshCuts()
	a.refreshSheets()
	a.refreshPlan()
}

func boldLabel(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
}

func (a *App) refreshCuts() {
	a.cutsContainer.RemoveAll()
	if len(a.project.Cuts) == 0 {
		a.cutsContainer.Add(widget.NewLabel("No cuts yet. Open a project or import a cut list."))
		return
	}
	a.cutsContainer.Add(container.NewGridWithColumns(6,
		boldLabel("Label"), boldLabel("Width (mm)"), boldLabel("Length (mm)"),
		boldLabel("Thickness (mm)"), boldLabel("Qty"), boldLabel(""),
	))
	for _, c := range a.project.Cuts {
		id := c.ID
		a.cutsContainer.Add(container.NewGridWithColumns(6,
			widget.NewLabel(c.Label),
			widget.NewLabel(fmt.Sprintf("%g", c.Width)),
			widget.NewLabel(fmt.Sprintf("%g", c.Length)),
			widget.NewLabel(fmt.Sprintf("%g", c.Thickness)),
			widget.NewLabel(fmt.Sprintf("%d", c.Quantity)),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.edit("Remove Cut", func(p *model.Project) error { return p.RemoveCut(id) })
			}),
		))
	}
}

func (a *App) refreshSheets() {
	a.sheetsContainer.RemoveAll()
	if len(a.project.Sheets) == 0 {
		a.sheetsContainer.Add(widget.NewLabel("No stock sheets yet. Open a project or import a sheet list."))
		return
	}
	a.sheetsContainer.Add(container.NewGridWithColumns(7,
		boldLabel("Label"), boldLabel("Width (mm)"), boldLabel("Length (mm)"),
		boldLabel("Thickness (mm)"), boldLabel("Qty"), boldLabel("Priority"), boldLabel(""),
	))
	for _, s := range a.project.Sheets {
		id := s.ID
		a.sheetsContainer.Add(container.NewGridWithColumns(7,
			widget.NewLabel(s.Label),
			widget.NewLabel(fmt.Sprintf("%g", s.Width)),
			widget.NewLabel(fmt.Sprintf("%g", s.Length)),
			widget.NewLabel(fmt.Sprintf("%g", s.Thickness)),
			widget.NewLabel(fmt.Sprintf("%d", s.Quantity)),
			widget.NewLabel(s.Priority.String()),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.edit("Remove Sheet", func(p *model.Project) error { return p.RemoveSheet(id) })
			}),
		))
	}
}

func (a *App) refreshPlan() {
	a.planContainer.RemoveAll()
	a.planContainer.Add(widgets.RenderPlan(a.project.Plan))
	a.planContainer.Refresh()
}

// edit records an undo point, applies fn and drops the now stale plan.
// A partial failure stays applied and can be undone.
func (a *App) edit(label string, fn func(p *model.Project) error) {
	snap := TakeSnapshot(a.project, label)
	err := fn(&a.project)
	a.history.Push(snap)
	a.project.Plan = nil
	a.status.SetText(label)
	a.refreshAll()
	if err != nil {
		dialog.ShowError(err, a.window)
	}
}

func (a *App) clearCuts() {
	a.edit("Clear Cuts", func(p *model.Project) error {
		p.ClearCuts()
		return nil
	})
}

func (a *App) clearSheets() {
	a.edit("Clear Sheets", func(p *model.Project) error {
		p.Sheets = []model.Sheet{}
		return nil
	})
}

func (a *App) undo() {
	label := a.history.UndoLabel()
	prev, ok := a.history.Undo(TakeSnapshot(a.project, label))
	if !ok {
		return
	}
	prev.Restore(&a.project)
	a.status.SetText("Undo " + label)
	a.refreshAll()
}

func (a *App) redo() {
	next, ok := a.history.Redo(TakeSnapshot(a.project, ""))
	if !ok {
		return
	}
	next.Restore(&a.project)
	a.status.SetText("Redo " + next.Label)
	a.refreshAll()
}

// addStoredOffcuts appends inventory remnants matching the cut thicknesses
// as high-priority sheets.
func (a *App) addStoredOffcuts() {
	inv, err := project.LoadInventory(a.inventoryPath)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	var thicknesses []float64
	for _, c := range a.project.Cuts {
		thicknesses = append(thicknesses, c.Thickness)
	}
	offcuts := inv.TakeOffcuts(thicknesses...)
	if len(offcuts) == 0 {
		dialog.ShowInformation("No offcuts", "The inventory holds no offcuts of matching thickness.", a.window)
		return
	}
	a.edit("Add Stored Offcuts", func(p *model.Project) error {
		var errs []error
		for _, s := range offcuts {
			if err := p.AddSheet(s); err != nil && !errors.Is(err, model.ErrDuplicateLabel) {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}

func (a *App) runOptimize() {
	plan, err := engine.New(a.project.Settings).Plan(a.project.Cuts, a.project.Sheets)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoCuts):
			dialog.ShowInformation("Nothing to optimize", "Add at least one cut first.", a.window)
		case errors.Is(err, model.ErrNoSheets):
			dialog.ShowInformation("No stock sheets", "Add at least one stock sheet first.", a.window)
		default:
			dialog.ShowError(err, a.window)
		}
		return
	}
	a.project.Plan = &plan
	a.refreshPlan()
	a.tabs.SelectIndex(2)
	status := fmt.Sprintf("%d sheets used, %d cuts placed, %d not placed",
		plan.SheetsUsed, plan.AssignmentCount(), len(plan.Unplaced))
	if used := a.consumeOffcuts(plan); used > 0 {
		status += fmt.Sprintf(", %d stored offcuts used", used)
	}
	a.status.SetText(status)
}

// consumeOffcuts drops the stored remnants the plan cut into, so they are
// not offered again. It returns how many were removed.
func (a *App) consumeOffcuts(plan model.Plan) int {
	if _, err := os.Stat(a.inventoryPath); err != nil {
		return 0
	}
	inv, err := project.LoadInventory(a.inventoryPath)
	if err != nil {
		a.log.Warn("inventory not loaded", "path", a.inventoryPath, "err", err)
		return 0
	}
	removed := inv.RemoveOffcutsUsed(plan)
	if removed == 0 {
		return 0
	}
	if err := project.SaveInventory(a.inventoryPath, inv); err != nil {
		dialog.ShowError(fmt.Errorf("save inventory: %w", err), a.window)
		return 0
	}
	a.log.Info("inventory updated", "offcuts_used", removed)
	return removed
}

func (a *App) showOpenProject() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		a.OpenProject(reader.URI().Path())
	}, a.window)
	d.Show()
}

// OpenProject loads the project at path and remembers it as recent.
func (a *App) OpenProject(path string) {
	p, err := project.LoadProject(path)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.setProject(p, path)
	a.rememberProject(path)
}

func (a *App) showSaveProject() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SaveProject(path, a.project); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.path = path
		a.rememberProject(path)
		a.status.SetText("Saved " + path)
	}, a.window)
	d.SetFileName(a.project.Name + project.FileExtension)
	d.Show()
}

func (a *App) rememberProject(path string) {
	a.config.AddRecentProject(path)
	if err := project.SaveAppConfig(project.DefaultConfigPath(), a.config); err != nil {
		a.log.Warn("config not saved", "err", err)
	}
}

func (a *App) showImport(kind importer.Kind) {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		result := importer.ImportFile(reader.URI().Path(), importer.Options{
			Kind:            kind,
			DefaultPriority: a.config.DefaultPriority,
		})
		a.applyImport(kind, result)
	}, a.window)
}

func (a *App) applyImport(kind importer.Kind, result importer.ImportResult) {
	for _, w := range result.Warnings {
		a.log.Warn("import", "kind", kind.String(), "warning", w)
	}
	if len(result.Errors) > 0 {
		dialog.ShowError(fmt.Errorf("errors encountered during import:\n\n%s",
			strings.Join(result.Errors, "\n")), a.window)
	}

	added := 0
	a.edit("Import "+kind.String(), func(p *model.Project) error {
		var errs []error
		for _, c := range result.Cuts {
			if err := p.AddCut(c); err != nil {
				errs = append(errs, err)
				continue
			}
			added++
		}
		for _, s := range result.Sheets {
			if err := p.AddSheet(s); err != nil {
				errs = append(errs, err)
				continue
			}
			added++
		}
		return errors.Join(errs...)
	})
	if added > 0 {
		dialog.ShowInformation("Import Complete", fmt.Sprintf("Imported %d %s.", added, kind), a.window)
	}
}

func (a *App) showExport(defaultName string, write func(path string) error) {
	if a.project.Plan == nil || len(a.project.Plan.Sheets) == 0 {
		dialog.ShowInformation("No plan", "Run the optimizer before exporting.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if err := write(path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		dialog.ShowInformation("Export Complete", "Saved to "+path, a.window)
	}, a.window)
	d.SetFileName(defaultName)
	d.Show()
}

func (a *App) exportOptions() export.Options {
	return export.Options{Title: a.config.ReportTitle}
}

func (a *App) exportPDF(path string) error {
	return export.ExportPDF(path, *a.project.Plan, a.exportOptions())
}

func (a *App) exportHTML(path string) error {
	return export.ExportHTML(path, *a.project.Plan, a.exportOptions())
}
