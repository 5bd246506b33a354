// cutplan-viewer - desktop viewer for cutplan projects
//
// Opens a project, runs the optimizer and shows each used sheet with its
// cutting sequence. Projects are shared with the cutplan command.
//
// Build:
//   go build -o cutplan-viewer ./cmd/cutplan-viewer

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/piwi3910/cutplan/internal/engine"
	"github.com/piwi3910/cutplan/internal/model"
	"github.com/piwi3910/cutplan/internal/project"
	"github.com/piwi3910/cutplan/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	engine.SetLogger(logger)

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = model.DefaultAppConfig()
	}

	application := app.NewWithID("com.piwi3910.cutplan")
	window := application.NewWindow("cutplan - Cutting Plan Viewer")

	viewer := ui.NewApp(application, window, cfg, logger)
	viewer.SetupMenus()
	window.SetContent(viewer.Build())
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	if len(os.Args) > 1 {
		viewer.OpenProject(os.Args[1])
	}

	window.ShowAndRun()
}
