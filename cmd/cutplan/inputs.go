package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/piwi3910/cutplan/internal/importer"
	"github.com/piwi3910/cutplan/internal/model"
	"github.com/piwi3910/cutplan/internal/project"
)

// inputFlags are shared by every command that plans cuts.
type inputFlags struct {
	configPath string
	cutsPath   string
	sheetsPath string
	thickness  float64
	kerf       float64
	verbose    bool
}

func (f *inputFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&f.cutsPath, "cuts", "", "CSV or XLSX file with the required cuts")
	fs.StringVar(&f.sheetsPath, "sheets", "", "CSV or XLSX file with the stock sheets")
	fs.Float64Var(&f.thickness, "thickness", 0, "thickness in mm for files without a thickness column")
	fs.Float64Var(&f.kerf, "kerf", 0, "blade kerf in mm (default from project or config)")
	fs.BoolVar(&f.verbose, "v", false, "verbose logging")
}

// newFlagSet builds a flag set that reports parse errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("cutplan "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return &usageError{msg: err.Error()}
	}
	return nil
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// workspace is what a command plans: the project plus where it came from.
type workspace struct {
	cfg         model.AppConfig
	project     model.Project
	projectPath string // empty when built from cut and sheet files
}

// loadWorkspace reads the config and the project or cut and sheet files
// named on the command line. An explicit -kerf wins over the project and
// config defaults.
func loadWorkspace(fs *flag.FlagSet, in inputFlags, log *slog.Logger) (workspace, error) {
	cfg, err := project.LoadAppConfig(in.configPath)
	if err != nil {
		return workspace{}, err
	}
	ws := workspace{cfg: cfg}

	fromFiles := in.cutsPath != "" || in.sheetsPath != ""
	switch {
	case fs.NArg() > 1:
		return workspace{}, usagef("expected at most one project file, got %d arguments", fs.NArg())
	case fs.NArg() == 1 && fromFiles:
		return workspace{}, usagef("use either a project file or -cuts/-sheets, not both")
	case fs.NArg() == 1:
		ws.projectPath = fs.Arg(0)
		if ws.project, err = project.LoadProject(ws.projectPath); err != nil {
			return workspace{}, err
		}
	case in.cutsPath == "" || in.sheetsPath == "":
		return workspace{}, usagef("need a project file or both -cuts and -sheets")
	default:
		if ws.project, err = projectFromFiles(in, cfg, log); err != nil {
			return workspace{}, err
		}
	}

	if flagSet(fs, "kerf") {
		ws.project.Settings.KerfWidth = in.kerf
	}
	return ws, nil
}

func projectFromFiles(in inputFlags, cfg model.AppConfig, log *slog.Logger) (model.Project, error) {
	p := model.NewProject()
	cfg.ApplyToSettings(&p.Settings)

	cuts := importer.ImportFile(in.cutsPath, importer.Options{
		Kind:             importer.KindCuts,
		DefaultThickness: in.thickness,
	})
	sheets := importer.ImportFile(in.sheetsPath, importer.Options{
		Kind:             importer.KindSheets,
		DefaultThickness: in.thickness,
		DefaultPriority:  cfg.DefaultPriority,
	})
	for _, w := range cuts.Warnings {
		log.Warn("cut import", "file", in.cutsPath, "warning", w)
	}
	for _, w := range sheets.Warnings {
		log.Warn("sheet import", "file", in.sheetsPath, "warning", w)
	}
	if err := errors.Join(
		wrapImport(in.cutsPath, cuts.Err()),
		wrapImport(in.sheetsPath, sheets.Err()),
	); err != nil {
		return model.Project{}, err
	}

	p.Cuts = cuts.Cuts
	p.Sheets = sheets.Sheets
	log.Debug("inputs imported", "cuts", len(p.Cuts), "sheets", len(p.Sheets))
	return p, nil
}

func wrapImport(path string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("import %s: %w", path, err)
}
