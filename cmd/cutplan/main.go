// cutplan - sheet cutting plan optimizer
//
// Packs rectangular cuts onto stock sheets with a guillotine first-fit
// heuristic and writes the plan as a report, labels, spreadsheet, DXF
// drawing or printable HTML.
//
// Build:
//   go build -o cutplan ./cmd/cutplan
//
// Usage:
//   cutplan optimize [flags] [project.cutplan]
//   cutplan estimate [flags] [project.cutplan]
//   cutplan compare  [flags] [project.cutplan]

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/piwi3910/cutplan/internal/engine"
)

const (
	exitOK         = 0
	exitIncomplete = 1 // some cuts were not placed, or the run failed
	exitUsage      = 2
)

// usageError marks a problem with the command line rather than the inputs.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type command struct {
	name    string
	summary string
	run     func(args []string, stdout, stderr io.Writer) (int, error)
}

var commands = []command{
	{"optimize", "build a cutting plan and export it", runOptimize},
	{"estimate", "estimate how many sheets to buy", runEstimate},
	{"compare", "compare plans across kerf widths", runCompare},
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printUsage(stdout)
		return exitOK
	}

	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		code, err := cmd.run(args[1:], stdout, stderr)
		engine.SetLogger(nil)
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		if err != nil {
			var ue *usageError
			if errors.As(err, &ue) {
				fmt.Fprintf(stderr, "cutplan %s: %v\n", cmd.name, err)
				return exitUsage
			}
			fmt.Fprintf(stderr, "cutplan %s: %v\n", cmd.name, err)
			return exitIncomplete
		}
		return code
	}

	fmt.Fprintf(stderr, "cutplan: unknown command %q\n", args[0])
	printUsage(stderr)
	return exitUsage
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cutplan <command> [flags] [project.cutplan]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", cmd.name, cmd.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inputs come from a project file or from -cuts and -sheets CSV/XLSX files.")
	fmt.Fprintln(w, "Run 'cutplan <command> -h' for the flags of a command.")
}

// newLogger returns a text logger on w and installs it for the planner.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	engine.SetLogger(logger)
	return logger
}
