// Package cliapp implements Raoul's command-line entry point as a plain
// function over (args, stdio), so it is testable without spawning a
// process — the split the teacher's cmd/funxy/main.go + pkg/cli/entry.go
// follows, here collapsed to one package since Raoul has no LSP/compile
// sibling command to share it with.
package cliapp

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raoul-lang/raoul/internal/analyzer"
	"github.com/raoul-lang/raoul/internal/config"
	"github.com/raoul-lang/raoul/internal/parser"
	"github.com/raoul-lang/raoul/internal/pipeline"
	"github.com/raoul-lang/raoul/internal/plotsink"
	"github.com/raoul-lang/raoul/internal/vm"
)

// Exit codes (spec §6).
const (
	ExitOK          = 0
	ExitCompileErr  = 1
	ExitRuntimeErr  = 2
	ExitUsageErr    = 64
)

// Options captures what main() parsed from os.Args, kept separate from the
// raw []string so Run is easy to call from tests.
type Options struct {
	SourcePath string
	Debug      bool
	ConfigPath string
}

// ParseArgs parses the positional source path and flags, grounded on the
// teacher's cmd/funxy/main.go convention of scanning os.Args by hand rather
// than reaching for the flag package, since Raoul's CLI surface is a single
// positional path plus two simple switches.
func ParseArgs(args []string) (Options, error) {
	var opt Options
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "-d" || a == "--debug":
			opt.Debug = true
		case a == "--config":
			if i+1 >= len(args) {
				return opt, fmt.Errorf("--config requires a path argument")
			}
			i++
			opt.ConfigPath = args[i]
		case strings.HasPrefix(a, "--config="):
			opt.ConfigPath = strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-"):
			return opt, fmt.Errorf("unrecognized flag %q", a)
		case opt.SourcePath == "":
			opt.SourcePath = a
		default:
			return opt, fmt.Errorf("unexpected extra argument %q", a)
		}
	}
	if opt.SourcePath == "" {
		return opt, fmt.Errorf("usage: raoul [-d|--debug] [--config path.yaml] <source.ra>")
	}
	return opt, nil
}

// Run compiles and executes one Raoul source file, returning the process
// exit code spec §6 defines.
func Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opt, err := ParseArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsageErr
	}

	recursionDepth := 0
	if opt.ConfigPath != "" {
		f, err := config.Load(opt.ConfigPath)
		if err != nil {
			fmt.Fprintf(stderr, "reading config: %v\n", err)
			return ExitUsageErr
		}
		opt.Debug = opt.Debug || f.Debug
		recursionDepth = f.RecursionDepth
	}

	source, err := os.ReadFile(opt.SourcePath)
	if err != nil {
		fmt.Fprintf(stderr, "reading %s: %v\n", opt.SourcePath, err)
		return ExitUsageErr
	}

	pl := pipeline.New(parser.NewProcessor(), analyzer.NewProcessor())
	pctx := pl.Run(pipeline.NewContext(string(source)))

	if len(pctx.Errors) > 0 {
		for _, e := range pctx.Errors {
			fmt.Fprintf(stderr, "%s:%d:%d: %s: %s\n", opt.SourcePath, e.Pos.Line, e.Pos.Column, e.Code, e.Message)
		}
		return ExitCompileErr
	}

	if opt.Debug {
		pctx.IR.Disassemble(stdout)
	}

	machine := vm.New(pctx.IR, stdin, stdout, plotsink.Null{}, recursionDepth)
	defer machine.Close()
	if err := machine.Run(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitRuntimeErr
	}
	return ExitOK
}

// ColorEnabled reports whether w is a real terminal worth emitting ANSI
// escapes to, grounded on the teacher's internal/evaluator/builtins_term.go
// detectColorLevel, which gates on the same two isatty checks.
func ColorEnabled(w *os.File) bool {
	return isatty.IsTerminal(w.Fd()) || isatty.IsCygwinTerminal(w.Fd())
}
