// mkicon renders the application icon at every iconset resolution and
// bundles the result into icon.icns.
//
// Usage: go run ./cmd/mkicon [build] [options]
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/Mavwarf/mkicon/internal/build"
	"github.com/Mavwarf/mkicon/internal/bundle"
	"github.com/Mavwarf/mkicon/internal/config"
	"github.com/Mavwarf/mkicon/internal/eventlog"
	"github.com/Mavwarf/mkicon/internal/paths"
	"github.com/Mavwarf/mkicon/internal/raster"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitError   = 1
	exitPartial = 2 // -strict and some size or container failed
)

// newRunner returns the process runner used for converters and iconutil.
var newRunner = func() raster.Runner { return raster.ExecRunner{} }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cmd := "build"
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "help", "-h", "--help":
		printUsage(stdout)
		return exitOK
	case "version", "-V", "--version":
		printVersion(stdout)
		return exitOK
	case "history":
		return runHistory(args, stdout, stderr)
	case "build":
		return runBuild(args, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		fmt.Fprintf(stderr, "Run 'mkicon help' for usage.\n")
		return exitError
	}
}

func runBuild(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mkicon build", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg, err := config.Parse(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}

	b, closeStore, err := newBuilder(cfg, stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer closeStore()

	sum, err := b.Run(cfg.OutDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	if cfg.Strict && !sum.OK() {
		return exitPartial
	}
	return exitOK
}

// newBuilder wires the rasterizer chain, assemblers and history store
// described by cfg. The returned func closes the store.
func newBuilder(cfg config.Config, stdout, stderr io.Writer) (*build.Builder, func(), error) {
	style, err := config.LoadStyle(cfg.StyleFile)
	if err != nil {
		return nil, nil, err
	}

	runner := newRunner()
	b := &build.Builder{
		Style:    style,
		Renderer: raster.NewChain(runner, cfg.Builtin),
		Containers: []build.Container{
			{Assembler: bundle.Iconutil{Runner: runner}, File: paths.ContainerName},
		},
		Out:   stdout,
		Plain: !isTerminal(stdout),
	}
	if cfg.ICO {
		b.Containers = append(b.Containers, build.Container{Assembler: bundle.ICO{}, File: paths.ICOName})
	}

	closeStore := func() {}
	store, err := eventlog.Open(cfg.History, paths.DataDir())
	if err != nil {
		// History is best-effort; the build goes ahead without it.
		fmt.Fprintf(stderr, "warning: history disabled: %v\n", err)
	} else if store != nil {
		b.Store = store
		closeStore = func() { store.Close() }
	}
	return b, closeStore, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printVersion(w io.Writer) {
	fmt.Fprintf(w, "mkicon %s (%s) %s/%s\n", version, buildDate, runtime.GOOS, runtime.GOARCH)
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, "mkicon %s - Build the application icon set\n", version)
	fmt.Fprintln(w, `
Usage:
  mkicon [build] [options]
  mkicon history [-n N] [-history file|sqlite] [-clear]

Options:
  -out <dir>          Output directory (env MKICON_OUT_DIR, default: build)
  -builtin            Use the built-in rasterizer when no converter works (MKICON_BUILTIN)
  -ico                Also write icon.ico (MKICON_ICO)
  -strict             Exit 2 if any size or container failed (MKICON_STRICT)
  -history <backend>  Record runs: off, file or sqlite (MKICON_HISTORY, default: off)
  -style <file>       JSON file overriding colors and proportions (MKICON_STYLE)

Commands:
  build               Render all sizes and assemble icon.icns (default)
  history             Show recorded runs
  version, -V         Show version and build date
  help, -h, --help    Show this help message

Converters, tried in order for each size:
  rsvg-convert, qlmanage, convert (ImageMagick)
Container:
  iconutil`)
}
