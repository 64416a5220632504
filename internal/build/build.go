// Package build drives a complete icon build: one bitmap per iconset
// entry, the standalone 1024px copy, and the container files.
package build

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/mkicon/internal/bundle"
	"github.com/Mavwarf/mkicon/internal/eventlog"
	"github.com/Mavwarf/mkicon/internal/icon"
	"github.com/Mavwarf/mkicon/internal/iconset"
	"github.com/Mavwarf/mkicon/internal/paths"
	"github.com/Mavwarf/mkicon/internal/raster"
)

// Renderer rasterizes an SVG descriptor to a PNG. *raster.Chain
// implements it.
type Renderer interface {
	Render(descriptor string, size int, outPath string) (raster.Attempt, error)
}

// Container pairs an assembler with the file name it writes in the
// output directory.
type Container struct {
	Assembler bundle.Assembler
	File      string
}

// Builder runs builds. Renderer is required. Entries defaults to
// iconset.Entries() and Out to io.Discard. Store is optional.
type Builder struct {
	Entries    []iconset.Entry
	Style      icon.Style
	Renderer   Renderer
	Containers []Container
	Store      eventlog.Store
	Out        io.Writer
	// Plain replaces the ✓/❌ markers with ok/FAIL, for non-terminal output.
	Plain bool

	now func() time.Time
}

// ErrNoRenderer is returned by Run when the Builder has no Renderer.
var ErrNoRenderer = errors.New("build: no renderer configured")

// Run builds the iconset under outDir. Per-entry, copy and container
// failures are reported on Out and recorded in the Summary; the only
// errors returned are a missing Renderer and failure to create the
// iconset directory.
func (b *Builder) Run(outDir string) (Summary, error) {
	sum := Summary{OutDir: outDir, Time: b.timeNow()}
	if b.Renderer == nil {
		return sum, ErrNoRenderer
	}
	dir := paths.IconsetDir(outDir)
	if err := os.MkdirAll(dir, paths.DirPerm); err != nil {
		return sum, fmt.Errorf("create iconset dir: %w", err)
	}

	out := b.out()
	fmt.Fprintf(out, "Generating icon set in %s\n", dir)

	entries := b.Entries
	if entries == nil {
		entries = iconset.Entries()
	}
	for _, e := range entries {
		res := b.renderEntry(dir, e)
		sum.Results = append(sum.Results, res)
		if res.Err != nil {
			fmt.Fprintf(out, "   %s Failed to generate %s\n", b.mark(false), e.FileName())
			for _, line := range strings.Split(res.Err.Error(), "\n") {
				if line = strings.TrimSpace(line); line != "" {
					fmt.Fprintf(out, "      %s\n", line)
				}
			}
			continue
		}
		fmt.Fprintf(out, "   %s %s via %s\n", b.mark(true), e, res.Tool)
	}

	src := filepath.Join(dir, iconset.Largest.FileName())
	if paths.Exists(src) {
		dst := filepath.Join(outDir, paths.StandaloneName)
		if err := paths.CopyFile(src, dst); err != nil {
			fmt.Fprintf(out, "   %s Failed to copy %s: %v\n", b.mark(false), paths.StandaloneName, err)
		} else {
			sum.Standalone = dst
			fmt.Fprintf(out, "   %s %s\n", b.mark(true), paths.StandaloneName)
		}
	}

	for _, c := range b.Containers {
		cr := ContainerResult{Name: c.Assembler.Name(), Path: filepath.Join(outDir, c.File)}
		fmt.Fprintf(out, "\nGenerating %s...\n", c.File)
		if err := c.Assembler.Assemble(dir, cr.Path); err != nil {
			cr.Err = err
			fmt.Fprintf(out, "   %s Failed to generate %s: %v\n", b.mark(false), c.File, err)
		} else {
			fmt.Fprintf(out, "   %s %s\n", b.mark(true), c.File)
		}
		sum.Containers = append(sum.Containers, cr)
	}

	fmt.Fprintf(out, "\nIcon generation complete: %d/%d sizes\n", sum.Succeeded(), len(sum.Results))
	fmt.Fprintf(out, "   Output: %s\n", outDir)

	b.record(sum)
	return sum, nil
}

func (b *Builder) renderEntry(dir string, e iconset.Entry) Result {
	res := Result{Entry: e, Path: filepath.Join(dir, e.FileName())}
	px := e.Pixels()
	at, err := b.Renderer.Render(icon.SVG(px, b.Style), px, res.Path)
	res.Tool = at.Tool
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", e.FileName(), err)
	}
	return res
}

// record appends the run to the history store. Best-effort: errors are
// printed to stderr but never returned.
func (b *Builder) record(sum Summary) {
	if b.Store == nil {
		return
	}
	if err := b.Store.LogRun(sum.Run()); err != nil {
		fmt.Fprintf(os.Stderr, "eventlog: %v\n", err)
	}
}

func (b *Builder) mark(ok bool) string {
	switch {
	case b.Plain && ok:
		return "ok"
	case b.Plain:
		return "FAIL"
	case ok:
		return "✓"
	default:
		return "❌"
	}
}

func (b *Builder) out() io.Writer {
	if b.Out == nil {
		return io.Discard
	}
	return b.Out
}

func (b *Builder) timeNow() time.Time {
	if b.now != nil {
		return b.now()
	}
	return time.Now()
}
