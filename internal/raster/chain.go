package raster

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Mavwarf/mkicon/internal/paths"
)

// Chain tries its rasterizers in order and stops at the first success.
type Chain struct {
	Tools []Rasterizer
}

// NewChain returns the standard chain: rsvg-convert, then qlmanage, then
// ImageMagick. With builtin set, the in-process rasterizer is appended as
// a last resort.
func NewChain(r Runner, builtin bool) *Chain {
	c := &Chain{Tools: []Rasterizer{
		RSVG{Runner: r},
		QuickLook{Runner: r},
		Magick{Runner: r},
	}}
	if builtin {
		c.Tools = append(c.Tools, Builtin{})
	}
	return c
}

// Attempt describes how a Render call went.
type Attempt struct {
	Tool     string  // rasterizer that succeeded, "" if none did
	Failures []error // one per rasterizer tried before Tool
}

// TempPath returns the descriptor file used while rendering outPath at
// size pixels.
func TempPath(outPath string, size int) string {
	return filepath.Join(filepath.Dir(outPath), fmt.Sprintf("temp_%d.svg", size))
}

// Render writes descriptor to a temporary SVG next to outPath and
// rasterizes it to outPath. Any existing outPath is removed first, so a
// bitmap from an earlier build never counts as a tool's output. The
// temporary file is removed before Render returns, whatever the outcome.
func (c *Chain) Render(descriptor string, size int, outPath string) (Attempt, error) {
	var at Attempt
	if err := os.Remove(outPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return at, fmt.Errorf("remove stale output: %w", err)
	}
	svgPath := TempPath(outPath, size)
	if err := os.WriteFile(svgPath, []byte(descriptor), paths.FilePerm); err != nil {
		return at, fmt.Errorf("write descriptor: %w", err)
	}
	defer os.Remove(svgPath)

	for _, t := range c.Tools {
		err := t.Rasterize(svgPath, size, outPath)
		if err == nil {
			at.Tool = t.Name()
			return at, nil
		}
		at.Failures = append(at.Failures, err)
	}
	return at, errors.Join(append([]error{ErrAllFailed}, at.Failures...)...)
}
