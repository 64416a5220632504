package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Mavwarf/mkicon/internal/paths"
)

// Rasterizer renders the SVG at svgPath into a size×size PNG at outPath.
type Rasterizer interface {
	Name() string
	Rasterize(svgPath string, size int, outPath string) error
}

// RSVG converts with librsvg's rsvg-convert.
type RSVG struct {
	Runner Runner
}

func (RSVG) Name() string { return "rsvg-convert" }

func (r RSVG) Rasterize(svgPath string, size int, outPath string) error {
	s := strconv.Itoa(size)
	if _, err := r.Runner.Run("rsvg-convert", "-w", s, "-h", s, "-o", outPath, svgPath); err != nil {
		return err
	}
	return expectOutput(r.Name(), outPath)
}

// QuickLook converts with macOS qlmanage. qlmanage ignores the requested
// file name and writes "<svg basename>.png" into the output directory,
// so the result is moved into place afterwards.
type QuickLook struct {
	Runner Runner
}

func (QuickLook) Name() string { return "qlmanage" }

func (q QuickLook) Rasterize(svgPath string, size int, outPath string) error {
	dir := filepath.Dir(svgPath)
	if _, err := q.Runner.Run("qlmanage", "-t", "-s", strconv.Itoa(size), "-o", dir, svgPath); err != nil {
		return err
	}
	produced := ThumbnailPath(svgPath)
	if !paths.Exists(produced) {
		return fmt.Errorf("%s: %w: %s", q.Name(), ErrNoOutput, filepath.Base(produced))
	}
	if err := os.Rename(produced, outPath); err != nil {
		os.Remove(produced)
		return fmt.Errorf("%s: rename output: %w", q.Name(), err)
	}
	return nil
}

// ThumbnailPath returns where qlmanage writes the thumbnail of svgPath.
func ThumbnailPath(svgPath string) string {
	return filepath.Join(filepath.Dir(svgPath), filepath.Base(svgPath)+".png")
}

// Magick converts with ImageMagick's convert on a transparent background.
type Magick struct {
	Runner Runner
}

func (Magick) Name() string { return "convert" }

func (m Magick) Rasterize(svgPath string, size int, outPath string) error {
	geom := fmt.Sprintf("%dx%d", size, size)
	if _, err := m.Runner.Run("convert", "-background", "none", "-density", "300",
		svgPath, "-resize", geom, outPath); err != nil {
		return err
	}
	return expectOutput(m.Name(), outPath)
}

func expectOutput(tool, path string) error {
	if !paths.Exists(path) {
		return fmt.Errorf("%s: %w: %s", tool, ErrNoOutput, filepath.Base(path))
	}
	return nil
}
