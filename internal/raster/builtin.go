package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/Mavwarf/mkicon/internal/paths"
)

// Builtin rasterizes in-process with oksvg. It has no filter support, so
// the inner shadow is dropped; it exists for hosts without any of the
// external converters.
type Builtin struct{}

func (Builtin) Name() string { return "builtin" }

func (b Builtin) Rasterize(svgPath string, size int, outPath string) error {
	f, err := os.Open(svgPath)
	if err != nil {
		return fmt.Errorf("%s: %w", b.Name(), err)
	}
	defer f.Close()

	icon, err := oksvg.ReadIconStream(f, oksvg.IgnoreErrorMode)
	if err != nil {
		return fmt.Errorf("%s: parse svg: %w", b.Name(), err)
	}
	icon.SetTarget(0, 0, float64(size), float64(size))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("%s: encode png: %w", b.Name(), err)
	}
	return paths.AtomicWrite(outPath, buf.Bytes())
}
