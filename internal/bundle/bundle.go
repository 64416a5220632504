// Package bundle assembles an iconset directory into icon container files.
package bundle

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	ico "github.com/Kodeworks/golang-image-ico"
	"golang.org/x/image/draw"

	"github.com/Mavwarf/mkicon/internal/iconset"
	"github.com/Mavwarf/mkicon/internal/paths"
	"github.com/Mavwarf/mkicon/internal/raster"
)

// Assembler turns a directory of PNGs into a single container file.
type Assembler interface {
	Name() string
	Assemble(iconsetDir, outPath string) error
}

// Iconutil builds a macOS .icns with iconutil.
type Iconutil struct {
	Runner raster.Runner
}

func (Iconutil) Name() string { return "iconutil" }

func (u Iconutil) Assemble(iconsetDir, outPath string) error {
	if _, err := u.Runner.Run("iconutil", "-c", "icns", iconsetDir, "-o", outPath); err != nil {
		return err
	}
	return nil
}

// ICOSize is the edge length of the bitmap stored in the .ico file.
const ICOSize = 256

// ErrNoSource is returned when the iconset holds no usable bitmap.
var ErrNoSource = errors.New("no bitmap in iconset")

// ICO writes a Windows .ico holding a single 256px image, downscaled
// from the largest bitmap present in the iconset.
type ICO struct{}

func (ICO) Name() string { return "ico" }

func (i ICO) Assemble(iconsetDir, outPath string) error {
	src, err := largestBitmap(iconsetDir)
	if err != nil {
		return fmt.Errorf("%s: %w", i.Name(), err)
	}
	img, err := decodePNG(src)
	if err != nil {
		return fmt.Errorf("%s: %w", i.Name(), err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, ICOSize, ICOSize))
	draw.CatmullRom.Scale(dst, dst.Rect, img, img.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := ico.Encode(&buf, dst); err != nil {
		return fmt.Errorf("%s: encode: %w", i.Name(), err)
	}
	return paths.AtomicWrite(outPath, buf.Bytes())
}

// largestBitmap returns the path of the highest-resolution entry that
// exists in dir.
func largestBitmap(dir string) (string, error) {
	best, bestPx := "", 0
	for _, e := range iconset.Entries() {
		p := filepath.Join(dir, e.FileName())
		if e.Pixels() > bestPx && paths.Exists(p) {
			best, bestPx = p, e.Pixels()
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: %s", ErrNoSource, dir)
	}
	return best, nil
}

func decodePNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return img, nil
}
