package raster

import (
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mavwarf/mkicon/internal/icon"
)

func TestRSVGArgs(t *testing.T) {
	dir := t.TempDir()
	var got []string
	r := &fakeRunner{handlers: map[string]func([]string) error{
		"rsvg-convert": func(args []string) error {
			got = args
			return writeArg(5)(args)
		},
	}}
	svg := filepath.Join(dir, "temp_32.svg")
	out := filepath.Join(dir, "icon.png")
	require.NoError(t, RSVG{Runner: r}.Rasterize(svg, 32, out))
	assert.Equal(t, []string{"-w", "32", "-h", "32", "-o", out, svg}, got)
}

func TestRSVGNoOutput(t *testing.T) {
	r := &fakeRunner{handlers: map[string]func([]string) error{
		"rsvg-convert": func([]string) error { return nil },
	}}
	dir := t.TempDir()
	err := RSVG{Runner: r}.Rasterize(filepath.Join(dir, "a.svg"), 16, filepath.Join(dir, "a.png"))
	assert.ErrorIs(t, err, ErrNoOutput)
}

func TestQuickLookRenamesOutput(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "temp_64.svg")
	out := filepath.Join(dir, "icon_32x32@2x.png")
	var got []string
	r := &fakeRunner{handlers: map[string]func([]string) error{
		"qlmanage": func(args []string) error {
			got = args
			// qlmanage names its output after the source file.
			return os.WriteFile(filepath.Join(args[4], filepath.Base(args[5])+".png"), []byte("png"), 0644)
		},
	}}
	require.NoError(t, QuickLook{Runner: r}.Rasterize(svg, 64, out))
	assert.Equal(t, []string{"-t", "-s", "64", "-o", dir, svg}, got)
	assert.FileExists(t, out)
	assert.NoFileExists(t, ThumbnailPath(svg))
}

func TestQuickLookMissingThumbnail(t *testing.T) {
	dir := t.TempDir()
	r := &fakeRunner{handlers: map[string]func([]string) error{
		"qlmanage": func([]string) error { return nil },
	}}
	err := QuickLook{Runner: r}.Rasterize(filepath.Join(dir, "temp_16.svg"), 16, filepath.Join(dir, "out.png"))
	assert.ErrorIs(t, err, ErrNoOutput)
	assert.NoFileExists(t, filepath.Join(dir, "out.png"))
}

func TestThumbnailPath(t *testing.T) {
	p := filepath.Join("a", "b", "temp_16.svg")
	assert.Equal(t, filepath.Join("a", "b", "temp_16.svg.png"), ThumbnailPath(p))
}

func TestMagickArgs(t *testing.T) {
	dir := t.TempDir()
	var got []string
	r := &fakeRunner{handlers: map[string]func([]string) error{
		"convert": func(args []string) error {
			got = args
			return lastArg(args)
		},
	}}
	svg := filepath.Join(dir, "temp_128.svg")
	out := filepath.Join(dir, "icon_128x128.png")
	require.NoError(t, Magick{Runner: r}.Rasterize(svg, 128, out))
	assert.Equal(t, []string{"-background", "none", "-density", "300", svg, "-resize", "128x128", out}, got)
}

func TestBuiltinRendersPNG(t *testing.T) {
	dir := t.TempDir()
	svg := filepath.Join(dir, "temp_32.svg")
	out := filepath.Join(dir, "icon_32x32.png")
	require.NoError(t, os.WriteFile(svg, []byte(icon.SVG(32, icon.DefaultStyle())), 0644))

	require.NoError(t, Builtin{}.Rasterize(svg, 32, out))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestBuiltinMissingFile(t *testing.T) {
	dir := t.TempDir()
	err := Builtin{}.Rasterize(filepath.Join(dir, "nope.svg"), 16, filepath.Join(dir, "out.png"))
	assert.Error(t, err)
}

func TestExecRunnerMissingTool(t *testing.T) {
	const name = "mkicon-definitely-not-installed"
	if _, err := exec.LookPath(name); err == nil {
		t.Skip("unexpected binary on PATH")
	}
	_, err := ExecRunner{}.Run(name)
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Contains(t, err.Error(), name)
}
