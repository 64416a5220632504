package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mavwarf/mkicon/internal/icon"
)

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("mkicon", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func clearEnv(t *testing.T) {
	for _, k := range []string{"MKICON_OUT_DIR", "MKICON_BUILTIN", "MKICON_ICO", "MKICON_STRICT", "MKICON_HISTORY", "MKICON_STYLE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func writeStyle(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "style.json")
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	return path
}

func TestParseDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.False(t, cfg.Builtin)
	assert.False(t, cfg.ICO)
	assert.False(t, cfg.Strict)
	assert.Equal(t, "off", cfg.History)
}

func TestParseEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MKICON_OUT_DIR", "/tmp/icons")
	t.Setenv("MKICON_BUILTIN", "true")
	t.Setenv("MKICON_HISTORY", "sqlite")

	cfg, err := Parse(newFlagSet(), nil)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/icons", cfg.OutDir)
	assert.True(t, cfg.Builtin)
	assert.Equal(t, "sqlite", cfg.History)
}

func TestParseFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MKICON_OUT_DIR", "/from/env")
	t.Setenv("MKICON_HISTORY", "sqlite")

	cfg, err := Parse(newFlagSet(), []string{"-out", "/from/flag", "-history", "file", "-ico", "-strict"})
	require.NoError(t, err)
	assert.Equal(t, "/from/flag", cfg.OutDir)
	assert.Equal(t, "file", cfg.History)
	assert.True(t, cfg.ICO)
	assert.True(t, cfg.Strict)
}

func TestParseInvalidHistory(t *testing.T) {
	clearEnv(t)
	_, err := Parse(newFlagSet(), []string{"-history", "redis"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis")
}

func TestParseInvalidEnvBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("MKICON_ICO", "maybe")
	_, err := Parse(newFlagSet(), nil)
	assert.Error(t, err)
}

func TestParseUnknownFlag(t *testing.T) {
	clearEnv(t)
	_, err := Parse(newFlagSet(), []string{"-nope"})
	assert.Error(t, err)
}

func TestParseHelp(t *testing.T) {
	clearEnv(t)
	_, err := Parse(newFlagSet(), []string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestLoadStyleDefault(t *testing.T) {
	st, err := LoadStyle("")
	require.NoError(t, err)
	assert.Equal(t, icon.SVG(64, icon.DefaultStyle()), icon.SVG(64, st))
}

func TestLoadStylePartialOverride(t *testing.T) {
	path := writeStyle(t, `{"stroke_ratio": 0.1, "glyph": [{"offset": "0%", "color": "#ffffff"}]}`)

	st, err := LoadStyle(path)
	require.NoError(t, err)
	assert.Equal(t, 0.1, st.StrokeRatio)
	assert.Equal(t, []icon.Stop{{Offset: "0%", Color: "#ffffff"}}, st.Glyph)

	def := icon.DefaultStyle()
	assert.Equal(t, def.CornerRatio, st.CornerRatio)
	assert.Equal(t, def.Background, st.Background)
}

func TestLoadStyleShadowOff(t *testing.T) {
	st, err := LoadStyle(writeStyle(t, `{"blur_ratio": 0, "offset_ratio": 0, "shadow_opacity": 0}`))
	require.NoError(t, err)
	assert.Zero(t, st.BlurRatio)
	assert.Zero(t, st.ShadowOpacity)
}

func TestLoadStyleInvalid(t *testing.T) {
	tests := []struct {
		name, data string
	}{
		{"bad json", `{`},
		{"zero ratio", `{"width_ratio": 0}`},
		{"ratio too large", `{"corner_ratio": 2}`},
		{"empty gradient", `{"background": []}`},
		{"negative blur", `{"blur_ratio": -0.1}`},
		{"offset too large", `{"offset_ratio": 1.5}`},
		{"opacity too large", `{"shadow_opacity": 2}`},
		{"quote in color", `{"glyph": [{"offset": "0%", "color": "#fff\" onload=\"x"}]}`},
		{"tag in offset", `{"background": [{"offset": "<g>", "color": "#000"}]}`},
		{"missing color", `{"glyph": [{"offset": "0%"}]}`},
	}
	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.name, " ", "_"), func(t *testing.T) {
			_, err := LoadStyle(writeStyle(t, tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoadStyleMissingFile(t *testing.T) {
	_, err := LoadStyle(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
