package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/Mavwarf/mkicon/internal/eventlog"
	"github.com/Mavwarf/mkicon/internal/icon"
)

// DefaultOutDir is the build directory used when neither MKICON_OUT_DIR
// nor -out is given.
const DefaultOutDir = "build"

// Config holds mkicon settings. Environment variables provide defaults;
// command-line flags override them.
type Config struct {
	OutDir    string `env:"MKICON_OUT_DIR" envDefault:"build"`
	Builtin   bool   `env:"MKICON_BUILTIN"`
	ICO       bool   `env:"MKICON_ICO"`
	Strict    bool   `env:"MKICON_STRICT"`
	History   string `env:"MKICON_HISTORY" envDefault:"off"`
	StyleFile string `env:"MKICON_STYLE"`
}

// Parse loads the environment into a Config, then applies flags from args.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory for the iconset and containers")
	fs.BoolVar(&cfg.Builtin, "builtin", cfg.Builtin, "fall back to the built-in rasterizer when no external tool works")
	fs.BoolVar(&cfg.ICO, "ico", cfg.ICO, "also write a Windows icon.ico")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "exit non-zero when any size or container fails")
	fs.StringVar(&cfg.History, "history", cfg.History, "run history backend: off, file or sqlite")
	fs.StringVar(&cfg.StyleFile, "style", cfg.StyleFile, "JSON file overriding icon colors and proportions")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch cfg.History {
	case eventlog.BackendOff, eventlog.BackendFile, eventlog.BackendSQLite:
	default:
		return Config{}, fmt.Errorf("invalid history backend %q (want off, file or sqlite)", cfg.History)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	return cfg, nil
}

// styleFile is the on-disk form of an icon.Style override.
type styleFile struct {
	icon.Style
}

// UnmarshalJSON sets defaults then decodes the JSON structure.
// Go's json.Unmarshal merges into existing struct fields, so only
// values present in JSON override the defaults.
func (s *styleFile) UnmarshalJSON(data []byte) error {
	s.Style = icon.DefaultStyle()
	return json.Unmarshal(data, &s.Style)
}

// LoadStyle returns the default icon style, overridden by the JSON file
// at path when path is non-empty.
func LoadStyle(path string) (icon.Style, error) {
	if path == "" {
		return icon.DefaultStyle(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return icon.Style{}, fmt.Errorf("reading style: %w", err)
	}
	var sf styleFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return icon.Style{}, fmt.Errorf("parsing style %s: %w", path, err)
	}
	if err := validateStyle(sf.Style); err != nil {
		return icon.Style{}, fmt.Errorf("style %s: %w", path, err)
	}
	return sf.Style, nil
}

func validateStyle(st icon.Style) error {
	if len(st.Background) == 0 || len(st.Glyph) == 0 {
		return fmt.Errorf("gradients need at least one stop")
	}
	for _, stops := range [][]icon.Stop{st.Background, st.Glyph} {
		for _, s := range stops {
			if err := validateStop(s); err != nil {
				return err
			}
		}
	}
	ratios := map[string]float64{
		"corner_ratio":  st.CornerRatio,
		"padding_ratio": st.PaddingRatio,
		"width_ratio":   st.WidthRatio,
		"height_ratio":  st.HeightRatio,
		"stroke_ratio":  st.StrokeRatio,
	}
	for name, v := range ratios {
		if v <= 0 || v > 1 {
			return fmt.Errorf("%s must be in (0, 1], got %v", name, v)
		}
	}
	// The shadow may be switched off, so zero is allowed here.
	shadow := map[string]float64{
		"blur_ratio":     st.BlurRatio,
		"offset_ratio":   st.OffsetRatio,
		"shadow_opacity": st.ShadowOpacity,
	}
	for name, v := range shadow {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %v", name, v)
		}
	}
	return nil
}

// validateStop rejects values that would break out of an SVG attribute.
func validateStop(s icon.Stop) error {
	if s.Offset == "" || s.Color == "" {
		return fmt.Errorf("gradient stop needs offset and color: %+v", s)
	}
	for _, v := range []string{s.Offset, s.Color} {
		if strings.ContainsAny(v, "\"<>&") {
			return fmt.Errorf("invalid character in gradient stop value %q", v)
		}
	}
	return nil
}
