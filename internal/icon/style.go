package icon

// Stop is one color stop of a linear gradient.
type Stop struct {
	Offset string `json:"offset"` // percentage, e.g. "50%"
	Color  string `json:"color"`
}

// Style holds the design constants of the icon. Values are copied into
// every descriptor; nothing here is mutated after construction.
type Style struct {
	Background []Stop `json:"background"`
	Glyph      []Stop `json:"glyph"`

	CornerRatio   float64 `json:"corner_ratio"`
	PaddingRatio  float64 `json:"padding_ratio"`
	WidthRatio    float64 `json:"width_ratio"`
	HeightRatio   float64 `json:"height_ratio"`
	StrokeRatio   float64 `json:"stroke_ratio"`
	BlurRatio     float64 `json:"blur_ratio"`
	OffsetRatio   float64 `json:"offset_ratio"`
	ShadowOpacity float64 `json:"shadow_opacity"`
}

// DefaultStyle returns the dark background + gold "L" design.
func DefaultStyle() Style {
	return Style{
		Background: []Stop{
			{Offset: "0%", Color: "#242424"},
			{Offset: "100%", Color: "#1a1a1a"},
		},
		Glyph: []Stop{
			{Offset: "0%", Color: "#e8c068"},
			{Offset: "50%", Color: "#d4a853"},
			{Offset: "100%", Color: "#c49a48"},
		},
		CornerRatio:   0.22,
		PaddingRatio:  0.22,
		WidthRatio:    0.45,
		HeightRatio:   0.56,
		StrokeRatio:   0.12,
		BlurRatio:     0.02,
		OffsetRatio:   0.01,
		ShadowOpacity: 0.3,
	}
}

// Geometry is the set of pixel measurements derived from a Style at a
// given size.
type Geometry struct {
	Size         int
	CornerRadius float64
	Padding      float64
	Width        float64
	Height       float64
	Stroke       float64
	Blur         float64
	Offset       float64

	// Glyph path: down the left edge from (X0, Y0) to (X0, Y1), then
	// along the bottom to (X2, Y1).
	X0, Y0, Y1, X2 float64
}

// Measure computes the geometry of the icon at size pixels.
func Measure(size int, st Style) Geometry {
	s := float64(size)
	g := Geometry{
		Size:         size,
		CornerRadius: s * st.CornerRatio,
		Padding:      s * st.PaddingRatio,
		Width:        s * st.WidthRatio,
		Height:       s * st.HeightRatio,
		Stroke:       s * st.StrokeRatio,
		Blur:         s * st.BlurRatio,
		Offset:       s * st.OffsetRatio,
	}
	g.X0 = g.Padding + g.Stroke/2
	g.Y0 = g.Padding
	g.Y1 = g.Padding + g.Height - g.Stroke/2
	g.X2 = g.Padding + g.Width
	return g
}
