// Package icon builds the SVG descriptor of the application icon.
package icon

import (
	"strconv"
	"strings"
	"text/template"
)

var svgTmpl = template.Must(template.New("icon").Funcs(template.FuncMap{
	"num": num,
}).Parse(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="{{.G.Size}}" height="{{.G.Size}}" viewBox="0 0 {{.G.Size}} {{.G.Size}}" xmlns="http://www.w3.org/2000/svg">
  <defs>
    <linearGradient id="bgGrad" x1="0%" y1="0%" x2="100%" y2="100%">
{{- range .S.Background}}
      <stop offset="{{.Offset}}" style="stop-color:{{.Color}}"/>
{{- end}}
    </linearGradient>

    <linearGradient id="lGrad" x1="0%" y1="0%" x2="100%" y2="100%">
{{- range .S.Glyph}}
      <stop offset="{{.Offset}}" style="stop-color:{{.Color}}"/>
{{- end}}
    </linearGradient>

    <filter id="innerShadow" x="-50%" y="-50%" width="200%" height="200%">
      <feGaussianBlur in="SourceAlpha" stdDeviation="{{num .G.Blur}}" result="blur"/>
      <feOffset dx="{{num .G.Offset}}" dy="{{num .G.Offset}}"/>
      <feComposite in2="SourceAlpha" operator="arithmetic" k2="-1" k3="1"/>
      <feColorMatrix type="matrix" values="0 0 0 0 0  0 0 0 0 0  0 0 0 0 0  0 0 0 {{num .S.ShadowOpacity}} 0"/>
      <feBlend in2="SourceGraphic"/>
    </filter>
  </defs>

  <rect x="0" y="0" width="{{.G.Size}}" height="{{.G.Size}}" rx="{{num .G.CornerRadius}}" ry="{{num .G.CornerRadius}}" fill="url(#bgGrad)"/>

  <path d="M {{num .G.X0}} {{num .G.Y0}} L {{num .G.X0}} {{num .G.Y1}} L {{num .G.X2}} {{num .G.Y1}}"
        fill="none"
        stroke="url(#lGrad)"
        stroke-width="{{num .G.Stroke}}"
        stroke-linecap="round"
        stroke-linejoin="round"
        filter="url(#innerShadow)"/>
</svg>
`))

// SVG returns the icon descriptor for a square of size pixels. The
// output depends only on its arguments.
func SVG(size int, st Style) string {
	var b strings.Builder
	data := struct {
		G Geometry
		S Style
	}{Measure(size, st), st}
	// Executing a parsed template into a strings.Builder only fails on
	// programming errors in the template itself.
	if err := svgTmpl.Execute(&b, data); err != nil {
		panic("icon: " + err.Error())
	}
	return b.String()
}

// num formats v in the shortest form that round-trips.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
