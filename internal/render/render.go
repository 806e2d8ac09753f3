// Package render draws a diagram scene as SVG or PNG.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"diagram-editor-service/internal/core/domain"
)

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

const (
	defaultFill   = "#ffffff"
	defaultStroke = "#333333"
	fontSize      = 12.0
	markerSize    = 10.0
)

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported render format %q", s)
}

func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Write renders scene to w in format f.
func Write(w io.Writer, scene *domain.Scene, f Format) error {
	switch f {
	case FormatSVG:
		return SVG(w, scene)
	case FormatPNG:
		return PNG(w, scene)
	}
	return fmt.Errorf("unsupported render format %q", f)
}

// shapeStyle holds the colours an element may override through estilo_json.
type shapeStyle struct {
	Fill   string `json:"fill"`
	Stroke string `json:"stroke"`
}

func styleOf(e *domain.Element) shapeStyle {
	st := shapeStyle{Fill: defaultFill, Stroke: defaultStroke}
	if e.StyleJSON == nil {
		return st
	}
	var override shapeStyle
	if err := json.Unmarshal([]byte(*e.StyleJSON), &override); err != nil {
		return st
	}
	if isHexColor(override.Fill) {
		st.Fill = override.Fill
	}
	if isHexColor(override.Stroke) {
		st.Stroke = override.Stroke
	}
	return st
}

func isHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	switch len(s) {
	case 4, 7, 9:
	default:
		return false
	}
	for _, r := range s[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return true
}

// endpoints trims a link to the borders of the shapes it joins.
func endpoints(scene *domain.Scene, l domain.Link) (from, to domain.Point) {
	from, to = l.From, l.To
	if src, ok := scene.Shape(l.SourceID); ok {
		from = domain.BorderPoint(src, l.To)
	}
	if dst, ok := scene.Shape(l.TargetID); ok {
		to = domain.BorderPoint(dst, l.From)
	}
	return from, to
}

// dashPattern parses a space separated dash array such as "6 4".
func dashPattern(dash string) []float64 {
	var out []float64
	for _, f := range strings.Fields(dash) {
		var v float64
		if _, err := fmt.Sscan(f, &v); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	return out
}
