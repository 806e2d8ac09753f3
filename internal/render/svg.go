package render

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"diagram-editor-service/internal/core/domain"
)

// SVG writes scene as a standalone SVG document. Links are drawn beneath
// shapes, shapes in z-order.
func SVG(w io.Writer, scene *domain.Scene) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		scene.Width, scene.Height, scene.Width, scene.Height)
	buf.WriteString("  <style>\n")
	buf.WriteString("    .link { stroke: #333; stroke-width: 1.5px; fill: none; }\n")
	fmt.Fprintf(&buf, "    text { font-family: monospace; font-size: %.0fpx; fill: #212529; }\n", fontSize)
	buf.WriteString("    .link-label { text-anchor: middle; fill: #495057; }\n")
	buf.WriteString("  </style>\n")
	buf.WriteString("  <defs>\n")
	fmt.Fprintf(&buf, "    <marker id=\"arrow\" markerWidth=\"%[1]g\" markerHeight=\"%[1]g\" refX=\"%[1]g\" refY=\"%[2]g\" orient=\"auto\" markerUnits=\"userSpaceOnUse\">\n",
		markerSize, markerSize/2)
	fmt.Fprintf(&buf, "      <polyline points=\"0 0, %[1]g %[2]g, 0 %[1]g\" fill=\"none\" stroke=\"#333\" stroke-width=\"1.5\" />\n",
		markerSize, markerSize/2)
	buf.WriteString("    </marker>\n")
	fmt.Fprintf(&buf, "    <marker id=\"triangle\" markerWidth=\"%[1]g\" markerHeight=\"%[1]g\" refX=\"%[1]g\" refY=\"%[2]g\" orient=\"auto\" markerUnits=\"userSpaceOnUse\">\n",
		markerSize, markerSize/2)
	fmt.Fprintf(&buf, "      <polygon points=\"0 0, %[1]g %[2]g, 0 %[1]g\" fill=\"#fff\" stroke=\"#333\" stroke-width=\"1.5\" />\n",
		markerSize, markerSize/2)
	buf.WriteString("    </marker>\n")
	buf.WriteString("  </defs>\n")
	fmt.Fprintf(&buf, "  <rect width=\"%d\" height=\"%d\" fill=\"#fff\" />\n", scene.Width, scene.Height)

	for _, l := range scene.Links {
		svgLink(&buf, scene, l)
	}
	for i := range scene.Shapes {
		svgShape(&buf, &scene.Shapes[i])
	}
	buf.WriteString("</svg>\n")

	_, err := w.Write(buf.Bytes())
	return err
}

func svgLink(buf *bytes.Buffer, scene *domain.Scene, l domain.Link) {
	from, to := endpoints(scene, l)
	fmt.Fprintf(buf, "  <line class=\"link\" data-id=\"%d\" x1=\"%.1f\" y1=\"%.1f\" x2=\"%.1f\" y2=\"%.1f\"",
		l.ConnectionID, from.X, from.Y, to.X, to.Y)
	if l.Style.Dash != "" {
		fmt.Fprintf(buf, " stroke-dasharray=\"%s\"", l.Style.Dash)
	}
	if l.Style.Marker != domain.MarkerNone {
		fmt.Fprintf(buf, " marker-end=\"url(#%s)\"", l.Style.Marker)
	}
	buf.WriteString(" />\n")

	if l.Label != "" {
		fmt.Fprintf(buf, "  <text class=\"link-label\" x=\"%.1f\" y=\"%.1f\">%s</text>\n",
			l.LabelAt.X, l.LabelAt.Y, html.EscapeString(l.Label))
	}
}

func svgShape(buf *bytes.Buffer, e *domain.Element) {
	st := styleOf(e)
	x, y := float64(e.X), float64(e.Y)
	w, h := float64(e.Width), float64(e.Height)
	c := e.Center()
	label := html.EscapeString(e.Label)

	fmt.Fprintf(buf, "  <g data-id=\"%d\" data-type=\"%s\"", e.ID, html.EscapeString(string(e.Type)))
	if e.Rotation != 0 {
		fmt.Fprintf(buf, " transform=\"rotate(%g %.1f %.1f)\"", e.Rotation, c.X, c.Y)
	}
	buf.WriteString(">\n")

	paint := fmt.Sprintf("fill=\"%s\" stroke=\"%s\" stroke-width=\"1.5\"", st.Fill, st.Stroke)

	switch e.Type {
	case domain.ElementTypeActor:
		head := w / 6
		if head > h/8 {
			head = h / 8
		}
		neck := y + 2*head
		hip := y + h*0.6
		fmt.Fprintf(buf, "    <circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\" %s />\n", c.X, y+head, head, paint)
		fmt.Fprintf(buf, "    <path d=\"M%.1f %.1f L%.1f %.1f M%.1f %.1f L%.1f %.1f M%.1f %.1f L%.1f %.1f M%.1f %.1f L%.1f %.1f\" fill=\"none\" stroke=\"%s\" stroke-width=\"1.5\" />\n",
			c.X, neck, c.X, hip,
			x, neck+head, x+w, neck+head,
			c.X, hip, x, y+h*0.85,
			c.X, hip, x+w, y+h*0.85,
			st.Stroke)
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n", c.X, y+h+fontSize, label)
	case domain.ElementTypeUseCase:
		fmt.Fprintf(buf, "    <ellipse cx=\"%.1f\" cy=\"%.1f\" rx=\"%.1f\" ry=\"%.1f\" %s />\n", c.X, c.Y, w/2, h/2, paint)
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" dominant-baseline=\"middle\">%s</text>\n", c.X, c.Y, label)
	case domain.ElementTypeSystemBoundary:
		fmt.Fprintf(buf, "    <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" fill-opacity=\"0\" %s />\n", x, y, w, h, paint)
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\">%s</text>\n", c.X, y+fontSize+4, label)
	case domain.ElementTypePackage:
		tab := w / 3
		fmt.Fprintf(buf, "    <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" %s />\n", x, y, tab, fontSize+4, paint)
		fmt.Fprintf(buf, "    <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" %s />\n", x, y+fontSize+4, w, h-fontSize-4, paint)
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\">%s</text>\n", x+4, y+fontSize, label)
	case domain.ElementTypeNote:
		fold := 12.0
		fmt.Fprintf(buf, "    <path d=\"M%.1f %.1f L%.1f %.1f L%.1f %.1f L%.1f %.1f L%.1f %.1f Z\" %s />\n",
			x, y, x+w-fold, y, x+w, y+fold, x+w, y+h, x, y+h, paint)
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\">%s</text>\n", x+6, y+fontSize+6, label)
	case domain.ElementTypeText:
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" dominant-baseline=\"middle\">%s</text>\n", c.X, c.Y, label)
	default:
		fmt.Fprintf(buf, "    <rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\" %s />\n", x, y, w, h, paint)
		fmt.Fprintf(buf, "    <text x=\"%.1f\" y=\"%.1f\" text-anchor=\"middle\" dominant-baseline=\"middle\">%s</text>\n", c.X, c.Y, label)
	}
	buf.WriteString("  </g>\n")
}
