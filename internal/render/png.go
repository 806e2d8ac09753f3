package render

import (
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"diagram-editor-service/internal/core/domain"
)

var (
	fontOnce sync.Once
	ttf      *truetype.Font
	fontErr  error
)

func face() (font.Face, error) {
	fontOnce.Do(func() {
		ttf, fontErr = truetype.Parse(gomono.TTF)
	})
	if fontErr != nil {
		return nil, fmt.Errorf("parse font: %w", fontErr)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// MaxPNGSide bounds each side of a rasterized scene.
const MaxPNGSide = 8192

// PNG rasterizes scene at one pixel per canvas unit. Scenes wider or taller
// than MaxPNGSide are rejected with domain.ErrSceneTooLarge.
func PNG(w io.Writer, scene *domain.Scene) error {
	if scene.Width > MaxPNGSide || scene.Height > MaxPNGSide {
		return fmt.Errorf("%w: %dx%d exceeds %dx%d pixels",
			domain.ErrSceneTooLarge, scene.Width, scene.Height, MaxPNGSide, MaxPNGSide)
	}
	dc := gg.NewContext(scene.Width, scene.Height)
	dc.SetHexColor(defaultFill)
	dc.Clear()

	ff, err := face()
	if err != nil {
		return err
	}
	dc.SetFontFace(ff)

	for _, l := range scene.Links {
		pngLink(dc, scene, l)
	}
	for i := range scene.Shapes {
		pngShape(dc, &scene.Shapes[i])
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func pngLink(dc *gg.Context, scene *domain.Scene, l domain.Link) {
	from, to := endpoints(scene, l)

	dc.SetHexColor(defaultStroke)
	dc.SetLineWidth(1.5)
	dc.SetDash(dashPattern(l.Style.Dash)...)
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
	dc.SetDash()

	pngMarker(dc, from, to, l.Style.Marker)

	if l.Label != "" {
		dc.SetHexColor("#495057")
		dc.DrawStringAnchored(l.Label, l.LabelAt.X, l.LabelAt.Y, 0.5, 0)
	}
}

func pngMarker(dc *gg.Context, from, to domain.Point, m domain.Marker) {
	if m == domain.MarkerNone {
		return
	}
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx, dy = dx/length, dy/length

	// base of the head, then its two corners either side of the line
	bx, by := to.X-dx*markerSize, to.Y-dy*markerSize
	half := markerSize / 2
	lx, ly := bx-dy*half, by+dx*half
	rx, ry := bx+dy*half, by-dx*half

	switch m {
	case domain.MarkerArrow:
		dc.MoveTo(lx, ly)
		dc.LineTo(to.X, to.Y)
		dc.LineTo(rx, ry)
		dc.Stroke()
	case domain.MarkerTriangle:
		dc.MoveTo(lx, ly)
		dc.LineTo(to.X, to.Y)
		dc.LineTo(rx, ry)
		dc.ClosePath()
		dc.SetHexColor(defaultFill)
		dc.FillPreserve()
		dc.SetHexColor(defaultStroke)
		dc.Stroke()
	}
}

func pngShape(dc *gg.Context, e *domain.Element) {
	st := styleOf(e)
	x, y := float64(e.X), float64(e.Y)
	w, h := float64(e.Width), float64(e.Height)
	c := e.Center()

	dc.Push()
	defer dc.Pop()
	if e.Rotation != 0 {
		dc.RotateAbout(gg.Radians(e.Rotation), c.X, c.Y)
	}
	dc.SetLineWidth(1.5)

	paint := func() {
		dc.SetHexColor(st.Fill)
		dc.FillPreserve()
		dc.SetHexColor(st.Stroke)
		dc.Stroke()
	}
	text := func(s string, tx, ty, ax, ay float64) {
		dc.SetHexColor(defaultStroke)
		dc.DrawStringAnchored(s, tx, ty, ax, ay)
	}

	switch e.Type {
	case domain.ElementTypeActor:
		head := math.Min(w/6, h/8)
		neck := y + 2*head
		hip := y + h*0.6
		dc.DrawCircle(c.X, y+head, head)
		paint()
		dc.SetHexColor(st.Stroke)
		dc.DrawLine(c.X, neck, c.X, hip)
		dc.DrawLine(x, neck+head, x+w, neck+head)
		dc.DrawLine(c.X, hip, x, y+h*0.85)
		dc.DrawLine(c.X, hip, x+w, y+h*0.85)
		dc.Stroke()
		text(e.Label, c.X, y+h+fontSize, 0.5, 0)
	case domain.ElementTypeUseCase:
		dc.DrawEllipse(c.X, c.Y, w/2, h/2)
		paint()
		text(e.Label, c.X, c.Y, 0.5, 0.5)
	case domain.ElementTypeSystemBoundary:
		dc.DrawRectangle(x, y, w, h)
		dc.SetHexColor(st.Stroke)
		dc.Stroke()
		text(e.Label, c.X, y+fontSize+4, 0.5, 0)
	case domain.ElementTypePackage:
		tab := w / 3
		dc.DrawRectangle(x, y, tab, fontSize+4)
		paint()
		dc.DrawRectangle(x, y+fontSize+4, w, h-fontSize-4)
		paint()
		text(e.Label, x+4, y+fontSize, 0, 0)
	case domain.ElementTypeNote:
		fold := 12.0
		dc.MoveTo(x, y)
		dc.LineTo(x+w-fold, y)
		dc.LineTo(x+w, y+fold)
		dc.LineTo(x+w, y+h)
		dc.LineTo(x, y+h)
		dc.ClosePath()
		paint()
		text(e.Label, x+6, y+fontSize+6, 0, 0)
	case domain.ElementTypeText:
		text(e.Label, c.X, c.Y, 0.5, 0.5)
	default:
		dc.DrawRectangle(x, y, w, h)
		paint()
		text(e.Label, c.X, c.Y, 0.5, 0.5)
	}
}
