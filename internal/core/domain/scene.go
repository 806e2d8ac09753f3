package domain

import (
	"math"
	"sort"
)

// LabelOffset is the distance in pixels between a connection's midpoint and
// its label.
const LabelOffset = 8.0

// Scene is a diagram resolved into drawable primitives.
type Scene struct {
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Shapes []Element `json:"shapes"`
	Links  []Link    `json:"links"`
}

// Link is a connection whose endpoints both resolved to loaded elements.
type Link struct {
	ConnectionID int64          `json:"id_conexion"`
	SourceID     int64          `json:"id_elemento_origen"`
	TargetID     int64          `json:"id_elemento_destino"`
	Type         ConnectionType `json:"tipo_conexion"`
	From         Point          `json:"from"`
	To           Point          `json:"to"`
	Style        LinkStyle      `json:"style"`
	Label        string         `json:"label,omitempty"`
	LabelAt      Point          `json:"label_at"`
}

// BuildScene orders shapes by z-order and anchors every connection on the
// centres of its endpoints. Connections with an endpoint missing from
// elements are left out.
func BuildScene(d *Diagram, elements []*Element, connections []*Connection) *Scene {
	scene := &Scene{
		Width:  DefaultCanvasWidth,
		Height: DefaultCanvasHeight,
		Shapes: make([]Element, 0, len(elements)),
		Links:  make([]Link, 0, len(connections)),
	}
	if d != nil && d.CanvasWidth > 0 && d.CanvasHeight > 0 {
		scene.Width, scene.Height = d.CanvasWidth, d.CanvasHeight
	}

	byID := make(map[int64]*Element, len(elements))
	for _, e := range elements {
		byID[e.ID] = e
		scene.Shapes = append(scene.Shapes, *e)
		if right := e.X + e.Width; right > scene.Width {
			scene.Width = right
		}
		if bottom := e.Y + e.Height; bottom > scene.Height {
			scene.Height = bottom
		}
	}
	sort.SliceStable(scene.Shapes, func(i, j int) bool {
		return scene.Shapes[i].ZOrder < scene.Shapes[j].ZOrder
	})

	for _, c := range connections {
		src, ok := byID[c.SourceID]
		if !ok {
			continue
		}
		dst, ok := byID[c.TargetID]
		if !ok {
			continue
		}
		from, to := src.Center(), dst.Center()
		scene.Links = append(scene.Links, Link{
			ConnectionID: c.ID,
			SourceID:     c.SourceID,
			TargetID:     c.TargetID,
			Type:         c.Type,
			From:         from,
			To:           to,
			Style:        c.Type.Style(),
			Label:        c.LabelText(),
			LabelAt:      labelPosition(from, to),
		})
	}
	return scene
}

// labelPosition is the midpoint of from-to pushed LabelOffset along the unit
// normal on the upper side of the line. Vertical lines push to the left and
// coincident anchors push straight up.
func labelPosition(from, to Point) Point {
	mid := Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
	dx, dy := to.X-from.X, to.Y-from.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return Point{X: mid.X, Y: mid.Y - LabelOffset}
	}
	nx, ny := -dy/length, dx/length
	if ny > 0 || (ny == 0 && nx > 0) {
		nx, ny = -nx, -ny
	}
	return Point{X: mid.X + nx*LabelOffset, Y: mid.Y + ny*LabelOffset}
}

// Shape returns the shape with the given element id.
func (s *Scene) Shape(id int64) (*Element, bool) {
	for i := range s.Shapes {
		if s.Shapes[i].ID == id {
			return &s.Shapes[i], true
		}
	}
	return nil, false
}

// BorderPoint is where the segment from outside towards the centre of e
// crosses its bounding box. It returns the centre when from lies inside e.
func BorderPoint(e *Element, from Point) Point {
	c := e.Center()
	dx, dy := from.X-c.X, from.Y-c.Y
	hw, hh := float64(e.Width)/2, float64(e.Height)/2
	t := math.Inf(1)
	if dx != 0 {
		t = math.Min(t, hw/math.Abs(dx))
	}
	if dy != 0 {
		t = math.Min(t, hh/math.Abs(dy))
	}
	if t >= 1 {
		return c
	}
	return Point{X: c.X + dx*t, Y: c.Y + dy*t}
}
