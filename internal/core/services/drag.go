package services

import (
	"math"

	"diagram-editor-service/internal/core/domain"
)

// Pointer is a pointer event in viewport coordinates together with the
// viewport position of the canvas' top-left corner.
type Pointer struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
}

// Canvas returns the pointer in canvas coordinates.
func (p Pointer) Canvas() domain.Point {
	return domain.Point{X: p.ClientX - p.OriginX, Y: p.ClientY - p.OriginY}
}

// clampedPosition rounds a canvas position and pins it to the non-negative
// quadrant.
func clampedPosition(pt domain.Point) (int, int) {
	return int(math.Round(math.Max(0, pt.X))), int(math.Round(math.Max(0, pt.Y)))
}

type DragPhase string

const (
	DragIdle     DragPhase = "idle"
	DragDragging DragPhase = "dragging"
)

// DragState is the pointer-move state machine. Offset is only meaningful
// while dragging.
type DragState struct {
	Phase     DragPhase    `json:"phase"`
	ElementID int64        `json:"id_elemento,omitempty"`
	Offset    domain.Point `json:"offset"`
}

func idleDrag() DragState {
	return DragState{Phase: DragIdle}
}

func (d DragState) Dragging() bool {
	return d.Phase == DragDragging
}

// press starts a drag of elementID. A press while already dragging replaces
// the previous gesture.
func (d DragState) press(elementID int64, pointer, origin domain.Point) DragState {
	return DragState{
		Phase:     DragDragging,
		ElementID: elementID,
		Offset:    domain.Point{X: pointer.X - origin.X, Y: pointer.Y - origin.Y},
	}
}

// target is where the dragged element's origin goes for pointer.
func (d DragState) target(pointer domain.Point) (int, int) {
	return clampedPosition(domain.Point{X: pointer.X - d.Offset.X, Y: pointer.Y - d.Offset.Y})
}
