package dto

import (
	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/services"
)

// PointerRequest is a pointer position in client coordinates together with
// the client position of the canvas origin.
type PointerRequest struct {
	ClientX float64 `json:"client_x"`
	ClientY float64 `json:"client_y"`
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
}

func (r PointerRequest) ToPointer() services.Pointer {
	return services.Pointer{ClientX: r.ClientX, ClientY: r.ClientY, OriginX: r.OriginX, OriginY: r.OriginY}
}

// DropRequest carries the drag payload tag of a palette item.
type DropRequest struct {
	PointerRequest
	Tag string `json:"tipo"`
}

type PressRequest struct {
	PointerRequest
	ElementID int64 `json:"id_elemento" binding:"required"`
}

// SelectRequest selects an element or a connection. Neither clears the
// selection.
type SelectRequest struct {
	ElementID    *int64 `json:"id_elemento"`
	ConnectionID *int64 `json:"id_conexion"`
}

type CandidateRequest struct {
	ElementID int64 `json:"id_elemento" binding:"required"`
}

type ConnectRequest struct {
	Type  string `json:"tipo_conexion"`
	Label string `json:"etiqueta"`
}

type ElementRequest struct {
	ParentID  *int64  `json:"id_elemento_padre"`
	Type      string  `json:"tipo_elemento"`
	Label     string  `json:"etiqueta"`
	X         int     `json:"pos_x"`
	Y         int     `json:"pos_y"`
	Width     *int    `json:"ancho"`
	Height    *int    `json:"alto"`
	Rotation  float64 `json:"rotacion_grados"`
	ZOrder    int     `json:"orden_z"`
	StyleJSON *string `json:"estilo_json"`
	MetaJSON  *string `json:"metadatos_json"`
}

// ToElement builds the element form. A size left out of the request keeps
// the size of current, when given.
func (r *ElementRequest) ToElement(id int64, current *domain.Element) *domain.Element {
	e := &domain.Element{
		ID:        id,
		ParentID:  r.ParentID,
		Type:      domain.ElementType(r.Type),
		Label:     r.Label,
		X:         r.X,
		Y:         r.Y,
		Rotation:  r.Rotation,
		ZOrder:    r.ZOrder,
		StyleJSON: r.StyleJSON,
		MetaJSON:  r.MetaJSON,
	}
	if current != nil {
		e.Width, e.Height = current.Width, current.Height
	}
	if r.Width != nil {
		e.Width = *r.Width
	}
	if r.Height != nil {
		e.Height = *r.Height
	}
	return e
}

type ConnectionRequest struct {
	SourceID   int64   `json:"id_elemento_origen" binding:"required"`
	TargetID   int64   `json:"id_elemento_destino" binding:"required"`
	Type       string  `json:"tipo_conexion"`
	Label      *string `json:"etiqueta"`
	PointsJSON *string `json:"puntos_json"`
	StyleJSON  *string `json:"estilo_json"`
}

func (r *ConnectionRequest) ToConnection(id int64) *domain.Connection {
	return &domain.Connection{
		ID:         id,
		SourceID:   r.SourceID,
		TargetID:   r.TargetID,
		Type:       domain.ConnectionType(r.Type),
		Label:      r.Label,
		PointsJSON: r.PointsJSON,
		StyleJSON:  r.StyleJSON,
	}
}

// PaletteResponse lists what can be dropped and linked, with default sizes
// and link styles.
type PaletteResponse struct {
	Elements    []PaletteElement    `json:"elementos"`
	Connections []PaletteConnection `json:"conexiones"`
}

type PaletteElement struct {
	Type domain.ElementType `json:"tipo_elemento"`
	Size domain.Size        `json:"tamano"`
}

type PaletteConnection struct {
	Type  domain.ConnectionType `json:"tipo_conexion"`
	Style domain.LinkStyle      `json:"estilo"`
}

func NewPaletteResponse() PaletteResponse {
	resp := PaletteResponse{
		Elements:    make([]PaletteElement, 0, len(domain.ElementTypes)),
		Connections: make([]PaletteConnection, 0, len(domain.ConnectionTypes)),
	}
	for _, t := range domain.ElementTypes {
		resp.Elements = append(resp.Elements, PaletteElement{Type: t, Size: t.DefaultSize()})
	}
	for _, t := range domain.ConnectionTypes {
		resp.Connections = append(resp.Connections, PaletteConnection{Type: t, Style: t.Style()})
	}
	return resp
}
