package domain

type ConnectionType string

const (
	ConnectionTypeAssociation    ConnectionType = "ASOCIACION"
	ConnectionTypeInclude        ConnectionType = "INCLUSION"
	ConnectionTypeExtend         ConnectionType = "EXTENSION"
	ConnectionTypeGeneralization ConnectionType = "GENERALIZACION"
	ConnectionTypeDependency     ConnectionType = "DEPENDENCIA"
	ConnectionTypeNoteLink       ConnectionType = "ENLACE_NOTA"
)

// Arrowhead drawn at the target end of a connection.
type Marker string

const (
	MarkerNone     Marker = ""
	MarkerArrow    Marker = "arrow"
	MarkerTriangle Marker = "triangle"
)

// LinkStyle is how a connection type is stroked. An empty Dash is a solid line.
type LinkStyle struct {
	Dash   string `json:"dash,omitempty"`
	Marker Marker `json:"marker,omitempty"`
}

var linkStyles = map[ConnectionType]LinkStyle{
	ConnectionTypeAssociation:    {},
	ConnectionTypeInclude:        {Dash: "6 4", Marker: MarkerArrow},
	ConnectionTypeExtend:         {Dash: "6 4", Marker: MarkerArrow},
	ConnectionTypeGeneralization: {Marker: MarkerTriangle},
	ConnectionTypeDependency:     {Dash: "4 4", Marker: MarkerArrow},
	ConnectionTypeNoteLink:       {Dash: "2 3", Marker: MarkerArrow},
}

// ConnectionTypes lists the link kinds in menu order.
var ConnectionTypes = []ConnectionType{
	ConnectionTypeAssociation,
	ConnectionTypeInclude,
	ConnectionTypeExtend,
	ConnectionTypeGeneralization,
	ConnectionTypeDependency,
	ConnectionTypeNoteLink,
}

func (t ConnectionType) Valid() bool {
	_, ok := linkStyles[t]
	return ok
}

// Style returns the stroke for t. Unknown types are drawn as plain associations.
func (t ConnectionType) Style() LinkStyle {
	if s, ok := linkStyles[t]; ok {
		return s
	}
	return linkStyles[ConnectionTypeAssociation]
}

type Connection struct {
	ID         int64          `json:"id_conexion,omitempty"`
	DiagramID  int64          `json:"id_diagrama"`
	SourceID   int64          `json:"id_elemento_origen"`
	TargetID   int64          `json:"id_elemento_destino"`
	Type       ConnectionType `json:"tipo_conexion"`
	Label      *string        `json:"etiqueta"`
	PointsJSON *string        `json:"puntos_json"`
	StyleJSON  *string        `json:"estilo_json"`
	CreatedAt  string         `json:"fecha_creacion,omitempty"`
	UpdatedAt  string         `json:"fecha_actualizacion,omitempty"`
}

// LabelText returns the label or "" when none is set.
func (c *Connection) LabelText() string {
	if c.Label == nil {
		return ""
	}
	return *c.Label
}
