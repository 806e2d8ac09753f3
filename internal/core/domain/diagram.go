package domain

type DiagramStatus string

const (
	DiagramStatusActive   DiagramStatus = "ACTIVO"
	DiagramStatusDraft    DiagramStatus = "BORRADOR"
	DiagramStatusArchived DiagramStatus = "ARCHIVADO"
)

var validDiagramStatuses = map[DiagramStatus]bool{
	DiagramStatusActive:   true,
	DiagramStatusDraft:    true,
	DiagramStatusArchived: true,
}

func (s DiagramStatus) Valid() bool {
	return validDiagramStatuses[s]
}

// Canvas limits enforced by the diagram form.
const (
	MinCanvasSize       = 300
	DefaultCanvasWidth  = 1200
	DefaultCanvasHeight = 800
)

type Diagram struct {
	ID           int64         `json:"id_diagrama,omitempty"`
	UserID       int64         `json:"id_usuario,omitempty"`
	Name         string        `json:"nombre"`
	Description  string        `json:"descripcion"`
	Status       DiagramStatus `json:"estado"`
	CanvasWidth  int           `json:"ancho_lienzo"`
	CanvasHeight int           `json:"alto_lienzo"`
	ConfigJSON   *string       `json:"configuracion_json"`
	CreatedAt    string        `json:"fecha_creacion,omitempty"`
	UpdatedAt    string        `json:"fecha_actualizacion,omitempty"`
}
