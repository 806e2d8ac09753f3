package domain

type ElementType string

const (
	ElementTypeActor          ElementType = "ACTOR"
	ElementTypeUseCase        ElementType = "CASO_DE_USO"
	ElementTypeSystemBoundary ElementType = "LIMITE_SISTEMA"
	ElementTypePackage        ElementType = "PAQUETE"
	ElementTypeNote           ElementType = "NOTA"
	ElementTypeText           ElementType = "TEXTO"
	ElementTypeImage          ElementType = "IMAGEN"
)

// RelationPlaceholder is the palette tag for connections. It is carried by
// drag payloads but never creates an element.
const RelationPlaceholder = "RELACION"

// ElementTypes lists the creatable types in palette order.
var ElementTypes = []ElementType{
	ElementTypeActor,
	ElementTypeUseCase,
	ElementTypeSystemBoundary,
	ElementTypePackage,
	ElementTypeNote,
	ElementTypeText,
	ElementTypeImage,
}

// Size is a width/height pair in canvas pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

var defaultSizes = map[ElementType]Size{
	ElementTypeActor:          {Width: 60, Height: 100},
	ElementTypeUseCase:        {Width: 140, Height: 70},
	ElementTypePackage:        {Width: 200, Height: 120},
	ElementTypeSystemBoundary: {Width: 300, Height: 400},
	ElementTypeNote:           {Width: 160, Height: 100},
	ElementTypeText:           {Width: 120, Height: 40},
	ElementTypeImage:          {Width: 200, Height: 150},
}

// fallbackSize matches the use-case shape.
var fallbackSize = Size{Width: 140, Height: 70}

// ParseElementType resolves a drag payload tag. The relation placeholder and
// anything unknown report false.
func ParseElementType(tag string) (ElementType, bool) {
	t := ElementType(tag)
	_, ok := defaultSizes[t]
	return t, ok
}

func (t ElementType) Valid() bool {
	_, ok := defaultSizes[t]
	return ok
}

// DefaultSize returns the size a freshly dropped element of type t gets.
func (t ElementType) DefaultSize() Size {
	if s, ok := defaultSizes[t]; ok {
		return s
	}
	return fallbackSize
}

type Element struct {
	ID        int64       `json:"id_elemento,omitempty"`
	DiagramID int64       `json:"id_diagrama"`
	ParentID  *int64      `json:"id_elemento_padre"`
	Type      ElementType `json:"tipo_elemento"`
	Label     string      `json:"etiqueta"`
	X         int         `json:"pos_x"`
	Y         int         `json:"pos_y"`
	Width     int         `json:"ancho"`
	Height    int         `json:"alto"`
	Rotation  float64     `json:"rotacion_grados"`
	ZOrder    int         `json:"orden_z"`
	StyleJSON *string     `json:"estilo_json"`
	MetaJSON  *string     `json:"metadatos_json"`
	CreatedAt string      `json:"fecha_creacion,omitempty"`
	UpdatedAt string      `json:"fecha_actualizacion,omitempty"`
}

// Center is the connection anchor of the element.
func (e *Element) Center() Point {
	return Point{
		X: float64(e.X) + float64(e.Width)/2,
		Y: float64(e.Y) + float64(e.Height)/2,
	}
}

// Point is a position in canvas coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
