package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ValidateDiagram checks a diagram form before it is sent to the backend.
func ValidateDiagram(d *Diagram) error {
	verr := &ValidationError{}
	if strings.TrimSpace(d.Name) == "" {
		verr.add("nombre", "nombre is required")
	}
	if d.Status != "" && !d.Status.Valid() {
		verr.add("estado", fmt.Sprintf("estado must be one of %s, %s or %s", DiagramStatusActive, DiagramStatusDraft, DiagramStatusArchived))
	}
	if d.CanvasWidth < MinCanvasSize {
		verr.add("ancho_lienzo", fmt.Sprintf("ancho_lienzo must be at least %d", MinCanvasSize))
	}
	if d.CanvasHeight < MinCanvasSize {
		verr.add("alto_lienzo", fmt.Sprintf("alto_lienzo must be at least %d", MinCanvasSize))
	}
	validateOptionalJSON(verr, "configuracion_json", d.ConfigJSON)
	return verr.orNil()
}

// ValidateElement checks an element form. The form must carry the full size.
func ValidateElement(e *Element) error {
	verr := &ValidationError{}
	if e.Type == "" {
		verr.add("tipo_elemento", "tipo_elemento is required")
	} else if !e.Type.Valid() {
		verr.add("tipo_elemento", fmt.Sprintf("tipo_elemento %q is not a known element type", e.Type))
	}
	if e.Width <= 0 {
		verr.add("ancho", "ancho must be greater than 0")
	}
	if e.Height <= 0 {
		verr.add("alto", "alto must be greater than 0")
	}
	validateOptionalJSON(verr, "estilo_json", e.StyleJSON)
	validateOptionalJSON(verr, "metadatos_json", e.MetaJSON)
	return verr.orNil()
}

// ValidateConnection checks a connection form.
func ValidateConnection(c *Connection) error {
	verr := &ValidationError{}
	if c.Type == "" {
		verr.add("tipo_conexion", "tipo_conexion is required")
	} else if !c.Type.Valid() {
		verr.add("tipo_conexion", fmt.Sprintf("tipo_conexion %q is not a known connection type", c.Type))
	}
	validateOptionalJSON(verr, "puntos_json", c.PointsJSON)
	validateOptionalJSON(verr, "estilo_json", c.StyleJSON)
	return verr.orNil()
}

// ValidateUpload checks extension and size and fills in the media type.
func ValidateUpload(u *Upload) error {
	if u.Filename == "" || (len(u.Content) == 0 && u.Size == 0) {
		return ErrMissingFile
	}
	t, ok := MediaTypeForFile(u.Filename)
	if !ok {
		return ErrUnsupportedMedia
	}
	size := u.Size
	if size == 0 {
		size = int64(len(u.Content))
	}
	if size > MaxUploadMB*1024*1024 {
		return fmt.Errorf("%w: %d MB maximum", ErrFileTooLarge, MaxUploadMB)
	}
	u.Type = t
	u.Size = size
	return nil
}

// Blank blobs are treated as absent.
func validateOptionalJSON(verr *ValidationError, field string, blob *string) {
	if blob == nil || strings.TrimSpace(*blob) == "" {
		return
	}
	if !json.Valid([]byte(*blob)) {
		verr.add(field, field+" must be valid JSON")
	}
}

// NormalizeBlob maps a blank blob to nil so the backend stores NULL.
func NormalizeBlob(blob *string) *string {
	if blob == nil || strings.TrimSpace(*blob) == "" {
		return nil
	}
	return blob
}
