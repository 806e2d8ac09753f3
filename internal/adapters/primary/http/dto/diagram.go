package dto

import (
	"diagram-editor-service/internal/core/domain"
)

type DiagramRequest struct {
	Name         string  `json:"nombre"`
	Description  string  `json:"descripcion"`
	Status       string  `json:"estado"`
	CanvasWidth  int     `json:"ancho_lienzo"`
	CanvasHeight int     `json:"alto_lienzo"`
	ConfigJSON   *string `json:"configuracion_json"`
}

func (r *DiagramRequest) ToDiagram(id int64) *domain.Diagram {
	return &domain.Diagram{
		ID:           id,
		Name:         r.Name,
		Description:  r.Description,
		Status:       domain.DiagramStatus(r.Status),
		CanvasWidth:  r.CanvasWidth,
		CanvasHeight: r.CanvasHeight,
		ConfigJSON:   r.ConfigJSON,
	}
}

type ListDiagramsResponse struct {
	Items []*domain.Diagram `json:"items"`
	Total int               `json:"total"`
}
