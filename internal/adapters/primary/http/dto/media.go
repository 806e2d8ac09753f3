package dto

import (
	"diagram-editor-service/internal/core/domain"
)

type AttachDiagramMediaRequest struct {
	FileID      int64  `json:"id_archivo" binding:"required"`
	Description string `json:"descripcion"`
	Order       int    `json:"orden"`
}

func (r *AttachDiagramMediaRequest) ToDiagramMedia(diagramID int64) *domain.DiagramMedia {
	return &domain.DiagramMedia{
		DiagramID:   diagramID,
		FileID:      r.FileID,
		Description: r.Description,
		Order:       r.Order,
	}
}

type AttachElementMediaRequest struct {
	FileID int64  `json:"id_archivo" binding:"required"`
	Use    string `json:"tipo_uso"`
}

func (r *AttachElementMediaRequest) ToElementMedia(elementID int64) *domain.ElementMedia {
	return &domain.ElementMedia{
		ElementID: elementID,
		FileID:    r.FileID,
		Use:       domain.MediaUse(r.Use),
	}
}
