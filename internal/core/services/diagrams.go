package services

import (
	"context"
	"strings"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/ports/output"
)

type DiagramService struct {
	store ports.DiagramStore
}

func NewDiagramService(store ports.DiagramStore) *DiagramService {
	return &DiagramService{store: store}
}

func (s *DiagramService) List(ctx context.Context, sess *domain.Session) ([]*domain.Diagram, error) {
	return s.store.ListDiagrams(ctx, sess)
}

func (s *DiagramService) Get(ctx context.Context, sess *domain.Session, id int64) (*domain.Diagram, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidDiagramID
	}
	return s.store.GetDiagram(ctx, sess, id)
}

// Create fills in the default status and canvas size, validates and stores
// the diagram, and returns it as the backend saved it.
func (s *DiagramService) Create(ctx context.Context, sess *domain.Session, d *domain.Diagram) (*domain.Diagram, error) {
	if d.Status == "" {
		d.Status = domain.DiagramStatusActive
	}
	if d.CanvasWidth == 0 {
		d.CanvasWidth = domain.DefaultCanvasWidth
	}
	if d.CanvasHeight == 0 {
		d.CanvasHeight = domain.DefaultCanvasHeight
	}
	d.Name = strings.TrimSpace(d.Name)
	d.ConfigJSON = domain.NormalizeBlob(d.ConfigJSON)
	if err := domain.ValidateDiagram(d); err != nil {
		return nil, err
	}

	id, err := s.store.CreateDiagram(ctx, sess, d)
	if err != nil {
		return nil, err
	}
	return s.store.GetDiagram(ctx, sess, id)
}

func (s *DiagramService) Update(ctx context.Context, sess *domain.Session, d *domain.Diagram) (*domain.Diagram, error) {
	if d.ID <= 0 {
		return nil, domain.ErrInvalidDiagramID
	}
	d.Name = strings.TrimSpace(d.Name)
	d.ConfigJSON = domain.NormalizeBlob(d.ConfigJSON)
	if err := domain.ValidateDiagram(d); err != nil {
		return nil, err
	}

	if err := s.store.UpdateDiagram(ctx, sess, d); err != nil {
		return nil, err
	}
	return s.store.GetDiagram(ctx, sess, d.ID)
}

func (s *DiagramService) Delete(ctx context.Context, sess *domain.Session, id int64, confirmed bool) error {
	if id <= 0 {
		return domain.ErrInvalidDiagramID
	}
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.store.DeleteDiagram(ctx, sess, id)
}
