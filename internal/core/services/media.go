package services

import (
	"context"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/ports/output"
)

type MediaService struct {
	store ports.MediaStore
}

func NewMediaService(store ports.MediaStore) *MediaService {
	return &MediaService{store: store}
}

// Upload checks the file's extension and size before sending it. The media
// type is always inferred from the extension.
func (s *MediaService) Upload(ctx context.Context, sess *domain.Session, u *domain.Upload) (*domain.MediaFile, error) {
	if err := domain.ValidateUpload(u); err != nil {
		return nil, err
	}
	return s.store.UploadFile(ctx, sess, u)
}

func (s *MediaService) ListFiles(ctx context.Context, sess *domain.Session) ([]*domain.MediaFile, error) {
	return s.store.ListFiles(ctx, sess)
}

func (s *MediaService) GetFile(ctx context.Context, sess *domain.Session, id int64) (*domain.MediaFile, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.store.GetFile(ctx, sess, id)
}

func (s *MediaService) DeleteFile(ctx context.Context, sess *domain.Session, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	return s.store.DeleteFile(ctx, sess, id)
}

// ============================================================================
// Diagram Media
// ============================================================================

func (s *MediaService) ListDiagramMedia(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.DiagramMedia, error) {
	if diagramID <= 0 {
		return nil, domain.ErrInvalidDiagramID
	}
	return s.store.ListDiagramMedia(ctx, sess, diagramID)
}

func (s *MediaService) AttachToDiagram(ctx context.Context, sess *domain.Session, m *domain.DiagramMedia) error {
	if m.DiagramID <= 0 {
		return domain.ErrInvalidDiagramID
	}
	if m.FileID <= 0 {
		return domain.ErrMissingFile
	}
	if m.Order < 0 {
		m.Order = 0
	}
	return s.store.AddDiagramMedia(ctx, sess, m)
}

func (s *MediaService) DetachFromDiagram(ctx context.Context, sess *domain.Session, diagramID, fileID int64) error {
	return s.store.RemoveDiagramMedia(ctx, sess, diagramID, fileID)
}

// ============================================================================
// Element Media
// ============================================================================

func (s *MediaService) ListElementMedia(ctx context.Context, sess *domain.Session, elementID int64) ([]*domain.ElementMedia, error) {
	if elementID <= 0 {
		return nil, domain.ErrElementNotFound
	}
	return s.store.ListElementMedia(ctx, sess, elementID)
}

// AttachToElement links a file to an element. An empty usage means
// attachment.
func (s *MediaService) AttachToElement(ctx context.Context, sess *domain.Session, m *domain.ElementMedia) error {
	if m.ElementID <= 0 {
		return domain.ErrElementNotFound
	}
	if m.FileID <= 0 {
		return domain.ErrMissingFile
	}
	if m.Use == "" {
		m.Use = domain.MediaUseAttachment
	}
	use, ok := domain.ParseMediaUse(string(m.Use))
	if !ok {
		return domain.ErrInvalidMediaUse
	}
	m.Use = use
	return s.store.AddElementMedia(ctx, sess, m)
}

func (s *MediaService) DetachFromElement(ctx context.Context, sess *domain.Session, elementID, fileID int64) error {
	return s.store.RemoveElementMedia(ctx, sess, elementID, fileID)
}
