package ports

import (
	"context"

	"diagram-editor-service/internal/core/domain"
)

// DiagramStore is the remote backend that owns diagrams, elements and
// connections. Every call runs on behalf of sess.
type DiagramStore interface {
	ListDiagrams(ctx context.Context, sess *domain.Session) ([]*domain.Diagram, error)
	GetDiagram(ctx context.Context, sess *domain.Session, id int64) (*domain.Diagram, error)
	CreateDiagram(ctx context.Context, sess *domain.Session, d *domain.Diagram) (int64, error)
	UpdateDiagram(ctx context.Context, sess *domain.Session, d *domain.Diagram) error
	DeleteDiagram(ctx context.Context, sess *domain.Session, id int64) error

	ListElements(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.Element, error)
	CreateElement(ctx context.Context, sess *domain.Session, e *domain.Element) (int64, error)
	UpdateElement(ctx context.Context, sess *domain.Session, e *domain.Element) error
	DeleteElement(ctx context.Context, sess *domain.Session, id int64) error

	ListConnections(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.Connection, error)
	CreateConnection(ctx context.Context, sess *domain.Session, c *domain.Connection) (int64, error)
	UpdateConnection(ctx context.Context, sess *domain.Session, c *domain.Connection) error
	DeleteConnection(ctx context.Context, sess *domain.Session, id int64) error
}

// MediaStore is the remote file library and its diagram/element associations.
type MediaStore interface {
	UploadFile(ctx context.Context, sess *domain.Session, u *domain.Upload) (*domain.MediaFile, error)
	ListFiles(ctx context.Context, sess *domain.Session) ([]*domain.MediaFile, error)
	GetFile(ctx context.Context, sess *domain.Session, id int64) (*domain.MediaFile, error)
	DeleteFile(ctx context.Context, sess *domain.Session, id int64) error

	ListDiagramMedia(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.DiagramMedia, error)
	AddDiagramMedia(ctx context.Context, sess *domain.Session, m *domain.DiagramMedia) error
	RemoveDiagramMedia(ctx context.Context, sess *domain.Session, diagramID, fileID int64) error

	ListElementMedia(ctx context.Context, sess *domain.Session, elementID int64) ([]*domain.ElementMedia, error)
	AddElementMedia(ctx context.Context, sess *domain.Session, m *domain.ElementMedia) error
	RemoveElementMedia(ctx context.Context, sess *domain.Session, elementID, fileID int64) error
}
