package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"diagram-editor-service/internal/core/domain"
)

// MockDiagramStore is a mock of DiagramStore.
type MockDiagramStore struct {
	mock.Mock
}

func (m *MockDiagramStore) ListDiagrams(ctx context.Context, sess *domain.Session) ([]*domain.Diagram, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Diagram), args.Error(1)
}

func (m *MockDiagramStore) GetDiagram(ctx context.Context, sess *domain.Session, id int64) (*domain.Diagram, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Diagram), args.Error(1)
}

func (m *MockDiagramStore) CreateDiagram(ctx context.Context, sess *domain.Session, d *domain.Diagram) (int64, error) {
	args := m.Called(ctx, sess, d)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiagramStore) UpdateDiagram(ctx context.Context, sess *domain.Session, d *domain.Diagram) error {
	args := m.Called(ctx, sess, d)
	return args.Error(0)
}

func (m *MockDiagramStore) DeleteDiagram(ctx context.Context, sess *domain.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockDiagramStore) ListElements(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.Element, error) {
	args := m.Called(ctx, sess, diagramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Element), args.Error(1)
}

func (m *MockDiagramStore) CreateElement(ctx context.Context, sess *domain.Session, e *domain.Element) (int64, error) {
	args := m.Called(ctx, sess, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiagramStore) UpdateElement(ctx context.Context, sess *domain.Session, e *domain.Element) error {
	args := m.Called(ctx, sess, e)
	return args.Error(0)
}

func (m *MockDiagramStore) DeleteElement(ctx context.Context, sess *domain.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockDiagramStore) ListConnections(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.Connection, error) {
	args := m.Called(ctx, sess, diagramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Connection), args.Error(1)
}

func (m *MockDiagramStore) CreateConnection(ctx context.Context, sess *domain.Session, c *domain.Connection) (int64, error) {
	args := m.Called(ctx, sess, c)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiagramStore) UpdateConnection(ctx context.Context, sess *domain.Session, c *domain.Connection) error {
	args := m.Called(ctx, sess, c)
	return args.Error(0)
}

func (m *MockDiagramStore) DeleteConnection(ctx context.Context, sess *domain.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

// MockMediaStore is a mock of MediaStore.
type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) UploadFile(ctx context.Context, sess *domain.Session, u *domain.Upload) (*domain.MediaFile, error) {
	args := m.Called(ctx, sess, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaFile), args.Error(1)
}

func (m *MockMediaStore) ListFiles(ctx context.Context, sess *domain.Session) ([]*domain.MediaFile, error) {
	args := m.Called(ctx, sess)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MediaFile), args.Error(1)
}

func (m *MockMediaStore) GetFile(ctx context.Context, sess *domain.Session, id int64) (*domain.MediaFile, error) {
	args := m.Called(ctx, sess, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaFile), args.Error(1)
}

func (m *MockMediaStore) DeleteFile(ctx context.Context, sess *domain.Session, id int64) error {
	args := m.Called(ctx, sess, id)
	return args.Error(0)
}

func (m *MockMediaStore) ListDiagramMedia(ctx context.Context, sess *domain.Session, diagramID int64) ([]*domain.DiagramMedia, error) {
	args := m.Called(ctx, sess, diagramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.DiagramMedia), args.Error(1)
}

func (m *MockMediaStore) AddDiagramMedia(ctx context.Context, sess *domain.Session, dm *domain.DiagramMedia) error {
	args := m.Called(ctx, sess, dm)
	return args.Error(0)
}

func (m *MockMediaStore) RemoveDiagramMedia(ctx context.Context, sess *domain.Session, diagramID, fileID int64) error {
	args := m.Called(ctx, sess, diagramID, fileID)
	return args.Error(0)
}

func (m *MockMediaStore) ListElementMedia(ctx context.Context, sess *domain.Session, elementID int64) ([]*domain.ElementMedia, error) {
	args := m.Called(ctx, sess, elementID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ElementMedia), args.Error(1)
}

func (m *MockMediaStore) AddElementMedia(ctx context.Context, sess *domain.Session, em *domain.ElementMedia) error {
	args := m.Called(ctx, sess, em)
	return args.Error(0)
}

func (m *MockMediaStore) RemoveElementMedia(ctx context.Context, sess *domain.Session, elementID, fileID int64) error {
	args := m.Called(ctx, sess, elementID, fileID)
	return args.Error(0)
}

// MockAuthClient is a mock of AuthClient.
type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthClient) Logout(ctx context.Context, sess *domain.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

// MockSessionRepo is a mock of SessionRepository.
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSessionRepo) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, payload, ttl)
	return args.Error(0)
}

func (m *MockSessionRepo) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
