package ports

import (
	"context"

	"diagram-editor-service/internal/core/domain"
)

// AuthClient opens and closes backend sessions.
type AuthClient interface {
	// Login returns the user and the backend cookies that identify the session.
	Login(ctx context.Context, creds domain.Credentials) (*domain.Session, error)
	Logout(ctx context.Context, sess *domain.Session) error
}
