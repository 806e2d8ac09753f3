package ports

import (
	"context"
	"time"
)

// SessionRepository persists serialized sessions by key. Get returns
// domain.ErrSessionNotFound for a missing or expired key.
type SessionRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
