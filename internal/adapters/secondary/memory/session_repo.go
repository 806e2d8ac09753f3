package memory

import (
	"context"
	"sync"
	"time"

	"diagram-editor-service/internal/core/domain"
	ports "diagram-editor-service/internal/core/ports/output"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

type sessionRepo struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewSessionRepository creates an in-process session repository
func NewSessionRepository() ports.SessionRepository {
	return &sessionRepo{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

func (r *sessionRepo) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	e, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if !e.expiresAt.IsZero() && r.now().After(e.expiresAt) {
		r.mu.Lock()
		delete(r.entries, key)
		r.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}
	out := make([]byte, len(e.payload))
	copy(out, e.payload)
	return out, nil
}

// Put stores payload under key. A zero ttl never expires.
func (r *sessionRepo) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	e := entry{payload: append([]byte(nil), payload...)}
	if ttl > 0 {
		e.expiresAt = r.now().Add(ttl)
	}

	r.mu.Lock()
	r.entries[key] = e
	r.mu.Unlock()
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}
