package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diagram-editor-service/internal/core/domain"
	ports "diagram-editor-service/internal/core/ports/output"
)

type sessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository creates a new SessionRepository backed by postgres
func NewSessionRepository(pool *pgxpool.Pool) ports.SessionRepository {
	return &sessionRepo{pool: pool}
}

func (r *sessionRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT payload FROM editor_session
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > now())
	`

	var payload []byte
	if err := r.pool.QueryRow(ctx, query, key).Scan(&payload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return payload, nil
}

func (r *sessionRepo) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	query := `
		INSERT INTO editor_session (key, payload, expires_at, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (key) DO UPDATE
			SET payload = EXCLUDED.payload,
			    expires_at = EXCLUDED.expires_at,
			    updated_at = now()
	`

	if _, err := r.pool.Exec(ctx, query, key, payload, expiresAt); err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM editor_session WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions whose ttl has passed and reports how many.
func PurgeExpired(ctx context.Context, pool *pgxpool.Pool) (int64, error) {
	tag, err := pool.Exec(ctx, `DELETE FROM editor_session WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("purge sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
