package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"diagram-editor-service/internal/core/domain"
	ports "diagram-editor-service/internal/core/ports/output"
)

const createSessions = `CREATE TABLE IF NOT EXISTS sessions (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	expires_at INTEGER
)`

var _ ports.SessionRepository = (*SessionRepository)(nil)

// SessionRepository keeps sessions in a local SQLite file.
type SessionRepository struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the database at path and ensures its schema.
func Open(path string) (*SessionRepository, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createSessions); err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions table: %w", err)
	}
	return &SessionRepository{db: db, now: time.Now}, nil
}

func (r *SessionRepository) Close() error {
	return r.db.Close()
}

func (r *SessionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SessionRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var (
		payload   []byte
		expiresAt sql.NullInt64
	)
	err := r.db.QueryRowContext(ctx, `SELECT payload, expires_at FROM sessions WHERE key = ?`, key).
		Scan(&payload, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("select session: %w", err)
	}

	if expiresAt.Valid && r.now().Unix() >= expiresAt.Int64 {
		if err := r.Delete(ctx, key); err != nil {
			return nil, err
		}
		return nil, domain.ErrSessionNotFound
	}
	return payload, nil
}

// Put upserts payload under key. A zero ttl never expires.
func (r *SessionRepository) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	var expiresAt sql.NullInt64
	if ttl > 0 {
		expiresAt = sql.NullInt64{Int64: r.now().Add(ttl).Unix(), Valid: true}
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (key, payload, expires_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		key, payload, expiresAt)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
