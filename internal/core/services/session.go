package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/ports/output"
)

// SessionService logs users in against the backend and keeps the resulting
// session in a repository under a storage key.
type SessionService struct {
	auth ports.AuthClient
	repo ports.SessionRepository
	ttl  time.Duration
}

func NewSessionService(auth ports.AuthClient, repo ports.SessionRepository, ttl time.Duration) *SessionService {
	return &SessionService{auth: auth, repo: repo, ttl: ttl}
}

func (s *SessionService) Login(ctx context.Context, key string, creds domain.Credentials) (*domain.Session, error) {
	creds.Username = strings.TrimSpace(creds.Username)
	if creds.Username == "" || creds.Password == "" {
		return nil, domain.ErrInvalidLogin
	}

	sess, err := s.auth.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	sess.LoggedAt = time.Now().UTC()

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if err := s.repo.Put(ctx, key, payload, s.ttl); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	log.WithField("user", sess.Username).Info("user logged in")
	return sess, nil
}

// Restore loads the session stored under key. A payload that does not parse
// is deleted and reported as no session.
func (s *SessionService) Restore(ctx context.Context, key string) (*domain.Session, error) {
	payload, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	var sess domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil || sess.UserID == 0 {
		if err == nil {
			err = errors.New("session has no user")
		}
		log.WithError(err).Warn("discarding corrupt session")
		if delErr := s.repo.Delete(ctx, key); delErr != nil {
			log.WithError(delErr).Warn("failed to delete corrupt session")
		}
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

// Logout ends the backend session and removes the local one. A failed
// backend logout is logged and otherwise ignored.
func (s *SessionService) Logout(ctx context.Context, key string) error {
	sess, err := s.Restore(ctx, key)
	switch {
	case err == nil:
		if err := s.auth.Logout(ctx, sess); err != nil {
			log.WithError(err).Warn("backend logout failed")
		}
	case !errors.Is(err, domain.ErrSessionNotFound):
		log.WithError(err).Warn("failed to read session before logout")
	}
	return s.repo.Delete(ctx, key)
}
