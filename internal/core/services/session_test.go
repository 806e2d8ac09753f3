package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/testutil"
)

func TestSessionService_Login(t *testing.T) {
	auth := new(testutil.MockAuthClient)
	repo := new(testutil.MockSessionRepo)
	svc := NewSessionService(auth, repo, time.Hour)

	creds := domain.Credentials{Username: "ana", Password: "secret"}
	auth.On("Login", mock.Anything, creds).Return(&domain.Session{
		UserID:   1,
		Username: "ana",
		Cookies:  []domain.Cookie{{Name: "JSESSIONID", Value: "abc"}},
	}, nil)
	repo.On("Put", mock.Anything, "session_user:sid", mock.MatchedBy(func(payload []byte) bool {
		var stored domain.Session
		return json.Unmarshal(payload, &stored) == nil && stored.UserID == 1 && len(stored.Cookies) == 1
	}), time.Hour).Return(nil)

	sess, err := svc.Login(context.Background(), domain.SessionKey("sid"), domain.Credentials{Username: " ana ", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "ana", sess.Username)
	assert.False(t, sess.LoggedAt.IsZero())
	auth.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestSessionService_Login_MissingCredentials(t *testing.T) {
	auth := new(testutil.MockAuthClient)
	svc := NewSessionService(auth, new(testutil.MockSessionRepo), time.Hour)

	_, err := svc.Login(context.Background(), "k", domain.Credentials{Username: "  ", Password: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidLogin)
	auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestSessionService_Login_BackendRejects(t *testing.T) {
	auth := new(testutil.MockAuthClient)
	repo := new(testutil.MockSessionRepo)
	svc := NewSessionService(auth, repo, time.Hour)

	auth.On("Login", mock.Anything, mock.Anything).Return(nil, &domain.RemoteError{Status: 401, Message: "Credenciales invalidas"})

	_, err := svc.Login(context.Background(), "k", domain.Credentials{Username: "ana", Password: "bad"})

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	repo.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionService_Restore(t *testing.T) {
	repo := new(testutil.MockSessionRepo)
	svc := NewSessionService(new(testutil.MockAuthClient), repo, time.Hour)

	repo.On("Get", mock.Anything, "good").Return([]byte(`{"id_usuario":4,"nombre_usuario":"luis"}`), nil)
	sess, err := svc.Restore(context.Background(), "good")
	require.NoError(t, err)
	assert.Equal(t, int64(4), sess.UserID)

	repo.On("Get", mock.Anything, "missing").Return(nil, domain.ErrSessionNotFound)
	_, err = svc.Restore(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestSessionService_Restore_CorruptIsCleared(t *testing.T) {
	for _, payload := range []string{`{not json`, `{"nombre_usuario":"ghost"}`} {
		repo := new(testutil.MockSessionRepo)
		svc := NewSessionService(new(testutil.MockAuthClient), repo, time.Hour)
		repo.On("Get", mock.Anything, "k").Return([]byte(payload), nil)
		repo.On("Delete", mock.Anything, "k").Return(nil)

		_, err := svc.Restore(context.Background(), "k")

		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
		repo.AssertCalled(t, "Delete", mock.Anything, "k")
	}
}

func TestSessionService_Logout_SwallowsBackendFailure(t *testing.T) {
	auth := new(testutil.MockAuthClient)
	repo := new(testutil.MockSessionRepo)
	svc := NewSessionService(auth, repo, time.Hour)

	repo.On("Get", mock.Anything, "k").Return([]byte(`{"id_usuario":1}`), nil)
	repo.On("Delete", mock.Anything, "k").Return(nil)
	auth.On("Logout", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	err := svc.Logout(context.Background(), "k")

	assert.NoError(t, err)
	repo.AssertCalled(t, "Delete", mock.Anything, "k")
}

func TestSessionService_Logout_WithoutSession(t *testing.T) {
	auth := new(testutil.MockAuthClient)
	repo := new(testutil.MockSessionRepo)
	svc := NewSessionService(auth, repo, time.Hour)

	repo.On("Get", mock.Anything, "k").Return(nil, domain.ErrSessionNotFound)
	repo.On("Delete", mock.Anything, "k").Return(nil)

	assert.NoError(t, svc.Logout(context.Background(), "k"))
	auth.AssertNotCalled(t, "Logout", mock.Anything, mock.Anything)
}
