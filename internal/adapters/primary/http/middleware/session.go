package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/config"
	"diagram-editor-service/internal/core/domain"
)

const (
	keySessionID = "session_id"
	keySession   = "session"
)

// SessionRestorer loads the session stored under a key.
type SessionRestorer interface {
	Restore(ctx context.Context, key string) (*domain.Session, error)
}

// EditorCloser closes the editors a browser session left open.
type EditorCloser interface {
	CloseSession(sessionID string) int
}

// Session resolves the browser's session cookie. A browser without one gets
// a fresh random id; the logged-in user, if any, is attached to the context.
// When the stored session is gone (expired or purged) the editors opened
// under it are closed.
func Session(restorer SessionRestorer, editors EditorCloser, cfg *config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(cfg.CookieName)
		if err != nil || sid == "" {
			sid = uuid.New().String()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.CookieName, sid, 0, "/", "", cfg.CookieSecure, true)
		}
		c.Set(keySessionID, sid)

		sess, err := restorer.Restore(c.Request.Context(), domain.SessionKey(sid))
		switch {
		case err == nil:
			c.Set(keySession, sess)
		case errors.Is(err, domain.ErrSessionNotFound):
			if n := editors.CloseSession(sid); n > 0 {
				log.WithField("editors", n).Info("closed editors of ended session")
			}
		default:
			log.WithError(err).WithField("request_id", c.GetString(keyRequestID)).Warn("restore session failed")
		}

		c.Next()
	}
}

// RequireSession rejects requests without a logged-in user.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrSessionNotFound.Error()})
			return
		}
		c.Next()
	}
}

// SessionID is the browser session id set by Session.
func SessionID(c *gin.Context) string {
	return c.GetString(keySessionID)
}

func CurrentSession(c *gin.Context) (*domain.Session, bool) {
	v, ok := c.Get(keySession)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*domain.Session)
	return sess, ok && sess != nil
}

// SetSession attaches sess to the rest of the request. A nil sess logs the
// request out.
func SetSession(c *gin.Context, sess *domain.Session) {
	c.Set(keySession, sess)
}
