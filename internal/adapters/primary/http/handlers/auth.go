package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/adapters/primary/http/dto"
	"diagram-editor-service/internal/adapters/primary/http/middleware"
	"diagram-editor-service/internal/core/domain"
)

// Login replaces any session the browser had. Editors opened under the
// previous session are closed first.
func (h *Handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidLogin.Error()})
		return
	}

	sid := middleware.SessionID(c)
	h.editors.CloseSession(sid)

	sess, err := h.sessionSvc.Login(c.Request.Context(), domain.SessionKey(sid), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		log.WithError(err).WithField("user", req.Username).Warn("login failed")
		mapDomainError(c, err)
		return
	}
	middleware.SetSession(c, sess)

	c.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}

// Logout ends the session and closes every editor it had open. It succeeds
// even without a session.
func (h *Handler) Logout(c *gin.Context) {
	sid := middleware.SessionID(c)
	closed := h.editors.CloseSession(sid)

	if err := h.sessionSvc.Logout(c.Request.Context(), domain.SessionKey(sid)); err != nil {
		log.WithError(err).Error("logout failed")
		mapDomainError(c, err)
		return
	}
	middleware.SetSession(c, nil)

	c.JSON(http.StatusOK, gin.H{"closed_editors": closed})
}

func (h *Handler) Me(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)
	c.JSON(http.StatusOK, dto.ToSessionResponse(sess))
}

func (h *Handler) Palette(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewPaletteResponse())
}
