package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"diagram-editor-service/internal/core/services"
)

// BackendChecker reports whether the diagram backend answers.
type BackendChecker interface {
	IsAvailable(ctx context.Context) bool
}

// Health reports the session store and backend status. Only a failing
// session store makes the service unhealthy.
func Health(ping func(context.Context) error, backend BackendChecker, editors *services.EditorRegistry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"backend": backend.IsAvailable(c.Request.Context()),
			"editors": editors.Len(),
		})
	}
}
