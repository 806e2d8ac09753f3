package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"diagram-editor-service/internal/core/domain"
)

func mapDomainError(c *gin.Context, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "fields": verr.Fields})
		return
	}

	switch {
	// Not found errors
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrElementNotFound),
		errors.Is(err, domain.ErrConnectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": domain.UserMessage(err, err.Error())})

	// Authentication errors
	case errors.Is(err, domain.ErrSessionNotFound),
		errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": domain.UserMessage(err, err.Error())})

	// Conflict errors
	case errors.Is(err, domain.ErrConfirmationRequired),
		errors.Is(err, domain.ErrDiagramNotLoaded):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	// Bad request / validation errors
	case errors.Is(err, domain.ErrInvalidLogin),
		errors.Is(err, domain.ErrInvalidDiagramID),
		errors.Is(err, domain.ErrConnectNeedsTwo),
		errors.Is(err, domain.ErrInvalidElementType),
		errors.Is(err, domain.ErrInvalidConnectionType),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrMissingFile),
		errors.Is(err, domain.ErrUnsupportedMedia),
		errors.Is(err, domain.ErrInvalidMediaUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.UserMessage(err, err.Error())})

	case errors.Is(err, domain.ErrSceneTooLarge):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrFileTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})

	// Backend errors
	case errors.Is(err, domain.ErrBackendRejected),
		errors.Is(err, domain.ErrBackendUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": domain.UserMessage(err, "backend request failed")})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
