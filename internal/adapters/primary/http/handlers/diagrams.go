package handlers

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/adapters/primary/http/dto"
	"diagram-editor-service/internal/adapters/primary/http/middleware"
	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/render"
)

func (h *Handler) ListDiagrams(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	diagrams, err := h.diagramSvc.List(c.Request.Context(), sess)
	if err != nil {
		log.WithError(err).Error("list diagrams failed")
		mapDomainError(c, err)
		return
	}
	if diagrams == nil {
		diagrams = []*domain.Diagram{}
	}

	c.JSON(http.StatusOK, dto.ListDiagramsResponse{Items: diagrams, Total: len(diagrams)})
}

func (h *Handler) GetDiagram(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diagram id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	d, err := h.diagramSvc.Get(c.Request.Context(), sess, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *Handler) CreateDiagram(c *gin.Context) {
	var req dto.DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	d, err := h.diagramSvc.Create(c.Request.Context(), sess, req.ToDiagram(0))
	if err != nil {
		log.WithError(err).Error("create diagram failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, d)
}

func (h *Handler) UpdateDiagram(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diagram id"})
		return
	}
	var req dto.DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	d, err := h.diagramSvc.Update(c.Request.Context(), sess, req.ToDiagram(id))
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDiagram(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diagram id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if err := h.diagramSvc.Delete(c.Request.Context(), sess, id, confirmed(c)); err != nil {
		mapDomainError(c, err)
		return
	}
	h.editors.Close(middleware.SessionID(c), id)

	c.Status(http.StatusNoContent)
}

func (h *Handler) RenderSVG(c *gin.Context) {
	h.render(c, render.FormatSVG)
}

func (h *Handler) RenderPNG(c *gin.Context) {
	h.render(c, render.FormatPNG)
}

// render draws the session's editor for the diagram, loading it first if
// it was not open.
func (h *Handler) render(c *gin.Context, format render.Format) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := render.Write(&buf, canvas.Scene(), format); err != nil {
		log.WithError(err).WithField("diagram_id", canvas.DiagramID()).Error("render diagram failed")
		mapDomainError(c, err)
		return
	}

	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
