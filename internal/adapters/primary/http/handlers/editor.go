package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/adapters/primary/http/dto"
	"diagram-editor-service/internal/adapters/primary/http/middleware"
	"diagram-editor-service/internal/core/domain"
	"diagram-editor-service/internal/core/services"
)

// openEditor returns the session's editor for the :id diagram. A newly
// opened editor is loaded before it is returned. On failure the response is
// already written.
func (h *Handler) openEditor(c *gin.Context) (*services.Canvas, bool) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidDiagramID.Error()})
		return nil, false
	}
	sess, _ := middleware.CurrentSession(c)
	sid := middleware.SessionID(c)

	canvas, created, err := h.editors.Open(sid, sess, id)
	if err != nil {
		mapDomainError(c, err)
		return nil, false
	}
	if created {
		if err := canvas.Load(c.Request.Context()); err != nil {
			h.editors.Close(sid, id)
			mapDomainError(c, err)
			return nil, false
		}
		log.WithField("diagram_id", id).Debug("editor opened")
	}
	return canvas, true
}

func (h *Handler) EditorState(c *gin.Context) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) CloseEditor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrInvalidDiagramID.Error()})
		return
	}
	h.editors.Close(middleware.SessionID(c), id)
	c.Status(http.StatusNoContent)
}

// LoadEditor reloads the diagram, its elements and its connections.
func (h *Handler) LoadEditor(c *gin.Context) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}
	if err := canvas.Load(c.Request.Context()); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) Drop(c *gin.Context) {
	var req dto.DropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	e, err := canvas.Drop(c.Request.Context(), req.Tag, req.ToPointer())
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if e == nil {
		c.JSON(http.StatusOK, canvas.State())
		return
	}
	c.JSON(http.StatusCreated, canvas.State())
}

func (h *Handler) Press(c *gin.Context) {
	var req dto.PressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if err := canvas.Press(req.ElementID, req.ToPointer()); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) Move(c *gin.Context) {
	var req dto.PointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	canvas.Move(req.ToPointer())
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) Release(c *gin.Context) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if err := canvas.Release(c.Request.Context()); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) CancelDrag(c *gin.Context) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	canvas.CancelDrag()
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) Select(c *gin.Context) {
	var req dto.SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	var err error
	switch {
	case req.ElementID != nil:
		_, err = canvas.SelectElement(*req.ElementID)
	case req.ConnectionID != nil:
		_, err = canvas.SelectConnection(*req.ConnectionID)
	default:
		canvas.ClearSelection()
	}
	if err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) ToggleCandidate(c *gin.Context) {
	var req dto.CandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if _, err := canvas.ToggleCandidate(req.ElementID); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) Connect(c *gin.Context) {
	var req dto.ConnectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if _, err := canvas.Connect(c.Request.Context(), domain.ConnectionType(req.Type), req.Label); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, canvas.State())
}

func (h *Handler) SaveDiagram(c *gin.Context) {
	var req dto.DiagramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if err := canvas.SaveDiagram(c.Request.Context(), req.ToDiagram(canvas.DiagramID())); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) SaveElement(c *gin.Context) {
	eid, ok := paramID(c, "eid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid element id"})
		return
	}
	var req dto.ElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	current, _ := canvas.Element(eid)
	if err := canvas.SaveElement(c.Request.Context(), req.ToElement(eid, current)); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) DeleteElement(c *gin.Context) {
	eid, ok := paramID(c, "eid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid element id"})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if err := canvas.DeleteElement(c.Request.Context(), eid, confirmed(c)); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) SaveConnection(c *gin.Context) {
	cid, ok := paramID(c, "cid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid connection id"})
		return
	}
	var req dto.ConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if err := canvas.SaveConnection(c.Request.Context(), req.ToConnection(cid)); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) DeleteConnection(c *gin.Context) {
	cid, ok := paramID(c, "cid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid connection id"})
		return
	}
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}

	if err := canvas.DeleteConnection(c.Request.Context(), cid, confirmed(c)); err != nil {
		mapDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, canvas.State())
}

func (h *Handler) Scene(c *gin.Context) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, canvas.Scene())
}

func (h *Handler) DismissMessage(c *gin.Context) {
	canvas, ok := h.openEditor(c)
	if !ok {
		return
	}
	canvas.DismissMessage()
	c.JSON(http.StatusOK, canvas.State())
}
