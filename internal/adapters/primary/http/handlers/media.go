package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"diagram-editor-service/internal/adapters/primary/http/dto"
	"diagram-editor-service/internal/adapters/primary/http/middleware"
	"diagram-editor-service/internal/core/domain"
)

// UploadMedia accepts a multipart form with the file under "archivo" and
// optional "titulo" and "descripcion" fields.
func (h *Handler) UploadMedia(c *gin.Context) {
	header, err := c.FormFile("archivo")
	if err != nil {
		mapDomainError(c, domain.ErrMissingFile)
		return
	}

	// reject by name and declared size before reading the body
	upload := &domain.Upload{
		Filename:    header.Filename,
		Size:        header.Size,
		Title:       c.PostForm("titulo"),
		Description: c.PostForm("descripcion"),
	}
	if err := domain.ValidateUpload(upload); err != nil {
		mapDomainError(c, err)
		return
	}

	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	upload.Content, err = io.ReadAll(io.LimitReader(f, domain.MaxUploadMB*1024*1024+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upload.Size = int64(len(upload.Content))

	sess, _ := middleware.CurrentSession(c)
	file, err := h.mediaSvc.Upload(c.Request.Context(), sess, upload)
	if err != nil {
		log.WithError(err).WithField("file", header.Filename).Error("upload media failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, file)
}

func (h *Handler) ListMedia(c *gin.Context) {
	sess, _ := middleware.CurrentSession(c)

	files, err := h.mediaSvc.ListFiles(c.Request.Context(), sess)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if files == nil {
		files = []*domain.MediaFile{}
	}

	c.JSON(http.StatusOK, gin.H{"items": files, "total": len(files)})
}

func (h *Handler) GetMedia(c *gin.Context) {
	fid, ok := paramID(c, "fid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	file, err := h.mediaSvc.GetFile(c.Request.Context(), sess, fid)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, file)
}

func (h *Handler) DeleteMedia(c *gin.Context) {
	fid, ok := paramID(c, "fid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if err := h.mediaSvc.DeleteFile(c.Request.Context(), sess, fid, confirmed(c)); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListDiagramMedia(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diagram id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	items, err := h.mediaSvc.ListDiagramMedia(c.Request.Context(), sess, id)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if items == nil {
		items = []*domain.DiagramMedia{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) AttachDiagramMedia(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diagram id"})
		return
	}
	var req dto.AttachDiagramMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if err := h.mediaSvc.AttachToDiagram(c.Request.Context(), sess, req.ToDiagramMedia(id)); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *Handler) DetachDiagramMedia(c *gin.Context) {
	id, ok := paramID(c, "id")
	fid, fok := paramID(c, "fid")
	if !ok || !fok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid diagram or file id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if err := h.mediaSvc.DetachFromDiagram(c.Request.Context(), sess, id, fid); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) ListElementMedia(c *gin.Context) {
	eid, ok := paramID(c, "eid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid element id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	items, err := h.mediaSvc.ListElementMedia(c.Request.Context(), sess, eid)
	if err != nil {
		mapDomainError(c, err)
		return
	}
	if items == nil {
		items = []*domain.ElementMedia{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *Handler) AttachElementMedia(c *gin.Context) {
	eid, ok := paramID(c, "eid")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid element id"})
		return
	}
	var req dto.AttachElementMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if err := h.mediaSvc.AttachToElement(c.Request.Context(), sess, req.ToElementMedia(eid)); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}

func (h *Handler) DetachElementMedia(c *gin.Context) {
	eid, ok := paramID(c, "eid")
	fid, fok := paramID(c, "fid")
	if !ok || !fok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid element or file id"})
		return
	}
	sess, _ := middleware.CurrentSession(c)

	if err := h.mediaSvc.DetachFromElement(c.Request.Context(), sess, eid, fid); err != nil {
		mapDomainError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
