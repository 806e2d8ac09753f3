package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"diagram-editor-service/internal/adapters/primary/http/middleware"
	"diagram-editor-service/internal/core/services"
)

type Handler struct {
	sessionSvc *services.SessionService
	diagramSvc *services.DiagramService
	mediaSvc   *services.MediaService
	editors    *services.EditorRegistry
}

func New(
	sessionSvc *services.SessionService,
	diagramSvc *services.DiagramService,
	mediaSvc *services.MediaService,
	editors *services.EditorRegistry,
) *Handler {
	return &Handler{
		sessionSvc: sessionSvc,
		diagramSvc: diagramSvc,
		mediaSvc:   mediaSvc,
		editors:    editors,
	}
}

// RegisterRoutes mounts the API on r. r must already run the session
// middleware.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Auth
	r.POST("/auth/login", h.Login)
	r.POST("/auth/logout", h.Logout)

	authed := r.Group("", middleware.RequireSession())
	authed.GET("/auth/me", h.Me)
	authed.GET("/palette", h.Palette)

	// Diagrams
	authed.GET("/diagrams", h.ListDiagrams)
	authed.GET("/diagrams/:id", h.GetDiagram)
	authed.POST("/diagrams", h.CreateDiagram)
	authed.PUT("/diagrams/:id", h.UpdateDiagram)
	authed.DELETE("/diagrams/:id", h.DeleteDiagram)
	authed.GET("/diagrams/:id/render.svg", h.RenderSVG)
	authed.GET("/diagrams/:id/render.png", h.RenderPNG)

	// Editor
	editor := authed.Group("/diagrams/:id/editor")
	editor.GET("", h.EditorState)
	editor.DELETE("", h.CloseEditor)
	editor.POST("/load", h.LoadEditor)
	editor.POST("/drop", h.Drop)
	editor.POST("/press", h.Press)
	editor.POST("/move", h.Move)
	editor.POST("/release", h.Release)
	editor.POST("/cancel", h.CancelDrag)
	editor.POST("/select", h.Select)
	editor.POST("/candidates", h.ToggleCandidate)
	editor.POST("/connect", h.Connect)
	editor.PUT("/diagram", h.SaveDiagram)
	editor.PUT("/elements/:eid", h.SaveElement)
	editor.DELETE("/elements/:eid", h.DeleteElement)
	editor.PUT("/connections/:cid", h.SaveConnection)
	editor.DELETE("/connections/:cid", h.DeleteConnection)
	editor.GET("/scene", h.Scene)
	editor.DELETE("/message", h.DismissMessage)

	// Media
	authed.POST("/media", h.UploadMedia)
	authed.GET("/media", h.ListMedia)
	authed.GET("/media/:fid", h.GetMedia)
	authed.DELETE("/media/:fid", h.DeleteMedia)
	authed.GET("/diagrams/:id/media", h.ListDiagramMedia)
	authed.POST("/diagrams/:id/media", h.AttachDiagramMedia)
	authed.DELETE("/diagrams/:id/media/:fid", h.DetachDiagramMedia)
	authed.GET("/elements/:eid/media", h.ListElementMedia)
	authed.POST("/elements/:eid/media", h.AttachElementMedia)
	authed.DELETE("/elements/:eid/media/:fid", h.DetachElementMedia)
}

// paramID parses a positive numeric path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func confirmed(c *gin.Context) bool {
	ok, _ := strconv.ParseBool(c.Query("confirm"))
	return ok
}
