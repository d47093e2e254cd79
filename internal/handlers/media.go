package handlers

import (
	"net/http"

	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/media"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
)

// MediaHandler serves the media library and uploads.
type MediaHandler struct {
	media    *media.Service
	resolver middlewares.Resolver
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(m *media.Service, resolver middlewares.Resolver) *MediaHandler {
	return &MediaHandler{media: m, resolver: resolver}
}

// Routes implements web.Handler.
func (h *MediaHandler) Routes(r web.Router) {
	r.Group(func(r web.Router) {
		r.Use(middlewares.RequireAuth(h.resolver))
		writer := middlewares.RequireRole(user.RoleAdmin, user.RoleEditor)

		r.Route("/api/media", func(r web.Router) {
			r.GET("/", h.list)
			r.GET("/{id}", h.get)
			r.POST("/", h.register, writer)
			r.DELETE("/{id}", h.delete, writer)
		})
		r.GET("/api/upload", h.uploadStatus)
		r.POST("/api/upload", h.upload, writer)
	})
}

func (h *MediaHandler) list(c web.Context) error {
	items, err := h.media.List(c.Context(), c.Query("uploadedBy"))
	if err != nil {
		return err
	}
	if items == nil {
		items = []*media.Item{}
	}
	return ok(c, http.StatusOK, items)
}

func (h *MediaHandler) get(c web.Context) error {
	item, err := h.media.Get(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, item)
}

func (h *MediaHandler) register(c web.Context) error {
	var in media.RegisterInput
	if err := c.BindJSON(&in); err != nil {
		return err
	}
	item, err := h.media.Register(c.Context(), principalID(c), in)
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, item)
}

func (h *MediaHandler) delete(c web.Context) error {
	if err := h.media.Delete(c.Context(), c.Param("id")); err != nil {
		return err
	}
	return ok(c, http.StatusOK, nil)
}

func (h *MediaHandler) uploadStatus(c web.Context) error {
	return ok(c, http.StatusOK, map[string]any{
		"configured":    h.media.UploadConfigured(),
		"maxUploadSize": h.media.MaxUploadSize(),
	})
}

func (h *MediaHandler) upload(c web.Context) error {
	if !h.media.UploadConfigured() {
		return media.ErrNotConfigured
	}
	fh, err := c.FormFile("file", h.media.MaxUploadSize())
	if err != nil {
		return err
	}

	item, err := h.media.Upload(c.Context(), principalID(c), fh, c.Form("altText"))
	if err != nil {
		return err
	}
	c.LogInfo("media uploaded", "media_id", item.ID, "size", item.Size)
	return ok(c, http.StatusCreated, item)
}

func principalID(c web.Context) string {
	id, _ := auth.PrincipalID(c.Context())
	return id
}
