package handlers

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/auth"
	"github.com/dmitrymomot/folio/internal/user"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/middlewares"
)

// MaxPageSize caps the limit query parameter of list endpoints.
const MaxPageSize = 100

// ArticleHandler serves the dashboard article API.
type ArticleHandler struct {
	articles *article.Service
	resolver middlewares.Resolver
}

// NewArticleHandler creates an ArticleHandler.
func NewArticleHandler(articles *article.Service, resolver middlewares.Resolver) *ArticleHandler {
	return &ArticleHandler{articles: articles, resolver: resolver}
}

// Routes implements web.Handler. Reads need a session, writes need the
// admin or editor role.
func (h *ArticleHandler) Routes(r web.Router) {
	r.Group(func(r web.Router) {
		r.Use(middlewares.RequireAuth(h.resolver))

		r.GET("/api/slug", h.preview)
		r.Route("/api/articles", func(r web.Router) {
			writer := middlewares.RequireRole(user.RoleAdmin, user.RoleEditor)

			r.GET("/", h.list)
			r.GET("/{id}", h.get)
			r.POST("/", h.create, writer)
			r.PUT("/{id}", h.update, writer)
			r.DELETE("/{id}", h.delete, writer)
		})
	})
}

func (h *ArticleHandler) list(c web.Context) error {
	f := article.Filter{
		Status:   article.Status(c.Query("status")),
		AuthorID: c.Query("authorId"),
		Limit:    web.QueryInt(c, "limit", 0, 0, MaxPageSize),
		Offset:   web.QueryInt(c, "offset", 0, 0, 1<<20),
	}
	if f.Status != "" && !f.Status.Valid() {
		return web.ErrUnprocessable("status must be draft or published")
	}
	if cat := strings.TrimSpace(c.Query("category")); cat != "" {
		f.Categories = []string{cat}
	}

	items, err := h.articles.List(c.Context(), f)
	if err != nil {
		return err
	}
	if items == nil {
		items = []*article.Article{}
	}
	return ok(c, http.StatusOK, items)
}

func (h *ArticleHandler) get(c web.Context) error {
	a, err := h.articles.Get(c.Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, a)
}

func (h *ArticleHandler) create(c web.Context) error {
	var in article.CreateInput
	if err := c.BindJSON(&in); err != nil {
		return err
	}
	if p, found := auth.FromContext(c.Context()); found {
		in.AuthorID = p.ID
	}

	a, err := h.articles.Create(c.Context(), in)
	if err != nil {
		return err
	}
	c.LogInfo("article created", "article_id", a.ID, "slug", a.Slug)
	return ok(c, http.StatusCreated, a)
}

func (h *ArticleHandler) update(c web.Context) error {
	var in article.UpdateInput
	if err := c.BindJSON(&in); err != nil {
		return err
	}

	a, err := h.articles.Update(c.Context(), c.Param("id"), in)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, a)
}

func (h *ArticleHandler) delete(c web.Context) error {
	id := c.Param("id")
	if err := h.articles.Delete(c.Context(), id); err != nil {
		return err
	}
	c.LogInfo("article deleted", "article_id", id)
	return ok(c, http.StatusOK, nil)
}

type slugPreview struct {
	Slug         string `json:"slug"`
	CanonicalURL string `json:"canonicalUrl"`
	Valid        bool   `json:"valid"`
}

// preview reports what saving the given title or slug would produce.
func (h *ArticleHandler) preview(c web.Context) error {
	sl, canon, valid, err := h.articles.Preview(c.Query("title"), c.Query("slug"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, slugPreview{Slug: sl, CanonicalURL: canon, Valid: valid})
}
