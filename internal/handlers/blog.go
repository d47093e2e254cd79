package handlers

import (
	"context"
	"encoding/xml"
	"net/http"
	"time"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/web"
	"github.com/dmitrymomot/folio/pkg/cache"
	"github.com/dmitrymomot/folio/pkg/canonical"
)

const (
	// HomePageSize is the number of articles on the blog index.
	HomePageSize = 20
	// RelatedCount is the number of related articles under a post.
	RelatedCount = 3
)

// BlogHandler serves the public, server-rendered blog.
type BlogHandler struct {
	articles   *article.Service
	pages      *Pages
	canonical  canonical.Builder
	sitemaps   cache.Cache[[]SitemapURL]
	sitemapTTL time.Duration
}

// BlogOption configures a BlogHandler.
type BlogOption func(*BlogHandler)

// WithSitemapCache keeps the generated sitemap in c for ttl.
// Changes to articles show up once the entry expires.
func WithSitemapCache(c cache.Cache[[]SitemapURL], ttl time.Duration) BlogOption {
	return func(h *BlogHandler) {
		if ttl > 0 {
			h.sitemaps = c
			h.sitemapTTL = ttl
		}
	}
}

// NewBlogHandler creates a BlogHandler. URLs in page heads and the sitemap
// are built from b, never from the request host.
func NewBlogHandler(articles *article.Service, pages *Pages, b canonical.Builder, opts ...BlogOption) *BlogHandler {
	h := &BlogHandler{articles: articles, pages: pages, canonical: b}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes implements web.Handler.
func (h *BlogHandler) Routes(r web.Router) {
	r.GET("/", h.index)
	r.GET("/blog", h.index)
	r.GET("/blog/{slug}", h.show)
	r.GET("/sitemap.xml", h.sitemap)
}

// NotFound answers unmatched routes; the error handler picks HTML or JSON.
func (h *BlogHandler) NotFound(web.Context) error {
	return web.ErrNotFound("page not found")
}

func (h *BlogHandler) index(c web.Context) error {
	items, err := h.articles.List(c.Context(), article.Filter{
		Status: article.StatusPublished,
		Limit:  HomePageSize,
	})
	if err != nil {
		return err
	}

	var self string
	if base := h.canonical.BaseURL(); base != "" {
		self = base + c.Request().URL.Path
	}
	return c.Render(http.StatusOK, h.pages.Index(items, self))
}

func (h *BlogHandler) show(c web.Context) error {
	a, err := h.articles.Published(c.Context(), c.Param("slug"))
	if err != nil {
		return err
	}

	related, err := h.articles.Related(c.Context(), a, RelatedCount)
	if err != nil {
		// Related articles are decoration; the post still renders.
		c.LogWarn("failed to load related articles", "article_id", a.ID, "error", err.Error())
		related = nil
	}

	return c.Render(http.StatusOK, h.pages.Article(a, related, h.canonicalOf(a)))
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []SitemapURL `xml:"url"`
}

// SitemapURL is one <url> entry of sitemap.xml.
type SitemapURL struct {
	Loc     string `xml:"loc" json:"loc"`
	LastMod string `xml:"lastmod,omitempty" json:"lastMod,omitempty"`
}

const sitemapKey = "sitemap"

func (h *BlogHandler) sitemap(c web.Context) error {
	var (
		urls []SitemapURL
		err  error
	)
	if h.sitemaps != nil {
		urls, err = cache.GetOrSet(c.Context(), h.sitemaps, sitemapKey, h.sitemapTTL, h.sitemapURLs)
	} else {
		urls, err = h.sitemapURLs(c.Context())
	}
	if err != nil {
		return err
	}
	return c.XML(http.StatusOK, urlSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: urls})
}

func (h *BlogHandler) sitemapURLs(ctx context.Context) ([]SitemapURL, error) {
	items, err := h.articles.List(ctx, article.Filter{Status: article.StatusPublished})
	if err != nil {
		return nil, err
	}

	urls := make([]SitemapURL, 0, len(items))
	for _, a := range items {
		loc := h.canonicalOf(a)
		if loc == "" {
			continue
		}
		urls = append(urls, SitemapURL{Loc: loc, LastMod: a.UpdatedAt.UTC().Format("2006-01-02")})
	}
	return urls, nil
}

// canonicalOf returns the stored canonical URL, or the one built from the
// configured origin when it was cleared.
func (h *BlogHandler) canonicalOf(a *article.Article) string {
	if a.CanonicalURL != "" {
		return a.CanonicalURL
	}
	u, err := h.canonical.Build(a.Slug)
	if err != nil {
		return ""
	}
	return u
}
