package handlers_test

import (
	"context"
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/handlers"
)

func (e *env) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.app.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (e *env) seed(t *testing.T, in article.CreateInput) *article.Article {
	t.Helper()
	a, err := e.articles.Create(context.Background(), in)
	require.NoError(t, err)
	return a
}

func TestBlog_Index(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.seed(t, article.CreateInput{Title: "Published Post", Status: article.StatusPublished, Excerpt: "Read me"})
	e.seed(t, article.CreateInput{Title: "Secret Draft"})

	for _, path := range []string{"/", "/blog"} {
		w := e.get(path)
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, body, `href="/blog/published-post"`)
		assert.Contains(t, body, "Read me")
		assert.Contains(t, body, "1 min read")
		assert.NotContains(t, body, "Secret Draft")
		assert.Contains(t, body, `<link rel="canonical" href="`+baseURL+path+`">`)
	}
}

func TestBlog_Article(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	a := e.seed(t, article.CreateInput{
		Title:           "Go Concurrency",
		Status:          article.StatusPublished,
		Categories:      []string{"Go"},
		Keywords:        []string{"goroutines", "channels"},
		Content:         "<p>" + strings.Repeat("word ", 450) + "</p>",
		MetaTitle:       "Concurrency in Go",
		MetaDescription: "A tour of goroutines",
		FeaturedImage:   &article.Image{URL: "https://images.example.com/go.png", Alt: "Gopher"},
	})
	e.seed(t, article.CreateInput{Title: "Go Errors", Status: article.StatusPublished, Categories: []string{"Go"}})
	e.seed(t, article.CreateInput{Title: "Go Draft", Categories: []string{"Go"}})
	e.seed(t, article.CreateInput{Title: "Cooking", Status: article.StatusPublished, Categories: []string{"Food"}})

	w := e.get("/blog/" + a.Slug)
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()

	assert.Contains(t, body, "<title>Concurrency in Go</title>")
	assert.Contains(t, body, `<meta name="description" content="A tour of goroutines">`)
	assert.Contains(t, body, `<meta name="keywords" content="goroutines, channels">`)
	assert.Contains(t, body, `<link rel="canonical" href="`+baseURL+`/blog/go-concurrency">`)
	assert.Contains(t, body, `<meta property="og:type" content="article">`)
	assert.Contains(t, body, `<meta property="og:image" content="https://images.example.com/go.png">`)
	assert.Contains(t, body, `<meta name="twitter:card" content="summary_large_image">`)
	assert.Contains(t, body, "3 min read")

	assert.Contains(t, body, `href="/blog/go-errors"`)
	assert.NotContains(t, body, "Go Draft")
	assert.NotContains(t, body, "Cooking")
}

func TestBlog_NotFound(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	draft := e.seed(t, article.CreateInput{Title: "Unpublished"})

	for _, path := range []string{"/blog/" + draft.Slug, "/blog/missing", "/blog/Not_A_Slug", "/no/such/page"} {
		w := e.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Contains(t, w.Body.String(), "Page not found", path)
		assert.Contains(t, w.Body.String(), `<meta name="robots" content="noindex">`)
	}

	w := e.get("/api/nothing-here")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
}

func TestBlog_Sitemap(t *testing.T) {
	t.Parallel()

	e := newEnv(t)
	e.seed(t, article.CreateInput{Title: "One", Status: article.StatusPublished})
	e.seed(t, article.CreateInput{Title: "Two", Status: article.StatusPublished, CanonicalURL: "https://medium.example.com/two"})
	e.seed(t, article.CreateInput{Title: "Draft"})

	w := e.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, w.Code)

	var set struct {
		URLs []struct {
			Loc string `xml:"loc"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(w.Body.Bytes(), &set))
	var locs []string
	for _, u := range set.URLs {
		locs = append(locs, u.Loc)
	}
	assert.ElementsMatch(t, []string{baseURL + "/blog/one", "https://medium.example.com/two"}, locs)
}

func TestBlog_SitemapCached(t *testing.T) {
	t.Parallel()

	e := newEnv(t, withSitemapCache())
	e.seed(t, article.CreateInput{Title: "One", Status: article.StatusPublished})

	first := e.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), baseURL+"/blog/one")

	e.seed(t, article.CreateInput{Title: "Two", Status: article.StatusPublished})

	second := e.get("/sitemap.xml")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.NotContains(t, second.Body.String(), "/blog/two")
}

func TestReadTime(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, handlers.ReadTime(""))
	assert.Equal(t, 1, handlers.ReadTime("<p>short</p>"))
	assert.Equal(t, 1, handlers.ReadTime(strings.Repeat("w ", 200)))
	assert.Equal(t, 2, handlers.ReadTime(strings.Repeat("w ", 201)))
}
