package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/store/memory"
	"github.com/dmitrymomot/folio/pkg/canonical"
)

const importYAML = `
articles:
  - title: Hello, World! 2024
    status: published
    categories: [news, go]
    keywords: [intro]
    content: <p>First post.</p>
    featuredImage:
      url: https://images.example.com/hello.png
      alt: Hello
  - title: Hello World 2024
  - title: "!!!"
  - title: Custom Slug
    slug: my-custom-slug
    canonicalUrl: https://medium.example.com/custom
`

func TestImportArticles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	articles := memory.NewArticleStore()
	svc := article.NewService(articles, canonical.NewBuilder("https://blog.example.com"))

	var out bytes.Buffer
	res, err := importArticles(ctx, svc, strings.NewReader(importYAML), "author-1", &out)
	require.NoError(t, err)
	assert.Equal(t, importResult{Created: 2, Skipped: 2}, res)

	log := out.String()
	assert.Contains(t, log, "created hello-world-2024 https://blog.example.com/blog/hello-world-2024")
	assert.Contains(t, log, `skipped #2 "Hello World 2024"`)
	assert.Contains(t, log, `skipped #3 "!!!"`)
	assert.Contains(t, log, "created my-custom-slug https://medium.example.com/custom")

	first, err := articles.GetBySlug(ctx, "hello-world-2024")
	require.NoError(t, err)
	assert.Equal(t, article.StatusPublished, first.Status)
	assert.Equal(t, []string{"news", "go"}, first.Categories)
	assert.Equal(t, "author-1", first.AuthorID)
	require.NotNil(t, first.FeaturedImage)
	assert.Equal(t, "Hello", first.FeaturedImage.Alt)
}

func TestImportArticles_AbortsOnConfigurationError(t *testing.T) {
	t.Parallel()

	svc := article.NewService(memory.NewArticleStore(), canonical.Builder{})

	var out bytes.Buffer
	res, err := importArticles(context.Background(), svc, strings.NewReader(importYAML), "", &out)
	require.ErrorIs(t, err, canonical.ErrNoOrigin)
	assert.Zero(t, res.Created)
}

func TestImportArticles_BadDocument(t *testing.T) {
	t.Parallel()

	svc := article.NewService(memory.NewArticleStore(), canonical.NewBuilder("https://blog.example.com"))

	tests := map[string]string{
		"empty":         "",
		"unknown field": "articles:\n  - title: A\n    slugg: a\n",
		"not yaml":      "articles: [",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := importArticles(context.Background(), svc, strings.NewReader(doc), "", &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}

const importMD = `---
title: Writing in Markdown
status: published
categories: [guides]
---
# Writing in Markdown

Some **bold** words.

<script>alert(1)</script>
`

func TestImportMarkdown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	articles := memory.NewArticleStore()
	svc := article.NewService(articles, canonical.NewBuilder("https://blog.example.com"))

	var out bytes.Buffer
	res, err := importMarkdown(ctx, svc, "post.md", []byte(importMD), "author-1", &out)
	require.NoError(t, err)
	assert.Equal(t, importResult{Created: 1}, res)
	assert.Contains(t, out.String(), "created writing-in-markdown https://blog.example.com/blog/writing-in-markdown")

	a, err := articles.GetBySlug(ctx, "writing-in-markdown")
	require.NoError(t, err)
	assert.Equal(t, article.StatusPublished, a.Status)
	assert.Equal(t, []string{"guides"}, a.Categories)
	assert.Contains(t, a.Content, "<strong>bold</strong>")
	assert.NotContains(t, a.Content, "<script>")

	// The same slug again is skipped, not fatal.
	res, err = importMarkdown(ctx, svc, "post.md", []byte(importMD), "author-1", &out)
	require.NoError(t, err)
	assert.Equal(t, importResult{Skipped: 1}, res)
}

func TestImportMarkdown_BadDocument(t *testing.T) {
	t.Parallel()

	svc := article.NewService(memory.NewArticleStore(), canonical.NewBuilder("https://blog.example.com"))

	tests := map[string]string{
		"unterminated front matter": "---\ntitle: A\n# body\n",
		"unknown field":             "---\ntitel: A\n---\nbody\n",
		"content in front matter":   "---\ntitle: A\ncontent: <p>x</p>\n---\nbody\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := importMarkdown(context.Background(), svc, "post.md", []byte(doc), "", &bytes.Buffer{})
			require.Error(t, err)
		})
	}
}

func TestFormatOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "markdown", formatOf("posts/hello.md"))
	assert.Equal(t, "markdown", formatOf("HELLO.MARKDOWN"))
	assert.Equal(t, "yaml", formatOf("articles.yaml"))
	assert.Equal(t, "yaml", formatOf("-"))
}
