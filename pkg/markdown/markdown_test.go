package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/folio/pkg/markdown"
)

func TestSplit(t *testing.T) {
	t.Parallel()

	t.Run("with front matter", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Split([]byte("---\ntitle: Hello\n---\n# Hi\n"))
		require.NoError(t, err)
		assert.Equal(t, "title: Hello\n", string(doc.FrontMatter))
		assert.Equal(t, "# Hi\n", string(doc.Body))
	})

	t.Run("crlf line endings", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Split([]byte("---\r\ntitle: Hello\r\n---\r\nBody"))
		require.NoError(t, err)
		assert.Equal(t, "title: Hello\r\n", string(doc.FrontMatter))
		assert.Equal(t, "Body", string(doc.Body))
	})

	t.Run("no front matter", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Split([]byte("# Just markdown\n"))
		require.NoError(t, err)
		assert.Empty(t, doc.FrontMatter)
		assert.Equal(t, "# Just markdown\n", string(doc.Body))
	})

	t.Run("horizontal rule in body", func(t *testing.T) {
		t.Parallel()

		doc, err := markdown.Split([]byte("---\ntitle: A\n---\nabove\n\n---\n\nbelow\n"))
		require.NoError(t, err)
		assert.Equal(t, "title: A\n", string(doc.FrontMatter))
		assert.Equal(t, "above\n\n---\n\nbelow\n", string(doc.Body))
	})

	t.Run("unterminated", func(t *testing.T) {
		t.Parallel()

		_, err := markdown.Split([]byte("---\ntitle: Hello\n# Hi\n"))
		require.ErrorIs(t, err, markdown.ErrInvalidFrontMatter)
	})
}

func TestDocument_Decode(t *testing.T) {
	t.Parallel()

	type meta struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}

	doc, err := markdown.Split([]byte("---\ntitle: Hello\ntags: [a, b]\n---\n"))
	require.NoError(t, err)
	var m meta
	require.NoError(t, doc.Decode(&m))
	assert.Equal(t, meta{Title: "Hello", Tags: []string{"a", "b"}}, m)

	doc, err = markdown.Split([]byte("---\ntitel: Hello\n---\n"))
	require.NoError(t, err)
	require.ErrorIs(t, doc.Decode(&m), markdown.ErrInvalidFrontMatter)

	doc, err = markdown.Split([]byte("---\n---\nbody"))
	require.NoError(t, err)
	var empty meta
	require.NoError(t, doc.Decode(&empty))
	assert.Zero(t, empty)
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	r := markdown.NewRenderer()
	out, err := r.Render([]byte("# Getting Started\n\nSome **bold** text.\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"))
	require.NoError(t, err)
	assert.Contains(t, out, `<h1 id="getting-started">Getting Started</h1>`)
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<table>")
}
