// Package markdown splits Markdown documents with YAML front matter and
// renders their body to HTML.
//
// A document looks like:
//
//	---
//	title: Hello, World!
//	status: published
//	---
//	# Hello
//
//	First post.
//
// The rendered HTML keeps raw HTML blocks from the source. Callers must
// sanitize it before serving.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidFrontMatter = errors.New("markdown: invalid front matter")
	ErrRender             = errors.New("markdown: render failed")
)

var delimiter = []byte("---")

// Document is a parsed source file.
type Document struct {
	FrontMatter []byte
	Body        []byte
}

// Split separates the front matter from the body. A source that does not
// start with "---" has no front matter.
func Split(src []byte) (*Document, error) {
	if !bytes.HasPrefix(src, delimiter) {
		return &Document{Body: src}, nil
	}

	rest := bytes.TrimLeft(bytes.TrimPrefix(src, delimiter), "\r\n")
	end := closing(rest)
	if end < 0 {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontMatter)
	}

	body := rest[end+len(delimiter):]
	switch {
	case bytes.HasPrefix(body, []byte("\r\n")):
		body = body[2:]
	case bytes.HasPrefix(body, []byte("\n")):
		body = body[1:]
	}
	return &Document{FrontMatter: rest[:end], Body: body}, nil
}

// closing returns the offset of the "---" line ending the front matter.
func closing(b []byte) int {
	offset := 0
	for line := range bytes.Lines(b) {
		if bytes.Equal(bytes.TrimRight(line, "\r\n"), delimiter) {
			return offset
		}
		offset += len(line)
	}
	return -1
}

// Decode unmarshals the front matter into v. Unknown keys are rejected.
// Empty front matter leaves v untouched.
func (d *Document) Decode(v any) error {
	if len(bytes.TrimSpace(d.FrontMatter)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(d.FrontMatter))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	return nil
}

// Renderer converts Markdown to HTML with GitHub Flavored Markdown
// extensions and generated heading ids.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render returns the HTML for src.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", errors.Join(ErrRender, err)
	}
	return buf.String(), nil
}
