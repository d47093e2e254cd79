package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/pkg/markdown"
)

// importDoc is the YAML document accepted by folio import:
//
//	articles:
//	  - title: Hello, World!
//	    status: published
//	    categories: [news]
//	    content: <p>First post.</p>
type importDoc struct {
	Articles []article.CreateInput `yaml:"articles"`
}

type articleCreator interface {
	Create(ctx context.Context, in article.CreateInput) (*article.Article, error)
}

type importResult struct {
	Created int
	Skipped int
}

// importArticles creates every article of the document in order. Slug
// conflicts and validation failures are reported to out and skipped; any
// other error aborts the import.
func importArticles(ctx context.Context, svc articleCreator, r io.Reader, authorID string, out io.Writer) (importResult, error) {
	var res importResult

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc importDoc
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return res, errors.New("import: document is empty")
		}
		return res, fmt.Errorf("import: parse yaml: %w", err)
	}

	for i, in := range doc.Articles {
		in.AuthorID = authorID
		if err := createOne(ctx, svc, in, fmt.Sprintf("#%d", i+1), &res, out); err != nil {
			return res, err
		}
	}
	return res, nil
}

// importMarkdown creates one article from a Markdown file. The front matter
// carries the article fields and the body becomes its content.
func importMarkdown(ctx context.Context, svc articleCreator, name string, src []byte, authorID string, out io.Writer) (importResult, error) {
	var res importResult

	doc, err := markdown.Split(src)
	if err != nil {
		return res, fmt.Errorf("import: %s: %w", name, err)
	}
	var in article.CreateInput
	if err := doc.Decode(&in); err != nil {
		return res, fmt.Errorf("import: %s: %w", name, err)
	}
	if in.Content != "" {
		return res, fmt.Errorf("import: %s: content comes from the document body, not the front matter", name)
	}
	if in.Content, err = markdown.NewRenderer().Render(doc.Body); err != nil {
		return res, fmt.Errorf("import: %s: %w", name, err)
	}
	in.AuthorID = authorID

	err = createOne(ctx, svc, in, name, &res, out)
	return res, err
}

// createOne creates a single article. Slug conflicts and validation
// failures are reported to out and counted as skipped.
func createOne(ctx context.Context, svc articleCreator, in article.CreateInput, ref string, res *importResult, out io.Writer) error {
	a, err := svc.Create(ctx, in)
	switch {
	case errors.Is(err, article.ErrSlugConflict), errors.Is(err, article.ErrValidation):
		res.Skipped++
		fmt.Fprintf(out, "skipped %s %q: %v\n", ref, in.Title, err)
	case err != nil:
		return fmt.Errorf("import: article %s %q: %w", ref, in.Title, err)
	default:
		res.Created++
		fmt.Fprintf(out, "created %s %s\n", a.Slug, a.CanonicalURL)
	}
	return nil
}
