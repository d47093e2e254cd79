package postgres

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/folio/internal/article"
	"github.com/dmitrymomot/folio/internal/store"
)

var articleColumns = []string{
	"id::text", "title", "slug", "canonical_url", "status", "categories", "keywords",
	"content", "excerpt", "meta_title", "meta_description",
	"featured_image_url", "featured_image_alt", "author_id::text",
	"created_at", "updated_at",
}

// ArticleStore implements article.Store.
type ArticleStore struct {
	db DBTX
}

// NewArticleStore creates an ArticleStore.
func NewArticleStore(db DBTX) *ArticleStore {
	return &ArticleStore{db: db}
}

func (s *ArticleStore) Insert(ctx context.Context, a *article.Article) (*article.Article, error) {
	id := a.ID
	if id == "" {
		id = uuid.NewString()
	}
	var imgURL, imgAlt string
	if a.FeaturedImage != nil {
		imgURL, imgAlt = a.FeaturedImage.URL, a.FeaturedImage.Alt
	}

	query, args, err := psql.Insert("articles").
		Columns(
			"id", "title", "slug", "canonical_url", "status", "categories", "keywords",
			"content", "excerpt", "meta_title", "meta_description",
			"featured_image_url", "featured_image_alt", "author_id",
		).
		Values(
			id, a.Title, a.Slug, a.CanonicalURL, string(a.Status), nonNil(a.Categories), nonNil(a.Keywords),
			a.Content, a.Excerpt, a.MetaTitle, a.MetaDescription,
			imgURL, imgAlt, nullable(a.AuthorID),
		).
		Suffix("RETURNING " + strings.Join(articleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build insert article: %w", err)
	}

	out, err := scanArticle(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "article", map[string]string{"slug": a.Slug, "id": id})
	}
	return out, nil
}

func (s *ArticleStore) Update(ctx context.Context, id string, p article.Patch) (*article.Article, error) {
	set := sq.Eq{"updated_at": sq.Expr("now()")}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Slug != nil {
		set["slug"] = *p.Slug
	}
	if p.CanonicalURL != nil {
		set["canonical_url"] = *p.CanonicalURL
	}
	if p.Status != nil {
		set["status"] = string(*p.Status)
	}
	if p.Categories != nil {
		set["categories"] = nonNil(*p.Categories)
	}
	if p.Keywords != nil {
		set["keywords"] = nonNil(*p.Keywords)
	}
	if p.Content != nil {
		set["content"] = *p.Content
	}
	if p.Excerpt != nil {
		set["excerpt"] = *p.Excerpt
	}
	if p.MetaTitle != nil {
		set["meta_title"] = *p.MetaTitle
	}
	if p.MetaDescription != nil {
		set["meta_description"] = *p.MetaDescription
	}
	if p.FeaturedImage != nil {
		if p.FeaturedImage.URL == "" {
			set["featured_image_url"] = ""
			set["featured_image_alt"] = ""
		} else {
			set["featured_image_url"] = p.FeaturedImage.URL
			set["featured_image_alt"] = p.FeaturedImage.Alt
		}
	}

	query, args, err := psql.Update("articles").
		SetMap(set).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + strings.Join(articleColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build update article: %w", err)
	}

	out, err := scanArticle(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "article", map[string]string{"slug": deref(p.Slug)})
	}
	return out, nil
}

func (s *ArticleStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return translate(err, "article", nil)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) Get(ctx context.Context, id string) (*article.Article, error) {
	return s.getBy(ctx, sq.Eq{"id": id})
}

func (s *ArticleStore) GetBySlug(ctx context.Context, slug string) (*article.Article, error) {
	return s.getBy(ctx, sq.Eq{"slug": slug})
}

func (s *ArticleStore) getBy(ctx context.Context, where sq.Sqlizer) (*article.Article, error) {
	query, args, err := psql.Select(articleColumns...).From("articles").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build select article: %w", err)
	}
	out, err := scanArticle(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, translate(err, "article", nil)
	}
	return out, nil
}

func (s *ArticleStore) List(ctx context.Context, f article.Filter) ([]*article.Article, error) {
	q := psql.Select(articleColumns...).From("articles").OrderBy("created_at DESC", "id")
	if f.Status != "" {
		q = q.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.AuthorID != "" {
		if uuid.Validate(f.AuthorID) != nil {
			return []*article.Article{}, nil
		}
		q = q.Where(sq.Eq{"author_id": f.AuthorID})
	}
	if len(f.Categories) > 0 {
		q = q.Where(sq.Expr("categories && ?", f.Categories))
	}
	if f.ExcludeID != "" {
		q = q.Where(sq.NotEq{"id": f.ExcludeID})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("postgres: build list articles: %w", err)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, translate(err, "article", nil)
	}
	defer rows.Close()

	out := []*article.Article{}
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "article", nil)
	}
	return out, nil
}

func scanArticle(row pgx.Row) (*article.Article, error) {
	var (
		a        article.Article
		status   string
		imgURL   string
		imgAlt   string
		authorID *string
	)
	err := row.Scan(
		&a.ID, &a.Title, &a.Slug, &a.CanonicalURL, &status, &a.Categories, &a.Keywords,
		&a.Content, &a.Excerpt, &a.MetaTitle, &a.MetaDescription,
		&imgURL, &imgAlt, &authorID,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.Status = article.Status(status)
	a.AuthorID = deref(authorID)
	if imgURL != "" {
		a.FeaturedImage = &article.Image{URL: imgURL, Alt: imgAlt}
	}
	return &a, nil
}
