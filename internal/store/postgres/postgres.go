// Package postgres implements the article, media and user stores on
// PostgreSQL with pgx and squirrel. Uniqueness is enforced by the schema's
// UNIQUE constraints; violations surface as store.ErrDuplicateKey.
package postgres

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/folio/internal/store"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	codeUniqueViolation           = "23505"
	codeInvalidTextRepresentation = "22P02"
)

// constraintFields maps unique constraints to the domain field they guard.
var constraintFields = map[string]string{
	"articles_slug_key":         "slug",
	"articles_pkey":             "id",
	"media_items_file_name_key": "fileName",
	"media_items_url_key":       "url",
	"media_items_pkey":          "id",
	"users_email_key":           "email",
	"users_pkey":                "id",
}

// translate maps pgx errors onto the store contract. values supplies the
// offending value for each field, for error messages.
func translate(err error, entity string, values map[string]string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return store.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			field := constraintFields[pgErr.ConstraintName]
			if field == "" {
				field = pgErr.ConstraintName
			}
			return store.Duplicate(entity, field, values[field])
		case codeInvalidTextRepresentation:
			// Malformed uuid in a lookup cannot match any row.
			return store.ErrNotFound
		}
	}
	return err
}

// nullable turns "" into SQL NULL.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
