package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/folio/internal/user"
)

const userColumns = `id::text, name, email, password_hash, role, created_at`

// UserStore implements user.Store.
type UserStore struct {
	db DBTX
}

// NewUserStore creates a UserStore.
func NewUserStore(db DBTX) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Insert(ctx context.Context, u *user.User) (*user.User, error) {
	id := u.ID
	if id == "" {
		id = uuid.NewString()
	}
	row := s.db.QueryRow(ctx,
		`INSERT INTO users (id, name, email, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		id, u.Name, u.Email, u.PasswordHash, string(u.Role),
	)
	out, err := scanUser(row)
	if err != nil {
		return nil, translate(err, "user", map[string]string{"email": u.Email, "id": id})
	}
	return out, nil
}

func (s *UserStore) Get(ctx context.Context, id string) (*user.User, error) {
	out, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "user", nil)
	}
	return out, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	out, err := scanUser(s.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, translate(err, "user", nil)
	}
	return out, nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	var (
		u    user.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = user.Role(role)
	return &u, nil
}
