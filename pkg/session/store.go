package session

import "context"

// Store persists sessions keyed by token.
type Store interface {
	// Create persists a new session until its ExpiresAt.
	Create(ctx context.Context, s *Session) error

	// Get returns the session for token.
	// Returns ErrNotFound if it doesn't exist and ErrExpired if it has expired.
	Get(ctx context.Context, token string) (*Session, error)

	// Delete removes the session for token. Deleting a missing session is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteByUserID removes every session of a user.
	DeleteByUserID(ctx context.Context, userID string) error
}
