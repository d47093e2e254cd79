package session

import "errors"

var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned when a session has expired.
	ErrExpired = errors.New("session: expired")

	// ErrInvalidToken is returned for empty or malformed tokens.
	ErrInvalidToken = errors.New("session: invalid token")

	// ErrInvalidTTL is returned when a session is created without a positive lifetime.
	ErrInvalidTTL = errors.New("session: ttl must be positive")
)
