package user

import "errors"

var (
	ErrInvalidCredentials = errors.New("user: invalid email or password")
	ErrEmailTaken         = errors.New("user: email already registered")
	ErrInvalidInput       = errors.New("user: invalid input")
)
