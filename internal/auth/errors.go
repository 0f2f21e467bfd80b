package auth

import "errors"

// User-facing failure classes. Messages stay generic on purpose: they must
// not reveal whether an email exists or why a token was rejected.
var (
	ErrAlreadyRegistered  = errors.New("email already registered")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many attempts, try later")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
)
