package auth

import "errors"

// Domain errors for authentication operations.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
)
