package service

import "errors"

// Error taxonomy for the access-control layer. Expected conditions are
// always reported through these values, never through panics.
var (
	// ErrNotFound covers missing records and, on read paths, records the
	// caller may not see. Denied reads deliberately look identical to
	// missing records so record existence never leaks across owners.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized covers denied mutations and guest write attempts.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUsernameTaken signals a registration collision.
	ErrUsernameTaken = errors.New("username already registered")

	// ErrInvalidCredentials signals a failed login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalid wraps input validation failures.
	ErrInvalid = errors.New("invalid input")
)
