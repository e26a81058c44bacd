package service

import "errors"

// Service-level error taxonomy. Handlers translate these to HTTP statuses;
// wrapped causes stay available through errors.Is/As for logging.
var (
	// ErrValidation marks a missing or invalid caller-supplied field.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidCredentials covers unknown email and wrong password alike,
	// so the login response does not reveal which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountInactive is returned when credentials are valid but the
	// account is deactivated.
	ErrAccountInactive = errors.New("account is not active")
	// ErrForbidden means the caller's role lacks the required capability.
	ErrForbidden = errors.New("operation not permitted")
	// ErrNotFound means the referenced document or user does not exist
	// (or is soft-deleted).
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation (duplicate email or category).
	ErrConflict = errors.New("already exists")
	// ErrDependency marks a storage backend failure. No partial document or
	// audit record may remain when it is returned.
	ErrDependency = errors.New("storage backend failure")
)
