package errors

import "errors"

var (
	// Engine lifecycle and authorization.
	ErrNotInitialized     = errors.New("engine not initialized")
	ErrAlreadyInitialized = errors.New("engine already initialized")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrNotConfigured      = errors.New("collaborator not configured")

	// Order lifecycle.
	ErrOrderNotFound       = errors.New("order not found")
	ErrInvalidResource     = errors.New("invalid resource")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrInvalidStatus       = errors.New("invalid status")
	ErrInvalidAmount       = errors.New("invalid amount")

	// Registry, accounts, reviews.
	ErrNotFound           = errors.New("not found")
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
)
