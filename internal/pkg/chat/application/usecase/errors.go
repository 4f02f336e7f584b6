package usecase

import "errors"

// Error kinds surfaced by chat use cases. The HTTP layer maps these to
// status codes; use cases never retry or recover locally.
var (
	// ErrInvalidRequest indicates malformed or missing required input.
	ErrInvalidRequest = errors.New("chat use case: invalid request")
	// ErrNotFound indicates the referenced conversation or user does not exist.
	ErrNotFound = errors.New("chat use case: not found")
	// ErrForbidden indicates the acting user may not perform the operation.
	ErrForbidden = errors.New("chat use case: forbidden")
	// ErrPersistence indicates an infrastructure/repository failure inside a use case.
	ErrPersistence = errors.New("chat use case: persistence error")
)
