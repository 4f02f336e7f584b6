package usecase

import "errors"

// Error kinds surfaced by user use cases.
var (
	// ErrInvalidRequest indicates malformed or missing required input.
	ErrInvalidRequest = errors.New("user use case: invalid request")
	// ErrInvalidCredentials indicates email/password mismatch on login.
	ErrInvalidCredentials = errors.New("user use case: invalid email or password")
	// ErrPersistence indicates an infrastructure/repository failure inside a use case.
	ErrPersistence = errors.New("user use case: persistence error")
)

// TokenIssuer signs an access token for an authenticated user. Satisfied by
// the infrastructure JWT authenticator.
type TokenIssuer interface {
	GenerateToken(userID string) (string, error)
}
