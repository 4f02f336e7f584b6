package repository

import (
	"context"
	"errors"

	user "go-confab/internal/pkg/user/application/domain"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user repository: not found")
	// ErrEmailTaken is returned when a create collides with the unique email index.
	ErrEmailTaken = errors.New("user repository: email already registered")
)

// UserRepository defines persistence operations for the user directory.
type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	// Search matches name or email by substring, excluding excludeID,
	// ordered by name.
	Search(ctx context.Context, query, excludeID string) ([]user.User, error)
}
