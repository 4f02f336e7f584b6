package usecase

import (
	"context"
	"errors"
	"fmt"

	user "go-confab/internal/pkg/user/application/domain"
	repository "go-confab/internal/pkg/user/persistence/repository/port"

	"golang.org/x/crypto/bcrypt"
)

type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
	Pic      string
}

// RegisterUserResult carries the new user's profile plus a signed token so
// the client is logged in immediately after sign-up.
type RegisterUserResult struct {
	User  user.View
	Token string
}

// RegisterUserUseCase creates a user record with a bcrypt-hashed credential.
// Stateless: it holds only its collaborators.
type RegisterUserUseCase struct {
	Repo   repository.UserRepository
	Issuer TokenIssuer
}

func NewRegisterUserUseCase(repo repository.UserRepository, issuer TokenIssuer) *RegisterUserUseCase {
	return &RegisterUserUseCase{Repo: repo, Issuer: issuer}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, in RegisterUserInput) (*RegisterUserResult, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, user.ErrMissingFields)
	}
	u, err := user.NewRegistration(in.Name, in.Email, in.Pic)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	u.PasswordHash = string(hash)

	if err := uc.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, fmt.Errorf("%w: email already registered", ErrInvalidRequest)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	token, err := uc.Issuer.GenerateToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &RegisterUserResult{User: u.View(), Token: token}, nil
}
