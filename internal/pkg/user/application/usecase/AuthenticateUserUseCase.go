package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	user "go-confab/internal/pkg/user/application/domain"
	repository "go-confab/internal/pkg/user/persistence/repository/port"

	"golang.org/x/crypto/bcrypt"
)

type AuthenticateUserInput struct {
	Email    string
	Password string
}

type AuthenticateUserResult struct {
	User  user.View
	Token string
}

// AuthenticateUserUseCase verifies an email/password pair and issues a
// token. A missing user and a wrong password are indistinguishable to the
// caller.
type AuthenticateUserUseCase struct {
	Repo   repository.UserRepository
	Issuer TokenIssuer
}

func NewAuthenticateUserUseCase(repo repository.UserRepository, issuer TokenIssuer) *AuthenticateUserUseCase {
	return &AuthenticateUserUseCase{Repo: repo, Issuer: issuer}
}

func (uc *AuthenticateUserUseCase) Execute(ctx context.Context, in AuthenticateUserInput) (*AuthenticateUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidRequest)
	}

	u, err := uc.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := uc.Issuer.GenerateToken(u.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return &AuthenticateUserResult{User: u.View(), Token: token}, nil
}
