package usecase

import (
	"context"
	"fmt"
	"strings"

	user "go-confab/internal/pkg/user/application/domain"
	repository "go-confab/internal/pkg/user/persistence/repository/port"
)

type SearchUsersInput struct {
	ActorID string
	Query   string
}

// SearchUsersUseCase is the directory lookup the chat UI uses to pick a
// conversation target. The acting user is excluded from results.
type SearchUsersUseCase struct {
	Repo repository.UserRepository
}

func NewSearchUsersUseCase(repo repository.UserRepository) *SearchUsersUseCase {
	return &SearchUsersUseCase{Repo: repo}
}

func (uc *SearchUsersUseCase) Execute(ctx context.Context, in SearchUsersInput) ([]user.View, error) {
	query := strings.TrimSpace(in.Query)
	if query == "" {
		return nil, fmt.Errorf("%w: search query is required", ErrInvalidRequest)
	}

	users, err := uc.Repo.Search(ctx, query, in.ActorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	views := make([]user.View, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return views, nil
}
