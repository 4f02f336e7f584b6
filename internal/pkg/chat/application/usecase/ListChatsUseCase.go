package usecase

import (
	"context"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

type ListChatsInput struct {
	ActorID string
}

// ListChatsUseCase returns every conversation the acting user participates
// in, most recently active first. Each call re-queries the store, so the
// result reflects current state rather than a cached snapshot.
type ListChatsUseCase struct {
	Repo repository.ChatRepository
}

func NewListChatsUseCase(repo repository.ChatRepository) *ListChatsUseCase {
	return &ListChatsUseCase{Repo: repo}
}

func (uc *ListChatsUseCase) Execute(ctx context.Context, in ListChatsInput) ([]chat.ConversationView, error) {
	if in.ActorID == "" {
		return nil, fmt.Errorf("%w: acting user id is required", ErrInvalidRequest)
	}
	views, err := uc.Repo.ListForUser(ctx, in.ActorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return views, nil
}
