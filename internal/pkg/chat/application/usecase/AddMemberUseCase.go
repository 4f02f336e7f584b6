package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

type AddMemberInput struct {
	ActorID        string
	ConversationID string
	UserID         string
}

// AddMemberUseCase appends a user to a group conversation. The add is
// idempotent: membership is a set, so adding an existing member changes
// nothing but still bumps updated_at.
type AddMemberUseCase struct {
	Repo repository.ChatRepository
}

func NewAddMemberUseCase(repo repository.ChatRepository) *AddMemberUseCase {
	return &AddMemberUseCase{Repo: repo}
}

func (uc *AddMemberUseCase) Execute(ctx context.Context, in AddMemberInput) (*chat.ConversationView, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}

	if _, err := loadGroup(ctx, uc.Repo, in.ConversationID); err != nil {
		return nil, err
	}
	if err := requireParticipant(ctx, uc.Repo, in.ConversationID, in.ActorID); err != nil {
		return nil, err
	}

	if err := uc.Repo.AddParticipant(ctx, in.ConversationID, in.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation or user not found", ErrNotFound)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	view, err := uc.Repo.GetConversationView(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return view, nil
}
