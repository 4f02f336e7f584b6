package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

type RenameGroupInput struct {
	ActorID        string
	ConversationID string
	Name           string
}

// RenameGroupUseCase changes a group's display name. Only participants of
// the group may rename it; name and updated_at are the only fields touched.
type RenameGroupUseCase struct {
	Repo repository.ChatRepository
}

func NewRenameGroupUseCase(repo repository.ChatRepository) *RenameGroupUseCase {
	return &RenameGroupUseCase{Repo: repo}
}

func (uc *RenameGroupUseCase) Execute(ctx context.Context, in RenameGroupInput) (*chat.ConversationView, error) {
	name, err := chat.ValidateGroupName(in.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	if _, err := loadGroup(ctx, uc.Repo, in.ConversationID); err != nil {
		return nil, err
	}
	if err := requireParticipant(ctx, uc.Repo, in.ConversationID, in.ActorID); err != nil {
		return nil, err
	}

	if err := uc.Repo.Rename(ctx, in.ConversationID, name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, in.ConversationID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	view, err := uc.Repo.GetConversationView(ctx, in.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return view, nil
}
