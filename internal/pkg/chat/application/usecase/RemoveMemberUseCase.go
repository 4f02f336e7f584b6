package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

type RemoveMemberInput struct {
	ActorID        string
	ConversationID string
	UserID         string
}

// RemoveMemberUseCase removes a user from a group conversation. Only the
// group admin may remove others; any participant may remove themself
// (leave). No minimum membership is enforced after removal, so a group may
// shrink below its creation floor.
type RemoveMemberUseCase struct {
	Repo repository.ChatRepository
}

func NewRemoveMemberUseCase(repo repository.ChatRepository) *RemoveMemberUseCase {
	return &RemoveMemberUseCase{Repo: repo}
}

func (uc *RemoveMemberUseCase) Execute(ctx context.Context, in RemoveMemberInput) (*chat.ConversationView, error) {
	if in.UserID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}

	conv, err := loadGroup(ctx, uc.Repo, in.ConversationID)
	if err != nil {
		return nil, err
	}

	if in.UserID == in.ActorID {
		if err := requireParticipant(ctx, uc.Repo, in.ConversationID, in.ActorID); err != nil {
			return nil, err
		}
	} else if conv.AdminID == nil || *conv.AdminID != in.ActorID {
		return nil, fmt.Errorf("%w: %v", ErrForbidden, chat.ErrNotAdmin)
	}

	if err := uc.Repo.RemoveParticipant(ctx, in.ConversationID, in.UserID); err != nil {
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
