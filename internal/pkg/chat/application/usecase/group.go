package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

// loadGroup fetches the conversation and rejects anything that is not a
// group. Direct conversations have fixed membership and no name, so none of
// the mutation use cases apply to them.
func loadGroup(ctx context.Context, repo repository.ChatRepository, conversationID string) (*chat.Conversation, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", ErrInvalidRequest)
	}
	conv, err := repo.GetConversation(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, conversationID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !conv.IsGroup() {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, chat.ErrNotGroup)
	}
	return conv, nil
}

// requireParticipant enforces that the acting user belongs to the group
// before mutating it.
func requireParticipant(ctx context.Context, repo repository.ChatRepository, conversationID, userID string) error {
	ok, err := repo.IsParticipant(ctx, conversationID, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !ok {
		return fmt.Errorf("%w: %v", ErrForbidden, chat.ErrNotParticipant)
	}
	return nil
}
