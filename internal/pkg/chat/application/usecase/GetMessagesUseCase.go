package usecase

import (
	"context"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

// GetMessagesInput carries parameters to fetch messages of a conversation.
type GetMessagesInput struct {
	ActorID        string
	ConversationID string
	Limit          int
	Offset         int
}

// GetMessagesUseCase fetches messages for a conversation, newest first, with
// each sender resolved. Only participants may read a conversation's history.
type GetMessagesUseCase struct {
	Repo repository.ChatRepository
}

func NewGetMessagesUseCase(repo repository.ChatRepository) *GetMessagesUseCase {
	return &GetMessagesUseCase{Repo: repo}
}

func (uc *GetMessagesUseCase) Execute(ctx context.Context, in GetMessagesInput) ([]chat.MessageView, error) {
	if in.ConversationID == "" {
		return nil, fmt.Errorf("%w: conversation id is required", ErrInvalidRequest)
	}
	if err := requireParticipant(ctx, uc.Repo, in.ConversationID, in.ActorID); err != nil {
		return nil, err
	}
	msgs, err := uc.Repo.GetMessagesByConversation(ctx, in.ConversationID, in.Limit, in.Offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return msgs, nil
}
