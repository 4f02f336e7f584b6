package usecase

import (
	"context"
	"errors"
	"fmt"

	chat "go-confab/internal/pkg/chat/application/domain"
	repository "go-confab/internal/pkg/chat/persistence/repository/port"
)

// PostMessageInput carries the data needed to post a new message.
type PostMessageInput struct {
	ConversationID string
	SenderID       string
	Body           *string
	MsgType        chat.MessageType
	AttachmentURL  *string
}

// PostMessageUseCase persists a message and advances the conversation's
// latest-message pointer in the same write, bumping updated_at so the chat
// list reorders on activity.
type PostMessageUseCase struct {
	Repo repository.ChatRepository
}

func NewPostMessageUseCase(repo repository.ChatRepository) *PostMessageUseCase {
	return &PostMessageUseCase{Repo: repo}
}

func (uc *PostMessageUseCase) Execute(ctx context.Context, in PostMessageInput) (*chat.Message, error) {
	if in.ConversationID == "" || in.SenderID == "" {
		return nil, fmt.Errorf("%w: conversation id and sender id are required", ErrInvalidRequest)
	}

	isParticipant, err := uc.Repo.IsParticipant(ctx, in.ConversationID, in.SenderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !isParticipant {
		return nil, fmt.Errorf("%w: %v", ErrForbidden, chat.ErrNotParticipant)
	}

	msg, err := chat.NewMessage(chat.Message{
		ConversationID: in.ConversationID,
		SenderID:       in.SenderID,
		Body:           in.Body,
		MsgType:        in.MsgType,
		AttachmentURL:  in.AttachmentURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	// Persist letting the repository generate the ID
	id, err := uc.Repo.SaveMessage(ctx, *msg)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: conversation %s", ErrNotFound, in.ConversationID)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	msg.ID = id
	return msg, nil
}
