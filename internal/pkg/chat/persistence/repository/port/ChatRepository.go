package repository

import (
	"context"
	"errors"

	chat "go-confab/internal/pkg/chat/application/domain"
)

// ErrNotFound is returned when a referenced conversation or user does not
// exist. Adapters map their backend's miss signal (pgx.ErrNoRows, FK
// violations) to this sentinel so use cases stay driver-agnostic.
var ErrNotFound = errors.New("chat repository: not found")

// ChatRepository defines persistence operations for the chat domain.
// The Conversation Store is the single source of truth; every read that
// leaves this layer has participants, admin and latest-message sender
// resolved already.
type ChatRepository interface {
	// ResolveDirect finds or creates the direct conversation for the
	// canonical pair key. It is a conditional write keyed on directKey, so
	// concurrent resolves for the same pair converge on one record.
	ResolveDirect(ctx context.Context, directKey, userA, userB string) (id string, created bool, err error)

	// CreateGroup persists a group conversation with the given members in
	// order. The admin must appear in memberIDs.
	CreateGroup(ctx context.Context, name, adminID string, memberIDs []string) (id string, err error)

	GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error)
	GetConversationView(ctx context.Context, conversationID string) (*chat.ConversationView, error)

	// ListForUser returns resolved views of every conversation the user
	// participates in, most recently updated first.
	ListForUser(ctx context.Context, userID string) ([]chat.ConversationView, error)

	Rename(ctx context.Context, conversationID, name string) error
	AddParticipant(ctx context.Context, conversationID, userID string) error
	RemoveParticipant(ctx context.Context, conversationID, userID string) error
	IsParticipant(ctx context.Context, conversationID, userID string) (bool, error)

	// SaveMessage persists the message and, in the same transaction, sets
	// the conversation's latest-message pointer and bumps updated_at.
	SaveMessage(ctx context.Context, m chat.Message) (id string, err error)
	GetMessagesByConversation(ctx context.Context, conversationID string, limit, offset int) ([]chat.MessageView, error)
}
