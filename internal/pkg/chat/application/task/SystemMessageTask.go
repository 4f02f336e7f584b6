package task

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	qport "go-confab/internal/infrastructure/queue/port"
	chat "go-confab/internal/pkg/chat/application/domain"
	"go-confab/internal/pkg/chat/application/usecase"
	repoAdapter "go-confab/internal/pkg/chat/persistence/repository/adapter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SystemMessageTaskType is the queue task name for posting a system message
// into a conversation after a membership change or rename.
const SystemMessageTaskType = "chat:system_message"

// SystemMessageTaskPayload is the JSON payload transported via the queue.
// Kept decoupled from domain types to avoid tight coupling with JSON tags.
type SystemMessageTaskPayload struct {
	ConversationID string `json:"conversationId"`
	ActorID        string `json:"actorId"`
	Body           string `json:"body"`
}

// EnqueueSystemMessage schedules a system message for the conversation.
// Best-effort: a nil client or enqueue failure never fails the operation
// that triggered it.
func EnqueueSystemMessage(ctx context.Context, client qport.Client, conversationID, actorID, body string) {
	if client == nil {
		return
	}
	payload, err := json.Marshal(SystemMessageTaskPayload{
		ConversationID: conversationID,
		ActorID:        actorID,
		Body:           body,
	})
	if err != nil {
		return
	}
	_, err = client.Enqueue(ctx, qport.Task{Type: SystemMessageTaskType, Payload: payload},
		qport.EnqueueOption{Queue: "chat", MaxRetry: 3})
	if err != nil {
		slog.WarnContext(ctx, "failed to enqueue system message",
			"conversation_id", conversationID, "error", err)
	}
}

// RegisterSystemMessageTask binds the task handler to the provided server.
// The handler posts the system message through the regular post-message use
// case, which is what advances the latest-message pointer and updated_at.
func RegisterSystemMessageTask(srv qport.Server, pool *pgxpool.Pool) {
	srv.Register(SystemMessageTaskType, func(ctx context.Context, t qport.Task) error {
		var p SystemMessageTaskPayload
		if err := json.Unmarshal(t.Payload, &p); err != nil {
			// malformed payload: do not retry indefinitely
			return err
		}

		repo := repoAdapter.NewPgChatRepository(pool)
		uc := usecase.NewPostMessageUseCase(repo)

		body := p.Body
		in := usecase.PostMessageInput{
			ConversationID: p.ConversationID,
			SenderID:       p.ActorID,
			Body:           &body,
			MsgType:        chat.MessageTypeSystem,
		}

		// bound each task execution against a stuck database
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()

		if _, err := uc.Execute(ctx, in); err != nil {
			slog.ErrorContext(ctx, "system message task failed",
				"conversation_id", p.ConversationID, "error", err)
			return err
		}
		return nil
	})
}
