package controller

import (
	"context"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	qport "go-confab/internal/infrastructure/queue/port"
	"go-confab/internal/pkg/chat/application/task"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RemoveMemberController handles the remove-member endpoint
// (one controller per endpoint)
type RemoveMemberController struct {
	UC     *usecase.RemoveMemberUseCase
	Client qport.Client
}

func NewRemoveMemberController(pool *pgxpool.Pool, client qport.Client) *RemoveMemberController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewRemoveMemberUseCase(repo)
	return &RemoveMemberController{UC: uc, Client: client}
}

// Handle removes a user from a group conversation.
func (h *RemoveMemberController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req memberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id and user_id are required"})
			return
		}
		if uuid.Validate(req.ChatID) != nil || uuid.Validate(req.UserID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id and user_id must be valid uuids"})
			return
		}

		actor := auth.UserID(c)
		in := usecase.RemoveMemberInput{
			ActorID:        actor,
			ConversationID: req.ChatID,
			UserID:         req.UserID,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		view, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		// skip the system message when the actor just left the group
		if actor != req.UserID {
			task.EnqueueSystemMessage(ctx, h.Client, view.ID, actor, "a member was removed from the group")
		}

		c.JSON(http.StatusOK, view)
	}
}
