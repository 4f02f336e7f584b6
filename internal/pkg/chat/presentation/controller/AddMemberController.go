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

// AddMemberController handles the add-member endpoint (one controller per endpoint)
type AddMemberController struct {
	UC     *usecase.AddMemberUseCase
	Client qport.Client
}

func NewAddMemberController(pool *pgxpool.Pool, client qport.Client) *AddMemberController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewAddMemberUseCase(repo)
	return &AddMemberController{UC: uc, Client: client}
}

type memberRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}

// Handle adds a user to a group conversation.
func (h *AddMemberController) Handle() gin.HandlerFunc {
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
		in := usecase.AddMemberInput{
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

		task.EnqueueSystemMessage(ctx, h.Client, view.ID, actor, "a member was added to the group")

		c.JSON(http.StatusOK, view)
	}
}
