package controller

import (
	"context"
	"fmt"
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

// RenameGroupController handles the group rename endpoint
// (one controller per endpoint)
type RenameGroupController struct {
	UC     *usecase.RenameGroupUseCase
	Client qport.Client
}

func NewRenameGroupController(pool *pgxpool.Pool, client qport.Client) *RenameGroupController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewRenameGroupUseCase(repo)
	return &RenameGroupController{UC: uc, Client: client}
}

type renameGroupRequest struct {
	ChatID string `json:"chat_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// Handle renames a group conversation and queues a system message noting the change.
func (h *RenameGroupController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req renameGroupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id and name are required"})
			return
		}
		if err := uuid.Validate(req.ChatID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chat_id must be a valid uuid"})
			return
		}

		actor := auth.UserID(c)
		in := usecase.RenameGroupInput{
			ActorID:        actor,
			ConversationID: req.ChatID,
			Name:           req.Name,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		view, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		task.EnqueueSystemMessage(ctx, h.Client, view.ID, actor,
			fmt.Sprintf("group renamed to %q", view.Name))

		c.JSON(http.StatusOK, view)
	}
}
