package controller

import (
	"context"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CreateGroupChatController handles the group creation endpoint
// (one controller per endpoint)
type CreateGroupChatController struct {
	UC *usecase.CreateGroupChatUseCase
}

func NewCreateGroupChatController(pool *pgxpool.Pool) *CreateGroupChatController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewCreateGroupChatUseCase(repo)
	return &CreateGroupChatController{UC: uc}
}

type createGroupChatRequest struct {
	Name    string   `json:"name" binding:"required"`
	UserIDs []string `json:"user_ids" binding:"required"`
}

// Handle creates a group conversation with the acting user as admin.
func (h *CreateGroupChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createGroupChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and user_ids are required"})
			return
		}
		for _, id := range req.UserIDs {
			if err := uuid.Validate(id); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "user_ids must be valid uuids"})
				return
			}
		}

		in := usecase.CreateGroupChatInput{
			ActorID:   auth.UserID(c),
			MemberIDs: req.UserIDs,
			Name:      req.Name,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		view, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, view)
	}
}
