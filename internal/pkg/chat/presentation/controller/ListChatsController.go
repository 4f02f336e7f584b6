package controller

import (
	"context"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ListChatsController handles the chat list endpoint (one controller per endpoint)
type ListChatsController struct {
	UC *usecase.ListChatsUseCase
}

func NewListChatsController(pool *pgxpool.Pool) *ListChatsController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewListChatsUseCase(repo)
	return &ListChatsController{UC: uc}
}

// Handle returns the acting user's conversations, most recently active first.
func (h *ListChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.ListChatsInput{ActorID: auth.UserID(c)}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		views, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"chats": views,
			"count": len(views),
		})
	}
}
