package controller

import (
	"context"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	cacheport "go-confab/internal/infrastructure/cache/port"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResolveDirectChatController handles the direct-chat resolve endpoint
// (one controller per endpoint)
type ResolveDirectChatController struct {
	UC *usecase.ResolveDirectChatUseCase
}

func NewResolveDirectChatController(pool *pgxpool.Pool, cache cacheport.Cache) *ResolveDirectChatController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewResolveDirectChatUseCase(repo, cache)
	return &ResolveDirectChatController{UC: uc}
}

type resolveDirectChatRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

// Handle finds or creates the one-on-one conversation between the acting
// user and the requested target.
func (h *ResolveDirectChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resolveDirectChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
			return
		}
		if err := uuid.Validate(req.UserID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be a valid uuid"})
			return
		}

		in := usecase.ResolveDirectChatInput{ActorID: auth.UserID(c), TargetID: req.UserID}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		view, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, view)
	}
}
