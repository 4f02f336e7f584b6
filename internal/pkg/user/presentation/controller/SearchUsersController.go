package controller

import (
	"context"
	"errors"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	"go-confab/internal/pkg/user/application/usecase"
	"go-confab/internal/pkg/user/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchUsersController handles the user search endpoint (one controller per endpoint)
type SearchUsersController struct {
	UC *usecase.SearchUsersUseCase
}

func NewSearchUsersController(pool *pgxpool.Pool) *SearchUsersController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewSearchUsersUseCase(repo)
	return &SearchUsersController{UC: uc}
}

func (h *SearchUsersController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.SearchUsersInput{
			ActorID: auth.UserID(c),
			Query:   c.Query("search"),
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		views, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"users": views,
			"count": len(views),
		})
	}
}
