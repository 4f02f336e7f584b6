package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	"go-confab/internal/pkg/user/application/usecase"
	"go-confab/internal/pkg/user/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LoginController handles the login endpoint (one controller per endpoint)
type LoginController struct {
	UC *usecase.AuthenticateUserUseCase
}

func NewLoginController(pool *pgxpool.Pool, authn *auth.Authenticator) *LoginController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewAuthenticateUserUseCase(repo, authn)
	return &LoginController{UC: uc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *LoginController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
			return
		}

		in := usecase.AuthenticateUserInput{Email: req.Email, Password: req.Password}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		res, err := h.UC.Execute(ctx, in)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			case errors.Is(err, usecase.ErrPersistence):
				slog.ErrorContext(ctx, "login failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to log in"})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"user":  res.User,
			"token": res.Token,
		})
	}
}
