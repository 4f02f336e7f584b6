package controller

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go-confab/internal/infrastructure/auth"
	"go-confab/internal/pkg/user/application/usecase"
	"go-confab/internal/pkg/user/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

const requestTimeout = 3 * time.Second

// RegisterUserController handles the sign-up endpoint (one controller per endpoint)
type RegisterUserController struct {
	UC *usecase.RegisterUserUseCase
}

func NewRegisterUserController(pool *pgxpool.Pool, authn *auth.Authenticator) *RegisterUserController {
	repo := adapter.NewPgUserRepository(pool)
	uc := usecase.NewRegisterUserUseCase(repo, authn)
	return &RegisterUserController{UC: uc}
}

type registerUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Pic      string `json:"pic"`
}

func (h *RegisterUserController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and password are required"})
			return
		}

		in := usecase.RegisterUserInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Pic:      req.Pic,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		res, err := h.UC.Execute(ctx, in)
		if err != nil {
			if errors.Is(err, usecase.ErrPersistence) {
				slog.ErrorContext(ctx, "user registration failed", "error", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "unable to register user"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"user":  res.User,
			"token": res.Token,
		})
	}
}
