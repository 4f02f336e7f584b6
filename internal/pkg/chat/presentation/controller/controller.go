package controller

import (
	"errors"
	"net/http"
	"time"

	"go-confab/internal/pkg/chat/application/usecase"
)

// requestTimeout bounds each store round-trip from the HTTP layer.
const requestTimeout = 3 * time.Second

// statusFor maps use-case error kinds to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, usecase.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}
