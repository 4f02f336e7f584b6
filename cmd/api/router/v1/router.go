package v1

import (
	"go-confab/internal/infrastructure/auth"
	cacheport "go-confab/internal/infrastructure/cache/port"
	qport "go-confab/internal/infrastructure/queue/port"
	chatHandler "go-confab/internal/pkg/chat/presentation/http"
	userHandler "go-confab/internal/pkg/user/presentation/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
// Registration and login are public; everything else sits behind the auth
// middleware, which resolves the acting user from the bearer token.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, authn *auth.Authenticator, cache cacheport.Cache, client qport.Client) {
	v1 := r.Group("/api/v1")

	userHandler.RegisterPublicRoutes(v1, pool, authn)

	authed := v1.Group("")
	authed.Use(auth.Middleware(authn))
	userHandler.RegisterRoutes(authed, pool)
	chatHandler.RegisterRoutes(authed, pool, cache, client)
}
