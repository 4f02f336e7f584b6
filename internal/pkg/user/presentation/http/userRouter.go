package http

import (
	"go-confab/internal/infrastructure/auth"
	"go-confab/internal/pkg/user/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterPublicRoutes registers the unauthenticated user endpoints
// (registration and login) under the given router group.
func RegisterPublicRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, authn *auth.Authenticator) {
	registerCtl := controller.NewRegisterUserController(pool, authn)
	loginCtl := controller.NewLoginController(pool, authn)

	// POST /api/v1/user -> register a new user
	g.POST("/user", registerCtl.Handle())

	// POST /api/v1/user/login -> authenticate and get a token
	g.POST("/user/login", loginCtl.Handle())
}

// RegisterRoutes registers user endpoints that require authentication.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool) {
	searchCtl := controller.NewSearchUsersController(pool)

	// GET /api/v1/user?search= -> find users to start a chat with
	g.GET("/user", searchCtl.Handle())
}
