package http

import (
	cacheport "go-confab/internal/infrastructure/cache/port"
	qport "go-confab/internal/infrastructure/queue/port"
	"go-confab/internal/pkg/chat/presentation/controller"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegisterRoutes registers chat-related HTTP endpoints under the given router group.
// It constructs per-endpoint controllers and binds them directly to routes.
// The group is expected to carry the auth middleware already.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, cache cacheport.Cache, client qport.Client) {
	resolveCtl := controller.NewResolveDirectChatController(pool, cache)
	listCtl := controller.NewListChatsController(pool)
	createGroupCtl := controller.NewCreateGroupChatController(pool)
	renameCtl := controller.NewRenameGroupController(pool, client)
	addCtl := controller.NewAddMemberController(pool, client)
	removeCtl := controller.NewRemoveMemberController(pool, client)
	postMsgCtl := controller.NewPostMessageController(pool)
	getMsgCtl := controller.NewGetMessagesController(pool)

	// POST /api/v1/chat -> find or create a direct chat
	g.POST("/chat", resolveCtl.Handle())

	// GET /api/v1/chat -> list the acting user's chats
	g.GET("/chat", listCtl.Handle())

	// POST /api/v1/chat/group -> create a group chat
	g.POST("/chat/group", createGroupCtl.Handle())

	// PUT /api/v1/chat/group/rename -> rename a group chat
	g.PUT("/chat/group/rename", renameCtl.Handle())

	// PUT /api/v1/chat/group/add -> add a member to a group chat
	g.PUT("/chat/group/add", addCtl.Handle())

	// PUT /api/v1/chat/group/remove -> remove a member from a group chat
	g.PUT("/chat/group/remove", removeCtl.Handle())

	// POST /api/v1/chat/:chatId/messages -> post a message into a chat
	g.POST("/chat/:chatId/messages", postMsgCtl.Handle())

	// GET /api/v1/chat/:chatId/messages -> fetch messages by chat id
	g.GET("/chat/:chatId/messages", getMsgCtl.Handle())
}
