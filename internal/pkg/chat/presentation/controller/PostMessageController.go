package controller

import (
	"context"
	"net/http"

	"go-confab/internal/infrastructure/auth"
	chat "go-confab/internal/pkg/chat/application/domain"
	"go-confab/internal/pkg/chat/application/usecase"
	"go-confab/internal/pkg/chat/persistence/repository/adapter"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostMessageController handles the post-message endpoint (one controller per endpoint)
type PostMessageController struct {
	UC *usecase.PostMessageUseCase
}

func NewPostMessageController(pool *pgxpool.Pool) *PostMessageController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewPostMessageUseCase(repo)
	return &PostMessageController{UC: uc}
}

// postMessageRequest is the DTO for the HTTP request body
type postMessageRequest struct {
	Body          *string `json:"body"`
	MsgType       *int16  `json:"msg_type"`
	AttachmentURL *string `json:"attachment_url"`
}

// Handle posts a message into a conversation on behalf of the acting user.
func (h *PostMessageController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		chatID := c.Param("chatId")
		if uuid.Validate(chatID) != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "chatId must be a valid uuid"})
			return
		}

		var req postMessageRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		msgType := chat.MessageTypeText
		if req.MsgType != nil {
			msgType = chat.MessageType(*req.MsgType)
		}

		in := usecase.PostMessageInput{
			ConversationID: chatID,
			SenderID:       auth.UserID(c),
			Body:           req.Body,
			MsgType:        msgType,
			AttachmentURL:  req.AttachmentURL,
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		msg, err := h.UC.Execute(ctx, in)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"id":              msg.ID,
			"conversation_id": msg.ConversationID,
			"sender_id":       msg.SenderID,
			"created_at":      msg.CreatedAt,
			"body":            msg.Body,
			"msg_type":        msg.MsgType,
			"attachment_url":  msg.AttachmentURL,
		})
	}
}
