// internal/handlers/chat.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/retailx/retailx-backend/internal/i18n"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
	}
}

type chatRequest struct {
	Message string `json:"message"`
}

// POST /api/chat/
//
// Every outcome is a {"reply": ...} body so the chat widget can render it.
func (h *ChatHandler) Chat(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req = chatRequest{}
	}

	reply, err := h.chatService.Reply(c.Request.Context(), req.Message)
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"reply": i18n.T(lang, i18n.KeyChatEmpty)})
	case err != nil:
		logrus.WithError(err).Warn("Chat reply failed")
		c.JSON(http.StatusInternalServerError, gin.H{"reply": i18n.T(lang, i18n.KeyChatBusy)})
	default:
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
