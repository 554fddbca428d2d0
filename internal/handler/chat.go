package handler

import (
	"net/http"

	"propertychat/internal/model"
	"propertychat/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler handles chat and session HTTP requests
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chat *service.ChatService) *ChatHandler {
	return &ChatHandler{
		chat: chat,
	}
}

// Send handles POST /api/chat
func (h *ChatHandler) Send(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request: message and sessionId are required"})
		return
	}

	resp, err := h.chat.ProcessMessage(c.Request.Context(), service.ChatInput{
		SessionID:    req.SessionID,
		Message:      req.Message,
		UserLocation: req.UserLocation,
		IPAddress:    c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		respondError(c, err, "Failed to process chat message")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// History handles GET /api/chat/:sessionId
func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.chat.History(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "Failed to fetch chat messages")
		return
	}

	c.JSON(http.StatusOK, messages)
}

// Session handles GET /api/sessions/:sessionId
func (h *ChatHandler) Session(c *gin.Context) {
	sess, err := h.chat.Session(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		respondError(c, err, "Failed to fetch session")
		return
	}

	c.JSON(http.StatusOK, sess)
}
