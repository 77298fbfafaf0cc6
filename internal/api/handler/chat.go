package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"devlinker/backend/internal/storage"
)

type sendMessageRequest struct {
	Text string `json:"text"`
}

// ListConversations returns the caller's conversation summaries, most
// recently active first.
func (h *Handler) ListConversations(c *gin.Context) {
	user := currentUser(c)

	summaries, err := h.Store.ListConversationsForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load chats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summaries})
}

// GetConversation fetches (or lazily creates) the conversation with the
// target user and returns the full transcript. Unlike the socket path, a
// missing connection is surfaced as 403 here.
func (h *Handler) GetConversation(c *gin.Context) {
	user := currentUser(c)
	targetUserID := c.Param("targetUserId")

	allowed, err := h.Store.IsAcceptedPair(user.ID, targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load chat"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only chat with your connections"})
		return
	}

	conv, err := h.Store.GetConversationWithMessages(user.ID, targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load chat"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": conv})
}

// SendMessage is the synchronous HTTP alternative to the socket send path:
// same authorization and persistence, but every failure is returned to the
// caller. On success the persisted message is re-emitted to the live socket
// room best-effort, so open connections see it in real time.
func (h *Handler) SendMessage(c *gin.Context) {
	user := currentUser(c)
	targetUserID := c.Param("targetUserId")

	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message text is required"})
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Message text is required"})
		return
	}

	allowed, err := h.Store.IsAcceptedPair(user.ID, targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}
	if !allowed {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only chat with your connections"})
		return
	}

	conv, err := h.Store.GetOrCreateConversation(user.ID, targetUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}

	msg, err := h.Store.AppendMessage(conv.ID, user.ID, text)
	if errors.Is(err, storage.ErrConversationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Chat no longer exists"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to send message"})
		return
	}

	// Persistence is the source of truth; live fan-out is a convenience and
	// never fails the request.
	if h.Gateway != nil {
		h.Gateway.Broadcast(user.ID, targetUserID, conv.ID, msg)
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"chatId":  conv.ID,
		"message": msg,
	}})
}
