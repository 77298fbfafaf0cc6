package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"devlinker/backend/internal/storage"
)

// ListNotifications returns the caller's notifications, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	user := currentUser(c)

	notifications, err := h.Store.ListNotificationsForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load notifications"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": notifications})
}

// MarkNotificationRead marks one of the caller's notifications as read.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	user := currentUser(c)
	notificationID := c.Param("id")

	err := h.Store.MarkNotificationRead(notificationID, user.ID)
	if errors.Is(err, storage.ErrNotificationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Notification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}
