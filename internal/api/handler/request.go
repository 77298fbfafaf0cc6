package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"devlinker/backend/internal/models"
)

// SendRequest handles POST /request/send/:status/:toUserId. A sender may
// mark another user as interested or ignored, and may toggle between the
// two; a pending request in the opposite direction blocks a new one.
func (h *Handler) SendRequest(c *gin.Context) {
	user := currentUser(c)
	toUserID := c.Param("toUserId")
	status := c.Param("status")

	if !models.IsSendableStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid status type: " + status})
		return
	}

	toUser, err := h.Store.GetUserByID(toUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
		return
	}
	if toUser == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found!"})
		return
	}

	// Toggling interested <-> ignored reuses the same-direction record.
	existing, err := h.Store.FindRequestBetween(user.ID, toUserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
		return
	}
	if existing != nil {
		if existing.Status == status {
			c.JSON(http.StatusOK, gin.H{
				"message": "Connection request already " + status,
				"data":    existing,
			})
			return
		}
		existing.Status = status
		if err := h.Store.SaveRequest(existing); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
			return
		}
		if status == models.StatusInterested {
			h.notifyRequest(user, existing)
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "Connection request updated to " + status,
			"data":    existing,
		})
		return
	}

	opposite, err := h.Store.FindRequestBetween(toUserID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
		return
	}
	if opposite != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Connection request already exists!"})
		return
	}

	req := &models.ConnectionRequest{
		FromUserID: user.ID,
		ToUserID:   toUserID,
		Status:     status,
	}
	if err := h.Store.CreateRequest(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
		return
	}

	if status == models.StatusInterested {
		h.notifyRequest(user, req)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": user.FullName + " is " + status + " in " + toUser.FullName,
		"data":    req,
	})
}

// ReviewRequest handles POST /request/review/:status/:requestId. Only the
// recipient of an interested request may accept or reject it.
func (h *Handler) ReviewRequest(c *gin.Context) {
	user := currentUser(c)
	requestID := c.Param("requestId")
	status := c.Param("status")

	if !models.IsReviewableStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Status not allowed!"})
		return
	}

	req, err := h.Store.FindRequestForReview(requestID, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
		return
	}
	if req == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Connection request not found"})
		return
	}

	req.Status = status
	if err := h.Store.SaveRequest(req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Request failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Connection request " + status, "data": req})
}

// ListReceivedRequests returns pending interested requests addressed to the
// caller.
func (h *Handler) ListReceivedRequests(c *gin.Context) {
	user := currentUser(c)

	reqs, err := h.Store.ListPendingRequestsForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load requests"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reqs})
}

// ListConnections returns everyone the caller has an accepted connection with.
func (h *Handler) ListConnections(c *gin.Context) {
	user := currentUser(c)

	users, err := h.Store.ListConnectionsForUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to load connections"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// notifyRequest writes the "new connection request" notification as a
// fire-and-forget side effect. A failure here must never break the request
// flow, so it runs on its own goroutine and is only logged.
func (h *Handler) notifyRequest(from *models.User, req *models.ConnectionRequest) {
	meta, _ := json.Marshal(map[string]string{
		"fromUserId": req.FromUserID,
		"requestId":  req.ID,
	})

	go func() {
		n := &models.Notification{
			UserID:      req.ToUserID,
			Type:        "connection",
			Title:       "New connection request",
			Description: from.FullName + " is interested in connecting.",
			Metadata:    string(meta),
		}
		if err := h.Store.SaveNotification(n); err != nil {
			log.Printf("WARNING: failed to save notification for %s: %v", req.ToUserID, err)
		}
	}()
}
