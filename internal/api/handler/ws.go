package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"devlinker/backend/internal/chathub"
	"devlinker/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allows connections from any origin. Tighten for production!
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and hands the connection to the
// gateway. The handshake itself is unauthenticated: a connection asserts its
// identity per event, and access control is enforced when a send touches the
// relationship store, not at join time.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Failed to upgrade connection"})
		return
	}

	client := &chathub.WebSocketClient{
		Gateway: h.Gateway,
		Conn:    conn,
		Send:    make(chan models.ServerEvent, 256),
	}
	client.Run()
}
