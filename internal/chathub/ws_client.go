package chathub

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"devlinker/backend/internal/models"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// WebSocketClient implements the Client interface on top of a gorilla
// websocket connection.
type WebSocketClient struct {
	Gateway *Gateway
	Conn    *websocket.Conn
	Send    chan models.ServerEvent

	userID    string
	closeOnce sync.Once
}

func (c *WebSocketClient) GetUserID() string { return c.userID }

func (c *WebSocketClient) SetUserID(id string) { c.userID = id }

func (c *WebSocketClient) GetSendChannel() chan<- models.ServerEvent { return c.Send }

// Run starts the read and write pumps for the connection.
func (c *WebSocketClient) Run() {
	go c.writePump()
	go c.readPump()
}

// Close closes the Send channel, which stops writePump. readPump stops on
// its own once the connection is closed in writePump's defer. Closing is
// idempotent so a repeated eviction can never double-close the channel.
func (c *WebSocketClient) Close() {
	c.closeOnce.Do(func() {
		close(c.Send)
	})
}

// readPump decodes client events and dispatches them to the gateway. Each
// event is handled on this goroutine, so store latency for one connection
// never blocks another connection's events.
func (c *WebSocketClient) readPump() {
	defer func() {
		c.Gateway.HandleDisconnect(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("error reading message: %v", err)
			}
			break
		}

		var ev models.ClientEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			log.Printf("WARNING: dropping malformed event: %v", err)
			continue
		}

		switch ev.Type {
		case models.EventJoinChat:
			c.Gateway.HandleJoin(c, ev)
		case models.EventSendMessage:
			c.Gateway.HandleSend(ev)
		default:
			// Unknown event kinds are ignored; the socket has no error
			// back-channel tied to a single event.
		}
	}
}

// writePump drains the Send channel into the websocket, batching whatever
// has queued up behind the first event into one writer, and pings the peer
// to keep the read deadline alive.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Channel closed by the gateway side.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			data, err := json.Marshal(event)
			if err != nil {
				// Deliberately not naming the user here: userID belongs to
				// the read pump's goroutine.
				log.Printf("ERROR: failed to encode outbound event: %v", err)
				continue
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(data)

			n := len(c.Send)
			for i := 0; i < n; i++ {
				extra, _ := json.Marshal(<-c.Send)
				w.Write(extra)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
