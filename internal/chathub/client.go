package chathub

import "devlinker/backend/internal/models"

// Client is the interface for one live connection to the gateway. It
// abstracts the underlying transport so the gateway and the room registry
// can be exercised in tests without a real websocket.
type Client interface {
	// GetUserID returns the user id the connection last joined a room as,
	// or "" before the first join.
	GetUserID() string
	// SetUserID records the user id asserted by a join event.
	SetUserID(string)

	// GetSendChannel returns the channel the gateway writes outbound events
	// to. The write pump drains it.
	GetSendChannel() chan<- models.ServerEvent

	// Run starts the connection's read and write pumps.
	Run()
	// Close shuts down the outbound channel, which stops the write pump.
	Close()
}
