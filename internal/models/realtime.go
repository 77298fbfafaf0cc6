package models

// Inbound and outbound event kinds on the websocket channel.
const (
	EventJoinChat        = "joinChat"
	EventSendMessage     = "sendMessage"
	EventMessageReceived = "messageReceived"
)

// ClientEvent is the envelope for everything a client sends over the socket.
// joinChat uses UserID/TargetUserID, sendMessage uses SenderID/TargetUserID/Text.
type ClientEvent struct {
	Type         string `json:"type"`
	UserID       string `json:"userId,omitempty"`
	SenderID     string `json:"senderId,omitempty"`
	TargetUserID string `json:"targetUserId,omitempty"`
	Text         string `json:"text,omitempty"`
}

// ServerEvent is broadcast to every connection joined to a room after a
// message has been persisted. The sender receives it too; the echo is the
// only delivery confirmation the socket channel provides.
type ServerEvent struct {
	Type           string         `json:"type"`
	ConversationID string         `json:"conversationId"`
	SenderID       string         `json:"senderId"`
	TargetUserID   string         `json:"targetUserId"`
	Message        MessagePayload `json:"message"`
}

// MessagePayload is the wire shape of a persisted message.
type MessagePayload struct {
	ID        string `json:"id"`
	SenderID  string `json:"senderId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"` // RFC 3339
}
