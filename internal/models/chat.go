package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the persisted, append-only message history between exactly
// two participants. The participant pair is stored normalized (UserAID <
// UserBID) and carries a unique index, so at most one conversation can exist
// per unordered pair even under concurrent lazy creation.
type Conversation struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	UserAID   string    `gorm:"not null;uniqueIndex:idx_conv_pair" json:"-"`
	UserBID   string    `gorm:"not null;uniqueIndex:idx_conv_pair" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Messages     []Message `gorm:"foreignKey:ConversationID" json:"messages"`
	Participants []User    `gorm:"-" json:"participants,omitempty"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return
}

// OtherParticipant returns the participant id that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.UserAID == userID {
		return c.UserBID
	}
	return c.UserAID
}

// NormalizePair returns the two ids in canonical (sorted) order. Both the
// conversation table and the room derivation rely on the same normalization.
func NormalizePair(a, b string) (string, string) {
	if b < a {
		return b, a
	}
	return a, b
}

// Message is a single chat message. ID and CreatedAt are assigned at
// persistence time and are authoritative for ordering within a conversation.
type Message struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	ConversationID string    `gorm:"not null;index:idx_conv_created" json:"conversationId"`
	SenderID       string    `gorm:"not null" json:"senderId"`
	Text           string    `gorm:"type:text;not null" json:"text"`
	CreatedAt      time.Time `gorm:"index:idx_conv_created" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// ConversationSummary is the listing shape for GET /conversations: one row
// per conversation with the other participant and a last-message preview.
type ConversationSummary struct {
	ConversationID      string    `json:"id"`
	OtherUser           *User     `json:"targetUser"`
	OtherUserOnline     bool      `json:"targetUserOnline"`
	LastMessage         string    `json:"lastMessage"`
	LastMessageSenderID string    `json:"lastMessageSenderId"`
	LastMessageAt       time.Time `json:"lastMessageTime"`
}
