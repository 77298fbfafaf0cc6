package chathub

import (
	"log"
	"strings"
	"time"

	"devlinker/backend/internal/models"
)

// Store is the persistence surface the gateway needs. *storage.Service
// satisfies it; tests substitute a mock.
type Store interface {
	IsAcceptedPair(userA, userB string) (bool, error)
	GetOrCreateConversation(userA, userB string) (*models.Conversation, error)
	AppendMessage(conversationID, senderID, text string) (*models.Message, error)
	SetUserOnline(userID string) error
	SetUserOffline(userID string) error
}

// DropHook observes messages the gateway silently discards (unauthorized
// senders, persistence failures). Diagnostic only: clients never see drops.
type DropHook func(senderID, targetUserID, reason string)

// Gateway is the realtime core. Each handler is invoked from the calling
// connection's read pump goroutine, so a slow store call stalls only that
// connection's event stream, never the whole process.
type Gateway struct {
	store Store
	rooms *RoomRegistry

	// DropHook, when set, is called on every silent drop.
	DropHook DropHook
}

func NewGateway(store Store, rooms *RoomRegistry) *Gateway {
	return &Gateway{store: store, rooms: rooms}
}

// Rooms exposes the registry so the HTTP send path can fan out through the
// same room groups as socket sends.
func (g *Gateway) Rooms() *RoomRegistry { return g.rooms }

// HandleJoin subscribes the connection to the room derived from the supplied
// pair. Joins are deliberately unauthorized: a room membership grants nothing
// by itself, because every send is checked against the relationship store.
func (g *Gateway) HandleJoin(c Client, ev models.ClientEvent) {
	if ev.UserID == "" || ev.TargetUserID == "" {
		return
	}

	c.SetUserID(ev.UserID)
	g.rooms.Join(RoomID(ev.UserID, ev.TargetUserID), c)

	if err := g.store.SetUserOnline(ev.UserID); err != nil {
		log.Printf("WARNING: failed to record presence for %s: %v", ev.UserID, err)
	}
}

// HandleSend runs the full send pipeline: validate, authorize, persist, fan
// out. Every failure mode is a silent drop on this channel; the HTTP facade
// is the path that surfaces errors.
func (g *Gateway) HandleSend(ev models.ClientEvent) {
	text := strings.TrimSpace(ev.Text)
	if ev.SenderID == "" || ev.TargetUserID == "" || text == "" {
		return
	}

	ok, err := g.store.IsAcceptedPair(ev.SenderID, ev.TargetUserID)
	if err != nil {
		log.Printf("ERROR: connection check failed for send from %s: %v", ev.SenderID, err)
		g.drop(ev, "store_error")
		return
	}
	if !ok {
		g.drop(ev, "not_connected")
		return
	}

	conv, err := g.store.GetOrCreateConversation(ev.SenderID, ev.TargetUserID)
	if err != nil {
		log.Printf("ERROR: failed to load conversation for %s -> %s: %v", ev.SenderID, ev.TargetUserID, err)
		g.drop(ev, "store_error")
		return
	}

	msg, err := g.store.AppendMessage(conv.ID, ev.SenderID, text)
	if err != nil {
		log.Printf("ERROR: failed to persist message in conversation %s: %v", conv.ID, err)
		g.drop(ev, "store_error")
		return
	}

	g.Broadcast(ev.SenderID, ev.TargetUserID, conv.ID, msg)
}

// Broadcast emits a messageReceived event for an already persisted message to
// everyone joined to the pair's room, the sender included. Shared by the
// socket send path and the HTTP facade.
func (g *Gateway) Broadcast(senderID, targetUserID, conversationID string, msg *models.Message) {
	g.rooms.Broadcast(RoomID(senderID, targetUserID), models.ServerEvent{
		Type:           models.EventMessageReceived,
		ConversationID: conversationID,
		SenderID:       senderID,
		TargetUserID:   targetUserID,
		Message: models.MessagePayload{
			ID:        msg.ID,
			SenderID:  msg.SenderID,
			Text:      msg.Text,
			CreatedAt: msg.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	})
}

// HandleDisconnect drops the connection from its room and clears presence.
func (g *Gateway) HandleDisconnect(c Client) {
	g.rooms.Leave(c)

	if userID := c.GetUserID(); userID != "" {
		if err := g.store.SetUserOffline(userID); err != nil {
			log.Printf("WARNING: failed to clear presence for %s: %v", userID, err)
		}
	}
}

func (g *Gateway) drop(ev models.ClientEvent, reason string) {
	if g.DropHook != nil {
		g.DropHook(ev.SenderID, ev.TargetUserID, reason)
	}
}
