package chathub

import (
	"sync"

	"devlinker/backend/internal/models"
)

// RoomRegistry tracks which live connections are joined to which room. It is
// process-local, owned by a gateway instance (never ambient global state),
// and safe for concurrent use. A connection belongs to at most one room at a
// time; joining a second room replaces the first membership.
type RoomRegistry struct {
	mu      sync.RWMutex
	rooms   map[string]map[Client]bool
	current map[Client]string
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:   make(map[string]map[Client]bool),
		current: make(map[Client]string),
	}
}

// Join subscribes the client to roomID, dropping any prior membership.
func (r *RoomRegistry) Join(roomID string, c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.removeLocked(c)

	if r.rooms[roomID] == nil {
		r.rooms[roomID] = make(map[Client]bool)
	}
	r.rooms[roomID][c] = true
	r.current[c] = roomID
}

// Leave removes the client from whatever room it is joined to. Called on
// disconnect so dead connections never linger in a fan-out group.
func (r *RoomRegistry) Leave(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(c)
}

func (r *RoomRegistry) removeLocked(c Client) {
	roomID, ok := r.current[c]
	if !ok {
		return
	}
	delete(r.current, c)
	if members := r.rooms[roomID]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, roomID)
		}
	}
}

// Members returns a snapshot of the clients currently joined to roomID.
// For broadcasting use Broadcast, which keeps delivery and eviction under
// one critical section.
func (r *RoomRegistry) Members(roomID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]Client, 0, len(r.rooms[roomID]))
	for c := range r.rooms[roomID] {
		members = append(members, c)
	}
	return members
}

// Broadcast delivers an event to every member of roomID, including the
// member that produced it. Delivery is non-blocking: a client whose send
// buffer is full is closed and dropped from the registry rather than
// stalling the room. The whole walk holds the write lock so that concurrent
// broadcasts never send on a channel another broadcast is closing; sends
// never block, so the lock is held only briefly.
func (r *RoomRegistry) Broadcast(roomID string, event models.ServerEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for c := range r.rooms[roomID] {
		select {
		case c.GetSendChannel() <- event:
		default:
			r.removeLocked(c)
			c.Close()
		}
	}
}
