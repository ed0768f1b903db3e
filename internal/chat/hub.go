// Package chat implements the shared real-time broadcaster. Connections
// join a process-wide set and every chat message fans out to the current
// members, tagged with the sender's username.
package chat

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/clinicd/clinicd/internal/protocol"
)

// Member is a connection handle the hub can deliver to. The server's
// session type satisfies it.
type Member interface {
	ID() string
	Send(msg protocol.Message) error
}

// Hub is the set of currently joined connections. All mutation and
// iteration goes through the mutex; sessions never touch the set directly.
type Hub struct {
	mu      sync.RWMutex
	members map[string]Member
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		members: make(map[string]Member),
		log:     log.With().Str("component", "chat").Logger(),
	}
}

// Join adds a member. Joining twice is a no-op.
func (h *Hub) Join(m Member) {
	h.mu.Lock()
	h.members[m.ID()] = m
	h.mu.Unlock()
	h.log.Debug().Str("member", m.ID()).Msg("joined chat")
}

// Leave removes a member by ID. Removing an absent member is a no-op, so
// the disconnect hook can call this unconditionally.
func (h *Hub) Leave(id string) {
	h.mu.Lock()
	_, present := h.members[id]
	delete(h.members, id)
	h.mu.Unlock()
	if present {
		h.log.Debug().Str("member", id).Msg("left chat")
	}
}

// Broadcast delivers the message to every joined member, including the
// sender if joined. Delivery failures drop silently; the failing member's
// own read loop notices the dead connection and cleans up.
func (h *Hub) Broadcast(msg protocol.Message) {
	h.mu.RLock()
	members := make([]Member, 0, len(h.members))
	for _, m := range h.members {
		members = append(members, m)
	}
	h.mu.RUnlock()

	for _, m := range members {
		_ = m.Send(msg)
	}
}

// Count returns the number of joined members.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}
