// Package hub fans state-change events out to every connected browser client.
//
// Publishers never block on a slow consumer: each client owns a buffered send
// channel drained by its write pump, and a client that falls behind or
// disconnects is dropped without affecting delivery to the others.
package hub

import (
	"log"
	"sync"
)

// Event kinds pushed to browser clients. Mirrored in the player page JS —
// keep both in sync.
const (
	EventInitState            = "init-state"
	EventChatMessage          = "chat-message"
	EventFlowComment          = "flow-comment"
	EventAddQueue             = "add-queue"
	EventUpdateDefault        = "update-default"
	EventSearchResults        = "search-results"
	EventSearchResultsDefault = "search-results-for-default"
)

// Event is the JSON envelope for every socket message, both directions.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// Hub is the connected-client registry.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// New creates an empty hub.
func New() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Publish delivers ev to every currently connected client. Events published
// from one goroutine reach each client in publish order; a client whose
// buffer is full is disconnected rather than allowed to stall the rest.
// sendBuffer is therefore the effective drop threshold: a client that falls
// sendBuffer events behind is dropped immediately, without waiting out the
// write pump's writeWait deadline. It reconnects and resnapshots.
func (h *Hub) Publish(ev Event) {
	h.mu.RLock()
	stalled := h.deliverLocked(ev)
	h.mu.RUnlock()

	for _, c := range stalled {
		log.Printf("HUB: dropping stalled client %s", c.ID)
		c.Close()
	}
}

func (h *Hub) deliverLocked(ev Event) []*Client {
	var stalled []*Client
	for c := range h.clients {
		select {
		case c.send <- ev:
		default:
			stalled = append(stalled, c)
		}
	}
	return stalled
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	n := len(h.clients)
	h.mu.RUnlock()
	return n
}

func (h *Hub) add(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	log.Printf("HUB: client %s connected (%d total)", c.ID, n)
}

// remove detaches a client and closes its send channel. Closing under the
// write lock means no publish or unicast can be mid-send on that channel;
// in-flight publishes to other clients are unaffected. Safe to call twice.
func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	_, present := h.clients[c]
	if present {
		delete(h.clients, c)
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if present {
		log.Printf("HUB: client %s disconnected (%d total)", c.ID, n)
	}
}
