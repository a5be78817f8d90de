// Package player owns the shared playback state: the single default track
// every browser falls back to when the queue is empty.
package player

import (
	"log"
	"sync"

	"github.com/queuecast/queuecast/internal/hub"
)

// FallbackVideoID seeds the default track when no configuration overrides it.
const FallbackVideoID = "M7lc1UVf-VE"

// Publisher is the broadcast side of the hub.
type Publisher interface {
	Publish(hub.Event)
}

// UpdateDefault is the payload of an update-default broadcast.
type UpdateDefault struct {
	VideoID string `json:"videoId"`
}

// State holds the process-wide default track. Exactly one exists per process;
// handlers receive it by handle. SetDefault is the only mutator and always
// broadcasts in the same call, so state and observers cannot diverge.
type State struct {
	mu        sync.Mutex
	defaultID string
	pub       Publisher
}

// New creates the state seeded with initial (FallbackVideoID when empty).
func New(initial string, pub Publisher) *State {
	if initial == "" {
		initial = FallbackVideoID
	}
	return &State{defaultID: initial, pub: pub}
}

// Default returns the current default track id.
func (s *State) Default() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaultID
}

// SetDefault replaces the default track and broadcasts update-default before
// returning. The mutation is a single non-suspending step; concurrent setters
// resolve last-write-wins in arrival order.
func (s *State) SetDefault(id string) {
	s.mu.Lock()
	s.defaultID = id
	// Publish under the same lock: the broadcast order always matches the
	// mutation order. Publish never blocks, so nothing suspends in here.
	s.pub.Publish(hub.Event{Type: hub.EventUpdateDefault, Payload: UpdateDefault{VideoID: id}})
	s.mu.Unlock()
	log.Printf("PLAYER: default track -> %s", id)
}
