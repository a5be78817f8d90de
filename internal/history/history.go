// Package history keeps the recent chat and comment lines so a reloading
// browser regains context. Lines live in a fixed ring buffer backed by
// SQLite; the ring serves reads, the database survives restarts.
package history

import (
	"log"

	"github.com/queuecast/queuecast/internal/storage"
	"github.com/queuecast/queuecast/internal/util"
)

// DefaultWindow is the ring capacity and the default /api/history size.
const DefaultWindow = 100

// Store records lines and serves the recent window.
type Store struct {
	ring *util.RingBuffer[storage.Message]
	db   *storage.DB // nil: memory only
}

// New builds a store warmed from the database. db may be nil for a
// memory-only store.
func New(db *storage.DB) *Store {
	s := &Store{
		ring: util.NewRingBuffer[storage.Message](DefaultWindow),
		db:   db,
	}
	if db != nil {
		msgs, err := db.RecentMessages(DefaultWindow)
		if err != nil {
			log.Printf("HISTORY: warm-up load failed: %v", err)
			return s
		}
		for _, m := range msgs {
			s.ring.Push(m)
		}
	}
	return s
}

// Record stores one line. Persistence failures are logged, never surfaced:
// history must not fail the request that produced the line.
func (s *Store) Record(kind, body string) {
	s.ring.Push(storage.Message{Kind: kind, Body: body})
	if s.db != nil {
		if err := s.db.InsertMessage(kind, body); err != nil {
			log.Printf("HISTORY: persist failed: %v", err)
		}
	}
}

// Recent returns up to limit lines, oldest first.
func (s *Store) Recent(limit int) []storage.Message {
	if limit <= 0 || limit > DefaultWindow {
		limit = DefaultWindow
	}
	return s.ring.Recent(limit)
}
