// Package storage persists chat and comment history to SQLite. Queue and
// default-track state are deliberately not stored; they are rebuilt from
// live traffic after a restart.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Message is one persisted chat or comment line.
type Message struct {
	ID        int64  `json:"id"`
	Kind      string `json:"kind"` // "chat" or "comment"
	Body      string `json:"body"`
	CreatedAt int64  `json:"createdAt"` // unix millis
}

// DB wraps the SQLite handle.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens or creates the database under dataDir.
func Open(dataDir string) (*DB, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	dbPath := filepath.Join(dataDir, "queuecast.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("configure database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS messages (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			kind       TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_messages_created ON messages(created_at);
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &DB{db: db, path: dbPath}, nil
}

// Close closes the underlying handle.
func (d *DB) Close() error {
	return d.db.Close()
}

// InsertMessage stores one line, stamped now.
func (d *DB) InsertMessage(kind, body string) error {
	_, err := d.db.Exec(
		`INSERT INTO messages (kind, body, created_at) VALUES (?, ?, ?)`,
		kind, body, time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

// RecentMessages returns up to limit lines, oldest first.
func (d *DB) RecentMessages(limit int) ([]Message, error) {
	rows, err := d.db.Query(
		`SELECT id, kind, body, created_at FROM messages ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Kind, &m.Body, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Reverse to oldest-first for display.
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}
