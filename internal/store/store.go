// Package store persists generated playlists and assembly reports to SQLite
// for the history command.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"vibedj/internal/shared"
)

// Entry is one recorded generation or assembly.
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`  // "generate" or "assemble"
	Label     string    `json:"label"` // vibe text or playlist name
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryStore records request outcomes. Writes are best-effort from the
// caller's perspective; a failed save never fails a request.
type HistoryStore struct {
	db *sql.DB
}

// NewHistoryStore wraps an open database. Schema is managed by
// [shared.RunMigrations], which callers run before first use.
func NewHistoryStore(db *sql.DB) *HistoryStore {
	return &HistoryStore{db: db}
}

// Save serializes the payload and inserts a history row, returning the row ID.
func (s *HistoryStore) Save(kind, label string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal payload: %w", err)
	}

	id := shared.GenerateID()
	_, err = s.db.Exec(
		"INSERT INTO history (id, kind, label, payload) VALUES (?, ?, ?, ?)",
		id, kind, label, string(data),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert history row: %w", err)
	}

	return id, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// defaults to 20.
func (s *HistoryStore) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT id, kind, label, payload, created_at FROM history ORDER BY created_at DESC, id LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Label, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
