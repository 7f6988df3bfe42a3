package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrSlotNotFound = errors.New("slot not found")

func (s *Store) GetSlot(name string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE name = ?`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("get slot %q: %w", name, ErrSlotNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get slot %q: %w", name, err)
	}
	return value, nil
}

func (s *Store) PutSlot(name, value string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		name, value, now,
	)
	if err != nil {
		return fmt.Errorf("put slot %q: %w", name, err)
	}
	return nil
}
