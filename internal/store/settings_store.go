package store

import (
	"context"
	"database/sql"
	"fmt"
)

const defaultsLoadedKey = "defaults_loaded"

// SettingsStore keeps small string flags in SQLite.
type SettingsStore struct {
	db *sql.DB
}

func NewSettingsStore(db *sql.DB) *SettingsStore {
	return &SettingsStore{db: db}
}

// Get returns the value for key and whether it was set.
func (s *SettingsStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM settings WHERE key = ?
	`, key).Scan(&value)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get setting %s: %w", key, err)
	}

	return value, true, nil
}

func (s *SettingsStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// DefaultsLoaded reports whether starter content has been seeded.
func (s *SettingsStore) DefaultsLoaded(ctx context.Context) (bool, error) {
	v, ok, err := s.Get(ctx, defaultsLoadedKey)
	if err != nil {
		return false, err
	}
	return ok && v == "true", nil
}

func (s *SettingsStore) MarkDefaultsLoaded(ctx context.Context) error {
	return s.Set(ctx, defaultsLoadedKey, "true")
}
