package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// CollectionStore persists each kitchen collection as one JSON document per
// row in SQLite.
type CollectionStore struct {
	db *sql.DB
}

func NewCollectionStore(db *sql.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Save upserts the serialized collection.
func (s *CollectionStore) Save(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO collections (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, name, string(data))
	if err != nil {
		return fmt.Errorf("failed to save collection %s: %w", name, err)
	}
	return nil
}

// Load returns every stored collection keyed by name.
func (s *CollectionStore) Load(ctx context.Context) (map[string][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, data FROM collections ORDER BY name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load collections: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close collection rows", "error", err)
		}
	}()

	out := make(map[string][]byte)
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		out[name] = []byte(data)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collections: %w", err)
	}

	return out, nil
}
