// Package filestore persists kitchen collections as JSON files in a
// directory, one file per collection. Access is serialized across processes
// with a lock file.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond

	lockName     = ".mealprep.lock"
	settingsName = "settings.json"
	ext          = ".json"
)

type Store struct {
	dir      string
	fileLock *flock.Flock
}

// New creates dir if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{dir: dir, fileLock: flock.New(filepath.Join(dir, lockName))}, nil
}

func (s *Store) acquireLock(ctx context.Context) error {
	for i := 0; i < lockMaxRetries; i++ {
		locked, err := s.fileLock.TryLockContext(ctx, lockRetryDelay)
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if locked {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return fmt.Errorf("failed to acquire lock after %d attempts", lockMaxRetries)
}

func (s *Store) withLock(ctx context.Context, fn func() error) error {
	ctx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.fileLock.Unlock() }()
	return fn()
}

// Save writes the collection atomically through a temp file and rename.
func (s *Store) Save(ctx context.Context, name string, data []byte) error {
	if strings.ContainsAny(name, `/\`) || name == "" {
		return fmt.Errorf("invalid collection name %q", name)
	}
	return s.withLock(ctx, func() error {
		return writeAtomic(filepath.Join(s.dir, name+ext), data)
	})
}

// Load reads every collection file in the directory.
func (s *Store) Load(ctx context.Context) (map[string][]byte, error) {
	out := make(map[string][]byte)
	err := s.withLock(ctx, func() error {
		entries, err := os.ReadDir(s.dir)
		if err != nil {
			return fmt.Errorf("failed to read data directory: %w", err)
		}
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || name == settingsName || !strings.HasSuffix(name, ext) {
				continue
			}
			data, err := os.ReadFile(filepath.Join(s.dir, name))
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			out[strings.TrimSuffix(name, ext)] = data
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// DefaultsLoaded reports whether starter content has been seeded.
func (s *Store) DefaultsLoaded(ctx context.Context) (bool, error) {
	var loaded bool
	err := s.withLock(ctx, func() error {
		settings, err := s.readSettings()
		if err != nil {
			return err
		}
		loaded = settings["defaults_loaded"] == "true"
		return nil
	})
	return loaded, err
}

func (s *Store) MarkDefaultsLoaded(ctx context.Context) error {
	return s.withLock(ctx, func() error {
		settings, err := s.readSettings()
		if err != nil {
			return err
		}
		settings["defaults_loaded"] = "true"
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		return writeAtomic(filepath.Join(s.dir, settingsName), data)
	})
}

// readSettings must be called with the lock held.
func (s *Store) readSettings() (map[string]string, error) {
	settings := make(map[string]string)
	data, err := os.ReadFile(filepath.Join(s.dir, settingsName))
	if os.IsNotExist(err) || (err == nil && len(data) == 0) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	return settings, nil
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
