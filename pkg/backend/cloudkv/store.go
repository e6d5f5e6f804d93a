// Package cloudkv implements the cloud-synced key-value backend: a small
// in-memory table flushed to a JSON snapshot by Synchronize, with the
// platform's capacity ceilings enforced on every write. The platform owns
// conflict resolution and cross-device ordering; this store only persists
// and propagates.
package cloudkv

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-settings/pkg/backend"
)

// Platform ceilings for the cloud store.
const (
	// MaxTotalBytes caps the whole store.
	MaxTotalBytes = 1 << 20
	// MaxKeys caps the number of stored keys.
	MaxKeys = 1024
)

// Store implements backend.CloudStore.
type Store struct {
	mu      sync.Mutex
	path    string
	entries map[string]wireValue
	sizes   map[string]int
	total   int
	dirty   bool
	token   string
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open loads the snapshot at path, or starts empty when it is missing. A
// snapshot that no longer parses is discarded with a log line rather than an
// error: a corrupt cloud cache must never make settings access fail.
func Open(path string, opts ...Option) (*Store, error) {
	if path == "" {
		return nil, errors.New("cloudkv: snapshot path is required")
	}
	s := &Store{
		path:    path,
		entries: map[string]wireValue{},
		sizes:   map[string]int{},
		token:   uuid.NewString(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cloudkv: reading snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("cloudkv: discarding corrupt snapshot", "path", path, "error", err)
		return s, nil
	}
	if snap.Token != "" {
		s.token = snap.Token
	}
	for key, wv := range snap.Entries {
		s.entries[key] = wv
		s.sizes[key] = entrySize(key, wv)
		s.total += s.sizes[key]
	}
	return s, nil
}

// Get returns the stored value and whether the key is present.
func (s *Store) Get(key string) (backend.Value, bool, error) {
	s.mu.Lock()
	wv, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return backend.Value{}, false, nil
	}
	return wv.value(), true, nil
}

// Set stores value under key. It fails with backend.ErrQuotaExceeded when
// the write would push the store past a platform ceiling, leaving the
// previous entry untouched.
func (s *Store) Set(key string, value backend.Value) error {
	wv, err := toWire(value)
	if err != nil {
		return fmt.Errorf("cloudkv: encoding %q: %w", key, err)
	}
	size := entrySize(key, wv)

	s.mu.Lock()
	defer s.mu.Unlock()

	previous, exists := s.sizes[key]
	if !exists && len(s.entries) >= MaxKeys {
		return fmt.Errorf("cloudkv: %q: key count over %d: %w", key, MaxKeys, backend.ErrQuotaExceeded)
	}
	if s.total-previous+size > MaxTotalBytes {
		return fmt.Errorf("cloudkv: %q: store over %d bytes: %w", key, MaxTotalBytes, backend.ErrQuotaExceeded)
	}

	s.entries[key] = wv
	s.sizes[key] = size
	s.total += size - previous
	s.dirty = true
	return nil
}

// Delete removes the entry for key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[key]; !ok {
		return nil
	}
	s.total -= s.sizes[key]
	delete(s.entries, key)
	delete(s.sizes, key)
	s.dirty = true
	return nil
}

// Synchronize flushes pending writes to the snapshot file with an atomic
// write-and-rename and mints a fresh change token. Without pending writes it
// is a no-op.
func (s *Store) Synchronize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	token := uuid.NewString()
	raw, err := json.Marshal(snapshot{
		Token:     token,
		FlushedAt: time.Now().UTC(),
		Entries:   s.entries,
	})
	if err != nil {
		return fmt.Errorf("cloudkv: encoding snapshot: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("cloudkv: creating snapshot directory: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("cloudkv: writing snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cloudkv: replacing snapshot: %w", err)
	}

	s.token = token
	s.dirty = false
	return nil
}

// ChangeToken identifies the last flushed state. It changes on every
// successful Synchronize that had something to flush.
func (s *Store) ChangeToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

type snapshot struct {
	Token     string               `json:"token"`
	FlushedAt time.Time            `json:"flushed_at"`
	Entries   map[string]wireValue `json:"entries"`
}

func entrySize(key string, wv wireValue) int {
	raw, err := json.Marshal(wv)
	if err != nil {
		return len(key)
	}
	return len(key) + len(raw)
}
