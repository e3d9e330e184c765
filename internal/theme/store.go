package theme

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"chartdeck/internal/storage"
)

// Store keeps the light/dark flag in memory and persists it to storage.
// It satisfies dashboard.ThemeSource.
type Store struct {
	mu       sync.RWMutex
	client   storage.StorageClient
	dark     bool
	fallback bool
}

// NewStore creates a store that falls back to defaultDark until Load finds a
// persisted flag
func NewStore(client storage.StorageClient, defaultDark bool) *Store {
	return &Store{client: client, dark: defaultDark, fallback: defaultDark}
}

// Load reads the persisted flag. A missing flag keeps the default.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.client.GetFile(ctx, storage.ThemeFlagPath)
	if errors.Is(err, storage.ErrNotFound) {
		s.mu.Lock()
		s.dark = s.fallback
		s.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme flag: %w", err)
	}

	dark, err := strconv.ParseBool(strings.TrimSpace(string(data)))
	if err != nil {
		return fmt.Errorf("invalid theme flag %q: %w", data, err)
	}
	s.mu.Lock()
	s.dark = dark
	s.mu.Unlock()
	return nil
}

// IsDark reports the current flag
func (s *Store) IsDark() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dark
}

// Set changes and persists the flag
func (s *Store) Set(ctx context.Context, dark bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.client.StoreFile(ctx, storage.ThemeFlagPath, []byte(strconv.FormatBool(dark))); err != nil {
		return fmt.Errorf("failed to persist theme flag: %w", err)
	}
	s.dark = dark
	return nil
}

// Toggle flips and persists the flag, returning the new value
func (s *Store) Toggle(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := !s.dark
	if err := s.client.StoreFile(ctx, storage.ThemeFlagPath, []byte(strconv.FormatBool(next))); err != nil {
		return s.dark, fmt.Errorf("failed to persist theme flag: %w", err)
	}
	s.dark = next
	return next, nil
}
