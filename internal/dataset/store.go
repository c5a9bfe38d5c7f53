package dataset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store memoizes loaded tables for the process lifetime, keyed by the
// absolute file path. Concurrent first loads of the same file are
// collapsed into one read. Cache invalidation on file change is
// intentionally not supported.
type Store struct {
	logger *slog.Logger

	mu     sync.RWMutex
	tables map[string]*Table
	group  singleflight.Group
}

// NewStore creates a new dataset store
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger: logger.With(slog.String("component", "dataset_store")),
		tables: make(map[string]*Table),
	}
}

// Table returns the cached table for path, loading it on first use
func (s *Store) Table(ctx context.Context, path string) (*Table, error) {
	key := storeKey(path)

	s.mu.RLock()
	table, ok := s.tables[key]
	s.mu.RUnlock()
	if ok {
		return table, nil
	}

	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight in case a racing load finished
		s.mu.RLock()
		cached, ok := s.tables[key]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}

		loaded, err := Load(path, s.logger)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.tables[key] = loaded
		s.mu.Unlock()

		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		s.logger.DebugContext(ctx, "dataset load deduplicated", slog.String("file", path))
	}

	return v.(*Table), nil
}

// Cached reports whether a table for path is already loaded
func (s *Store) Cached(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tables[storeKey(path)]
	return ok
}

// storeKey resolves the cache key for a path
func storeKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
