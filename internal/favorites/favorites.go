// Package favorites provides read-only access to the user's saved recipes.
// Whatever surface owns the favorites file writes it; the assistant only
// ever asks "is this saved" and "what is saved".
package favorites

import (
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// Compile-time interface checks.
var (
	_ domain.FavoritesStore = (*FileStore)(nil)
	_ domain.FavoritesStore = (*MemoryStore)(nil)
)

// FileStore reads the favorite slugs from a JSON file holding a string
// array. A missing or unreadable file means no favorites, never an error.
type FileStore struct {
	mu    sync.RWMutex
	slugs map[string]struct{}
	log   *logger.Logger
}

// NewFileStore loads the favorites file once. The file is not watched;
// favorites added mid-session show up next session.
func NewFileStore(path string, log *logger.Logger) *FileStore {
	s := &FileStore{slugs: make(map[string]struct{}), log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Debug("no favorites file at %s: %v", path, err)
		return s
	}
	var slugs []string
	if err := json.Unmarshal(data, &slugs); err != nil {
		log.Warn("favorites file %s is malformed: %v", path, err)
		return s
	}
	for _, slug := range slugs {
		s.slugs[slug] = struct{}{}
	}
	log.Debug("loaded %d favorites", len(s.slugs))
	return s
}

// IsFavorite reports whether the slug is saved.
func (s *FileStore) IsFavorite(slug string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.slugs[slug]
	return ok
}

// All returns the saved slugs, sorted for stable output.
func (s *FileStore) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.slugs))
	for slug := range s.slugs {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// MemoryStore is a fixed favorites set, used in tests and when no
// favorites file is configured.
type MemoryStore struct {
	slugs map[string]struct{}
}

// NewMemoryStore builds a store holding exactly the given slugs.
func NewMemoryStore(slugs ...string) *MemoryStore {
	s := &MemoryStore{slugs: make(map[string]struct{}, len(slugs))}
	for _, slug := range slugs {
		s.slugs[slug] = struct{}{}
	}
	return s
}

// IsFavorite reports whether the slug is saved.
func (s *MemoryStore) IsFavorite(slug string) bool {
	_, ok := s.slugs[slug]
	return ok
}

// All returns the saved slugs, sorted for stable output.
func (s *MemoryStore) All() []string {
	out := make([]string, 0, len(s.slugs))
	for slug := range s.slugs {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}
