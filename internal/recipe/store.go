// Package recipe provides the recipe catalogue. The catalogue is loaded
// once, from the embedded dataset or a JSON file, and is read-only for the
// rest of the session.
package recipe

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeSource = (*Store)(nil)

//go:embed data/recipes.json
var defaultDataset []byte

// Store holds the loaded recipes. Safe for concurrent reads; nothing
// mutates it after construction.
type Store struct {
	mu      sync.RWMutex
	recipes []*domain.Recipe // dataset order, the tiebreak order for search
	bySlug  map[string]*domain.Recipe
	log     *logger.Logger
}

// NewStore loads the embedded dataset.
func NewStore(log *logger.Logger) (*Store, error) {
	return newStore(defaultDataset, log)
}

// NewStoreFromFile loads a dataset from a JSON file. Any failure to read
// or decode surfaces as domain.ErrNoRecipes: the caller treats a missing
// catalogue and a broken one the same way.
func NewStoreFromFile(path string, log *logger.Logger) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("reading recipe file %s: %v", path, err)
		return nil, fmt.Errorf("reading %s: %w", path, domain.ErrNoRecipes)
	}
	return newStore(data, log)
}

func newStore(data []byte, log *logger.Logger) (*Store, error) {
	var recipes []*domain.Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		log.Error("decoding recipe dataset: %v", err)
		return nil, fmt.Errorf("decoding dataset: %w", domain.ErrNoRecipes)
	}
	if len(recipes) == 0 {
		return nil, domain.ErrNoRecipes
	}

	bySlug := make(map[string]*domain.Recipe, len(recipes))
	for _, r := range recipes {
		if r.DietaryStyle == "" {
			r.DietaryStyle = domain.StyleNone
		}
		bySlug[r.Slug] = r
	}

	log.Debug("loaded %d recipes", len(recipes))
	return &Store{recipes: recipes, bySlug: bySlug, log: log}, nil
}

// All returns every recipe in dataset order. The slice is a copy; the
// recipes themselves are shared and must not be mutated.
func (s *Store) All(ctx context.Context) ([]*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out, nil
}

// BySlug returns the recipe with the given slug.
func (s *Store) BySlug(ctx context.Context, slug string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.bySlug[slug]
	if !ok {
		s.log.Debug("recipe not found: %s", slug)
		return nil, domain.ErrNotFound
	}
	return r, nil
}

// ByName resolves a recipe from a human-typed name: exact match first,
// then substring, then the slugified form of the name.
func (s *Store) ByName(ctx context.Context, name string) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil, domain.ErrNotFound
	}
	for _, r := range s.recipes {
		if strings.ToLower(r.NameEN) == want {
			return r, nil
		}
	}
	for _, r := range s.recipes {
		if strings.Contains(strings.ToLower(r.NameEN), want) {
			return r, nil
		}
	}
	if r, ok := s.bySlug[strings.ReplaceAll(want, " ", "-")]; ok {
		return r, nil
	}
	return nil, domain.ErrNotFound
}

// ByCountry returns every recipe from a country, matched by name or slug.
func (s *Store) ByCountry(ctx context.Context, country string) []*domain.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := strings.ToLower(country)
	var out []*domain.Recipe
	for _, r := range s.recipes {
		if strings.ToLower(r.Country) == want || r.CountrySlug == want {
			out = append(out, r)
		}
	}
	return out
}

// Count reports how many recipes are loaded.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}
