package recipe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

func TestNewStoreLoadsEmbeddedDataset(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := NewStore(log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Count() == 0 {
		t.Fatal("embedded dataset is empty")
	}

	all, err := store.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	for _, r := range all {
		if r.Slug == "" || r.NameEN == "" || len(r.Steps) == 0 || len(r.Ingredients) == 0 {
			t.Fatalf("recipe %q is incomplete", r.Slug)
		}
		if r.DietaryStyle == "" {
			t.Fatalf("recipe %q has empty dietary style after load", r.Slug)
		}
	}
}

func TestBySlug(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := NewStore(log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	r, err := store.BySlug(ctx, "butter-chicken")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if r.NameEN != "Butter Chicken" {
		t.Fatalf("got %q", r.NameEN)
	}

	if _, err := store.BySlug(ctx, "no-such-dish"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByName(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := NewStore(log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"exact", "Pad Thai", "pad-thai"},
		{"case insensitive", "pad thai", "pad-thai"},
		{"substring", "lassi", "mango-lassi"},
		{"slugified", "chicken fried rice", "chicken-fried-rice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := store.ByName(ctx, tt.in)
			if err != nil {
				t.Fatalf("ByName(%q): %v", tt.in, err)
			}
			if r.Slug != tt.want {
				t.Fatalf("ByName(%q) = %s, want %s", tt.in, r.Slug, tt.want)
			}
		})
	}

	if _, err := store.ByName(ctx, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("empty name: expected ErrNotFound, got %v", err)
	}
	if _, err := store.ByName(ctx, "moussaka"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("unknown name: expected ErrNotFound, got %v", err)
	}
}

func TestByCountry(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	store, err := NewStore(log)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	india := store.ByCountry(context.Background(), "india")
	if len(india) < 2 {
		t.Fatalf("expected at least 2 Indian recipes, got %d", len(india))
	}
	for _, r := range india {
		if r.CountrySlug != "india" {
			t.Fatalf("unexpected country %s", r.CountrySlug)
		}
	}
}

func TestNewStoreFromFileFailures(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)

	if _, err := NewStoreFromFile("does-not-exist.json", log); !errors.Is(err, domain.ErrNoRecipes) {
		t.Fatalf("missing file: expected ErrNoRecipes, got %v", err)
	}

	dir := t.TempDir()

	broken := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(broken, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStoreFromFile(broken, log); !errors.Is(err, domain.ErrNoRecipes) {
		t.Fatalf("broken file: expected ErrNoRecipes, got %v", err)
	}

	empty := filepath.Join(dir, "empty.json")
	if err := os.WriteFile(empty, []byte("[]"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewStoreFromFile(empty, log); !errors.Is(err, domain.ErrNoRecipes) {
		t.Fatalf("empty catalogue: expected ErrNoRecipes, got %v", err)
	}
}

func TestNewStoreFromFileValid(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	dir := t.TempDir()

	path := filepath.Join(dir, "recipes.json")
	payload := `[{"slug":"test-dish","name_en":"Test Dish","country":"Nowhere","country_slug":"nowhere",
		"mealType":"Dinner","difficulty":"easy","ingredients":[{"name":"water"}],"steps":["Boil."]}]`
	if err := os.WriteFile(path, []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStoreFromFile(path, log)
	if err != nil {
		t.Fatalf("NewStoreFromFile: %v", err)
	}
	if store.Count() != 1 {
		t.Fatalf("Count = %d, want 1", store.Count())
	}
	r, err := store.BySlug(context.Background(), "test-dish")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if r.DietaryStyle != domain.StyleNone {
		t.Fatalf("empty dietary style not normalized, got %q", r.DietaryStyle)
	}
}
