package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/khalilmezni/chefsense/internal/conversation"
	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/favorites"
	"github.com/khalilmezni/chefsense/internal/lang"
	"github.com/khalilmezni/chefsense/internal/logger"
	"github.com/khalilmezni/chefsense/internal/recipe"
	"github.com/khalilmezni/chefsense/internal/search"
	"github.com/khalilmezni/chefsense/internal/storage"
)

func newTestAssistant(t *testing.T) (*Assistant, *recipe.Store, *storage.MemoryStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)

	source, err := recipe.NewStore(log)
	if err != nil {
		t.Fatalf("loading embedded catalogue: %v", err)
	}
	store := storage.NewMemoryStore(log)

	chef, err := New(source, favorites.NewMemoryStore(), conversation.NewRuleClassifier(log), store, log, WithDelay(0))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return chef, source, store
}

func TestHandleSearch(t *testing.T) {
	chef, source, _ := newTestAssistant(t)
	ctx := context.Background()

	got, err := chef.Handle(ctx, "show me chicken recipes")
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if got.Language != lang.English || got.RTL {
		t.Errorf("Handle() language = %s rtl=%v, want en ltr", got.Language, got.RTL)
	}

	recipes, _ := source.All(ctx)
	results := search.Search(recipes, "show me chicken recipes")
	if len(results) == 0 {
		t.Fatal("fixture query matched nothing in the catalogue")
	}
	top := results[0].Recipe

	if !strings.Contains(got.Text, "### "+top.NameEN) {
		t.Errorf("reply should lead with the top hit %q:\n%s", top.NameEN, got.Text)
	}
	if !strings.Contains(got.Text, "[RECIPE_CARD:") {
		t.Errorf("search reply should suggest recipe cards:\n%s", got.Text)
	}
	if chef.Session().CurrentRecipe != top.Slug {
		t.Errorf("session focus = %q, want %q", chef.Session().CurrentRecipe, top.Slug)
	}
}

func TestHandleHowToMake(t *testing.T) {
	chef, source, _ := newTestAssistant(t)
	ctx := context.Background()

	padThai, err := source.ByName(ctx, "Pad Thai")
	if err != nil {
		t.Fatalf("catalogue is missing pad thai: %v", err)
	}

	got, err := chef.Handle(ctx, "How do I make Pad Thai?")
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	if !strings.Contains(got.Text, "### Pad Thai") {
		t.Errorf("reply should name the dish:\n%s", got.Text)
	}
	for i, step := range padThai.Steps {
		want := strings.TrimSpace(step)
		if !strings.Contains(got.Text, want) {
			t.Errorf("reply missing step %d %q:\n%s", i+1, want, got.Text)
		}
	}
	if !strings.Contains(got.Text, "1. ") {
		t.Errorf("steps should be numbered:\n%s", got.Text)
	}
	if chef.Session().CurrentRecipe != "pad-thai" {
		t.Errorf("session focus = %q, want pad-thai", chef.Session().CurrentRecipe)
	}
}

func TestHandlePantry(t *testing.T) {
	chef, _, _ := newTestAssistant(t)
	ctx := context.Background()

	got, err := chef.Handle(ctx, "i have chicken, onions and rice - what can i cook?")
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	analysis := chef.Session().LastAnalysis
	if analysis == nil || !analysis.PantryMode {
		t.Fatalf("pantry query should run in pantry mode, analysis = %+v", analysis)
	}
	if analysis.MatchedCount == 0 {
		t.Fatal("pantry query should match the fried-rice family")
	}

	if !strings.Contains(got.Text, "Chicken Fried Rice") {
		t.Errorf("chicken+onions+rice should surface fried rice:\n%s", got.Text)
	}
	if !strings.Contains(got.Text, "[RECIPE_LINK:") {
		t.Errorf("pantry matches should carry view-recipe links:\n%s", got.Text)
	}
	if chef.Session().CurrentRecipe == "" {
		t.Error("best pantry match should become the session focus")
	}
}

func TestHandleFollowUpNutrition(t *testing.T) {
	chef, _, _ := newTestAssistant(t)
	ctx := context.Background()

	if _, err := chef.Handle(ctx, "how do I make shakshuka?"); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if chef.Session().CurrentRecipe != "shakshuka" {
		t.Fatalf("session focus = %q, want shakshuka", chef.Session().CurrentRecipe)
	}

	got, err := chef.Handle(ctx, "what about calories?")
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(got.Text, "### Shakshuka") {
		t.Errorf("nutrition follow-up should answer about the recipe in focus:\n%s", got.Text)
	}
	if !strings.Contains(got.Text, "kcal") {
		t.Errorf("nutrition answer should state calories:\n%s", got.Text)
	}
}

func TestHandleLanguages(t *testing.T) {
	tests := []struct {
		name    string
		message string
		lang    lang.Language
		rtl     bool
	}{
		{"french greeting", "bonjour chef", lang.French, false},
		{"dutch greeting", "hallo, wat eten we vandaag?", lang.Dutch, false},
		{"arabic greeting", "مرحبا", lang.Arabic, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chef, _, _ := newTestAssistant(t)
			got, err := chef.Handle(context.Background(), tt.message)
			if err != nil {
				t.Fatalf("Handle(%q) error: %v", tt.message, err)
			}
			if got.Language != tt.lang || got.RTL != tt.rtl {
				t.Errorf("Handle(%q) = lang %s rtl %v, want %s %v", tt.message, got.Language, got.RTL, tt.lang, tt.rtl)
			}
			want := lang.PackFor(tt.lang).Greeting
			if !strings.Contains(got.Text, want) {
				t.Errorf("greeting should use the %s phrase pack:\n%s", tt.lang, got.Text)
			}
		})
	}
}

func TestHandleDebugLast(t *testing.T) {
	chef, _, _ := newTestAssistant(t)
	ctx := context.Background()

	got, err := chef.Handle(ctx, "/debug last")
	if err != nil {
		t.Fatalf("Handle(/debug last) error: %v", err)
	}
	if !strings.Contains(got.Text, "no prior user query") {
		t.Errorf("debug before any exchange = %q", got.Text)
	}

	if _, err := chef.Handle(ctx, "i have chicken, onions and rice - what can i cook?"); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	got, err = chef.Handle(ctx, "/debug last")
	if err != nil {
		t.Fatalf("Handle(/debug last) error: %v", err)
	}
	for _, want := range []string{
		"Debug summary (last request):",
		"• Path: Pantry mode",
		"• Ingredient tokens: chicken, onions, rice",
		"• Active recipe: chicken-fried-rice",
	} {
		if !strings.Contains(got.Text, want) {
			t.Errorf("debug summary missing %q:\n%s", want, got.Text)
		}
	}
	if got.Language != lang.English {
		t.Errorf("debug output language = %s, want en", got.Language)
	}
}

func TestHandleEmptyMessage(t *testing.T) {
	chef, _, _ := newTestAssistant(t)
	if _, err := chef.Handle(context.Background(), "   "); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Handle(blank) error = %v, want ErrNotFound", err)
	}
}

type emptySource struct{}

func (emptySource) All(ctx context.Context) ([]*domain.Recipe, error) { return nil, nil }
func (emptySource) BySlug(ctx context.Context, slug string) (*domain.Recipe, error) {
	return nil, domain.ErrNotFound
}
func (emptySource) ByName(ctx context.Context, name string) (*domain.Recipe, error) {
	return nil, domain.ErrNotFound
}

func TestNewEmptyCatalogue(t *testing.T) {
	log := logger.New(logger.LevelOff, nil)
	_, err := New(emptySource{}, favorites.NewMemoryStore(), conversation.NewRuleClassifier(log), storage.NewMemoryStore(log), log, WithDelay(0))
	if !errors.Is(err, domain.ErrNoRecipes) {
		t.Errorf("New() with empty catalogue error = %v, want ErrNoRecipes", err)
	}
}

func TestSessionPersistence(t *testing.T) {
	chef, _, store := newTestAssistant(t)
	ctx := context.Background()

	if _, err := chef.Handle(ctx, "how do I make harira?"); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	saved, err := store.Load(ctx, chef.Session().ID)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if saved.Status != domain.SessionActive {
		t.Errorf("saved session status = %v, want active", saved.Status)
	}
	if len(saved.History) != 2 {
		t.Fatalf("saved history has %d turns, want user + assistant", len(saved.History))
	}
	if saved.History[0].Role != domain.RoleUser || saved.History[1].Role != domain.RoleAssistant {
		t.Errorf("history roles = %v, %v", saved.History[0].Role, saved.History[1].Role)
	}
	if saved.CurrentRecipe != "harira" {
		t.Errorf("saved focus = %q, want harira", saved.CurrentRecipe)
	}
}

func TestHandleUnknownFallsBackToHelp(t *testing.T) {
	chef, _, _ := newTestAssistant(t)
	got, err := chef.Handle(context.Background(), "flibbertigibbet")
	if err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if !strings.Contains(got.Text, "here's what I'm good at") {
		t.Errorf("unmatched gibberish should answer with the help text:\n%s", got.Text)
	}
}
