package reply

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/lang"
	"github.com/khalilmezni/chefsense/internal/logger"
	"github.com/khalilmezni/chefsense/internal/search"
)

func testRecipes() []*domain.Recipe {
	return []*domain.Recipe{
		{
			Slug:               "butter-chicken",
			NameEN:             "Butter Chicken",
			Country:            "India",
			CountrySlug:        "india",
			MealType:           domain.MealDinner,
			Difficulty:         "medium",
			Tags:               []string{"curry", "creamy"},
			Steps:              []string{"Marinate the chicken.", "Simmer in the sauce."},
			CookingTips:        []string{"Rest the marinade overnight."},
			PrepTimeMinutes:    20,
			CookingTimeMinutes: 40,
			Servings:           4,
			Ingredients: []domain.Ingredient{
				{Name: "chicken breast", Amount: "500", Unit: "g"},
				{Name: "butter", Amount: "50", Unit: "g"},
				{Name: "heavy cream", Amount: "200", Unit: "ml"},
				{Name: "tomato", Amount: "3", Unit: ""},
			},
			Nutrition: &domain.Nutrition{PerServingKcal: 520, ProteinG: 32, CarbsG: 18, FatG: 30},
		},
		{
			Slug:               "chicken-biryani",
			NameEN:             "Chicken Biryani",
			Country:            "India",
			CountrySlug:        "india",
			MealType:           domain.MealDinner,
			Difficulty:         "hard",
			Steps:              []string{"Parboil the rice.", "Layer and steam."},
			PrepTimeMinutes:    30,
			CookingTimeMinutes: 45,
			Servings:           6,
			Ingredients: []domain.Ingredient{
				{Name: "white rice", Amount: "400", Unit: "g"},
				{Name: "chicken thighs", Amount: "600", Unit: "g"},
			},
		},
		{
			Slug:               "ratatouille",
			NameEN:             "Ratatouille",
			Country:            "France",
			CountrySlug:        "france",
			MealType:           domain.MealDinner,
			DietaryStyle:       domain.StyleVegan,
			Difficulty:         "easy",
			Tags:               []string{"vegetables", "vegan"},
			Steps:              []string{"Slice the vegetables.", "Bake low and slow."},
			PrepTimeMinutes:    25,
			CookingTimeMinutes: 50,
			Servings:           4,
			Ingredients: []domain.Ingredient{
				{Name: "eggplant", Amount: "1", Unit: ""},
				{Name: "zucchini", Amount: "2", Unit: ""},
				{Name: "tomato", Amount: "4", Unit: ""},
			},
			Nutrition: &domain.Nutrition{PerServingKcal: 180, ProteinG: 5, CarbsG: 22, FatG: 8},
		},
		{
			Slug:               "baklava",
			NameEN:             "Baklava",
			Country:            "Turkey",
			CountrySlug:        "turkey",
			MealType:           domain.MealDessert,
			Difficulty:         "hard",
			Tags:               []string{"dessert", "sweet"},
			Steps:              []string{"Layer the phyllo.", "Pour over the syrup."},
			PrepTimeMinutes:    45,
			CookingTimeMinutes: 50,
			Servings:           12,
			Ingredients: []domain.Ingredient{
				{Name: "phyllo dough", Amount: "1", Unit: "pack"},
				{Name: "walnuts", Amount: "300", Unit: "g"},
				{Name: "butter", Amount: "200", Unit: "g"},
				{Name: "sugar", Amount: "250", Unit: "g"},
				{Name: "flour", Amount: "2", Unit: "tbsp"},
				{Name: "salt", Amount: "1", Unit: "pinch"},
			},
			Nutrition: &domain.Nutrition{PerServingKcal: 780, ProteinG: 9, CarbsG: 62, FatG: 48},
		},
	}
}

func testBuilder() *Builder {
	return NewBuilder(testRecipes(), nil, logger.New(logger.LevelOff, nil))
}

func englishPack() lang.Pack { return lang.PackFor(lang.English) }

// ── allergens ────────────────────────────────────────────────────────────

func TestAllergens(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []domain.Ingredient
		want        []string
	}{
		{
			name: "gluten and dairy",
			ingredients: []domain.Ingredient{
				{Name: "wheat flour"},
				{Name: "whole milk"},
			},
			want: []string{"gluten", "dairy"},
		},
		{
			name: "eggplant does not count as eggs",
			ingredients: []domain.Ingredient{
				{Name: "eggplant"},
			},
			want: nil,
		},
		{
			name: "eggs detected",
			ingredients: []domain.Ingredient{
				{Name: "eggs"},
				{Name: "egg"},
			},
			want: []string{"eggs"},
		},
		{
			name: "stable rule order regardless of ingredient order",
			ingredients: []domain.Ingredient{
				{Name: "sesame oil"},
				{Name: "shrimp"},
				{Name: "soy sauce"},
				{Name: "rice noodles"},
			},
			want: []string{"gluten", "soy", "shellfish", "sesame"},
		},
		{
			name: "no allergens",
			ingredients: []domain.Ingredient{
				{Name: "tomato"},
				{Name: "onion"},
			},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Allergens(&domain.Recipe{Ingredients: tt.ingredients})
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Allergens() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllergensNilRecipe(t *testing.T) {
	if got := Allergens(nil); got != nil {
		t.Errorf("Allergens(nil) = %v, want nil", got)
	}
}

// ── swaps ────────────────────────────────────────────────────────────────

func TestSwaps(t *testing.T) {
	butterChicken := testRecipes()[0]
	swaps := Swaps(butterChicken)
	if len(swaps) != 2 {
		t.Fatalf("Swaps() returned %d suggestions, want 2: %v", len(swaps), swaps)
	}
	if !strings.Contains(swaps[0], "Butter") {
		t.Errorf("first swap = %q, want butter suggestion", swaps[0])
	}
	if !strings.Contains(swaps[1], "Cream") {
		t.Errorf("second swap = %q, want cream suggestion", swaps[1])
	}
}

func TestSwapsWholeFlourExcluded(t *testing.T) {
	r := &domain.Recipe{Ingredients: []domain.Ingredient{{Name: "whole wheat flour"}}}
	for _, s := range Swaps(r) {
		if strings.Contains(s, "almond flour") {
			t.Errorf("whole wheat flour triggered the white flour swap: %q", s)
		}
	}
}

func TestSwapsNilRecipeGeneric(t *testing.T) {
	swaps := Swaps(nil)
	if len(swaps) != 4 {
		t.Fatalf("Swaps(nil) returned %d suggestions, want the 4 generic ones", len(swaps))
	}
	if !strings.Contains(swaps[0], "Butter") {
		t.Errorf("generic swaps start with %q, want the butter line", swaps[0])
	}
}

func TestSwapsHealthyRecipe(t *testing.T) {
	r := &domain.Recipe{Ingredients: []domain.Ingredient{{Name: "spinach"}, {Name: "lentils"}}}
	swaps := Swaps(r)
	if len(swaps) != 1 || !strings.Contains(swaps[0], "pretty healthy") {
		t.Errorf("Swaps() on a healthy recipe = %v, want the single already-healthy line", swaps)
	}
}

// ── health advice ────────────────────────────────────────────────────────

func TestHealthAdvice(t *testing.T) {
	tests := []struct {
		name   string
		recipe *domain.Recipe
		want   []string
		not    []string
	}{
		{
			name:   "nil recipe",
			recipe: nil,
			want:   []string{"Fill half your plate"},
		},
		{
			name:   "no nutrition data",
			recipe: &domain.Recipe{},
			want:   []string{"Fill half your plate"},
		},
		{
			name:   "rich and protein heavy",
			recipe: &domain.Recipe{Nutrition: &domain.Nutrition{PerServingKcal: 800, ProteinG: 30}},
			want:   []string{"Rich dish!", "muscle recovery"},
		},
		{
			name:   "moderate calories low protein",
			recipe: &domain.Recipe{Nutrition: &domain.Nutrition{PerServingKcal: 500, ProteinG: 10}},
			want:   []string{"Good energy!", "Add beans or eggs"},
		},
		{
			name:   "light with mid protein says nothing about protein",
			recipe: &domain.Recipe{Nutrition: &domain.Nutrition{PerServingKcal: 300, ProteinG: 15}},
			want:   []string{"Light & fresh!"},
			not:    []string{"Add beans", "muscle"},
		},
		{
			name: "plant tag",
			recipe: &domain.Recipe{
				Tags:      []string{"Vegan"},
				Nutrition: &domain.Nutrition{PerServingKcal: 400, ProteinG: 14},
			},
			want: []string{"Plant-based goodness!"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HealthAdvice(tt.recipe)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("HealthAdvice() = %q, want it to contain %q", got, w)
				}
			}
			for _, n := range tt.not {
				if strings.Contains(got, n) {
					t.Errorf("HealthAdvice() = %q, must not contain %q", got, n)
				}
			}
		})
	}
}

// ── nutrition notes ──────────────────────────────────────────────────────

func TestNutritionNotes(t *testing.T) {
	p := englishPack()
	butterChicken := testRecipes()[0]

	got := NutritionNotes(butterChicken, p)
	for _, want := range []string{
		"**520 kcal** per serving",
		"**32g**",
		"⚠️ Contains: **dairy**",
		"💡",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("NutritionNotes() missing %q:\n%s", want, got)
		}
	}
}

func TestNutritionNotesFallback(t *testing.T) {
	p := englishPack()
	r := &domain.Recipe{Ingredients: []domain.Ingredient{{Name: "tomato"}}}

	got := NutritionNotes(r, p)
	if !strings.Contains(got, p.FallbackNutrition) {
		t.Errorf("NutritionNotes() without data should carry the fallback line:\n%s", got)
	}
	if !strings.Contains(got, p.NoAllergens) {
		t.Errorf("NutritionNotes() for a clean recipe should carry %q:\n%s", p.NoAllergens, got)
	}
}

// ── structured reply ─────────────────────────────────────────────────────

func TestStructured(t *testing.T) {
	b := testBuilder()
	p := englishPack()
	butterChicken := testRecipes()[0]

	got := b.Structured(p, "butter chicken", butterChicken, nil)
	for _, want := range []string{
		p.Greeting,
		"### Butter Chicken",
		"🌍 India • 🍽️ Dinner • ⏱️ 60 min • 📊 medium",
		"### " + p.StepsTitle + ":",
		"1. Marinate the chicken.",
		"2. Simmer in the sauce.",
		"### " + p.NutritionTitle + ":",
		"### " + p.SwapsTitle + ":",
		"### " + p.SuggestionsTitle + ":",
		"[RECIPE_CARD:butter-chicken:",
		p.AskClarify,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Structured() missing %q:\n%s", want, got)
		}
	}
}

func TestStructuredCapsSwaps(t *testing.T) {
	b := testBuilder()
	baklava := testRecipes()[3]

	if n := len(Swaps(baklava)); n <= MaxSwapsDisplayed {
		t.Fatalf("fixture triggers %d swaps, need more than %d for this test", n, MaxSwapsDisplayed)
	}

	got := b.Structured(englishPack(), "baklava", baklava, nil)
	if n := strings.Count(got, "→"); n < MaxSwapsDisplayed {
		t.Fatalf("expected %d swap lines, found %d arrows:\n%s", MaxSwapsDisplayed, n, got)
	}
	// The fourth rule hit for baklava is the salt swap; the cap trims it.
	if strings.Contains(got, "herbs & lemon zest") {
		t.Errorf("Structured() shows more than %d swaps:\n%s", MaxSwapsDisplayed, got)
	}
}

func TestStructuredNilRecipeGenericSteps(t *testing.T) {
	b := testBuilder()
	got := b.Structured(englishPack(), "a cozy stew. please", nil, nil)
	if !strings.Contains(got, "Gather the core ingredients for a cozy stew") {
		t.Errorf("Structured() without a recipe should use generic steps:\n%s", got)
	}
	if strings.Contains(got, "###  ") {
		t.Errorf("Structured() rendered an empty heading:\n%s", got)
	}
}

func TestGenericSteps(t *testing.T) {
	tests := []struct {
		message string
		focus   string
	}{
		{"spicy lentil soup", "spicy lentil soup"},
		{"quick pasta! something simple", "quick pasta"},
		{"", "your dish"},
		{"?!.", "your dish"},
	}

	for _, tt := range tests {
		steps := GenericSteps(tt.message)
		if len(steps) != 3 {
			t.Fatalf("GenericSteps(%q) returned %d steps, want 3", tt.message, len(steps))
		}
		if !strings.Contains(steps[0], tt.focus) {
			t.Errorf("GenericSteps(%q)[0] = %q, want focus %q", tt.message, steps[0], tt.focus)
		}
	}
}

func TestSuggestionFallbackTiers(t *testing.T) {
	b := testBuilder()
	p := englishPack()
	butterChicken := testRecipes()[0]

	// Search hits win.
	results := search.Search(b.RecipesOf(), "chicken")
	got := b.Structured(p, "chicken", butterChicken, results)
	if !strings.Contains(got, "[RECIPE_CARD:chicken-biryani:") {
		t.Errorf("suggestions should list search hits:\n%s", got)
	}

	// No hits: similar recipes, best affinity first, focus excluded.
	got = b.Structured(p, "zzzqqq", butterChicken, nil)
	if !strings.Contains(got, "[RECIPE_CARD:chicken-biryani:") {
		t.Errorf("suggestions should fall back to similar recipes:\n%s", got)
	}
	if strings.Contains(got, "[RECIPE_CARD:butter-chicken:") {
		t.Errorf("similarity fallback must exclude the recipe in focus:\n%s", got)
	}

	// No hits, no recipe in focus: two random picks.
	got = b.Structured(p, "zzzqqq", nil, nil)
	if n := strings.Count(got, "[RECIPE_CARD:"); n != 2 {
		t.Errorf("suggestions should never be empty, got %d cards:\n%s", n, got)
	}
}

// ── focused answers ──────────────────────────────────────────────────────

func TestIngredientsAnswer(t *testing.T) {
	b := testBuilder()
	p := englishPack()

	got := b.Ingredients(p, testRecipes()[0])
	for _, want := range []string{"serves 4", "• 500 g chicken breast", "• 3 tomato"} {
		if !strings.Contains(got, want) {
			t.Errorf("Ingredients() missing %q:\n%s", want, got)
		}
	}

	if got := b.Ingredients(p, nil); got != b.Clarify(p) {
		t.Errorf("Ingredients(nil) = %q, want the clarify prompt", got)
	}

	r := &domain.Recipe{
		NameEN:   "Toast",
		Servings: 1,
		Ingredients: []domain.Ingredient{
			{Name: "salt"},
			{Name: "olive oil", Unit: "tbsp"},
		},
	}
	got = b.Ingredients(p, r)
	for _, want := range []string{"• salt\n", "• tbsp olive oil\n"} {
		if !strings.Contains(got, want) {
			t.Errorf("Ingredients() missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "  ") {
		t.Errorf("Ingredients() left a double space:\n%s", got)
	}
}

func TestDietaryInfoAnswer(t *testing.T) {
	b := testBuilder()
	p := englishPack()

	got := b.DietaryInfo(p, testRecipes()[2])
	if !strings.Contains(got, "This dish is **Vegan**.") {
		t.Errorf("DietaryInfo() should state the style:\n%s", got)
	}
	if !strings.Contains(got, p.NoAllergens) {
		t.Errorf("DietaryInfo() for ratatouille should report no allergens:\n%s", got)
	}

	got = b.DietaryInfo(p, testRecipes()[0])
	if !strings.Contains(got, "no particular dietary label") {
		t.Errorf("DietaryInfo() without a style should say so:\n%s", got)
	}
	if !strings.Contains(got, "⚠️ Contains: **dairy**") {
		t.Errorf("DietaryInfo() should list allergens:\n%s", got)
	}
}

func TestTimeAnswer(t *testing.T) {
	b := testBuilder()
	got := b.TimeAnswer(englishPack(), testRecipes()[0])
	if !strings.Contains(got, "⏱️ Prep: 20 min • Cooking: 40 min • Total: **60 min**") {
		t.Errorf("TimeAnswer() breakdown wrong:\n%s", got)
	}
}

func TestTipsAnswer(t *testing.T) {
	b := testBuilder()
	p := englishPack()

	got := b.TipsAnswer(p, testRecipes()[0])
	if !strings.Contains(got, "• Rest the marinade overnight.") {
		t.Errorf("TipsAnswer() should list the recipe's tips:\n%s", got)
	}

	got = b.TipsAnswer(p, nil)
	if !strings.Contains(got, "Kitchen tips") {
		t.Errorf("TipsAnswer(nil) should fall back to general advice:\n%s", got)
	}
}

func TestMealTypeAnswer(t *testing.T) {
	b := testBuilder()
	p := englishPack()

	got := b.MealTypeAnswer(p, "any ideas for dessert?")
	if !strings.Contains(got, "[RECIPE_CARD:baklava:") {
		t.Errorf("MealTypeAnswer(dessert) should card baklava:\n%s", got)
	}
	if strings.Contains(got, "[RECIPE_CARD:ratatouille:") {
		t.Errorf("MealTypeAnswer(dessert) should not card a dinner:\n%s", got)
	}

	if got := b.MealTypeAnswer(p, "something for brunch"); got != b.Clarify(p) {
		t.Errorf("MealTypeAnswer() with no matching meal should clarify, got:\n%s", got)
	}
}

func TestMealTypeAnswerNarrowsByDiet(t *testing.T) {
	b := testBuilder()
	p := englishPack()

	got := b.MealTypeAnswer(p, "show me a vegan dinner")
	if !strings.Contains(got, "[RECIPE_CARD:ratatouille:") {
		t.Errorf("vegan dinner should card ratatouille:\n%s", got)
	}
	if strings.Contains(got, "[RECIPE_CARD:butter-chicken:") {
		t.Errorf("vegan constraint should drop non-vegan dinners:\n%s", got)
	}

	// An unsatisfiable constraint falls back to the plain meal list.
	got = b.MealTypeAnswer(p, "a quick dessert please")
	if !strings.Contains(got, "[RECIPE_CARD:baklava:") {
		t.Errorf("unsatisfiable narrowing should keep the meal list:\n%s", got)
	}
}

type stubFavorites struct{ slugs map[string]bool }

func (s *stubFavorites) IsFavorite(slug string) bool { return s.slugs[slug] }

func (s *stubFavorites) All() []string {
	var out []string
	for slug := range s.slugs {
		out = append(out, slug)
	}
	return out
}

func TestFavoritesAnswer(t *testing.T) {
	p := englishPack()
	favs := &stubFavorites{slugs: map[string]bool{"baklava": true}}
	b := NewBuilder(testRecipes(), favs, logger.New(logger.LevelOff, nil))

	got := b.FavoritesAnswer(p)
	if !strings.Contains(got, "[RECIPE_CARD:baklava:") {
		t.Errorf("FavoritesAnswer() should card the saved recipe:\n%s", got)
	}

	b = NewBuilder(testRecipes(), &stubFavorites{slugs: map[string]bool{}}, logger.New(logger.LevelOff, nil))
	if got := b.FavoritesAnswer(p); !strings.Contains(got, "haven't saved any favorites") {
		t.Errorf("FavoritesAnswer() with none saved should say so:\n%s", got)
	}
}

// ── pantry replies ───────────────────────────────────────────────────────

func TestPantry(t *testing.T) {
	b := testBuilder()
	p := englishPack()
	recipes := testRecipes()
	matches := []search.Match{
		{Recipe: recipes[0], MatchedIngredients: []string{"chicken breast", "tomato"}},
		{Recipe: recipes[2], MatchedIngredients: []string{"tomato"}},
	}

	got := b.Pantry(p, []string{"chicken", "tomato"}, matches)
	for _, want := range []string{
		"**chicken, tomato**",
		"**1. Butter Chicken** (India) ⭐ " + p.BestMatch,
		"**2. Ratatouille** (France)\n",
		"Uses: chicken breast, tomato",
		"[RECIPE_LINK:butter-chicken:👉 View full recipe]",
		"### " + p.StepsTitle + " for Butter Chicken:",
		"1. Marinate the chicken.",
		"### " + p.NutritionTitle + ":",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Pantry() missing %q:\n%s", want, got)
		}
	}
	if strings.Count(got, p.BestMatch) != 1 {
		t.Errorf("Pantry() should mark exactly one best match:\n%s", got)
	}
}

func TestPantryFallback(t *testing.T) {
	b := testBuilder()
	p := englishPack()

	got := b.PantryFallback(p, []string{"gravel", "paperclips"})
	for _, want := range []string{
		"gravel, paperclips",
		p.NoMatches,
		"1. Stir-fry aromatics",
		"Fill half your plate",
		"Allergen watch",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("PantryFallback() missing %q:\n%s", want, got)
		}
	}
}

// ── debug summary ────────────────────────────────────────────────────────

func TestDebugSummary(t *testing.T) {
	if got := DebugSummary(nil); !strings.Contains(got, "no prior user query") {
		t.Errorf("DebugSummary(nil) = %q", got)
	}
	if got := DebugSummary(&domain.Analysis{}); !strings.Contains(got, "no prior user query") {
		t.Errorf("DebugSummary(empty) = %q", got)
	}

	a := &domain.Analysis{
		LastMessage:      "i have chicken and rice, what can i cook?",
		Intent:           domain.IntentSearch,
		Language:         "en",
		PantryMode:       true,
		IngredientTokens: []string{"chicken", "rice"},
		MatchedCount:     2,
		MatchedNames:     []string{"Butter Chicken", "Chicken Biryani"},
		LastRecipe:       "butter-chicken",
	}
	got := DebugSummary(a)
	for _, want := range []string{
		"Debug summary (last request):",
		fmt.Sprintf("• Message: %q", a.LastMessage),
		"• Detected language: en",
		"• Path: Pantry mode",
		"• Ingredient tokens: chicken, rice",
		"• Matched recipes: 2 (Butter Chicken, Chicken Biryani)",
		"• Active recipe: butter-chicken",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("DebugSummary() missing %q:\n%s", want, got)
		}
	}

	a.PantryMode = false
	a.IngredientTokens = nil
	a.LastRecipe = ""
	got = DebugSummary(a)
	for _, want := range []string{
		"• Path: Standard recipe guidance",
		"• Ingredient tokens: none",
		"• Active recipe: none",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("DebugSummary() missing %q:\n%s", want, got)
		}
	}
}
