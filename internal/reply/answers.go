package reply

import (
	"fmt"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/lang"
	"github.com/khalilmezni/chefsense/internal/search"
)

// Focused answers for the question intents. Each takes the resolved
// subject recipe, which may be nil when neither the message nor the
// session names one; the nil paths ask for clarification rather than
// guessing.

// Greeting answers a hello with the greeting line and an invitation.
func (b *Builder) Greeting(p lang.Pack) string {
	return fmt.Sprintf("%s\n\n%s", p.Greeting, p.AskClarify)
}

// Ingredients lists what a recipe needs.
func (b *Builder) Ingredients(p lang.Pack, recipe *domain.Recipe) string {
	if recipe == nil {
		return b.Clarify(p)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	fmt.Fprintf(&sb, "### %s\n", recipe.NameEN)
	fmt.Fprintf(&sb, "You'll need (serves %d):\n", recipe.Servings)
	for _, ing := range recipe.Ingredients {
		// Fields collapses the gap a missing amount or unit leaves behind.
		line := strings.Join(strings.Fields(fmt.Sprintf("%s %s %s", ing.Amount, ing.Unit, ing.Name)), " ")
		fmt.Fprintf(&sb, "• %s\n", line)
	}
	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// DietaryInfo states a recipe's dietary style, allergens, and tags.
func (b *Builder) DietaryInfo(p lang.Pack, recipe *domain.Recipe) string {
	if recipe == nil {
		return b.Clarify(p)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	sb.WriteString(identityBlock(recipe))

	if recipe.DietaryStyle != "" && recipe.DietaryStyle != domain.StyleNone {
		fmt.Fprintf(&sb, "This dish is **%s**.\n", recipe.DietaryStyle)
	} else {
		sb.WriteString("This dish has no particular dietary label.\n")
	}

	fmt.Fprintf(&sb, "\n### %s:\n", p.AllergenTitle)
	if allergens := Allergens(recipe); len(allergens) > 0 {
		fmt.Fprintf(&sb, "⚠️ Contains: **%s**\n", strings.Join(allergens, ", "))
	} else {
		sb.WriteString(p.NoAllergens + "\n")
	}

	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// NutritionAnswer renders the macro breakdown for a recipe.
func (b *Builder) NutritionAnswer(p lang.Pack, recipe *domain.Recipe) string {
	if recipe == nil {
		return b.Clarify(p)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	sb.WriteString(identityBlock(recipe))
	fmt.Fprintf(&sb, "### %s:\n%s\n", p.NutritionTitle, NutritionNotes(recipe, p))
	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// Substitution suggests healthy swaps, for the recipe in focus or the
// generic set when there is none.
func (b *Builder) Substitution(p lang.Pack, recipe *domain.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	if recipe != nil {
		fmt.Fprintf(&sb, "### %s for %s:\n", p.SwapsTitle, recipe.NameEN)
	} else {
		fmt.Fprintf(&sb, "### %s:\n", p.SwapsTitle)
	}
	for _, s := range Swaps(recipe) {
		sb.WriteString(s + "\n")
	}
	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// mealTypeWords map question words to catalogue meal types.
var mealTypeWords = map[string]domain.MealType{
	"breakfast": domain.MealBreakfast,
	"lunch":     domain.MealLunch,
	"dinner":    domain.MealDinner,
	"dessert":   domain.MealDessert,
	"snack":     domain.MealAppetizer,
	"appetizer": domain.MealAppetizer,
	"drink":     domain.MealDrink,
}

// MealTypeAnswer lists recipes for the meal named in the message,
// narrowed by any dietary or time constraint riding along ("a quick
// vegetarian dinner").
func (b *Builder) MealTypeAnswer(p lang.Pack, message string) string {
	normalized := strings.ToLower(message)
	var want domain.MealType
	for word, mt := range mealTypeWords {
		if strings.Contains(normalized, word) {
			want = mt
			break
		}
	}

	var picks []*domain.Recipe
	for _, r := range b.recipes {
		if r.MealType == want {
			picks = append(picks, r)
		}
	}
	if len(picks) == 0 {
		return b.Clarify(p)
	}

	f := search.Filters{Dietary: search.ExtractContext(message).Diet}
	if strings.Contains(normalized, "quick") || strings.Contains(normalized, "fast") {
		f.TimeRange = search.TimeQuick
	}
	if narrowed := search.Filter(picks, f); len(narrowed) > 0 {
		picks = narrowed
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	fmt.Fprintf(&sb, "### %s:\n%s", p.SuggestionsTitle, cards(picks, MaxSuggestions))
	fmt.Fprintf(&sb, "\n\n%s", p.AskClarify)
	return sb.String()
}

// TimeAnswer breaks down how long a recipe takes.
func (b *Builder) TimeAnswer(p lang.Pack, recipe *domain.Recipe) string {
	if recipe == nil {
		return b.Clarify(p)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	fmt.Fprintf(&sb, "### %s\n", recipe.NameEN)
	fmt.Fprintf(&sb, "⏱️ Prep: %d min • Cooking: %d min • Total: **%d min**\n",
		recipe.PrepTimeMinutes, recipe.CookingTimeMinutes, recipe.TotalTime())
	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// TipsAnswer shares the recipe's cooking tips, or general kitchen advice
// when the recipe has none.
func (b *Builder) TipsAnswer(p lang.Pack, recipe *domain.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)

	if recipe != nil && len(recipe.CookingTips) > 0 {
		fmt.Fprintf(&sb, "### Tips for %s:\n", recipe.NameEN)
		for _, tip := range recipe.CookingTips {
			fmt.Fprintf(&sb, "• %s\n", tip)
		}
	} else {
		sb.WriteString("### Kitchen tips:\n")
		sb.WriteString("• Read the whole recipe before you start, surprises mid-cook are never good ones.\n")
		sb.WriteString("• Taste as you go and season in small steps.\n")
		sb.WriteString("• A sharp knife is safer than a dull one.\n")
	}

	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// FavoritesAnswer lists the user's saved recipes as cards.
func (b *Builder) FavoritesAnswer(p lang.Pack) string {
	var saved []*domain.Recipe
	if b.favorites != nil {
		for _, r := range b.recipes {
			if b.favorites.IsFavorite(r.Slug) {
				saved = append(saved, r)
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)
	if len(saved) == 0 {
		sb.WriteString("You haven't saved any favorites yet. When you find a dish you love, save it and ask me again!\n")
	} else {
		fmt.Fprintf(&sb, "### Your favorites:\n%s\n", cards(saved, MaxSuggestions))
	}
	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// Clarify asks the user to name a dish when the subject is ambiguous.
func (b *Builder) Clarify(p lang.Pack) string {
	return fmt.Sprintf("%s\n\n%s", p.Greeting, p.AskClarify)
}

// Help is the unknown-intent answer: a short list of example queries.
func (b *Builder) Help(p lang.Pack) string {
	var sb strings.Builder
	sb.WriteString("I'm not sure what you're after, but here's what I'm good at:\n\n")
	sb.WriteString("• \"I have chicken, onions and rice - what can I cook?\"\n")
	sb.WriteString("• \"How do I make Pad Thai?\"\n")
	sb.WriteString("• \"What are the nutrition facts for Shakshuka?\"\n")
	sb.WriteString("• \"Show me healthy swaps for butter and cream\"\n")
	sb.WriteString("• \"Find me a quick vegetarian dinner\"\n")
	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// DebugSummary renders the /debug last diagnostic dump. Always English;
// it is developer-facing output.
func DebugSummary(a *domain.Analysis) string {
	if a == nil || a.LastMessage == "" {
		return "Debug summary: no prior user query captured yet."
	}

	names := "none"
	if len(a.MatchedNames) > 0 {
		names = strings.Join(a.MatchedNames, ", ")
	}
	tokens := "none"
	if len(a.IngredientTokens) > 0 {
		tokens = strings.Join(a.IngredientTokens, ", ")
	}
	path := "Standard recipe guidance"
	if a.PantryMode {
		path = "Pantry mode"
	}
	lastRecipe := "none"
	if a.LastRecipe != "" {
		lastRecipe = a.LastRecipe
	}

	return strings.Join([]string{
		"Debug summary (last request):",
		fmt.Sprintf("• Message: %q", a.LastMessage),
		fmt.Sprintf("• Detected language: %s", a.Language),
		fmt.Sprintf("• Intent: %s", a.Intent),
		fmt.Sprintf("• Path: %s", path),
		fmt.Sprintf("• Ingredient tokens: %s", tokens),
		fmt.Sprintf("• Matched recipes: %d (%s)", a.MatchedCount, names),
		fmt.Sprintf("• Active recipe: %s", lastRecipe),
	}, "\n")
}

// RecipesOf exposes the builder's catalogue to callers that need to reuse
// it for searches.
func (b *Builder) RecipesOf() []*domain.Recipe {
	return b.recipes
}
