// Package reply assembles the assistant's answers. Every reply is plain
// text with light markdown-ish structure plus the markup directives for
// recipe references; rendering is the display layer's problem.
package reply

import (
	"fmt"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/lang"
	"github.com/khalilmezni/chefsense/internal/logger"
	"github.com/khalilmezni/chefsense/internal/markup"
	"github.com/khalilmezni/chefsense/internal/search"
)

// MaxSwapsDisplayed caps the swap section; MaxSuggestions caps the
// related-recipe cards.
const (
	MaxSwapsDisplayed = 3
	MaxSuggestions    = 4
)

// Builder assembles replies from the loaded catalogue and the phrase pack
// of the detected language.
type Builder struct {
	recipes   []*domain.Recipe
	favorites domain.FavoritesStore
	log       *logger.Logger
}

// NewBuilder creates a reply builder over the catalogue.
func NewBuilder(recipes []*domain.Recipe, favorites domain.FavoritesStore, log *logger.Logger) *Builder {
	return &Builder{recipes: recipes, favorites: favorites, log: log}
}

// Structured is the main full-form answer: greeting, recipe identity,
// numbered steps, nutrition, swaps, suggestions, closing question. A nil
// recipe degrades to generic steps built from the message.
func (b *Builder) Structured(p lang.Pack, message string, recipe *domain.Recipe, results []search.Result) string {
	steps := b.recipeSteps(message, recipe)
	swaps := Swaps(recipe)
	suggestions := b.suggestions(message, recipe, results)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n\n", p.Greeting)

	if recipe != nil {
		sb.WriteString(identityBlock(recipe))
	}

	fmt.Fprintf(&sb, "### %s:\n", p.StepsTitle)
	for i, step := range steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}

	fmt.Fprintf(&sb, "\n### %s:\n%s\n", p.NutritionTitle, NutritionNotes(recipe, p))

	if len(swaps) > 0 {
		fmt.Fprintf(&sb, "\n### %s:\n", p.SwapsTitle)
		for _, s := range capped(swaps, MaxSwapsDisplayed) {
			sb.WriteString(s + "\n")
		}
	}

	if suggestions != "" {
		fmt.Fprintf(&sb, "\n### %s:\n%s", p.SuggestionsTitle, suggestions)
	}

	fmt.Fprintf(&sb, "\n\n%s", p.AskClarify)
	return sb.String()
}

// identityBlock is the one-line recipe summary under the dish name.
func identityBlock(r *domain.Recipe) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n", r.NameEN)
	fmt.Fprintf(&sb, "🌍 %s • 🍽️ %s • ⏱️ %d min • 📊 %s", r.Country, r.MealType, r.TotalTime(), r.Difficulty)
	if r.DietaryStyle != "" && r.DietaryStyle != domain.StyleNone {
		fmt.Fprintf(&sb, " • 🥗 %s", r.DietaryStyle)
	}
	sb.WriteString("\n\n")
	return sb.String()
}

// recipeSteps returns the recipe's steps, or the generic template when
// there is no recipe to draw on.
func (b *Builder) recipeSteps(message string, recipe *domain.Recipe) []string {
	if recipe == nil || len(recipe.Steps) == 0 {
		return GenericSteps(message)
	}
	return recipe.Steps
}

// GenericSteps is the no-recipe fallback: a three-step outline anchored on
// the first clause of the user's message.
func GenericSteps(message string) []string {
	focus := "your dish"
	if message != "" {
		if clause := strings.FieldsFunc(message, func(r rune) bool {
			return r == '.' || r == '!' || r == '?'
		}); len(clause) > 0 && strings.TrimSpace(clause[0]) != "" {
			focus = strings.TrimSpace(clause[0])
		}
	}
	return []string{
		fmt.Sprintf("Gather the core ingredients for %s and keep a clean station ready.", focus),
		"Preheat, chop, and season early so cooking stays smooth.",
		"Cook with gentle heat, taste often, and finish with fresh herbs or citrus.",
	}
}

// suggestions renders up to MaxSuggestions recipe cards: search hits
// first, then recipes similar to the one in focus, then two random picks
// so the section is never empty.
func (b *Builder) suggestions(message string, recipe *domain.Recipe, results []search.Result) string {
	if len(results) == 0 {
		results = search.Search(b.recipes, message)
	}
	if len(results) > 0 {
		return cards(search.Recipes(results), MaxSuggestions)
	}

	if recipe != nil {
		if alternates := search.Similar(b.recipes, recipe, 3); len(alternates) > 0 {
			return cards(alternates, 3)
		}
	}

	return cards(search.Random(b.recipes, 2), 2)
}

// cards renders recipe card directives, one per line.
func cards(recipes []*domain.Recipe, limit int) string {
	lines := make([]string, 0, limit)
	for _, r := range recipes {
		if len(lines) == limit {
			break
		}
		lines = append(lines, card(r))
	}
	return strings.Join(lines, "\n")
}

func card(r *domain.Recipe) string {
	return markup.Card{
		Slug:     r.Slug,
		Name:     r.NameEN,
		Country:  r.Country,
		MealType: string(r.MealType),
		Time:     fmt.Sprintf("%d min", r.TotalTime()),
	}.Encode()
}

func capped(items []string, limit int) []string {
	if len(items) > limit {
		return items[:limit]
	}
	return items
}
