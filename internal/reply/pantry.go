package reply

import (
	"fmt"
	"strings"

	"github.com/khalilmezni/chefsense/internal/lang"
	"github.com/khalilmezni/chefsense/internal/markup"
	"github.com/khalilmezni/chefsense/internal/search"
)

// Pantry renders the "here's what you can cook with that" answer: every
// match with its overlap and a link, then full steps for the best match.
// Callers guarantee matches is non-empty; the empty case goes through
// PantryFallback instead.
func (b *Builder) Pantry(p lang.Pack, tokens []string, matches []search.Match) string {
	best := matches[0].Recipe

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s **%s**! 🎉\n\n", p.PantryIntro, strings.Join(tokens, ", "))

	fmt.Fprintf(&sb, "### %s:\n", p.PantryMatchesTitle)
	for i, m := range matches {
		r := m.Recipe
		bestLabel := ""
		if i == 0 {
			bestLabel = fmt.Sprintf(" ⭐ %s", p.BestMatch)
		}
		fmt.Fprintf(&sb, "**%d. %s** (%s)%s\n", i+1, r.NameEN, r.Country, bestLabel)
		fmt.Fprintf(&sb, "   ⏱️ %d min • 📊 %s", r.TotalTime(), r.Difficulty)
		if r.Nutrition != nil {
			fmt.Fprintf(&sb, " • 🔥 %d kcal", r.Nutrition.PerServingKcal)
		}
		sb.WriteString("\n")
		if len(m.MatchedIngredients) > 0 {
			fmt.Fprintf(&sb, "   Uses: %s\n", strings.Join(m.MatchedIngredients, ", "))
		}
		fmt.Fprintf(&sb, "   %s\n\n", markup.Link{Slug: r.Slug, Text: "👉 View full recipe"}.Encode())
	}

	fmt.Fprintf(&sb, "### %s for %s:\n", p.StepsTitle, best.NameEN)
	for i, step := range best.Steps {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, step)
	}

	fmt.Fprintf(&sb, "\n### %s:\n%s\n", p.NutritionTitle, NutritionNotes(best, p))

	if swaps := Swaps(best); len(swaps) > 0 {
		fmt.Fprintf(&sb, "\n### %s:\n", p.SwapsTitle)
		for _, s := range capped(swaps, MaxSwapsDisplayed) {
			sb.WriteString(s + "\n")
		}
	}

	fmt.Fprintf(&sb, "\n%s", p.AskClarify)
	return sb.String()
}

// PantryFallback answers a pantry query that matched nothing: a generic
// stir-fry outline so the user still leaves with something to cook.
func (b *Builder) PantryFallback(p lang.Pack, tokens []string) string {
	genericIdea := []string{
		"1. Stir-fry aromatics, add your protein, then fold in grains or legumes.",
		"2. Season with spices you enjoy, add a splash of stock or water to bring it together.",
		"3. Finish with herbs, lemon, or yogurt for freshness.",
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s, but %s\n\n", p.PantryIntro, strings.Join(tokens, ", "), p.NoMatches)
	fmt.Fprintf(&sb, "### %s:\n%s\n\n", p.StepsTitle, strings.Join(genericIdea, "\n"))
	fmt.Fprintf(&sb, "### %s:\n", p.NutritionTitle)
	fmt.Fprintf(&sb, "%s: %s\n", p.NutritionSummaryLead, HealthAdvice(nil))
	sb.WriteString("Allergen watch: if your list includes nuts, dairy, eggs, or wheat, keep substitutions handy.\n")
	sb.WriteString(p.AskClarify)
	return sb.String()
}
