package search

import (
	"regexp"
	"sort"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
)

// DefaultPantryLimit caps how many pantry suggestions a reply carries.
const DefaultPantryLimit = 4

var (
	pantryPrompt = regexp.MustCompile(`(i have|i've got|only have|what can i cook|cook with|use.*have|using)`)
	cookingWord  = regexp.MustCompile(`cook|make|recipe|idea|suggest`)
)

// IsPantryQuery decides whether a message is a "here's what's in my
// kitchen" query rather than a recipe search. All three conditions must
// hold: a pantry prompt phrase or an ingredient-list shape (a comma, or
// three or more extracted ingredient tokens), a cooking word, and at
// least two extracted ingredient tokens. The gate is deliberately
// conservative so ordinary recipe-name queries never land in pantry mode.
func IsPantryQuery(message string, tokens []string) bool {
	normalized := strings.ToLower(message)
	hasList := strings.Contains(message, ",") || len(tokens) >= 3
	hasPrompt := pantryPrompt.MatchString(normalized)
	mentionsCook := cookingWord.MatchString(normalized)
	return (hasPrompt || hasList) && mentionsCook && len(tokens) >= 2
}

// Context carries dietary and meal hints pulled from the message; the
// pantry matcher uses them to prefer compatible recipes.
type Context struct {
	Diet     string // "vegan" or "vegetarian", "" if unspecified
	MealType string // "soup" or "dessert", "" if unspecified
	Tags     []string
}

// ExtractContext scans a message for dietary and meal-type hints.
func ExtractContext(message string) Context {
	normalized := strings.ToLower(message)
	var ctx Context
	if strings.Contains(normalized, "vegetarian") {
		ctx.Diet = "vegetarian"
	} else if strings.Contains(normalized, "vegan") {
		ctx.Diet = "vegan"
	}
	if glutenFree.MatchString(normalized) {
		ctx.Tags = append(ctx.Tags, "gluten-free")
	}
	if strings.Contains(normalized, "salad") {
		ctx.Tags = append(ctx.Tags, "salad")
	}
	switch {
	case soupWord.MatchString(normalized):
		ctx.MealType = "soup"
	case dessertWord.MatchString(normalized):
		ctx.MealType = "dessert"
	}
	return ctx
}

var (
	glutenFree  = regexp.MustCompile(`gluten[-\s]?free`)
	soupWord    = regexp.MustCompile(`soup|stew|broth`)
	dessertWord = regexp.MustCompile(`dessert|sweet`)
)

// Match is a pantry hit: a recipe and the query tokens that appear in its
// ingredient list. MatchedIngredients is never empty.
type Match struct {
	Recipe             *domain.Recipe
	MatchedIngredients []string
}

// PantryOptions tune FindByIngredients.
type PantryOptions struct {
	Context Context
	Limit   int // 0 means DefaultPantryLimit
}

// FindByIngredients returns the recipes whose ingredient names contain at
// least one of the tokens, ordered by overlap count descending (stable),
// truncated to the limit. When the context names a diet or meal type and
// at least one candidate satisfies it, incompatible candidates are
// dropped; a hint nothing satisfies is ignored rather than emptying the
// results.
func FindByIngredients(recipes []*domain.Recipe, tokens []string, opts PantryOptions) []Match {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultPantryLimit
	}

	var matches []Match
	for _, r := range recipes {
		matched := overlap(r, tokens)
		if len(matched) == 0 {
			continue
		}
		matches = append(matches, Match{Recipe: r, MatchedIngredients: matched})
	}

	matches = preferContext(matches, opts.Context)

	sort.SliceStable(matches, func(i, j int) bool {
		return len(matches[i].MatchedIngredients) > len(matches[j].MatchedIngredients)
	})
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// overlap returns the tokens present in the recipe's ingredient names,
// substring-based, preserving token order and without duplicates.
func overlap(r *domain.Recipe, tokens []string) []string {
	var matched []string
	for _, token := range tokens {
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), token) {
				matched = append(matched, token)
				break
			}
		}
	}
	return matched
}

func preferContext(matches []Match, ctx Context) []Match {
	if ctx.Diet != "" {
		matches = keepIfAny(matches, func(r *domain.Recipe) bool {
			return dietCompatible(r, ctx.Diet)
		})
	}
	if ctx.MealType != "" {
		matches = keepIfAny(matches, func(r *domain.Recipe) bool {
			return mealCompatible(r, ctx.MealType)
		})
	}
	return matches
}

// keepIfAny filters matches down to those satisfying keep, unless none
// does, in which case the input is returned untouched.
func keepIfAny(matches []Match, keep func(*domain.Recipe) bool) []Match {
	var kept []Match
	for _, m := range matches {
		if keep(m.Recipe) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return matches
	}
	return kept
}

func dietCompatible(r *domain.Recipe, diet string) bool {
	switch diet {
	case "vegan":
		return r.DietaryStyle == domain.StyleVegan
	case "vegetarian":
		return r.DietaryStyle == domain.StyleVegan || r.DietaryStyle == domain.StyleVegetarian
	}
	return true
}

func mealCompatible(r *domain.Recipe, mealType string) bool {
	switch mealType {
	case "dessert":
		return r.MealType == domain.MealDessert
	case "soup":
		if hasTag(r, "soup") || hasTag(r, "stew") {
			return true
		}
		return strings.Contains(strings.ToLower(r.NameEN), "soup")
	}
	return true
}

func hasTag(r *domain.Recipe, tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
