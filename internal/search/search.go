package search

import (
	"sort"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
)

// Scoring weights per query term. Tag matches weigh 3, same as ingredients;
// the app shipped both 2 and 3 at different points and 3 is the variant the
// search helper settled on.
const (
	weightName        = 5
	weightCountry     = 4
	weightIngredient  = 3
	weightTag         = 3
	weightDifficulty  = 2
	weightDescription = 1
)

// Result pairs a recipe with its relevance score.
type Result struct {
	Recipe *domain.Recipe
	Score  int
}

// Search scores every recipe against the query terms and returns the hits
// ordered by descending score. Ties keep the input order (the sort is
// stable). Recipes scoring zero are excluded. An empty or whitespace-only
// query is the browse case: every recipe comes back unscored, in input
// order.
func Search(recipes []*domain.Recipe, query string) []Result {
	if strings.TrimSpace(query) == "" {
		all := make([]Result, len(recipes))
		for i, r := range recipes {
			all[i] = Result{Recipe: r}
		}
		return all
	}

	terms := Tokenize(query)
	var results []Result
	for _, r := range recipes {
		if score := matchScore(r, terms); score > 0 {
			results = append(results, Result{Recipe: r, Score: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

func matchScore(r *domain.Recipe, terms []string) int {
	name := strings.ToLower(r.NameEN)
	country := strings.ToLower(r.Country)
	desc := strings.ToLower(r.ShortDescription)

	score := 0
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += weightName
		}
		if strings.Contains(country, term) {
			score += weightCountry
		}
		if strings.Contains(r.CountrySlug, term) {
			score += weightCountry
		}
		for _, ing := range r.Ingredients {
			if strings.Contains(strings.ToLower(ing.Name), term) {
				score += weightIngredient
				break
			}
		}
		for _, tag := range r.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				score += weightTag
				break
			}
		}
		if strings.Contains(desc, term) {
			score += weightDescription
		}
		if string(r.Difficulty) == term {
			score += weightDifficulty
		}
	}
	return score
}

// Recipes strips the scores off a result slice.
func Recipes(results []Result) []*domain.Recipe {
	recipes := make([]*domain.Recipe, len(results))
	for i, res := range results {
		recipes[i] = res.Recipe
	}
	return recipes
}
