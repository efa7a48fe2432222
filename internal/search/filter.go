package search

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
)

// TimeRange buckets recipes by total time.
type TimeRange string

const (
	TimeQuick  TimeRange = "quick"  // under 30 minutes
	TimeMedium TimeRange = "medium" // 30 to 60 minutes
	TimeLong   TimeRange = "long"   // over 60 minutes
)

// Filters narrow a recipe list by fixed criteria. Zero values mean "don't
// filter on this".
type Filters struct {
	Country    string
	Difficulty domain.Difficulty
	Dietary    string // tag match, e.g. "vegetarian"
	TimeRange  TimeRange
}

// Filter applies each set criterion in turn, preserving input order.
func Filter(recipes []*domain.Recipe, f Filters) []*domain.Recipe {
	results := recipes
	if f.Country != "" {
		want := strings.ToLower(f.Country)
		results = keep(results, func(r *domain.Recipe) bool {
			return strings.ToLower(r.Country) == want || r.CountrySlug == want
		})
	}
	if f.Difficulty != "" {
		results = keep(results, func(r *domain.Recipe) bool {
			return r.Difficulty == f.Difficulty
		})
	}
	if f.Dietary != "" {
		results = keep(results, func(r *domain.Recipe) bool {
			return hasTag(r, f.Dietary)
		})
	}
	if f.TimeRange != "" {
		results = keep(results, func(r *domain.Recipe) bool {
			total := r.TotalTime()
			switch f.TimeRange {
			case TimeQuick:
				return total < 30
			case TimeMedium:
				return total >= 30 && total <= 60
			case TimeLong:
				return total > 60
			}
			return true
		})
	}
	return results
}

func keep(recipes []*domain.Recipe, pred func(*domain.Recipe) bool) []*domain.Recipe {
	var kept []*domain.Recipe
	for _, r := range recipes {
		if pred(r) {
			kept = append(kept, r)
		}
	}
	return kept
}

// Similar ranks the other recipes by affinity with the reference: same
// country scores 2, same difficulty 1, plus 1 per shared tag. Returns at
// most limit recipes, best first; zero-affinity recipes still count, which
// keeps the list full for sparse catalogues.
func Similar(recipes []*domain.Recipe, ref *domain.Recipe, limit int) []*domain.Recipe {
	type scored struct {
		recipe *domain.Recipe
		score  int
	}
	var candidates []scored
	for _, r := range recipes {
		if r.Slug == ref.Slug {
			continue
		}
		score := 0
		if r.CountrySlug == ref.CountrySlug {
			score += 2
		}
		if r.Difficulty == ref.Difficulty {
			score++
		}
		for _, t := range r.Tags {
			if hasTag(ref, t) {
				score++
			}
		}
		candidates = append(candidates, scored{r, score})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]*domain.Recipe, len(candidates))
	for i, c := range candidates {
		out[i] = c.recipe
	}
	return out
}

// Random picks count recipes at random without mutating the input.
func Random(recipes []*domain.Recipe, count int) []*domain.Recipe {
	shuffled := make([]*domain.Recipe, len(recipes))
	copy(shuffled, recipes)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > count {
		shuffled = shuffled[:count]
	}
	return shuffled
}
