// Package markup defines the inline directives replies embed for recipe
// references. Directives are the conversation core's only wire format:
// the presentation layer expands them into links and cards, and every
// encoded directive must parse back to the same value.
package markup

import (
	"fmt"
	"strings"
)

const (
	linkPrefix = "[RECIPE_LINK:"
	cardPrefix = "[RECIPE_CARD:"
)

// Directive is an inline recipe reference embedded in reply text.
type Directive interface {
	Encode() string
}

// Link points at a recipe with custom link text.
// Encodes as [RECIPE_LINK:slug:text].
type Link struct {
	Slug string
	Text string
}

// Encode renders the directive. Field values are sanitized so the result
// always parses back to an equal Link.
func (l Link) Encode() string {
	return fmt.Sprintf("[RECIPE_LINK:%s:%s]", clean(l.Slug), clean(l.Text))
}

// Card is a compact recipe preview.
// Encodes as [RECIPE_CARD:slug:name:country:mealType:time].
type Card struct {
	Slug     string
	Name     string
	Country  string
	MealType string
	Time     string // human-formatted, e.g. "45 min"
}

// Encode renders the directive. Field values are sanitized so the result
// always parses back to an equal Card.
func (c Card) Encode() string {
	return fmt.Sprintf("[RECIPE_CARD:%s:%s:%s:%s:%s]",
		clean(c.Slug), clean(c.Name), clean(c.Country), clean(c.MealType), clean(c.Time))
}

// clean strips the characters that carry structure in the directive
// syntax. Slugs and recipe names never contain them in practice; this
// guards the round-trip if one ever does.
func clean(s string) string {
	return strings.NewReplacer(":", "", "[", "", "]", "", "\n", " ").Replace(s)
}

// Parse recognizes a directive occupying the whole (trimmed) string and
// returns it, or nil when the string is not a well-formed directive.
func Parse(s string) Directive {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, "]") {
		return nil
	}
	switch {
	case strings.HasPrefix(s, linkPrefix):
		body := s[len(linkPrefix) : len(s)-1]
		parts := strings.SplitN(body, ":", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil
		}
		return Link{Slug: parts[0], Text: parts[1]}
	case strings.HasPrefix(s, cardPrefix):
		body := s[len(cardPrefix) : len(s)-1]
		parts := strings.Split(body, ":")
		if len(parts) != 5 || parts[0] == "" {
			return nil
		}
		return Card{
			Slug:     parts[0],
			Name:     parts[1],
			Country:  parts[2],
			MealType: parts[3],
			Time:     parts[4],
		}
	}
	return nil
}
