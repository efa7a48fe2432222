// Package search implements the scored free-text recipe search, the
// ingredient-driven pantry matcher, and the browse filters. Everything here
// is pure: functions take the recipe slice and return slices, no state.
package search

import (
	"regexp"
	"strings"
)

var termSplit = regexp.MustCompile(`[,\s]+`)

// Tokenize lower-cases the text and splits it on commas and whitespace,
// dropping empty terms.
func Tokenize(text string) []string {
	raw := termSplit.Split(strings.ToLower(text), -1)
	terms := make([]string, 0, len(raw))
	for _, t := range raw {
		if t != "" {
			terms = append(terms, t)
		}
	}
	return terms
}

// stopWords are prompt scaffolding that never names an ingredient. The list
// only needs to cover the pantry phrasings; anything else passing through
// just fails to match an ingredient and scores nothing.
var stopWords = map[string]struct{}{
	"i": {}, "i've": {}, "we": {}, "you": {}, "me": {}, "my": {},
	"have": {}, "got": {}, "only": {}, "just": {}, "some": {},
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "of": {},
	"with": {}, "using": {}, "use": {}, "to": {}, "for": {}, "in": {},
	"what": {}, "which": {}, "how": {}, "can": {}, "could": {}, "should": {},
	"do": {}, "does": {}, "is": {}, "are": {}, "it": {}, "any": {},
	"cook": {}, "make": {}, "prepare": {}, "recipe": {}, "recipes": {},
	"dish": {}, "meal": {}, "idea": {}, "ideas": {}, "suggest": {},
	"suggestion": {}, "suggestions": {}, "something": {}, "anything": {},
	"please": {}, "show": {}, "find": {}, "give": {}, "want": {},
	"tonight": {}, "today": {}, "dinner": {}, "lunch": {}, "breakfast": {},
	"quick": {}, "easy": {}, "healthy": {}, "left": {}, "leftover": {},
	"fridge": {}, "pantry": {}, "kitchen": {}, "home": {}, "at": {},
}

// ExtractIngredientTokens pulls the candidate ingredient words out of a
// pantry-style message: tokenized, punctuation-trimmed, stop words removed.
// "I only have chicken, onions and rice - what can I cook?" yields
// [chicken onions rice].
func ExtractIngredientTokens(message string) []string {
	var tokens []string
	for _, t := range Tokenize(message) {
		t = strings.TrimFunc(t, func(r rune) bool {
			return !isWordRune(r)
		})
		if len(t) < 2 {
			continue
		}
		if _, skip := stopWords[t]; skip {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '\'' || r == '-' ||
		(r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r > 127
}
