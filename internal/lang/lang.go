// Package lang detects the language of user messages and carries the
// static phrase packs used to assemble replies. Detection is keyword
// profiling, not real language identification: good enough to pick the
// right pack, nothing more.
package lang

import (
	"regexp"
	"strings"
)

// Language is an ISO 639-1 style code for one of the supported languages.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
	Dutch   Language = "nl"
	Arabic  Language = "ar"
)

// RTL reports whether the language is written right-to-left.
func (l Language) RTL() bool {
	return l == Arabic
}

// arabicScript matches any character in the Arabic Unicode block.
var arabicScript = regexp.MustCompile(`[\x{0600}-\x{06FF}]`)

// profiles are checked in order after the script test; first hit wins.
var profiles = []struct {
	lang    Language
	pattern *regexp.Regexp
}{
	{French, regexp.MustCompile(`(bonjour|merci|recette|cuisine|ingrédient|étape|bonsoir)`)},
	{Dutch, regexp.MustCompile(`(hallo|dank|recept|keuken|ingrediënt|stap|eten)`)},
	{English, regexp.MustCompile(`(hello|hi|please|recipe|cook|step|thanks)`)},
}

// Detect picks the language of a message. Any Arabic-script character wins
// immediately; otherwise the keyword profiles decide, and English is the
// fallback for text that matches none of them.
func Detect(text string) Language {
	if arabicScript.MatchString(text) {
		return Arabic
	}
	normalized := strings.ToLower(text)
	for _, p := range profiles {
		if p.pattern.MatchString(normalized) {
			return p.lang
		}
	}
	return English
}
