// Package speech — lines.go centralises every spoken string.
// Edit this file to change ChefSense's personality. Keep lines short and
// direct; the TTS engine handles inflection.
package speech

import (
	"math/rand"
	"regexp"
	"strings"
)

// ── Greeting / Global ────────────────────────────────────────────

func LineBye() string {
	return "Bye."
}

func LineShutdown() string {
	return "Shutting down."
}

func LineNothingToRepeat() string {
	return "I haven't said anything yet."
}

// ── Voice input guidance ─────────────────────────────────────────
// Shown (and spoken) when voice capture fails, so the user knows what
// went wrong and what to do about it.

func LineMicDenied() string {
	return "Microphone access denied. Please allow microphone access."
}

func LineNoSpeech() string {
	return "No speech detected. Please try again."
}

func LineNetworkError() string {
	return "Network error. Please check your connection."
}

func LineVoiceCancelled() string {
	return "Voice input cancelled."
}

func LineNoMicrophone() string {
	return "No microphone found. Please check your device."
}

func LineVoiceBusy() string {
	return "Voice input busy. Please wait and try again."
}

func LineVoiceError() string {
	return "Voice input error. Please try again."
}

// ── Listening acknowledgment ─────────────────────────────────────
// Spoken when voice capture starts, so the user knows they've been
// heard and should start talking.

var listeningFillers = []string{
	"I'm listening.",
	"Listening.",
	"Yes chef?",
	"What do you need?",
	"I'm here.",
	"What's up?",
	"Yes?",
}

// LineListening returns a random acknowledgment for when voice capture
// starts.
func LineListening() string {
	return listeningFillers[rand.Intn(len(listeningFillers))]
}

// ListeningFillers returns all listening acknowledgment strings so
// they can be prefetched into the TTS cache at startup.
func ListeningFillers() []string {
	out := make([]string, len(listeningFillers))
	copy(out, listeningFillers)
	return out
}

// ── Text preparation ─────────────────────────────────────────────

// Assistant replies carry recipe link and card directives plus markdown
// decoration. None of that should reach the synthesizer.
var (
	directivePattern = regexp.MustCompile(`\[RECIPE_(?:LINK|CARD):[^\]]*\]`)
	headerPattern    = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	spacesPattern    = regexp.MustCompile(`[ \t]{2,}`)
)

// SpeakableText strips markup directives, markdown decoration, and emoji
// from reply text, leaving plain sentences suitable for TTS.
func SpeakableText(text string) string {
	text = directivePattern.ReplaceAllString(text, "")
	text = headerPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "**", "")

	var b strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t•-")
		line = stripSymbols(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(line)
	}
	return strings.TrimSpace(spacesPattern.ReplaceAllString(b.String(), " "))
}

// stripSymbols drops emoji and dingbat runes that TTS engines read out
// loud ("warning sign", "star", ...).
func stripSymbols(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 0x1F000: // emoji blocks
			return -1
		case r >= 0x2190 && r <= 0x2BFF: // arrows, dingbats, misc symbols
			return -1
		case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
			return -1
		}
		return r
	}, s)
}
