package speech

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*SpeakingNotifier)(nil)

// SpeakingNotifier wraps a text notifier and also speaks messages through the Mouth.
// Messages are printed immediately (via the inner notifier) and queued for speech
// in the notifier's current language.
type SpeakingNotifier struct {
	text  domain.Notifier
	mouth *Mouth
	log   *logger.Logger

	mu       sync.Mutex
	language string
}

// NewSpeakingNotifier creates a notifier that both prints and speaks.
func NewSpeakingNotifier(text domain.Notifier, mouth *Mouth, log *logger.Logger) *SpeakingNotifier {
	return &SpeakingNotifier{
		text:     text,
		mouth:    mouth,
		log:      log,
		language: "en",
	}
}

// SetLanguage switches the spoken-output language. Called after each
// exchange so notifications follow the conversation's language.
func (n *SpeakingNotifier) SetLanguage(language string) {
	n.mu.Lock()
	n.language = language
	n.mu.Unlock()
}

func (n *SpeakingNotifier) currentLanguage() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.language
}

// Notify prints the message and queues it for speech at normal priority.
func (n *SpeakingNotifier) Notify(ctx context.Context, message string) error {
	if err := n.text.Notify(ctx, message); err != nil {
		return err
	}
	n.mouth.Say(cleanForSpeech(message), n.currentLanguage(), PriorityNormal)
	return nil
}

// NotifyUrgent prints the message and queues it for speech at high priority.
func (n *SpeakingNotifier) NotifyUrgent(ctx context.Context, message string) error {
	if err := n.text.NotifyUrgent(ctx, message); err != nil {
		return err
	}
	n.mouth.Say(cleanForSpeech(message), n.currentLanguage(), PriorityHigh)
	return nil
}

// cleanForSpeech strips formatting artifacts that shouldn't be spoken.
// Recipe link/card directives and markdown are handled by SpeakableText
// inside the Mouth; this covers log-style prefixes and ANSI codes.
var bracketPrefix = regexp.MustCompile(`^\[[A-Za-z]+\]\s*`)
var ansiCodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func cleanForSpeech(msg string) string {
	cleaned := ansiCodes.ReplaceAllString(msg, "")
	cleaned = bracketPrefix.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)
	return cleaned
}
