package domain

import "context"

// RecipeSource provides recipes. Implementations can be in-memory,
// file-based, or API-backed.
type RecipeSource interface {
	All(ctx context.Context) ([]*Recipe, error)
	BySlug(ctx context.Context, slug string) (*Recipe, error)
	ByName(ctx context.Context, name string) (*Recipe, error)
}

// FavoritesStore exposes the user's saved recipes. The assistant only ever
// reads from it: saving and removing favorites belongs to whatever surface
// owns the store, never to the conversation core.
type FavoritesStore interface {
	IsFavorite(slug string) bool
	All() []string
}

// SessionStore persists chat sessions. Implementations can be in-memory,
// SQLite, or any other backend.
type SessionStore interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*Session, error)
}

// IntentClassifier converts a raw user message into a structured intent.
// hasRecipe reports whether the session currently has a recipe in focus;
// follow-up classification depends on it.
type IntentClassifier interface {
	Classify(ctx context.Context, message string, hasRecipe bool) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout, push notifications, or use text-to-speech.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// SpeechProvider handles voice input/output. Listen records one utterance
// and returns the transcript; Speak sends text through the TTS pipeline in
// the given language. The no-op implementation is used when voice is
// disabled.
type SpeechProvider interface {
	Listen(ctx context.Context) (string, error)
	Speak(ctx context.Context, text, language string) error
}
