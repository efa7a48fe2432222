package domain

import "time"

// Session is one chat conversation. History is append-only: turns are
// recorded in order and never rewritten, so the transcript is a faithful
// log of the exchange.
type Session struct {
	ID            string
	Language      string // last detected language code: en, fr, nl, ar
	CurrentRecipe string // slug of the recipe under discussion, "" if none
	History       []Turn
	LastAnalysis  *Analysis
	Status        SessionStatus
	StartedAt     time.Time
	UpdatedAt     time.Time
}

// AddTurn appends a turn and bumps UpdatedAt.
func (s *Session) AddTurn(role Role, content, language string) {
	now := time.Now()
	s.History = append(s.History, Turn{
		Role:     role,
		Content:  content,
		Language: language,
		At:       now,
	})
	s.UpdatedAt = now
}

// Turn is a single message in the transcript.
type Turn struct {
	Role     Role
	Content  string
	Language string
	At       time.Time
}

// Role identifies who produced a turn.
type Role int

const (
	RoleUser Role = iota
	RoleAssistant
	RoleSystem
)

// String returns a human-readable role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	case RoleSystem:
		return "system"
	default:
		return "unknown"
	}
}

// SessionStatus tracks the lifecycle of a chat session.
type SessionStatus int

const (
	SessionActive SessionStatus = iota
	SessionFailed // recipe data never loaded; input is refused
	SessionClosed
)

// String returns a human-readable session status.
func (s SessionStatus) String() string {
	switch s {
	case SessionActive:
		return "active"
	case SessionFailed:
		return "failed"
	case SessionClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Analysis is the diagnostic snapshot of the most recent exchange,
// rendered verbatim by the /debug last command.
type Analysis struct {
	LastMessage      string
	Intent           IntentType
	Language         string
	PantryMode       bool
	IngredientTokens []string
	MatchedCount     int
	MatchedNames     []string // capped at 5 by the recorder
	LastRecipe       string   // slug, "" if none
}
