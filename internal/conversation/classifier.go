// Package conversation provides intent classification and user
// notification implementations.
package conversation

import (
	"context"
	"regexp"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// Compile-time interface check.
var _ domain.IntentClassifier = (*RuleClassifier)(nil)

// RuleClassifier matches user messages to intents with an ordered list of
// regex rules. Order is the contract: specific questions ("how do I make")
// must win over the broad search fallback, and the classifier tests pin
// the sequence down.
type RuleClassifier struct {
	log   *logger.Logger
	rules []classifierRule
}

type classifierRule struct {
	regex  *regexp.Regexp
	intent domain.IntentType
}

// howToMake is also used to slice the dish phrase out of the message.
var howToMake = regexp.MustCompile(`how (do|can) (i|you|we) (make|cook|prepare)|how to (make|cook|prepare)|(steps|instructions) for`)

// NewRuleClassifier creates the rule-based classifier.
func NewRuleClassifier(log *logger.Logger) *RuleClassifier {
	c := &RuleClassifier{log: log}
	c.rules = []classifierRule{
		// Arabic words sit outside \b (ASCII word boundaries only), so
		// they get an explicit whitespace-or-end bound.
		{regexp.MustCompile(`^(hi|hello|hey|yo|good (morning|afternoon|evening)|bonjour|bonsoir|salut|hallo|hoi|goedemorgen)\b|^(مرحبا|أهلا|اهلا|السلام عليكم)(\s|[!?،؟.]|$)`), domain.IntentGreeting},
		{howToMake, domain.IntentHowToMake},
		{regexp.MustCompile(`what ingredients|what do i need|which ingredients`), domain.IntentIngredients},
		{regexp.MustCompile(`(is|are|does) .*(vegan|vegetarian|gluten[-\s]?free|dairy[-\s]?free|halal|kosher)`), domain.IntentDietaryInfo},
		{regexp.MustCompile(`calorie|\bprotein\b|\bcarbs?\b|\bfat\b|nutrition|\bmacros\b|how healthy`), domain.IntentNutrition},
		{regexp.MustCompile(`substitut|replace|alternative|instead of|\bswaps?\b`), domain.IntentSubstitution},
		{regexp.MustCompile(`\b(breakfast|lunch|dinner|dessert|snack|drink|appetizer)\b`), domain.IntentMealType},
		{regexp.MustCompile(`how long|how much time|\bminutes?\b|duration`), domain.IntentTime},
		{regexp.MustCompile(`\b(tips?|tricks?|advice)\b`), domain.IntentTips},
		{regexp.MustCompile(`favorite|favourite|\bsaved\b|bookmarked`), domain.IntentFavorites},
		// Follow-up sits below every specific question so "what about
		// calories?" still classifies as nutrition. Gated on hasRecipe in
		// Classify.
		{regexp.MustCompile(`^(and|also|what about|how about)\b`), domain.IntentFollowUp},
		{regexp.MustCompile(`(what|which|show|find|give).*(recipe|dish|meal|cook|make|eat)`), domain.IntentSearch},
	}
	return c
}

// Classify maps a message to an intent. First matching rule wins; the
// result depends only on the message and hasRecipe, never on prior calls.
// Messages matching nothing come back as IntentUnknown with the message in
// the payload so the caller can run a last-resort search.
func (c *RuleClassifier) Classify(ctx context.Context, message string, hasRecipe bool) (*domain.Intent, error) {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return &domain.Intent{Type: domain.IntentUnknown}, nil
	}
	normalized := strings.ToLower(trimmed)

	c.log.Debug("classifying message: %q", trimmed)

	for _, rule := range c.rules {
		if !rule.regex.MatchString(normalized) {
			continue
		}
		if rule.intent == domain.IntentFollowUp && !hasRecipe {
			// A continuation word with nothing to continue from is not a
			// follow-up; let the later rules have it.
			continue
		}
		c.log.Debug("matched intent: %s", rule.intent)
		return &domain.Intent{Type: rule.intent, Payload: c.payloadFor(rule.intent, normalized)}, nil
	}

	c.log.Debug("no match, returning unknown intent")
	return &domain.Intent{Type: domain.IntentUnknown, Payload: trimmed}, nil
}

// payloadFor extracts the useful remainder of the message for intents
// that name a subject, e.g. the dish phrase in "how do I make pad thai?".
func (c *RuleClassifier) payloadFor(intent domain.IntentType, normalized string) string {
	switch intent {
	case domain.IntentHowToMake:
		if loc := howToMake.FindStringIndex(normalized); loc != nil {
			return strings.Trim(normalized[loc[1]:], " ?!.")
		}
	case domain.IntentSearch, domain.IntentMealType, domain.IntentDietaryInfo:
		return normalized
	}
	return ""
}
