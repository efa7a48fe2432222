package conversation

import (
	"context"
	"testing"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/logger"
)

func newTestClassifier() *RuleClassifier {
	return NewRuleClassifier(logger.New(logger.LevelOff, nil))
}

func TestClassifyIntents(t *testing.T) {
	c := newTestClassifier()
	ctx := context.Background()

	tests := []struct {
		name      string
		message   string
		hasRecipe bool
		want      domain.IntentType
	}{
		{"greeting", "hello there", false, domain.IntentGreeting},
		{"greeting french", "bonjour chef", false, domain.IntentGreeting},
		{"greeting dutch", "hallo, wat eten we?", false, domain.IntentGreeting},
		{"greeting arabic", "مرحبا", false, domain.IntentGreeting},
		{"greeting arabic with tail", "مرحبا يا شيف", false, domain.IntentGreeting},
		{"how to make", "how do I make pad thai?", false, domain.IntentHowToMake},
		{"how to prepare", "how to prepare shakshuka", false, domain.IntentHowToMake},
		{"steps for", "steps for baklava please", false, domain.IntentHowToMake},
		{"ingredients", "what ingredients do I need?", false, domain.IntentIngredients},
		{"dietary", "is this vegan?", false, domain.IntentDietaryInfo},
		{"dietary gluten", "is falafel gluten-free?", false, domain.IntentDietaryInfo},
		{"nutrition", "how many calories does it have?", false, domain.IntentNutrition},
		{"substitution", "what can I use instead of butter?", false, domain.IntentSubstitution},
		{"meal type", "what's good for breakfast?", false, domain.IntentMealType},
		{"time", "how long does it take?", false, domain.IntentTime},
		{"tips", "any tips for this?", false, domain.IntentTips},
		{"favorites", "show my favorite recipes", false, domain.IntentFavorites},
		{"follow-up with recipe", "and how about the sauce?", true, domain.IntentFollowUp},
		{"search", "show me a chicken recipe", false, domain.IntentSearch},
		{"unknown", "flibbertigibbet", false, domain.IntentUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent, err := c.Classify(ctx, tt.message, tt.hasRecipe)
			if err != nil {
				t.Fatalf("classify: %v", err)
			}
			if intent.Type != tt.want {
				t.Fatalf("Classify(%q) = %s, want %s", tt.message, intent.Type, tt.want)
			}
		})
	}
}

func TestClassifyFollowUpGatedOnRecipe(t *testing.T) {
	c := newTestClassifier()
	ctx := context.Background()

	// With a recipe in play, a continuation word is a follow-up.
	intent, err := c.Classify(ctx, "what about something spicy to eat", true)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Type != domain.IntentFollowUp {
		t.Fatalf("with recipe: got %s, want follow_up", intent.Type)
	}

	// Without one, the same message falls through to search.
	intent, err = c.Classify(ctx, "what about something spicy to eat", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Type != domain.IntentSearch {
		t.Fatalf("without recipe: got %s, want search", intent.Type)
	}
}

func TestClassifySpecificBeatsFollowUp(t *testing.T) {
	c := newTestClassifier()

	// "what about calories?" starts with a continuation word but names
	// nutrition, and the nutrition rule sits above follow-up.
	intent, err := c.Classify(context.Background(), "what about calories?", true)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Type != domain.IntentNutrition {
		t.Fatalf("got %s, want nutrition", intent.Type)
	}
}

func TestClassifyPayloads(t *testing.T) {
	c := newTestClassifier()
	ctx := context.Background()

	intent, err := c.Classify(ctx, "How do I make Pad Thai?", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Payload != "pad thai" {
		t.Fatalf("how-to payload = %q, want %q", intent.Payload, "pad thai")
	}

	intent, err = c.Classify(ctx, "show me a chicken recipe", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Payload != "show me a chicken recipe" {
		t.Fatalf("search payload = %q", intent.Payload)
	}

	intent, err = c.Classify(ctx, "gibberish input here", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Type != domain.IntentUnknown || intent.Payload != "gibberish input here" {
		t.Fatalf("unknown payload = %q", intent.Payload)
	}
}

func TestClassifyEmptyMessage(t *testing.T) {
	c := newTestClassifier()
	intent, err := c.Classify(context.Background(), "   ", false)
	if err != nil {
		t.Fatalf("classify: %v", err)
	}
	if intent.Type != domain.IntentUnknown {
		t.Fatalf("got %s, want unknown", intent.Type)
	}
}
