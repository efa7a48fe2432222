package domain

// IntentType classifies what the user wants to do.
type IntentType int

const (
	IntentUnknown IntentType = iota
	IntentGreeting
	IntentHowToMake
	IntentIngredients
	IntentDietaryInfo
	IntentNutrition
	IntentSubstitution
	IntentMealType
	IntentTime
	IntentTips
	IntentFavorites
	IntentFollowUp // continuation question about the current recipe
	IntentPantry   // "what can I cook with X, Y, Z"
	IntentSearch   // free-text recipe search, the fallback intent
	IntentDebug    // "/debug last" diagnostic dump
)

// String returns a human-readable intent type.
func (i IntentType) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentHowToMake:
		return "how_to_make"
	case IntentIngredients:
		return "ingredients"
	case IntentDietaryInfo:
		return "dietary_info"
	case IntentNutrition:
		return "nutrition"
	case IntentSubstitution:
		return "substitution"
	case IntentMealType:
		return "meal_type"
	case IntentTime:
		return "time"
	case IntentTips:
		return "tips"
	case IntentFavorites:
		return "favorites"
	case IntentFollowUp:
		return "follow_up"
	case IntentPantry:
		return "pantry"
	case IntentSearch:
		return "search"
	case IntentDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// Intent represents a classified user message.
type Intent struct {
	Type    IntentType
	Payload string // optional context, e.g. the dish phrase for how_to_make
}
