package reply

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/lang"
)

// NutritionNotes renders the macro bullet list for a recipe, the allergen
// line, and a health-advice sentence. Recipes without nutrition data get
// the pack's fixed fallback estimate instead of silence.
func NutritionNotes(recipe *domain.Recipe, p lang.Pack) string {
	var lines []string

	if recipe != nil && recipe.Nutrition != nil {
		n := recipe.Nutrition
		lines = append(lines,
			fmt.Sprintf("• 🔥 %s: **%d kcal** per serving", p.Calories, n.PerServingKcal),
			fmt.Sprintf("• 🥩 %s: **%dg**", p.Protein, n.ProteinG),
			fmt.Sprintf("• 🍞 %s: **%dg**", p.Carbs, n.CarbsG),
			fmt.Sprintf("• 🧈 %s: **%dg**", p.Fat, n.FatG),
		)
	} else {
		lines = append(lines, "• "+p.FallbackNutrition)
	}

	if recipe != nil {
		if allergens := Allergens(recipe); len(allergens) > 0 {
			lines = append(lines, fmt.Sprintf("• ⚠️ Contains: **%s**", strings.Join(allergens, ", ")))
		} else {
			lines = append(lines, "• "+p.NoAllergens)
		}
	}

	lines = append(lines, "• 💡 "+HealthAdvice(recipe))
	return strings.Join(lines, "\n")
}

// HealthAdvice derives a short advice sentence from the macros: a calorie
// bucket, a protein note outside the middle band, and a plant-based note
// when the tags earn it. No recipe or no data gets the generic plate tip.
func HealthAdvice(recipe *domain.Recipe) string {
	if recipe == nil || recipe.Nutrition == nil {
		return "Pro tip: Fill half your plate with veggies, add lean protein, and choose whole grains!"
	}

	var notes []string
	switch kcal := recipe.Nutrition.PerServingKcal; {
	case kcal >= 750:
		notes = append(notes, "Rich dish! Share or pair with a light salad.")
	case kcal >= 450:
		notes = append(notes, "Good energy! Add some veggies on the side.")
	default:
		notes = append(notes, "Light & fresh! Great for a starter or add protein.")
	}

	switch protein := recipe.Nutrition.ProteinG; {
	case protein >= 25:
		notes = append(notes, "Great for muscle recovery!")
	case protein < 12:
		notes = append(notes, "Tip: Add beans or eggs for more protein.")
	}

	for _, t := range recipe.Tags {
		if plantTag.MatchString(t) {
			notes = append(notes, "Plant-based goodness!")
			break
		}
	}

	return strings.Join(notes, " ")
}

var plantTag = regexp.MustCompile(`(?i)vegetarian|vegan`)

// allergenRules map ingredient-name patterns to allergen labels, checked
// in a fixed order so output order is stable.
var allergenRules = []struct {
	label   string
	pattern *regexp.Regexp
	exclude *regexp.Regexp
}{
	{"gluten", regexp.MustCompile(`flour|wheat|bread|pasta|noodle`), nil},
	{"dairy", regexp.MustCompile(`milk|butter|cheese|yogurt|cream|ghee`), nil},
	{"eggs", regexp.MustCompile(`\beggs?\b`), regexp.MustCompile(`eggplant`)},
	{"tree nuts", regexp.MustCompile(`peanut|almond|walnut|cashew|pistachio|nut`), nil},
	{"soy", regexp.MustCompile(`soy|tofu|tempeh`), nil},
	{"shellfish", regexp.MustCompile(`shrimp|prawn|crab|lobster|shellfish`), nil},
	{"fish", regexp.MustCompile(`fish|salmon|tuna|anchov`), nil},
	{"sesame", regexp.MustCompile(`sesame`), nil},
}

// Allergens scans the recipe's ingredient names for the known allergen
// keyword groups. Detection is monotonic: an allergen appears exactly when
// some ingredient name carries one of its keywords.
func Allergens(recipe *domain.Recipe) []string {
	if recipe == nil {
		return nil
	}
	names := make([]string, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		names[i] = strings.ToLower(ing.Name)
	}

	var allergens []string
	for _, rule := range allergenRules {
		for _, name := range names {
			if rule.pattern.MatchString(name) && (rule.exclude == nil || !rule.exclude.MatchString(name)) {
				allergens = append(allergens, rule.label)
				break
			}
		}
	}
	return allergens
}

// swapRules are the healthy substitution suggestions, matched against
// ingredient names.
var swapRules = []struct {
	pattern *regexp.Regexp
	exclude *regexp.Regexp
	text    string
}{
	{regexp.MustCompile(`butter`), nil, "🧈→🫒 Butter → olive oil or avocado (healthier fats)"},
	{regexp.MustCompile(`cream`), nil, "🥛→🥣 Cream → coconut milk or cashew cream (dairy-free)"},
	{regexp.MustCompile(`sugar`), nil, "🍬→🍯 Sugar → honey, maple syrup, or dates (natural sweetness)"},
	{regexp.MustCompile(`white rice`), nil, "🍚→🌾 White rice → cauliflower rice (low-carb) or quinoa (more protein)"},
	{regexp.MustCompile(`pasta`), nil, "🍝→🌾 Regular pasta → whole wheat or chickpea pasta (gluten-free option)"},
	{regexp.MustCompile(`flour`), regexp.MustCompile(`whole`), "🌾→🥥 White flour → almond flour or oat flour (gluten-free options)"},
	{regexp.MustCompile(`beef|lamb`), nil, "🥩→🍗 Red meat → chicken, turkey, or tofu (leaner protein)"},
	{regexp.MustCompile(`salt`), nil, "🧂→🌿 Salt → herbs & lemon zest (reduce sodium, boost flavor)"},
	{regexp.MustCompile(`vegetable oil|canola oil`), nil, "🛢️→🫒 Vegetable oil → extra virgin olive oil (better fats)"},
}

// genericSwaps answer a substitution question asked with no recipe in
// focus.
var genericSwaps = []string{
	"🧈→🫒 Butter → olive oil (heart-healthy fats)",
	"🥛→🥣 Heavy cream → Greek yogurt (less fat, more protein)",
	"🍚→🌾 White rice → quinoa or brown rice (more fiber)",
	"🍝→🥒 Pasta → zucchini noodles (low-carb option)",
}

// Swaps returns the substitution suggestions that apply to the recipe's
// ingredients. A nil recipe gets the generic set; a recipe triggering no
// rule gets a single "already healthy" line.
func Swaps(recipe *domain.Recipe) []string {
	if recipe == nil {
		return genericSwaps
	}

	var swaps []string
	for _, rule := range swapRules {
		for _, ing := range recipe.Ingredients {
			name := strings.ToLower(ing.Name)
			if rule.pattern.MatchString(name) && (rule.exclude == nil || !rule.exclude.MatchString(name)) {
				swaps = append(swaps, rule.text)
				break
			}
		}
	}

	if len(swaps) == 0 {
		return []string{"💡 This recipe looks pretty healthy! Minor tweaks: use less salt, add more veggies."}
	}
	return swaps
}
