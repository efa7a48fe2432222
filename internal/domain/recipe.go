// Package domain defines the core types and interfaces for the chef assistant.
// All other packages depend on domain; domain depends on nothing.
package domain

// Recipe is a single dish in the catalogue. Slug is the stable identifier;
// NameLocal carries the dish name in its language of origin and may differ
// from NameEN.
type Recipe struct {
	Slug               string       `json:"slug"`
	NameEN             string       `json:"name_en"`
	NameLocal          string       `json:"name_local"`
	Country            string       `json:"country"`
	CountrySlug        string       `json:"country_slug"`
	MealType           MealType     `json:"mealType"`
	DietaryStyle       DietaryStyle `json:"dietaryStyle"`
	Difficulty         Difficulty   `json:"difficulty"`
	Tags               []string     `json:"tags"`
	ShortDescription   string       `json:"short_description"`
	Ingredients        []Ingredient `json:"ingredients"`
	Steps              []string     `json:"steps"`
	CookingTips        []string     `json:"cooking_tips,omitempty"`
	PrepTimeMinutes    int          `json:"prep_time_minutes"`
	CookingTimeMinutes int          `json:"cooking_time_minutes"`
	Servings           int          `json:"servings"`
	Nutrition          *Nutrition   `json:"nutrition,omitempty"`
}

// TotalTime is prep plus cooking, in minutes. It is always derived; the
// dataset never stores a total, so the two components can't drift apart.
func (r *Recipe) TotalTime() int {
	return r.PrepTimeMinutes + r.CookingTimeMinutes
}

// Ingredient is one line of a recipe's ingredient list. Amount keeps the
// human formatting from the dataset ("1/2", "2-3"), so it stays a string.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
}

// Nutrition holds per-serving macros. A nil *Nutrition on the recipe means
// the data simply isn't available, which is distinct from zero values.
type Nutrition struct {
	PerServingKcal int `json:"per_serving_kcal"`
	ProteinG       int `json:"protein_g"`
	CarbsG         int `json:"carbs_g"`
	FatG           int `json:"fat_g"`
}

// MealType buckets recipes by when they are eaten.
type MealType string

const (
	MealBreakfast MealType = "Breakfast"
	MealLunch     MealType = "Lunch"
	MealDinner    MealType = "Dinner"
	MealAppetizer MealType = "Appetizer"
	MealDessert   MealType = "Dessert"
	MealDrink     MealType = "Drink"
)

// DietaryStyle is the single dominant dietary label of a recipe.
// StyleNone means no particular style applies.
type DietaryStyle string

const (
	StyleNone        DietaryStyle = "None"
	StyleVegan       DietaryStyle = "Vegan"
	StyleVegetarian  DietaryStyle = "Vegetarian"
	StyleGlutenFree  DietaryStyle = "Gluten Free"
	StyleDairyFree   DietaryStyle = "Dairy Free"
	StyleHighProtein DietaryStyle = "High Protein"
	StyleLowCarb     DietaryStyle = "Low Carb"
)

// Difficulty is the three-level effort scale.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)
