package lang

// Pack is the set of fixed phrases a reply is assembled from. The packs are
// static: templates with slots filled by recipe data, never translated at
// runtime.
type Pack struct {
	Greeting             string
	StepsTitle           string
	NutritionTitle       string
	SwapsTitle           string
	AllergenTitle        string
	SuggestionsTitle     string
	Calories             string
	Protein              string
	Carbs                string
	Fat                  string
	FallbackNutrition    string
	NoAllergens          string
	AskClarify           string
	PantryIntro          string
	PantryMatchesTitle   string
	BestMatch            string
	NoMatches            string
	NutritionSummaryLead string
}

var packs = map[Language]Pack{
	English: {
		Greeting:             "👨‍🍳 Chef's tip coming right up!",
		StepsTitle:           "Let me walk you through it",
		NutritionTitle:       "Nutrition breakdown",
		SwapsTitle:           "Healthy swaps I recommend",
		AllergenTitle:        "Heads up on allergens",
		SuggestionsTitle:     "More tasty ideas for you",
		Calories:             "Calories",
		Protein:              "Protein",
		Carbs:                "Carbs",
		Fat:                  "Fat",
		FallbackNutrition:    "Roughly 520 kcal per serving with balanced macros.",
		NoAllergens:          "Looks allergy-friendly! No common allergens spotted.",
		AskClarify:           "What else can I help you cook today?",
		PantryIntro:          "Great ingredients! Here is what we can make",
		PantryMatchesTitle:   "My top picks for you",
		BestMatch:            "Chef's choice",
		NoMatches:            "Hmm, tricky combo! But let me suggest some flexible ideas.",
		NutritionSummaryLead: "Quick nutrition facts",
	},
	French: {
		Greeting:             "Voici un plan clair et professionnel :",
		StepsTitle:           "Instructions étape par étape",
		NutritionTitle:       "Notes nutrition & santé",
		SwapsTitle:           "Substituts plus sains",
		AllergenTitle:        "Allergènes à surveiller",
		SuggestionsTitle:     "Recettes correspondantes",
		Calories:             "Calories",
		Protein:              "Protéines",
		Carbs:                "Glucides",
		Fat:                  "Lipides",
		FallbackNutrition:    "Calories estimées : ~520 kcal avec un équilibre en macronutriments.",
		NoAllergens:          "Aucun allergène majeur détecté parmi les ingrédients indiqués.",
		AskClarify:           "Indiquez un ingrédient ou une cuisine et je préciserai davantage.",
		PantryIntro:          "Voici ce que vous pouvez cuisiner avec",
		PantryMatchesTitle:   "Sélections par ingrédients",
		BestMatch:            "Meilleure option",
		NoMatches:            "Je n'ai pas trouvé d'équivalent direct, voici des idées flexibles à essayer.",
		NutritionSummaryLead: "Notes nutrition & santé",
	},
	Dutch: {
		Greeting:             "Hier is een duidelijk plan:",
		StepsTitle:           "Stapsgewijze instructies",
		NutritionTitle:       "Voeding & gezondheidsnotities",
		SwapsTitle:           "Gezonde vervangingen",
		AllergenTitle:        "Allergeen waarschuwing",
		SuggestionsTitle:     "Receptsuggesties",
		Calories:             "Calorieën",
		Protein:              "Eiwit",
		Carbs:                "Koolhydraten",
		Fat:                  "Vet",
		FallbackNutrition:    "Geschatte calorieën: ~520 kcal met gebalanceerde macro’s.",
		NoAllergens:          "Geen grote allergenen gevonden in de genoemde ingrediënten.",
		AskClarify:           "Noem een belangrijk ingrediënt of keuken en ik verfijn het meteen.",
		PantryIntro:          "Dit kun je koken met",
		PantryMatchesTitle:   "Suggesties op basis van ingrediënten",
		BestMatch:            "Beste match",
		NoMatches:            "Geen directe match gevonden; hier zijn toch een paar ideeën.",
		NutritionSummaryLead: "Voeding & gezondheid",
	},
	Arabic: {
		Greeting:             "إليك خطة واضحة واحترافية:",
		StepsTitle:           "خطوات مرقمة للتحضير",
		NutritionTitle:       "ملاحظات التغذية والصحة",
		SwapsTitle:           "بدائل صحية للمكونات",
		AllergenTitle:        "تحذير من مسببات الحساسية",
		SuggestionsTitle:     "وصفات مقترحة",
		Calories:             "سعرات حرارية",
		Protein:              "بروتين",
		Carbs:                "كربوهيدرات",
		Fat:                  "دهون",
		FallbackNutrition:    "تقدير السعرات: حوالي 520 سعرة مع توازن في العناصر الغذائية.",
		NoAllergens:          "لا توجد مسببات حساسية بارزة بين المكونات المذكورة.",
		AskClarify:           "شارك مكوناً أو مطبخاً مفضلاً لأخصص الإجابة أكثر.",
		PantryIntro:          "إليك ما يمكن طهيه باستخدام",
		PantryMatchesTitle:   "اقتراحات مبنية على المكونات",
		BestMatch:            "الخيار الأقرب",
		NoMatches:            "لم أجد وصفة مطابقة تماماً، هذه أفكار مرنة لتجربتها.",
		NutritionSummaryLead: "ملاحظات غذائية وصحية",
	},
}

// PackFor returns the phrase pack for a language, falling back to English
// for anything unknown.
func PackFor(l Language) Pack {
	if p, ok := packs[l]; ok {
		return p
	}
	return packs[English]
}
