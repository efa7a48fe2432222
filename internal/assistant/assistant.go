// Package assistant implements the conversation core: one session, one
// message in, one reply out. It owns the routing between pantry mode,
// intent dispatch, and the reply builder, and it is the only writer of
// session state.
package assistant

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/khalilmezni/chefsense/internal/domain"
	"github.com/khalilmezni/chefsense/internal/lang"
	"github.com/khalilmezni/chefsense/internal/logger"
	"github.com/khalilmezni/chefsense/internal/reply"
	"github.com/khalilmezni/chefsense/internal/search"
	"github.com/khalilmezni/chefsense/internal/storage"
)

// debugCommand is the only literal command the chat surface knows.
const debugCommand = "/debug last"

// Option configures the assistant.
type Option func(*Assistant)

// WithDelay sets the artificial response delay. The actual pause is the
// base plus up to a third of jitter, purely for perceived responsiveness.
// Zero disables it, which is what tests want.
func WithDelay(d time.Duration) Option {
	return func(a *Assistant) {
		a.delay = d
	}
}

// WithPantryLimit caps how many pantry suggestions a reply lists.
func WithPantryLimit(n int) Option {
	return func(a *Assistant) {
		a.pantryLimit = n
	}
}

// Reply is one assistant answer, ready for rendering.
type Reply struct {
	Text     string
	Language lang.Language
	RTL      bool
}

// Assistant is the conversation engine. It depends only on interfaces
// plus the pure search and reply packages, and is fully testable without
// a UI.
type Assistant struct {
	recipes     []*domain.Recipe
	source      domain.RecipeSource
	builder     *reply.Builder
	classifier  domain.IntentClassifier
	store       *storage.MemoryStore
	session     *domain.Session
	log         *logger.Logger
	delay       time.Duration
	pantryLimit int
}

// New creates an assistant over a loaded catalogue. An empty catalogue is
// the data-unavailable case and refuses to start: the caller surfaces one
// system message and stops, there is no retry path.
func New(source domain.RecipeSource, favorites domain.FavoritesStore, classifier domain.IntentClassifier, store *storage.MemoryStore, log *logger.Logger, opts ...Option) (*Assistant, error) {
	recipes, err := source.All(context.Background())
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, domain.ErrNoRecipes
	}

	a := &Assistant{
		recipes:     recipes,
		source:      source,
		builder:     reply.NewBuilder(recipes, favorites, log),
		classifier:  classifier,
		store:       store,
		log:         log,
		delay:       450 * time.Millisecond,
		pantryLimit: search.DefaultPantryLimit,
	}
	for _, opt := range opts {
		opt(a)
	}

	now := time.Now()
	a.session = &domain.Session{
		ID:        generateID(),
		Language:  string(lang.English),
		Status:    domain.SessionActive,
		StartedAt: now,
		UpdatedAt: now,
	}
	if a.store != nil {
		if err := a.store.Save(context.Background(), a.session); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Session exposes the live session for status surfaces. Read-only by
// convention; the assistant is the only writer.
func (a *Assistant) Session() *domain.Session {
	return a.session
}

// RecipeCount reports the catalogue size, for the welcome message.
func (a *Assistant) RecipeCount() int {
	return len(a.recipes)
}

// Handle processes one user message and returns the reply. Every failure
// path ends in a natural-language answer; the error return only reports
// infrastructure problems (context cancellation, session store).
func (a *Assistant) Handle(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, domain.ErrNotFound
	}

	if strings.HasPrefix(strings.ToLower(message), debugCommand) {
		return a.handleDebug(ctx)
	}

	detected := lang.Detect(message)
	pack := lang.PackFor(detected)
	a.session.Language = string(detected)
	a.session.AddTurn(domain.RoleUser, message, string(detected))

	tokens := search.ExtractIngredientTokens(message)
	pantryMode := search.IsPantryQuery(message, tokens)

	a.log.Debug("message %q: lang=%s pantry=%v tokens=%v", message, detected, pantryMode, tokens)

	var text string
	analysis := &domain.Analysis{
		LastMessage:      message,
		Language:         string(detected),
		PantryMode:       pantryMode,
		IngredientTokens: tokens,
	}

	if pantryMode {
		analysis.Intent = domain.IntentPantry
		text = a.handlePantry(message, tokens, pack, analysis)
	} else {
		var err error
		text, err = a.dispatch(ctx, message, pack, analysis)
		if err != nil {
			return Reply{}, err
		}
	}

	analysis.LastRecipe = a.session.CurrentRecipe
	a.session.LastAnalysis = analysis
	a.session.AddTurn(domain.RoleAssistant, text, string(detected))
	if err := a.saveSession(ctx); err != nil {
		return Reply{}, err
	}

	a.pause(ctx)
	return Reply{Text: text, Language: detected, RTL: detected.RTL()}, nil
}

// handleDebug answers /debug last. Always English, never touches the
// analysis it reports on.
func (a *Assistant) handleDebug(ctx context.Context) (Reply, error) {
	text := reply.DebugSummary(a.session.LastAnalysis)
	a.session.AddTurn(domain.RoleAssistant, text, string(lang.English))
	if err := a.saveSession(ctx); err != nil {
		return Reply{}, err
	}
	return Reply{Text: text, Language: lang.English}, nil
}

// handlePantry runs the ingredient-matching path.
func (a *Assistant) handlePantry(message string, tokens []string, pack lang.Pack, analysis *domain.Analysis) string {
	hints := search.ExtractContext(message)
	matches := search.FindByIngredients(a.recipes, tokens, search.PantryOptions{
		Context: hints,
		Limit:   a.pantryLimit,
	})

	analysis.MatchedCount = len(matches)
	for i, m := range matches {
		if i == 5 {
			break
		}
		analysis.MatchedNames = append(analysis.MatchedNames, m.Recipe.NameEN)
	}

	if len(matches) == 0 {
		return a.builder.PantryFallback(pack, tokens)
	}
	a.session.CurrentRecipe = matches[0].Recipe.Slug
	return a.builder.Pantry(pack, tokens, matches)
}

// dispatch classifies the message and routes it to one reply builder.
func (a *Assistant) dispatch(ctx context.Context, message string, pack lang.Pack, analysis *domain.Analysis) (string, error) {
	intent, err := a.classifier.Classify(ctx, message, a.session.CurrentRecipe != "")
	if err != nil {
		return "", err
	}
	analysis.Intent = intent.Type
	a.log.Debug("intent: %s payload=%q", intent.Type, intent.Payload)

	switch intent.Type {
	case domain.IntentGreeting:
		return a.builder.Greeting(pack), nil

	case domain.IntentHowToMake:
		recipe, results := a.resolveDish(ctx, intent.Payload, message)
		a.recordMatches(analysis, results)
		a.focus(recipe)
		return a.builder.Structured(pack, message, recipe, results), nil

	case domain.IntentIngredients:
		return a.builder.Ingredients(pack, a.subject(ctx, message)), nil

	case domain.IntentDietaryInfo:
		return a.builder.DietaryInfo(pack, a.subject(ctx, message)), nil

	case domain.IntentNutrition:
		return a.builder.NutritionAnswer(pack, a.subject(ctx, message)), nil

	case domain.IntentSubstitution:
		return a.builder.Substitution(pack, a.subject(ctx, message)), nil

	case domain.IntentMealType:
		return a.builder.MealTypeAnswer(pack, message), nil

	case domain.IntentTime:
		return a.builder.TimeAnswer(pack, a.subject(ctx, message)), nil

	case domain.IntentTips:
		return a.builder.TipsAnswer(pack, a.subject(ctx, message)), nil

	case domain.IntentFavorites:
		return a.builder.FavoritesAnswer(pack), nil

	case domain.IntentFollowUp:
		recipe := a.bySlug(a.session.CurrentRecipe)
		return a.builder.Structured(pack, message, recipe, nil), nil

	default: // IntentSearch and IntentUnknown both end in a search.
		results := search.Search(a.recipes, message)
		a.recordMatches(analysis, results)
		if len(results) == 0 {
			if intent.Type == domain.IntentUnknown {
				return a.builder.Help(pack), nil
			}
			return a.builder.Structured(pack, message, nil, nil), nil
		}
		recipe := results[0].Recipe
		a.focus(recipe)
		return a.builder.Structured(pack, message, recipe, results), nil
	}
}

// resolveDish finds the recipe a how-to-make question is about: the named
// dish first, then the best search hit for the whole message.
func (a *Assistant) resolveDish(ctx context.Context, dish, message string) (*domain.Recipe, []search.Result) {
	if dish != "" {
		if r, err := a.source.ByName(ctx, dish); err == nil {
			return r, nil
		}
	}
	results := search.Search(a.recipes, message)
	if len(results) > 0 {
		return results[0].Recipe, results
	}
	return nil, nil
}

// subject resolves which recipe a question is about: a catalogue name
// mentioned in the message wins, otherwise the session's current recipe.
// Nil means genuinely ambiguous and the builders ask to clarify.
func (a *Assistant) subject(ctx context.Context, message string) *domain.Recipe {
	normalized := strings.ToLower(message)
	for _, r := range a.recipes {
		if strings.Contains(normalized, strings.ToLower(r.NameEN)) {
			a.focus(r)
			return r
		}
	}
	return a.bySlug(a.session.CurrentRecipe)
}

// focus sets the session's current recipe. Only ever sets: a miss never
// clears an earlier focus, so follow-ups keep working after a failed
// search.
func (a *Assistant) focus(recipe *domain.Recipe) {
	if recipe != nil {
		a.session.CurrentRecipe = recipe.Slug
	}
}

func (a *Assistant) bySlug(slug string) *domain.Recipe {
	if slug == "" {
		return nil
	}
	for _, r := range a.recipes {
		if r.Slug == slug {
			return r
		}
	}
	return nil
}

// recordMatches fills the analysis with search results, names capped at 5.
func (a *Assistant) recordMatches(analysis *domain.Analysis, results []search.Result) {
	analysis.MatchedCount = len(results)
	for i, res := range results {
		if i == 5 {
			break
		}
		analysis.MatchedNames = append(analysis.MatchedNames, res.Recipe.NameEN)
	}
}

func (a *Assistant) saveSession(ctx context.Context) error {
	if a.store == nil {
		return nil
	}
	return a.store.Save(ctx, a.session)
}

// pause sleeps the configured response delay, honoring cancellation.
func (a *Assistant) pause(ctx context.Context) {
	if a.delay <= 0 {
		return
	}
	jitter := time.Duration(rand.Int63n(int64(a.delay)/3 + 1))
	select {
	case <-time.After(a.delay + jitter):
	case <-ctx.Done():
	}
}
