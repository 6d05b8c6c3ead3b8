package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/utils"
)

// ErrInvalidInput rejects empty or disallowed chat messages.
var ErrInvalidInput = errors.New("invalid chat input")

// ChatService orchestrates one chat turn: it classifies the message, runs
// the food-logging, restaurant and advice branches independently, and
// composes a single reply. It is stateless between turns.
type ChatService struct {
	ai        *MistralService
	exa       *ExaService
	extractor *ExtractorService
}

func NewChatService() *ChatService {
	ai := NewMistralService()

	defaultCalories := 250.0
	if v := os.Getenv("DEFAULT_CALORIE_ESTIMATE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			defaultCalories = parsed
		}
	}

	return &ChatService{
		ai:        ai,
		exa:       NewExaService(),
		extractor: NewExtractorService(ai, defaultCalories),
	}
}

// ProcessMessage handles one chat turn for a user. Gateway and storage
// failures degrade the affected sub-feature to a notice in the reply; only
// invalid input fails the turn itself.
func (s *ChatService) ProcessMessage(ctx context.Context, userID, message string) (string, error) {
	if !utils.ValidateChatInput(message) {
		return "", ErrInvalidInput
	}

	prefs, err := GetPreferences(userID)
	if err != nil && !errors.Is(err, ErrPreferencesNotFound) {
		slog.Warn("could not load preferences for chat turn", "user_id", userID, "error", err)
	}

	var parts []string

	// Food-logging branch.
	if mention, ok := s.extractor.Extract(ctx, message); ok {
		parts = append(parts, s.logMention(userID, mention))
	}

	// Restaurant branch.
	location, isRestaurant := detectRestaurantQuery(message)
	if isRestaurant {
		parts = append(parts, s.recommendRestaurants(ctx, location, prefs))
	}

	// Advice branch: anything not handled above, plus the interrogative
	// portion of a mixed message.
	if len(parts) == 0 || (isQuestion(message) && !isRestaurant) {
		parts = append(parts, s.advise(ctx, message, prefs))
	}

	return strings.Join(parts, "\n\n"), nil
}

// logMention persists an extracted mention and builds the confirmation
// text. A storage failure becomes a could-not-save notice.
func (s *ChatService) logMention(userID string, mention *FoodMention) string {
	entry := &models.FoodLogEntry{
		UserID:     userID,
		FoodItem:   mention.Description,
		MealType:   mention.MealType,
		Calories:   mention.Calories,
		Protein:    mention.Protein,
		Carbs:      mention.Carbs,
		Fat:        mention.Fat,
		Source:     models.SourceChat,
		ConsumedAt: time.Now(),
	}
	if err := LogFood(entry); err != nil {
		slog.Error("failed to save chat food log", "user_id", userID, "error", err)
		return fmt.Sprintf("I understood you ate %s but could not save the log entry. Please try again.", mention.Description)
	}

	confirmation := fmt.Sprintf("Logged: %s (%.0f kcal", mention.Description, mention.Calories)
	if mention.MealType != "" {
		confirmation += ", " + mention.MealType
	}
	confirmation += ")."

	if summary, err := GetDailySummary(userID, time.Now()); err == nil {
		confirmation += fmt.Sprintf(" Today's total: %.0f kcal.", summary.Calories)
	}
	return confirmation
}

func (s *ChatService) recommendRestaurants(ctx context.Context, location string, prefs *models.UserPreference) string {
	results, err := s.exa.SearchRestaurants(ctx, s.ai, location, prefs, "")
	if err != nil {
		slog.Warn("restaurant search unavailable", "location", location, "error", err)
		if errors.Is(err, ErrExaDisabled) {
			return "Restaurant search is not configured on this server, so I can't look up places right now."
		}
		return fmt.Sprintf("Restaurant search for %s is unavailable right now. Please try again later.", location)
	}
	return s.ai.FormatRestaurants(ctx, results, location, prefs)
}

func (s *ChatService) advise(ctx context.Context, message string, prefs *models.UserPreference) string {
	var reply string
	var err error
	if isWorkoutQuery(message) {
		reply, err = s.ai.WorkoutPlan(ctx, message, prefs)
	} else {
		reply, err = s.ai.NutritionAdvice(ctx, message, prefs)
	}
	if err != nil {
		slog.Warn("advice gateway unavailable", "error", err)
		if errors.Is(err, ErrMistralDisabled) {
			return "AI advice is not configured on this server."
		}
		return "Nutrition advice is unavailable right now. Please try again later."
	}
	return reply
}

var restaurantKeywords = []string{
	"restaurant", "restaurants", "dining", "eat out", "eating out",
	"dine out", "eatery", "bistro", "takeout", "places to eat",
	"where to eat", "food places",
}

var workoutKeywords = []string{
	"workout", "exercise", "fitness", "training", "gym",
	"strength", "cardio", "muscle",
}

var locationIndicators = map[string]bool{
	"in": true, "near": true, "around": true, "at": true,
}

// Well-known place names matched even when written lowercase.
var commonPlaces = []string{
	"pune", "mumbai", "delhi", "bangalore", "hyderabad", "chennai",
	"kolkata", "london", "new york", "san francisco", "berlin", "tokyo",
}

var locationStopwords = map[string]bool{
	"that": true, "with": true, "for": true, "please": true,
	"which": true, "serving": true, "tonight": true, "today": true,
	"and": true, "or": true, "this": true,
}

// detectRestaurantQuery reports whether a message asks for restaurant
// recommendations, and extracts the location. A restaurant keyword without a
// recoverable location does not trigger the branch.
func detectRestaurantQuery(message string) (string, bool) {
	lower := strings.ToLower(message)

	hasKeyword := false
	for _, kw := range restaurantKeywords {
		if strings.Contains(lower, kw) {
			hasKeyword = true
			break
		}
	}
	if !hasKeyword {
		return "", false
	}

	if loc := extractLocation(message); loc != "" {
		return loc, true
	}
	return "", false
}

func extractLocation(message string) string {
	fields := strings.Fields(message)

	for i, f := range fields {
		if !locationIndicators[strings.ToLower(f)] {
			continue
		}

		var words []string
		for _, w := range fields[i+1:] {
			if len(words) >= 3 {
				break
			}
			clean := strings.Trim(w, ".,!?")
			if clean == "" || locationStopwords[strings.ToLower(clean)] {
				break
			}
			// Location tokens are expected to be written capitalized;
			// anything else is treated as ordinary prose.
			first, _ := utf8.DecodeRuneInString(clean)
			if !unicode.IsUpper(first) {
				break
			}
			words = append(words, clean)
		}
		if len(words) > 0 {
			return strings.Join(words, " ")
		}
	}

	lower := strings.ToLower(message)
	for _, place := range commonPlaces {
		if strings.Contains(lower, place) {
			return titleCase(place)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func isWorkoutQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range workoutKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
