package services

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/utils"
)

// FoodMention is the positive result of extraction: one loggable
// food-consumption report pulled out of a chat message.
type FoodMention struct {
	Description string
	MealType    string
	Calories    float64
	Protein     float64
	Carbs       float64
	Fat         float64
}

// ExtractorService turns free-text chat messages into structured food
// mentions. It holds no state between calls and never writes storage.
type ExtractorService struct {
	ai              *MistralService
	defaultCalories float64
}

func NewExtractorService(ai *MistralService, defaultCalories float64) *ExtractorService {
	if defaultCalories <= 0 {
		defaultCalories = 250
	}
	return &ExtractorService{ai: ai, defaultCalories: defaultCalories}
}

// First-person past-tense consumption report: "I ate ...", "we just had ...",
// "I've drunk ...". Matching is anchored on the pronoun so that questions
// about food never qualify.
var consumptionRe = regexp.MustCompile(`(?i)\b(?:i|i've|we|we've)\s+(?:just\s+)?(?:ate|had|drank|eaten|drunk|consumed|finished)\s+(.+)`)

// Explicit logging command: "log food: an apple", "track my meal oatmeal".
// The food/meal noun is required so that "record my weight" and similar
// non-food commands never produce an entry.
var logCommandRe = regexp.MustCompile(`(?i)^(?:please\s+)?(?:log|track|record)\s+(?:my\s+)?(?:food|meal)\s*:?\s*(.+)$`)

// Conjoined or comma-joined follow-up clause inside one sentence: "... and I
// had lunch", "..., what should I eat next". Cut so the capture stays on the
// first reported food; "fish and chips" has no pronoun and survives.
var clauseBreakRe = regexp.MustCompile(`(?is)\s*(?:,|\b(?:and|but|then)\s+(?:i|i've|we|we've)\b).*$`)

// Meal-time qualifier attached to the food phrase: "for breakfast",
// "as a snack".
var mealQualifierRe = regexp.MustCompile(`(?i)\s*\b(?:for|at|as)\s+(?:a\s+)?(breakfast|lunch|dinner|snack)\b`)

var trailingTimeRe = regexp.MustCompile(`(?i)\s*\b(?:today|yesterday|earlier|this\s+(?:morning|afternoon|evening)|last\s+night)\b`)

var interrogativeWords = []string{
	"what", "which", "when", "where", "who", "why", "how",
	"should", "could", "would", "can", "do", "does", "is", "are", "am",
}

// Descriptions too vague to log; classification prefers NoFoodMention over
// fabricating an entry from these.
var vagueDescriptions = map[string]bool{
	"breakfast": true, "lunch": true, "dinner": true, "snack": true,
	"meal": true, "food": true, "something": true, "it": true,
	"nothing": true, "that": true,
}

// Extract classifies a message and, when it reports consumption, returns the
// structured mention. The second return is false for NoFoodMention; on any
// ambiguity the negative case wins. Interrogative clauses are never
// loggable, so "I ate a burger. What should I eat next?" still logs the
// burger while the question part stays untouched.
func (s *ExtractorService) Extract(ctx context.Context, message string) (*FoodMention, bool) {
	for _, clause := range statementClauses(message) {
		raw, ok := consumedPhrase(clause)
		if !ok {
			continue
		}

		raw = clauseBreakRe.ReplaceAllString(raw, "")

		mealType := ""
		if m := mealQualifierRe.FindStringSubmatch(raw); m != nil {
			mealType = strings.ToLower(m[1])
			raw = mealQualifierRe.ReplaceAllString(raw, "")
		}
		raw = trailingTimeRe.ReplaceAllString(raw, "")

		description := utils.NormalizeFood(raw)
		if description == "" || vagueDescriptions[description] {
			return nil, false
		}

		mention := &FoodMention{Description: description, MealType: mealType}
		s.estimate(ctx, mention)
		return mention, true
	}
	return nil, false
}

// statementClauses splits a message on sentence punctuation and drops the
// interrogative clauses.
func statementClauses(message string) []string {
	var clauses []string
	for _, clause := range strings.FieldsFunc(message, func(r rune) bool {
		return r == '.' || r == '!' || r == ';' || r == '?'
	}) {
		clause = strings.TrimSpace(clause)
		if clause == "" || isQuestion(clause) {
			continue
		}
		clauses = append(clauses, clause)
	}
	return clauses
}

// consumedPhrase returns the text after a consumption verb or logging
// command, or ok=false when the message does not report consumption.
func consumedPhrase(message string) (string, bool) {
	if m := consumptionRe.FindStringSubmatch(message); m != nil {
		return m[1], true
	}
	if m := logCommandRe.FindStringSubmatch(strings.TrimSpace(message)); m != nil {
		return m[1], true
	}
	return "", false
}

func isQuestion(message string) bool {
	msg := strings.ToLower(strings.TrimSpace(message))
	if strings.Contains(msg, "?") {
		return true
	}
	first, _, _ := strings.Cut(msg, " ")
	for _, w := range interrogativeWords {
		if first == w {
			return true
		}
	}
	return false
}

// estimate fills in calories and macros: lookup table fast path, then a
// single-shot AI estimate, then the configured conservative default.
func (s *ExtractorService) estimate(ctx context.Context, mention *FoodMention) {
	if cal, ok := utils.LookupCalories(mention.Description); ok {
		mention.Calories = cal
		return
	}

	if s.ai != nil && s.ai.Enabled() {
		est, err := s.ai.EstimateCalories(ctx, mention.Description)
		if err == nil {
			mention.Calories = est.Calories
			mention.Protein = est.Protein
			mention.Carbs = est.Carbs
			mention.Fat = est.Fat
			return
		}
		slog.Warn("calorie estimation failed, using default",
			"food", mention.Description, "error", err)
	}

	mention.Calories = s.defaultCalories
}
