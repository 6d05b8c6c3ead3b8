package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
)

// ErrMistralDisabled is returned when no MISTRAL_API_KEY is configured. The
// caller reports the feature as unavailable instead of failing the turn.
var ErrMistralDisabled = errors.New("MISTRAL_API_KEY not configured")

type MistralService struct {
	client  *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewMistralService() *MistralService {
	baseURL := os.Getenv("MISTRAL_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.mistral.ai"
	}
	model := os.Getenv("MISTRAL_MODEL")
	if model == "" {
		model = "mistral-large-latest"
	}
	return &MistralService{
		client:  &http.Client{Timeout: 30 * time.Second},
		apiKey:  os.Getenv("MISTRAL_API_KEY"),
		baseURL: baseURL,
		model:   model,
	}
}

func (s *MistralService) Enabled() bool { return s.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Chat runs one completion and returns the reply text.
func (s *MistralService) Chat(ctx context.Context, system, user string, maxTokens int, temperature float64) (string, error) {
	if !s.Enabled() {
		return "", ErrMistralDisabled
	}

	payload := completionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
		TopP:        0.9,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call Mistral API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read Mistral response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("mistral API error %d: %s", resp.StatusCode, string(body))
	}

	var cr completionResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("failed to parse Mistral JSON: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("empty completion from Mistral")
	}
	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}

// NutritionAdvice answers a general nutrition question with the user's
// stored profile as context.
func (s *MistralService) NutritionAdvice(ctx context.Context, query string, prefs *models.UserPreference) (string, error) {
	system := "You are an expert nutritionist and registered dietitian providing personalized, evidence-based nutrition advice."
	user := fmt.Sprintf(`Based on this user profile and question, provide comprehensive nutrition advice:

%s

User Question: %s

Provide specific recommendations based on their goals and restrictions, practical meal suggestions, and portion guidance where relevant. Keep the response helpful and actionable.`,
		profileContext(prefs), query)

	return s.Chat(ctx, system, user, 1000, 0.7)
}

// WorkoutPlan generates a workout and nutrition-timing plan for
// fitness-related questions.
func (s *MistralService) WorkoutPlan(ctx context.Context, query string, prefs *models.UserPreference) (string, error) {
	system := "You are an expert personal trainer and sports nutritionist providing evidence-based, personalized fitness and nutrition advice."
	user := fmt.Sprintf(`Create a personalized workout and nutrition plan based on this user profile and request:

%s
User Request: %s

Include specific exercises with sets, reps and weekly frequency, pre- and post-workout nutrition, and recovery guidance, all tailored to the profile.`,
		profileContext(prefs), query)

	return s.Chat(ctx, system, user, 1500, 0.7)
}

// CalorieEstimate is the structured reply of EstimateCalories.
type CalorieEstimate struct {
	FoodItem string  `json:"food_item"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// EstimateCalories asks for a single-shot nutrition estimate of one food and
// parses the JSON object out of the reply.
func (s *MistralService) EstimateCalories(ctx context.Context, food string) (*CalorieEstimate, error) {
	system := "You are a nutrition expert that estimates the nutritional content of foods. Return ONLY a JSON object with 'food_item', 'calories', 'protein', 'carbs' and 'fat' fields. Use 0 for anything that cannot be estimated."
	user := fmt.Sprintf(`Estimate the nutrition of: %q

Return ONLY a JSON object like this:
{"food_item": "apple", "calories": 95, "protein": 0.5, "carbs": 25, "fat": 0.3}`, food)

	content, err := s.Chat(ctx, system, user, 150, 0.1)
	if err != nil {
		return nil, err
	}

	jsonStr, ok := extractJSON(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in Mistral reply: %s", content)
	}
	var est CalorieEstimate
	if err := json.Unmarshal([]byte(jsonStr), &est); err != nil {
		return nil, fmt.Errorf("failed to parse calorie estimate: %w", err)
	}
	if est.Calories < 0 {
		est.Calories = 0
	}
	return &est, nil
}

// SearchQueries builds restaurant search queries for a location, AI-assisted
// when possible. Never fails: on any problem it returns deterministic
// fallback queries built from the profile.
func (s *MistralService) SearchQueries(ctx context.Context, location string, prefs *models.UserPreference, cuisine string) []string {
	if s.Enabled() {
		system := "You are an expert at generating effective web search queries for finding restaurants that match specific user needs."
		user := fmt.Sprintf(`Generate 3 diverse search queries to find restaurants for this context:

Location: %s
Cuisine preference: %s
%s

Each query must include the location and incorporate the dietary needs naturally. Return only the 3 queries, one per line, no numbering.`,
			location, cuisine, profileContext(prefs))

		if content, err := s.Chat(ctx, system, user, 300, 0.7); err == nil {
			var queries []string
			for _, line := range strings.Split(content, "\n") {
				if line = strings.TrimSpace(line); line != "" {
					queries = append(queries, line)
				}
			}
			if len(queries) >= 3 {
				return queries[:3]
			}
		}
	}
	return fallbackQueries(location, prefs, cuisine)
}

func fallbackQueries(location string, prefs *models.UserPreference, cuisine string) []string {
	var dietary []string
	if prefs != nil {
		for _, r := range prefs.DietaryRestrictions {
			dietary = append(dietary, strings.ToLower(r))
		}
	}

	dietaryStr := strings.Join(dietary, " ")
	cuisineStr := cuisine
	if cuisineStr == "" {
		cuisineStr = "restaurants"
	}

	queries := []string{
		strings.Join(strings.Fields(fmt.Sprintf("best %s %s in %s", dietaryStr, cuisineStr, location)), " "),
		fmt.Sprintf("healthy restaurants %s reviews", location),
	}
	third := fmt.Sprintf("%s restaurants", location)
	if len(dietary) > 0 {
		third += " " + dietary[0]
	}
	return append(queries, third)
}

// FormatRestaurants turns raw search hits into a conversational reply,
// falling back to a plain list when the AI path is unavailable.
func (s *MistralService) FormatRestaurants(ctx context.Context, results []RestaurantResult, location string, prefs *models.UserPreference) string {
	if len(results) == 0 {
		return fmt.Sprintf("I couldn't find restaurant recommendations for %s right now. Try a broader area, or check review sites directly.", location)
	}

	if s.Enabled() {
		var sb strings.Builder
		for i, r := range results {
			fmt.Fprintf(&sb, "%d. %s", i+1, r.Title)
			if r.URL != "" {
				fmt.Fprintf(&sb, " (%s)", r.URL)
			}
			if r.Snippet != "" {
				snippet := strings.Join(strings.Fields(r.Snippet), " ")
				if len(snippet) > 200 {
					snippet = snippet[:200] + "..."
				}
				fmt.Fprintf(&sb, " - %s", snippet)
			}
			sb.WriteString("\n")
		}

		system := "You are a knowledgeable food critic and nutrition expert providing personalized restaurant recommendations."
		user := fmt.Sprintf(`Recommend restaurants in %s from these search results, matched to the user's dietary needs:

%s
Search Results:
%s
Pick the top 3-5, say why each fits the user's restrictions and goals, and add healthy ordering tips. Keep it concise and practical.`,
			location, profileContext(prefs), sb.String())

		if reply, err := s.Chat(ctx, system, user, 1000, 0.7); err == nil {
			return reply
		}
	}

	// Plain-list fallback when the AI path is disabled or fails.
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d restaurant options in %s:\n", len(results), location)
	for i, r := range results {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, r.Title)
		if r.URL != "" {
			fmt.Fprintf(&sb, " - %s", r.URL)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

// profileContext serializes the stored profile into the prompt context block
// used by every personalized call.
func profileContext(prefs *models.UserPreference) string {
	if prefs == nil {
		return "User Profile: No specific preferences provided"
	}

	var parts []string
	if prefs.Age > 0 {
		parts = append(parts, fmt.Sprintf("Age: %d", prefs.Age))
	}
	if prefs.Gender != "" {
		parts = append(parts, fmt.Sprintf("Gender: %s", prefs.Gender))
	}
	if prefs.CurrentWeight > 0 && prefs.HeightCM > 0 {
		parts = append(parts, fmt.Sprintf("Current weight: %.0fkg, Height: %.0fcm", prefs.CurrentWeight, prefs.HeightCM))
	}
	if prefs.WeightGoal > 0 {
		parts = append(parts, fmt.Sprintf("Weight goal: %.0fkg", prefs.WeightGoal))
	}
	if prefs.ActivityLevel != "" {
		parts = append(parts, fmt.Sprintf("Activity level: %s", prefs.ActivityLevel))
	}
	if prefs.DailyCalorieTarget > 0 {
		parts = append(parts, fmt.Sprintf("Daily calorie target: %d calories", prefs.DailyCalorieTarget))
	}
	if len(prefs.DietaryRestrictions) > 0 {
		parts = append(parts, "Dietary restrictions: "+strings.Join(prefs.DietaryRestrictions, ", "))
	}
	if len(prefs.FoodAllergies) > 0 {
		parts = append(parts, "Food allergies: "+strings.Join(prefs.FoodAllergies, ", "))
	}
	if len(prefs.HealthGoals) > 0 {
		parts = append(parts, "Health goals: "+strings.Join(prefs.HealthGoals, ", "))
	}

	if len(parts) == 0 {
		return "User Profile: No specific preferences provided"
	}
	return "User Profile: " + strings.Join(parts, " | ")
}

// extractJSON pulls the first {...} block out of free text. Model replies
// often wrap the JSON in prose or code fences.
func extractJSON(content string) (string, bool) {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return content[start : end+1], true
}
