package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
)

func TestChatDisabledWithoutKey(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")

	svc := NewMistralService()
	_, err := svc.Chat(context.Background(), "system", "user", 100, 0.7)
	if !errors.Is(err, ErrMistralDisabled) {
		t.Errorf("expected ErrMistralDisabled, got %v", err)
	}
}

func TestChatSendsAuthAndModel(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "  hello  "}},
			},
		})
	}))
	defer server.Close()

	t.Setenv("MISTRAL_API_KEY", "secret")
	t.Setenv("MISTRAL_BASE_URL", server.URL)
	t.Setenv("MISTRAL_MODEL", "mistral-large-latest")

	svc := NewMistralService()
	reply, err := svc.Chat(context.Background(), "sys", "usr", 100, 0.5)
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}
	if reply != "hello" {
		t.Errorf("expected trimmed reply %q, got %q", "hello", reply)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("wrong auth header: %q", gotAuth)
	}
	if gotReq.Model != "mistral-large-latest" || len(gotReq.Messages) != 2 {
		t.Errorf("unexpected request payload: %+v", gotReq)
	}
}

func TestChatErrorIncludesStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	t.Setenv("MISTRAL_API_KEY", "secret")
	t.Setenv("MISTRAL_BASE_URL", server.URL)

	svc := NewMistralService()
	_, err := svc.Chat(context.Background(), "sys", "usr", 100, 0.5)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") || !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error should carry status and body: %v", err)
	}
}

func TestEstimateCaloriesExtractsJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		content := "Here is the estimate:\n```json\n{\"food_item\": \"burrito\", \"calories\": 410, \"protein\": 18, \"carbs\": 52, \"fat\": 14}\n```"
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
		})
	}))
	defer server.Close()

	t.Setenv("MISTRAL_API_KEY", "secret")
	t.Setenv("MISTRAL_BASE_URL", server.URL)

	svc := NewMistralService()
	est, err := svc.EstimateCalories(context.Background(), "burrito")
	if err != nil {
		t.Fatalf("EstimateCalories failed: %v", err)
	}
	if est.Calories != 410 || est.Protein != 18 {
		t.Errorf("unexpected estimate: %+v", est)
	}
}

func TestEstimateCaloriesRejectsNonJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": "I cannot estimate that."}},
			},
		})
	}))
	defer server.Close()

	t.Setenv("MISTRAL_API_KEY", "secret")
	t.Setenv("MISTRAL_BASE_URL", server.URL)

	svc := NewMistralService()
	if _, err := svc.EstimateCalories(context.Background(), "mystery dish"); err == nil {
		t.Error("expected error when the reply carries no JSON object")
	}
}

func TestSearchQueriesFallbackDeterministic(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")

	prefs := &models.UserPreference{
		DietaryRestrictions: []string{"Vegetarian"},
	}

	svc := NewMistralService()
	first := svc.SearchQueries(context.Background(), "Pune", prefs, "")
	second := svc.SearchQueries(context.Background(), "Pune", prefs, "")

	if len(first) != 3 {
		t.Fatalf("expected 3 fallback queries, got %d", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("fallback queries not deterministic: %q vs %q", first[i], second[i])
		}
	}
	if first[0] != "best vegetarian restaurants in Pune" {
		t.Errorf("unexpected first fallback query: %q", first[0])
	}
	for _, q := range first {
		if !strings.Contains(q, "Pune") {
			t.Errorf("query missing location: %q", q)
		}
	}
}

func TestFormatRestaurantsPlainListFallback(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")

	results := []RestaurantResult{
		{Title: "Green Bowl", URL: "https://example.com/a"},
		{Title: "Spice Route", URL: "https://example.com/b"},
	}

	svc := NewMistralService()
	out := svc.FormatRestaurants(context.Background(), results, "Pune", nil)
	if !strings.Contains(out, "Green Bowl") || !strings.Contains(out, "Spice Route") {
		t.Errorf("fallback list missing titles: %q", out)
	}
	if !strings.Contains(out, "Pune") {
		t.Errorf("fallback list missing location: %q", out)
	}
}

func TestFormatRestaurantsEmptyResults(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")

	svc := NewMistralService()
	out := svc.FormatRestaurants(context.Background(), nil, "Pune", nil)
	if !strings.Contains(out, "couldn't find") {
		t.Errorf("expected a no-results message, got %q", out)
	}
}

func TestProfileContext(t *testing.T) {
	if got := profileContext(nil); !strings.Contains(got, "No specific preferences") {
		t.Errorf("nil profile should produce the empty-profile line, got %q", got)
	}

	prefs := &models.UserPreference{
		Age:                 28,
		Gender:              "female",
		DietaryRestrictions: []string{"vegan", "gluten-free"},
	}
	got := profileContext(prefs)
	if !strings.Contains(got, "Age: 28") || !strings.Contains(got, "vegan, gluten-free") {
		t.Errorf("profile context missing fields: %q", got)
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{`{"a":1}`, `{"a":1}`, true},
		{"prose {\"a\":1} trailing", `{"a":1}`, true},
		{"no json here", "", false},
		{"}{", "", false},
	}
	for _, tc := range cases {
		got, ok := extractJSON(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("extractJSON(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
