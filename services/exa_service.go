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
	"time"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
)

// ErrExaDisabled is returned when no EXA_API_KEY is configured.
var ErrExaDisabled = errors.New("EXA_API_KEY not configured")

const maxRestaurantResults = 8

type ExaService struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// RestaurantResult is one search hit from the Exa API.
type RestaurantResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

func NewExaService() *ExaService {
	baseURL := os.Getenv("EXA_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.exa.ai"
	}
	return &ExaService{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  os.Getenv("EXA_API_KEY"),
		baseURL: baseURL,
	}
}

func (s *ExaService) Enabled() bool { return s.apiKey != "" }

type exaSearchRequest struct {
	Query         string `json:"query"`
	Type          string `json:"type"`
	UseAutoprompt bool   `json:"useAutoprompt"`
	NumResults    int    `json:"numResults"`
	Contents      struct {
		Text bool `json:"text"`
	} `json:"contents"`
}

type exaSearchResponse struct {
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Text  string `json:"text"`
	} `json:"results"`
}

// Search runs one Exa query and returns its hits.
func (s *ExaService) Search(ctx context.Context, query string) ([]RestaurantResult, error) {
	if !s.Enabled() {
		return nil, ErrExaDisabled
	}

	payload := exaSearchRequest{
		Query:         query,
		Type:          "keyword",
		UseAutoprompt: true,
		NumResults:    4,
	}
	payload.Contents.Text = true

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/search", bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("failed to create search request: %w", err)
	}
	req.Header.Set("X-API-Key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Exa API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Exa response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("exa API error %d: %s", resp.StatusCode, string(body))
	}

	var sr exaSearchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse Exa JSON: %w", err)
	}

	results := make([]RestaurantResult, 0, len(sr.Results))
	for _, r := range sr.Results {
		results = append(results, RestaurantResult{Title: r.Title, URL: r.URL, Snippet: r.Text})
	}
	return results, nil
}

// SearchRestaurants runs the generated queries for a location, deduplicates
// hits by URL and caps the result count. Individual query failures are
// tolerated as long as at least one query succeeds.
func (s *ExaService) SearchRestaurants(ctx context.Context, ai *MistralService, location string, prefs *models.UserPreference, cuisine string) ([]RestaurantResult, error) {
	if !s.Enabled() {
		return nil, ErrExaDisabled
	}

	if cuisine == "" && prefs != nil && len(prefs.CuisinePreferences) > 0 {
		cuisine = prefs.CuisinePreferences[0]
	}

	queries := ai.SearchQueries(ctx, location, prefs, cuisine)

	seen := map[string]bool{}
	var unique []RestaurantResult
	var lastErr error
	succeeded := 0

	for _, q := range queries {
		results, err := s.Search(ctx, q)
		if err != nil {
			lastErr = err
			continue
		}
		succeeded++
		for _, r := range results {
			if r.URL != "" && seen[r.URL] {
				continue
			}
			seen[r.URL] = true
			unique = append(unique, r)
		}
		if len(unique) >= maxRestaurantResults {
			break
		}
	}

	if succeeded == 0 && lastErr != nil {
		return nil, fmt.Errorf("restaurant search failed: %w", lastErr)
	}
	if len(unique) > maxRestaurantResults {
		unique = unique[:maxRestaurantResults]
	}
	return unique, nil
}
