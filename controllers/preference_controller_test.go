package controllers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSavePreferencesEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/preferences", gin.H{
		"user_id":              "alice",
		"age":                  30,
		"gender":               "female",
		"current_weight":       65,
		"height_cm":            168,
		"activity_level":       "moderate",
		"dietary_restrictions": []string{"vegetarian"},
		"daily_calorie_target": 1800,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Preferences struct {
			UserID              string   `json:"user_id"`
			Age                 int      `json:"age"`
			DietaryRestrictions []string `json:"dietary_restrictions"`
			DailyCalorieTarget  int      `json:"daily_calorie_target"`
		} `json:"preferences"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if resp.Preferences.UserID != "alice" || resp.Preferences.Age != 30 {
		t.Errorf("unexpected saved profile: %+v", resp.Preferences)
	}
	if len(resp.Preferences.DietaryRestrictions) != 1 {
		t.Errorf("restrictions not saved: %v", resp.Preferences.DietaryRestrictions)
	}
}

func TestSavePreferencesRequiresUserIDField(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodPut, "/preferences", gin.H{"age": 30})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without user_id, got %d", w.Code)
	}
}

func TestGetPreferencesEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	seed := gin.H{
		"user_id":        "alice",
		"age":            30,
		"current_weight": 65,
		"height_cm":      168,
	}
	if w := doJSON(t, router, http.MethodPut, "/preferences", seed); w.Code != http.StatusOK {
		t.Fatalf("seed save failed: %d", w.Code)
	}

	w := doJSON(t, router, http.MethodGet, "/preferences?user_id=alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		BMI         float64 `json:"bmi"`
		BMICategory string  `json:"bmi_category"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	// 65kg at 168cm is a BMI of 23.0, in the normal band.
	if resp.BMI < 22.9 || resp.BMI > 23.1 {
		t.Errorf("unexpected bmi %.2f", resp.BMI)
	}
	if resp.BMICategory != "Normal weight" {
		t.Errorf("unexpected bmi category %q", resp.BMICategory)
	}
}

func TestGetPreferencesNotFoundEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/preferences?user_id=nobody", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown user, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/preferences", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without user_id, got %d", w.Code)
	}
}
