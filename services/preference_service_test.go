package services

import (
	"errors"
	"testing"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/config"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
)

func TestSavePreferencesRoundTrip(t *testing.T) {
	setupTestDB(t)

	input := PreferenceInput{
		Age:                 30,
		Gender:              "female",
		CurrentWeight:       65,
		WeightGoal:          60,
		HeightCM:            168,
		ActivityLevel:       models.ActivityModerate,
		DietaryRestrictions: []string{"vegetarian"},
		FoodAllergies:       []string{"peanuts"},
		CuisinePreferences:  []string{"indian", "thai"},
		HealthGoals:         []string{"weight loss"},
		DailyCalorieTarget:  1800,
		ProteinTarget:       90,
		CarbTarget:          200,
		FatTarget:           60,
	}
	if _, err := SavePreferences("dana", input); err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	got, err := GetPreferences("dana")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if got.Age != 30 || got.Gender != "female" || got.DailyCalorieTarget != 1800 {
		t.Errorf("stored profile differs from input: %+v", got)
	}
	if len(got.DietaryRestrictions) != 1 || got.DietaryRestrictions[0] != "vegetarian" {
		t.Errorf("dietary restrictions not stored: %v", got.DietaryRestrictions)
	}
	if len(got.CuisinePreferences) != 2 || got.CuisinePreferences[0] != "indian" {
		t.Errorf("cuisine preferences not stored: %v", got.CuisinePreferences)
	}
}

func TestSavePreferencesOverwrites(t *testing.T) {
	setupTestDB(t)

	first := PreferenceInput{
		Age: 30, CurrentWeight: 80, HeightCM: 180,
		DietaryRestrictions: []string{"vegan"},
		DailyCalorieTarget:  2200,
	}
	if _, err := SavePreferences("dana", first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := PreferenceInput{
		Age: 31, CurrentWeight: 78, HeightCM: 180,
		DailyCalorieTarget: 2000,
	}
	if _, err := SavePreferences("dana", second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	var count int64
	config.DB.Model(&models.UserPreference{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single profile row, got %d", count)
	}

	got, err := GetPreferences("dana")
	if err != nil {
		t.Fatalf("GetPreferences failed: %v", err)
	}
	if got.Age != 31 || got.CurrentWeight != 78 || got.DailyCalorieTarget != 2000 {
		t.Errorf("second save did not overwrite: %+v", got)
	}
	if len(got.DietaryRestrictions) != 0 {
		t.Errorf("restrictions from the first save must be cleared, got %v", got.DietaryRestrictions)
	}
}

func TestSavePreferencesEstimatesCalorieTarget(t *testing.T) {
	setupTestDB(t)

	input := PreferenceInput{
		Age: 30, Gender: "male", CurrentWeight: 80, HeightCM: 180,
		ActivityLevel: models.ActivitySedentary,
	}
	pref, err := SavePreferences("dana", input)
	if err != nil {
		t.Fatalf("SavePreferences failed: %v", err)
	}

	// Mifflin-St Jeor: (10*80 + 6.25*180 - 5*30 + 5) * 1.2 = 2136
	if pref.DailyCalorieTarget != 2136 {
		t.Errorf("expected estimated target 2136, got %d", pref.DailyCalorieTarget)
	}
}

func TestSavePreferencesRequiresUserID(t *testing.T) {
	setupTestDB(t)

	if _, err := SavePreferences("", PreferenceInput{Age: 30}); err == nil {
		t.Error("expected error for empty user_id")
	}
}

func TestGetPreferencesNotFound(t *testing.T) {
	setupTestDB(t)

	_, err := GetPreferences("nobody")
	if !errors.Is(err, ErrPreferencesNotFound) {
		t.Errorf("expected ErrPreferencesNotFound, got %v", err)
	}
}
