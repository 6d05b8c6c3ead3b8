package services

import (
	"errors"
	"fmt"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/config"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/utils"

	"gorm.io/gorm"
)

// ErrPreferencesNotFound is returned when no profile exists for a user id.
var ErrPreferencesNotFound = errors.New("preferences not found")

// PreferenceInput carries one full profile submission.
type PreferenceInput struct {
	Age                 int      `json:"age"`
	Gender              string   `json:"gender"`
	CurrentWeight       float64  `json:"current_weight"`
	WeightGoal          float64  `json:"weight_goal"`
	HeightCM            float64  `json:"height_cm"`
	ActivityLevel       string   `json:"activity_level"`
	DietaryRestrictions []string `json:"dietary_restrictions"`
	FoodAllergies       []string `json:"food_allergies"`
	CuisinePreferences  []string `json:"cuisine_preferences"`
	HealthGoals         []string `json:"health_goals"`
	DailyCalorieTarget  int      `json:"daily_calorie_target"`
	ProteinTarget       float64  `json:"protein_target"`
	CarbTarget          float64  `json:"carb_target"`
	FatTarget           float64  `json:"fat_target"`
}

// SavePreferences creates or fully overwrites the profile for a user id. A
// second submission for the same id replaces the first one's values.
func SavePreferences(userID string, input PreferenceInput) (*models.UserPreference, error) {
	if userID == "" {
		return nil, errors.New("user_id is required")
	}

	var pref models.UserPreference
	err := config.DB.Where("user_id = ?", userID).First(&pref).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	pref.UserID = userID
	pref.Age = input.Age
	pref.Gender = input.Gender
	pref.CurrentWeight = input.CurrentWeight
	pref.WeightGoal = input.WeightGoal
	pref.HeightCM = input.HeightCM
	pref.ActivityLevel = input.ActivityLevel
	pref.DietaryRestrictions = input.DietaryRestrictions
	pref.FoodAllergies = input.FoodAllergies
	pref.CuisinePreferences = input.CuisinePreferences
	pref.HealthGoals = input.HealthGoals
	pref.DailyCalorieTarget = input.DailyCalorieTarget
	pref.ProteinTarget = input.ProteinTarget
	pref.CarbTarget = input.CarbTarget
	pref.FatTarget = input.FatTarget

	// No explicit target: estimate maintenance calories from the profile.
	if pref.DailyCalorieTarget == 0 {
		if target, err := utils.EstimateDailyCalories(
			pref.Age, pref.Gender, pref.CurrentWeight, pref.HeightCM, pref.ActivityLevel,
		); err == nil {
			pref.DailyCalorieTarget = target
		}
	}

	if err := config.DB.Save(&pref).Error; err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}
	return &pref, nil
}

// GetPreferences returns the stored profile for a user id.
func GetPreferences(userID string) (*models.UserPreference, error) {
	var pref models.UserPreference
	err := config.DB.Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPreferencesNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &pref, nil
}
