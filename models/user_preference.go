package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Activity levels accepted in UserPreference.ActivityLevel.
const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// UserPreference is the stored profile for one user. At most one row per
// UserID; saving again overwrites the existing row.
type UserPreference struct {
	gorm.Model
	UserID        string  `gorm:"uniqueIndex;not null" json:"user_id"`
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	CurrentWeight float64 `json:"current_weight"` // kg
	WeightGoal    float64 `json:"weight_goal"`    // kg
	HeightCM      float64 `json:"height_cm"`
	ActivityLevel string  `json:"activity_level"`

	DietaryRestrictions datatypes.JSONSlice[string] `json:"dietary_restrictions"`
	FoodAllergies       datatypes.JSONSlice[string] `json:"food_allergies"`
	CuisinePreferences  datatypes.JSONSlice[string] `json:"cuisine_preferences"`
	HealthGoals         datatypes.JSONSlice[string] `json:"health_goals"`

	DailyCalorieTarget int     `json:"daily_calorie_target"`
	ProteinTarget      float64 `json:"protein_target"`
	CarbTarget         float64 `json:"carb_target"`
	FatTarget          float64 `json:"fat_target"`
}
