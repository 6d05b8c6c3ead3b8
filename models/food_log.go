package models

import (
	"time"

	"gorm.io/gorm"
)

// Meal types attached to a FoodLogEntry. Empty means unspecified.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Sources a FoodLogEntry can come from.
const (
	SourceChat   = "chat"
	SourceManual = "manual"
)

// FoodLogEntry is one food-intake record. Entries are append-only; daily
// totals are derived by summing over ConsumedAt, never stored.
type FoodLogEntry struct {
	gorm.Model
	UserID     string    `gorm:"index;not null" json:"user_id"`
	FoodItem   string    `gorm:"not null" json:"food_item"`
	MealType   string    `json:"meal_type"`
	Calories   float64   `json:"calories"`
	Protein    float64   `json:"protein"`
	Carbs      float64   `json:"carbs"`
	Fat        float64   `json:"fat"`
	Source     string    `json:"source"`
	ConsumedAt time.Time `gorm:"index" json:"consumed_at"`
}
