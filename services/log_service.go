package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/config"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
)

// DailySummary is the derived aggregate over one day of log entries.
type DailySummary struct {
	Date       string  `json:"date"`
	Calories   float64 `json:"calories"`
	Protein    float64 `json:"protein"`
	Carbs      float64 `json:"carbs"`
	Fat        float64 `json:"fat"`
	EntryCount int     `json:"entry_count"`
}

// LogFood inserts one append-only log entry. The single Create runs in its
// own transaction, so a crash mid-write cannot leave a partial row.
func LogFood(entry *models.FoodLogEntry) error {
	if entry.UserID == "" {
		return errors.New("user_id is required")
	}
	if entry.FoodItem == "" {
		return errors.New("food_item is required")
	}
	if entry.Calories < 0 || entry.Protein < 0 || entry.Carbs < 0 || entry.Fat < 0 {
		return errors.New("nutrition values must be non-negative")
	}
	if entry.ConsumedAt.IsZero() {
		entry.ConsumedAt = time.Now()
	}

	if err := config.DB.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to save log entry: %w", err)
	}
	return nil
}

// EntriesForDay lists a user's entries whose ConsumedAt falls on the given
// date, newest first.
func EntriesForDay(userID string, date time.Time) ([]models.FoodLogEntry, error) {
	start, end := dayWindow(date)

	var entries []models.FoodLogEntry
	err := config.DB.
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, start, end).
		Order("consumed_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load log entries: %w", err)
	}
	return entries, nil
}

// GetDailySummary computes the daily totals for a user and date. Totals are
// always derived from the entries, never stored.
func GetDailySummary(userID string, date time.Time) (*DailySummary, error) {
	entries, err := EntriesForDay(userID, date)
	if err != nil {
		return nil, err
	}

	summary := &DailySummary{Date: date.Format("2006-01-02"), EntryCount: len(entries)}
	for _, e := range entries {
		summary.Calories += e.Calories
		summary.Protein += e.Protein
		summary.Carbs += e.Carbs
		summary.Fat += e.Fat
	}
	return summary, nil
}

func dayWindow(date time.Time) (time.Time, time.Time) {
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return start, start.Add(24 * time.Hour)
}
