package controllers

import (
	"net/http"
	"time"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/models"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/services"

	"github.com/gin-gonic/gin"
)

var validMealTypes = map[string]bool{
	"":                   true,
	models.MealBreakfast: true,
	models.MealLunch:     true,
	models.MealDinner:    true,
	models.MealSnack:     true,
}

// POST /logs — manual form submission. Entries logged here are
// indistinguishable on read from entries logged through chat.
func LogFood(c *gin.Context) {
	var body struct {
		UserID     string    `json:"user_id" binding:"required"`
		FoodItem   string    `json:"food_item" binding:"required"`
		MealType   string    `json:"meal_type"`
		Calories   float64   `json:"calories"`
		Protein    float64   `json:"protein"`
		Carbs      float64   `json:"carbs"`
		Fat        float64   `json:"fat"`
		ConsumedAt time.Time `json:"consumed_at"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validMealTypes[body.MealType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "meal_type must be breakfast, lunch, dinner or snack"})
		return
	}

	entry := &models.FoodLogEntry{
		UserID:     body.UserID,
		FoodItem:   body.FoodItem,
		MealType:   body.MealType,
		Calories:   body.Calories,
		Protein:    body.Protein,
		Carbs:      body.Carbs,
		Fat:        body.Fat,
		Source:     models.SourceManual,
		ConsumedAt: body.ConsumedAt,
	}
	if err := services.LogFood(entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// GET /logs?user_id=alice&date=2026-09-01
func ListLogs(c *gin.Context) {
	userID, date, ok := logQueryParams(c)
	if !ok {
		return
	}

	entries, err := services.EntriesForDay(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GET /logs/summary?user_id=alice&date=2026-09-01
func GetDailySummary(c *gin.Context) {
	userID, date, ok := logQueryParams(c)
	if !ok {
		return
	}

	summary, err := services.GetDailySummary(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}

func logQueryParams(c *gin.Context) (string, time.Time, bool) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'user_id' query param"})
		return "", time.Time{}, false
	}

	date := time.Now()
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
			return "", time.Time{}, false
		}
		date = parsed
	}
	return userID, date, true
}
