package controllers

import (
	"errors"
	"net/http"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/services"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/utils"

	"github.com/gin-gonic/gin"
)

// GET /preferences?user_id=alice
func GetPreferences(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'user_id' query param"})
		return
	}

	pref, err := services.GetPreferences(userID)
	if err != nil {
		if errors.Is(err, services.ErrPreferencesNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "preferences not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"preferences": pref}
	if bmi, err := utils.CalculateBMI(pref.HeightCM, pref.CurrentWeight); err == nil {
		resp["bmi"] = bmi
		resp["bmi_category"] = utils.BMICategory(bmi)
	}
	c.JSON(http.StatusOK, resp)
}

// PUT /preferences  { "user_id": "...", ...profile fields }
func SavePreferences(c *gin.Context) {
	var body struct {
		UserID string `json:"user_id" binding:"required"`
		services.PreferenceInput
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pref, err := services.SavePreferences(body.UserID, body.PreferenceInput)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "preferences saved", "preferences": pref})
}
