package controllers

import (
	"errors"
	"net/http"

	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/services"

	"github.com/gin-gonic/gin"
)

// POST /chat  { "user_id": "...", "message": "..." }
func Chat(c *gin.Context) {
	var body struct {
		UserID  string `json:"user_id" binding:"required"`
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	chatSvc := services.NewChatService()
	reply, err := chatSvc.ProcessMessage(c.Request.Context(), body.UserID, body.Message)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
