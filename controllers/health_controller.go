package controllers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// GET /health — liveness plus which optional features are configured.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"advice_enabled": os.Getenv("MISTRAL_API_KEY") != "",
		"search_enabled": os.Getenv("EXA_API_KEY") != "",
	})
}
