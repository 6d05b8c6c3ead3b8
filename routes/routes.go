package routes

import (
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/controllers"
	"github.com/harishmogili21/Nutrisense-Nutrition-Assistant/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	r.GET("/health", controllers.Health)

	r.POST("/chat", controllers.Chat)

	prefs := r.Group("/preferences")
	{
		prefs.GET("", controllers.GetPreferences)
		prefs.PUT("", controllers.SavePreferences)
	}

	logs := r.Group("/logs")
	{
		logs.POST("", controllers.LogFood)
		logs.GET("", controllers.ListLogs)
		logs.GET("/summary", controllers.GetDailySummary)
	}

	return r
}
