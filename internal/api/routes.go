package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/vitality-planner/internal/service"
)

// SetupRoutes registers the presentation API. When jwtSecret is empty the
// /api/v1 routes are open.
func SetupRoutes(router *gin.Engine, jwtSecret string, planner *service.Planner) {
	planHandler := NewPlanHandler(planner)
	trackerHandler := NewTrackerHandler(planner)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	if jwtSecret != "" {
		apiV1.Use(AuthMiddleware(jwtSecret))
	}
	{
		apiV1.POST("/plan", planHandler.SubmitProfile)
		apiV1.GET("/plan", planHandler.GetPlan)
		apiV1.GET("/profile", planHandler.GetProfile)
		apiV1.DELETE("/session", planHandler.ResetSession)

		apiV1.GET("/status", planHandler.GetStatus)
		apiV1.POST("/status/dismiss", planHandler.DismissError)

		trackerGroup := apiV1.Group("/tracker")
		{
			trackerGroup.GET("", trackerHandler.GetDay)
			trackerGroup.POST("/date", trackerHandler.SelectDate)
			trackerGroup.POST("/habits/toggle", trackerHandler.ToggleHabit)
			trackerGroup.POST("/exercises/toggle", trackerHandler.ToggleExercise)
			trackerGroup.GET("/ledger", trackerHandler.GetLedger)
		}
	}
}
