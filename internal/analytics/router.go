package analytics

import (
	"github.com/gin-gonic/gin"

	"eventbook/internal/auth"
	"eventbook/internal/shared/middleware"
)

func SetupAnalyticsRoutes(router *gin.RouterGroup, controller Controller, tokens *auth.TokenService) {
	statsGroup := router.Group("/events/event")
	statsGroup.Use(middleware.TokenAuth(tokens), middleware.RequireAdmin())
	{
		statsGroup.GET("/getStatistics", controller.GetStatistics)
	}
}
