package events

import (
	"github.com/gin-gonic/gin"

	"eventbook/internal/auth"
	"eventbook/internal/shared/middleware"
)

func SetupEventRoutes(router *gin.RouterGroup, controller Controller, tokens *auth.TokenService) {
	eventGroup := router.Group("/events/event")
	{
		// Anyone can browse the catalog.
		eventGroup.GET("/getAll", controller.GetAllEvents)
		eventGroup.GET("/getById/:id", controller.GetEventByID)

		// Catalog mutations are admin-only.
		adminGroup := eventGroup.Group("")
		adminGroup.Use(middleware.TokenAuth(tokens), middleware.RequireAdmin())
		{
			adminGroup.POST("/add", controller.AddEvent)
			adminGroup.PUT("/update/:id", controller.UpdateEvent)
			adminGroup.DELETE("/delete/:id", controller.DeleteEvent)
		}
	}
}
