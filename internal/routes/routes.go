package routes

import (
	"buspass_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.PassengerHandler.RegisterRoutes(api)
		appHandlers.AdminHandler.RegisterRoutes(api)
		appHandlers.ConductorHandler.RegisterRoutes(api)
		appHandlers.FileHandler.RegisterRoutes(api)
	}
}
