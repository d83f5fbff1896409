package routes

import (
	"github.com/gin-gonic/gin"

	"lexvault/controllers"
	"lexvault/middleware"
)

// RegisterNotificationRoutes wires the notification inbox endpoints.
func RegisterNotificationRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	notificationController := controllers.NewNotificationController(container.NotificationService)

	notifications := api.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		notifications.GET("", notificationController.ListNotifications)
		notifications.PATCH("/:id/read", notificationController.MarkRead)
	}
}
