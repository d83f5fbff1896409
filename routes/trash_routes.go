package routes

import (
	"github.com/gin-gonic/gin"

	"lexvault/controllers"
	"lexvault/middleware"
)

// RegisterTrashRoutes wires the trash view, restore and purge endpoints.
func RegisterTrashRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	trashController := controllers.NewTrashController(container.TrashService)

	trash := api.Group("/trash")
	trash.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		trash.GET("", trashController.ListTrash)
		trash.PATCH("/:id/restore", trashController.RestoreDocument)
		trash.POST("/restore-multiple", trashController.RestoreMultiple)
		trash.DELETE("/:id/purge", trashController.PurgeDocument)
		trash.DELETE("/purge-all", trashController.EmptyTrash)
	}
}
