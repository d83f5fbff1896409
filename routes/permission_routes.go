package routes

import (
	"github.com/gin-gonic/gin"

	"lexvault/controllers"
	"lexvault/middleware"
)

// RegisterPermissionRoutes wires the per-document permission endpoints.
func RegisterPermissionRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	permissionController := controllers.NewPermissionController(container.PermissionService)

	permissions := api.Group("/documents/:id/permissions")
	permissions.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		permissions.GET("/me", permissionController.GetEffectivePermission)
		permissions.GET("", permissionController.ListGrants)
		permissions.PUT("", permissionController.SetGrant)
	}
}
