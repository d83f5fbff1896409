package routes

import (
	"github.com/gin-gonic/gin"

	"lexvault/controllers"
	"lexvault/middleware"
	"lexvault/models"
)

// RegisterAuditRoutes wires the audit listing. Reading the log is
// restricted to system admins.
func RegisterAuditRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	auditController := controllers.NewAuditController(container.AuditService)

	audit := api.Group("/audit")
	audit.Use(middleware.AuthMiddleware(container.JWTSecret))
	audit.Use(middleware.RequireRole(models.RoleAdmin))
	{
		audit.GET("", auditController.ListEntries)
	}
}
