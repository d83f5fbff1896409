package routes

import (
	"github.com/gin-gonic/gin"

	"lexvault/controllers"
	"lexvault/middleware"
)

// RegisterAssignmentRoutes wires the assignment workflow endpoints.
func RegisterAssignmentRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	assignmentController := controllers.NewAssignmentController(container.AssignmentService)

	assignments := api.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		assignments.POST("", assignmentController.CreateAssignment)
		assignments.PATCH("/:id/status", assignmentController.UpdateStatus)
		assignments.GET("/received", assignmentController.ListReceived)
		assignments.GET("/sent", assignmentController.ListSent)
	}
}
