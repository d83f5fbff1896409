package routes

import (
	"github.com/gin-gonic/gin"

	"lexvault/controllers"
	"lexvault/middleware"
)

// RegisterDocumentRoutes wires the document lifecycle endpoints.
func RegisterDocumentRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	documentController := controllers.NewDocumentController(container.DocumentService, container.StorageService)

	documents := api.Group("/documents")
	documents.Use(middleware.AuthMiddleware(container.JWTSecret))
	{
		documents.POST("", documentController.UploadDocument)
		documents.GET("", documentController.ListDocuments)
		documents.GET("/:id", documentController.GetDocument)
		documents.GET("/:id/download", documentController.GetDownloadURL)
		documents.PATCH("/:id", documentController.UpdateDocument)
		documents.PATCH("/:id/status", documentController.SetStatus)
		documents.PATCH("/:id/archive", documentController.ToggleArchive)
		documents.DELETE("/:id", documentController.DeleteDocument)
	}
}
