package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"lexvault/config"
	"lexvault/services"
)

// ServiceContainer holds every service the route groups depend on.
// Storage may be nil when no blob storage is configured; upload and
// download then run metadata-only.
type ServiceContainer struct {
	JWTSecret           string
	StorageService      *services.StorageService
	AuditService        *services.AuditService
	PermissionService   *services.PermissionService
	NotificationService *services.NotificationService
	DocumentService     *services.DocumentService
	TrashService        *services.TrashService
	AssignmentService   *services.AssignmentService
}

// NewServiceContainer wires the service graph. The audit recorder is
// built first since nearly everything writes to it.
func NewServiceContainer(db *mongo.Database, cfg *config.Config, storage *services.StorageService, logger *zap.Logger) *ServiceContainer {
	auditService := services.NewAuditService(db, logger)
	permissionService := services.NewPermissionService(db, auditService, logger)
	notificationService := services.NewNotificationService(db, logger)
	documentService := services.NewDocumentService(db, permissionService, storage, auditService, logger)
	trashService := services.NewTrashService(db, permissionService, storage, auditService, logger, cfg.TrashRetention)
	assignmentService := services.NewAssignmentService(db, permissionService, notificationService, auditService, logger)

	return &ServiceContainer{
		JWTSecret:           cfg.JWTSecret,
		StorageService:      storage,
		AuditService:        auditService,
		PermissionService:   permissionService,
		NotificationService: notificationService,
		DocumentService:     documentService,
		TrashService:        trashService,
		AssignmentService:   assignmentService,
	}
}

// SetupRoutes registers every route group under the api group.
func SetupRoutes(api *gin.RouterGroup, container *ServiceContainer) {
	RegisterDocumentRoutes(api, container)
	RegisterTrashRoutes(api, container)
	RegisterAssignmentRoutes(api, container)
	RegisterPermissionRoutes(api, container)
	RegisterNotificationRoutes(api, container)
	RegisterAuditRoutes(api, container)
}
