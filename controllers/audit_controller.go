package controllers

import (
	"github.com/gin-gonic/gin"

	"lexvault/services"
	"lexvault/utils"
)

type AuditController struct {
	auditService *services.AuditService
}

func NewAuditController(auditService *services.AuditService) *AuditController {
	return &AuditController{auditService: auditService}
}

// ListEntries returns audit entries matching the query filters. The
// route itself is admin-only; there is no write endpoint because the
// log is append-only and only services record entries.
func (ac *AuditController) ListEntries(c *gin.Context) {
	page, limit := parsePagination(c)
	filter := services.AuditFilter{
		ActorID:    c.Query("actor_id"),
		Action:     c.Query("action"),
		EntityType: c.Query("entity_type"),
		EntityID:   c.Query("entity_id"),
		Page:       page,
		Limit:      limit,
	}

	entries, total, err := ac.auditService.List(c.Request.Context(), filter)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Audit entries retrieved", entries, buildPagination(page, limit, total))
}
