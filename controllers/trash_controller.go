package controllers

import (
	"github.com/gin-gonic/gin"

	"lexvault/middleware"
	"lexvault/services"
	"lexvault/utils"
)

type TrashController struct {
	trashService *services.TrashService
}

func NewTrashController(trashService *services.TrashService) *TrashController {
	return &TrashController{trashService: trashService}
}

// RestoreMultipleRequest is the body for a bulk restore.
type RestoreMultipleRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

// ListTrash returns the caller's trashed documents with auto-purge deadlines.
func (tc *TrashController) ListTrash(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	page, limit := parsePagination(c)
	items, total, err := tc.trashService.ListTrash(c.Request.Context(), principal, page, limit)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Trash retrieved", items, buildPagination(page, limit, total))
}

// RestoreDocument brings one document back from the trash.
func (tc *TrashController) RestoreDocument(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	doc, err := tc.trashService.Restore(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document restored", doc)
}

// RestoreMultiple restores several documents and reports per-item outcomes.
func (tc *TrashController) RestoreMultiple(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req RestoreMultipleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	results := tc.trashService.RestoreMultiple(c.Request.Context(), principal, req.IDs)
	utils.SuccessResponse(c, "Restore completed", results)
}

// PurgeDocument irreversibly removes a trashed document.
func (tc *TrashController) PurgeDocument(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	if err := tc.trashService.Purge(c.Request.Context(), principal, c.Param("id")); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Document purged", nil)
}

// EmptyTrash purges every trashed document the caller owns.
func (tc *TrashController) EmptyTrash(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	purged, err := tc.trashService.PurgeAll(c.Request.Context(), principal)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Trash emptied", gin.H{"purged": purged})
}
