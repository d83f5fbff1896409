package controllers

import (
	"github.com/gin-gonic/gin"

	"lexvault/middleware"
	"lexvault/models"
	"lexvault/services"
	"lexvault/utils"
)

type PermissionController struct {
	permissionService *services.PermissionService
}

func NewPermissionController(permissionService *services.PermissionService) *PermissionController {
	return &PermissionController{permissionService: permissionService}
}

// SetGrantRequest assigns a permission level to a user on a document.
// Level none revokes access without erasing the grant's history.
type SetGrantRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Level  string `json:"level" binding:"required"`
}

// GetEffectivePermission reports the caller's own level on a document.
func (pc *PermissionController) GetEffectivePermission(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	level, err := pc.permissionService.GetEffectivePermission(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Effective permission retrieved", gin.H{
		"document_id": c.Param("id"),
		"level":       level,
	})
}

// SetGrant creates or updates a user's permission level on a document.
func (pc *PermissionController) SetGrant(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req SetGrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	level, err := models.ParseLevel(req.Level)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	grant, err := pc.permissionService.SetGrant(c.Request.Context(), principal, c.Param("id"), req.UserID, level)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Permission grant saved", grant)
}

// ListGrants returns every grant on a document.
func (pc *PermissionController) ListGrants(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	grants, err := pc.permissionService.ListGrants(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Permission grants retrieved", grants)
}
