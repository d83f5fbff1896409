package controllers

import (
	"context"

	"github.com/gin-gonic/gin"

	"lexvault/middleware"
	"lexvault/models"
	"lexvault/services"
	"lexvault/utils"
)

type AssignmentController struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// UpdateAssignmentStatusRequest is the body for a status transition.
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateAssignment hands a document off to another user.
func (ac *AssignmentController) CreateAssignment(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	assignment, err := ac.assignmentService.Create(c.Request.Context(), principal, req)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, "Assignment created", assignment)
}

// UpdateStatus moves an assignment to accepted, rejected or completed.
func (ac *AssignmentController) UpdateStatus(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	var req UpdateAssignmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", nil)
		return
	}

	assignment, err := ac.assignmentService.UpdateStatus(c.Request.Context(), principal, c.Param("id"), models.AssignmentStatus(req.Status))
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Assignment status updated", assignment)
}

// ListReceived returns assignments addressed to the caller.
func (ac *AssignmentController) ListReceived(c *gin.Context) {
	ac.list(c, ac.assignmentService.ListReceived)
}

// ListSent returns assignments the caller created.
func (ac *AssignmentController) ListSent(c *gin.Context) {
	ac.list(c, ac.assignmentService.ListSent)
}

type assignmentLister func(ctx context.Context, principal models.Principal, filter services.AssignmentListFilter) ([]models.Assignment, int64, error)

func (ac *AssignmentController) list(c *gin.Context, lister assignmentLister) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	page, limit := parsePagination(c)
	filter := services.AssignmentListFilter{
		Status: models.AssignmentStatus(c.Query("status")),
		Page:   page,
		Limit:  limit,
	}

	assignments, total, err := lister(c.Request.Context(), principal, filter)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Assignments retrieved", assignments, buildPagination(page, limit, total))
}
