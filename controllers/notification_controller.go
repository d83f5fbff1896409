package controllers

import (
	"github.com/gin-gonic/gin"

	"lexvault/middleware"
	"lexvault/services"
	"lexvault/utils"
)

type NotificationController struct {
	notificationService *services.NotificationService
}

func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// ListNotifications returns the caller's inbox, newest first.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	page, limit := parsePagination(c)
	unreadOnly := c.Query("unread") == "true"

	notifications, total, err := nc.notificationService.List(c.Request.Context(), principal, unreadOnly, page, limit)
	if err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.PaginatedSuccessResponse(c, "Notifications retrieved", notifications, buildPagination(page, limit, total))
}

// MarkRead marks one of the caller's notifications as read.
func (nc *NotificationController) MarkRead(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		utils.UnauthorizedResponse(c, "User not authenticated")
		return
	}

	if err := nc.notificationService.MarkRead(c.Request.Context(), principal, c.Param("id")); err != nil {
		utils.DomainErrorResponse(c, err)
		return
	}

	utils.SuccessResponse(c, "Notification marked as read", nil)
}
