// internal/handlers/admin.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type AdminHandler struct {
	adminService        *services.AdminService
	notificationService *services.NotificationService
	storageService      *services.StorageService
}

func NewAdminHandler(adminService *services.AdminService, notificationService *services.NotificationService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		adminService:        adminService,
		notificationService: notificationService,
		storageService:      storageService,
	}
}

// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	users, total, err := h.adminService.ListUsers(params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(users, total, params)
	utils.PaginatedResponse(c, result)
}

// PUT /admin/users/:id/status
func (h *AdminHandler) UpdateUserStatus(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req services.UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.adminService.UpdateUserStatus(actor, userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// PUT /admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid user ID", nil)
		return
	}

	var req services.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	user, err := h.adminService.UpdateUserRole(actor, userID, &req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, user)
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.ListAuditLogs(params)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/uploads/presign
// Hands out a time-limited download URL for a private stored object.
func (h *AdminHandler) GetUploadURL(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		utils.BadRequestResponse(c, "Missing object key", nil)
		return
	}

	url, err := h.storageService.GeneratePresignedURL(key, 15*time.Minute)
	if err != nil {
		utils.BadRequestResponse(c, "Failed to generate download URL", err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{"url": url, "expires_in": int((15 * time.Minute).Seconds())})
}

// GET /notifications
func (h *AdminHandler) GetNotifications(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	notifications, err := h.notificationService.ListForUser(actor.ID, 50)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, notifications)
}

// PUT /notifications/:id/read
func (h *AdminHandler) MarkNotificationRead(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid notification ID", nil)
		return
	}

	if err := h.notificationService.MarkRead(actor.ID, notificationID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Notification marked as read"})
}
