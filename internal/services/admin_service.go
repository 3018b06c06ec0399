// internal/services/admin_service.go
package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type DashboardStats struct {
	TotalUsers     int64   `json:"total_users"`
	TotalGames     int64   `json:"total_games"`
	TotalOrders    int64   `json:"total_orders"`
	PendingOrders  int64   `json:"pending_orders"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalReviews   int64   `json:"total_reviews"`
	TotalBlogs     int64   `json:"total_blogs"`
	NewUsersWeek   int64   `json:"new_users_week"`
	OrdersToday    int64   `json:"orders_today"`
	RevenueMonth   float64 `json:"revenue_month"`
}

type UpdateUserStatusRequest struct {
	Status models.UserStatus `json:"status" validate:"required"`
}

type UpdateUserRoleRequest struct {
	Role models.UserRole `json:"role" validate:"required"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// GetDashboardStats aggregates the storefront-wide counters shown on
// the admin landing page.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	s.db.Model(&models.User{}).Count(&stats.TotalUsers)
	s.db.Model(&models.Game{}).Count(&stats.TotalGames)
	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)
	s.db.Model(&models.Order{}).
		Where("status = ? AND is_paid = ?", models.OrderStatusPending, true).
		Count(&stats.PendingOrders)
	s.db.Model(&models.Review{}).Count(&stats.TotalReviews)
	s.db.Model(&models.Blog{}).Count(&stats.TotalBlogs)

	s.db.Model(&models.Order{}).
		Where("is_paid = ?", true).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalRevenue)

	weekAgo := time.Now().AddDate(0, 0, -7)
	s.db.Model(&models.User{}).Where("created_at >= ?", weekAgo).Count(&stats.NewUsersWeek)

	today := time.Now().Truncate(24 * time.Hour)
	s.db.Model(&models.Order{}).Where("created_at >= ?", today).Count(&stats.OrdersToday)

	monthStart := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.Local)
	s.db.Model(&models.Order{}).
		Where("is_paid = ? AND created_at >= ?", true, monthStart).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.RevenueMonth)

	return stats, nil
}

// ListUsers pages the user table for the admin console.
func (s *AdminService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count users", err)
	}

	allowedSortFields := []string{"created_at", "username", "email", "last_login_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch users", err)
	}

	return users, total, nil
}

// UpdateUserStatus suspends or reactivates an account. Admins cannot
// change their own status.
func (s *AdminService) UpdateUserStatus(actor Actor, userID uuid.UUID, req *UpdateUserStatusRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}
	if actor.ID == userID {
		return nil, apperrors.Validation("cannot change your own status", nil)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if err := s.db.Model(&user).Update("status", req.Status).Error; err != nil {
		return nil, apperrors.Internal("failed to update user status", err)
	}

	s.db.First(&user, userID)
	return &user, nil
}

// UpdateUserRole promotes or demotes an account. Self-demotion is
// blocked so the last admin cannot lock everyone out.
func (s *AdminService) UpdateUserRole(actor Actor, userID uuid.UUID, req *UpdateUserRoleRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}
	if actor.ID == userID {
		return nil, apperrors.Validation("cannot change your own role", nil)
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if err := s.db.Model(&user).Update("role", req.Role).Error; err != nil {
		return nil, apperrors.Internal("failed to update user role", err)
	}

	s.db.First(&user, userID)
	return &user, nil
}

// ListAuditLogs pages recent audit entries newest first.
func (s *AdminService) ListAuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count audit logs", err)
	}

	var logs []models.AuditLog
	if err := utils.ApplyPagination(query.Order("created_at DESC"), params).
		Find(&logs).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch audit logs", err)
	}

	return logs, total, nil
}
