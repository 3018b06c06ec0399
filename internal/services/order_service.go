// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/config"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type OrderService struct {
	db            *gorm.DB
	cfg           *config.Config
	notifications *NotificationService
}

type CreateOrderRequest struct {
	ShippingAddress map[string]interface{} `json:"shipping_address"`
	PaymentMethod   string                 `json:"payment_method" validate:"required,max=50"`
}

type PayOrderRequest struct {
	PaymentResult map[string]interface{} `json:"payment_result" validate:"required"`
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func NewOrderService(db *gorm.DB, cfg *config.Config, notifications *NotificationService) *OrderService {
	return &OrderService{db: db, cfg: cfg, notifications: notifications}
}

// CreateOrderFromCart turns the user's cart into an immutable order.
// The whole checkout runs in one transaction with the game rows locked,
// so two orders can never both take the last copy.
func (s *OrderService) CreateOrderFromCart(actor Actor, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var order *models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		if err := tx.Preload("Items").Where("user_id = ?", actor.ID).First(&cart).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Validation("cart is empty", nil)
			}
			return apperrors.Internal("database error", err)
		}
		if len(cart.Items) == 0 {
			return apperrors.Validation("cart is empty", nil)
		}

		order = &models.Order{
			UserID:          actor.ID,
			ShippingAddress: models.JSONB(req.ShippingAddress),
			PaymentMethod:   req.PaymentMethod,
			Status:          models.OrderStatusPending,
		}

		subtotal := 0.0
		for _, item := range cart.Items {
			var game models.Game
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&game, item.GameID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.Validation("game in cart no longer exists", nil)
				}
				return apperrors.Internal("database error", err)
			}

			if game.Stock < item.Quantity {
				return apperrors.Validation(fmt.Sprintf("%s is out of stock", game.Title), map[string]interface{}{
					"game_id":   game.ID,
					"requested": item.Quantity,
					"available": game.Stock,
				})
			}

			price := game.EffectivePrice()
			order.OrderItems = append(order.OrderItems, models.OrderItem{
				GameID:   game.ID,
				Title:    game.Title,
				Quantity: item.Quantity,
				Price:    price,
			})
			subtotal += price * float64(item.Quantity)

			if err := tx.Model(&game).Updates(map[string]interface{}{
				"stock":       gorm.Expr("stock - ?", item.Quantity),
				"sales_count": gorm.Expr("sales_count + ?", item.Quantity),
			}).Error; err != nil {
				return apperrors.Internal("failed to update stock", err)
			}
		}

		order.TaxPrice = round2(subtotal * s.cfg.Payment.TaxRatePercent / 100)
		order.ShippingPrice = s.cfg.Payment.ShippingFlatFee
		order.TotalPrice = round2(subtotal + order.TaxPrice + order.ShippingPrice)

		if err := tx.Create(order).Error; err != nil {
			return apperrors.Internal("failed to create order", err)
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal("failed to clear cart", err)
		}
		if err := tx.Model(&cart).UpdateColumn("total_price", 0).Error; err != nil {
			return apperrors.Internal("failed to reset cart total", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.notifyOwner(order, s.notifications.NotifyOrderPlaced)

	return order, nil
}

func (s *OrderService) GetOrder(actor Actor, orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OrderItems.Game").Preload("User").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if !CanModerate(actor, order.UserID) {
		return nil, apperrors.Forbidden("not authorized to view this order")
	}

	return &order, nil
}

func (s *OrderService) MyOrders(actor Actor, params utils.PaginationParams) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{}).Where("user_id = ?", actor.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count orders", err)
	}

	var orders []models.Order
	if err := utils.ApplyPagination(query.Preload("OrderItems").Order("created_at DESC"), params).
		Find(&orders).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch orders", err)
	}

	return orders, total, nil
}

// PayOrder records the payment snapshot. The order stays pending until
// an admin approves it.
func (s *OrderService) PayOrder(actor Actor, orderID uuid.UUID, req *PayOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var order models.Order
	if err := s.db.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if !CanModerate(actor, order.UserID) {
		return nil, apperrors.Forbidden("not authorized to pay this order")
	}
	if order.IsPaid {
		return nil, apperrors.InvalidState("order is already paid")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"is_paid":        true,
		"paid_at":        &now,
		"payment_result": models.JSONB(req.PaymentResult),
		"status":         models.OrderStatusPending,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("failed to update order", err)
	}

	s.db.Preload("OrderItems").First(&order, orderID)
	go s.notifyOwner(&order, s.notifications.NotifyOrderPaid)

	return &order, nil
}

// ApproveOrder moves a paid pending order into processing. Only the
// pending-and-paid state is approvable.
func (s *OrderService) ApproveOrder(actor Actor, orderID uuid.UUID) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("admin access required")
	}

	var admin models.User
	if err := s.db.First(&admin, actor.ID).Error; err != nil {
		return nil, apperrors.NotFound("user")
	}

	var order models.Order
	if err := s.db.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Internal("database error", err)
	}

	if !order.CanBeApproved() {
		return nil, apperrors.InvalidState("order cannot be approved in its current state")
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            models.OrderStatusProcessing,
		"approved_at":       &now,
		"approved_by_name":  admin.Username,
		"approved_by_email": admin.Email,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("failed to approve order", err)
	}

	s.db.Preload("OrderItems").First(&order, orderID)
	go s.notifyOwner(&order, s.notifications.NotifyOrderApproved)

	return &order, nil
}

// UpdateStatus is the admin's generic transition. Any known status is
// accepted, there is no transition whitelist.
func (s *OrderService) UpdateStatus(actor Actor, orderID uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("admin access required")
	}
	if !req.Status.Valid() {
		return nil, apperrors.Validation("unknown order status: "+string(req.Status), nil)
	}

	var order models.Order
	if err := s.db.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order")
		}
		return nil, apperrors.Internal("database error", err)
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.OrderStatusDelivered {
		now := time.Now()
		updates["is_delivered"] = true
		updates["delivered_at"] = &now
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("failed to update order status", err)
	}

	s.db.Preload("OrderItems").First(&order, orderID)
	go s.notifyOwner(&order, s.notifications.NotifyOrderStatusChanged)

	return &order, nil
}

// PendingOrders is the admin approval queue: paid orders still waiting.
func (s *OrderService) PendingOrders(actor Actor, params utils.PaginationParams) ([]models.Order, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.Forbidden("admin access required")
	}

	query := s.db.Model(&models.Order{}).
		Where("status = ? AND is_paid = ?", models.OrderStatusPending, true)

	return s.page(query, params)
}

// ProcessedOrders lists everything past the approval gate.
func (s *OrderService) ProcessedOrders(actor Actor, params utils.PaginationParams) ([]models.Order, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, apperrors.Forbidden("admin access required")
	}

	query := s.db.Model(&models.Order{}).
		Where("status NOT IN ?", []models.OrderStatus{models.OrderStatusPending, models.OrderStatusCancelled})

	return s.page(query, params)
}

func (s *OrderService) page(query *gorm.DB, params utils.PaginationParams) ([]models.Order, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count orders", err)
	}

	var orders []models.Order
	if err := utils.ApplyPagination(query.Preload("OrderItems").Preload("User").Order("created_at DESC"), params).
		Find(&orders).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch orders", err)
	}

	return orders, total, nil
}

func (s *OrderService) notifyOwner(order *models.Order, fn func(*models.Order, *models.User)) {
	if order == nil {
		return
	}
	var user models.User
	if err := s.db.First(&user, order.UserID).Error; err != nil {
		return
	}
	fn(order, &user)
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
