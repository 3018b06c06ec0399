// internal/services/payment_service.go
package services

import (
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/config"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

// PaymentService wraps Stripe. Its ConfirmPayment output feeds the
// order's payment snapshot through OrderService.PayOrder.
type PaymentService struct {
	db     *gorm.DB
	cfg    *config.Config
	orders *OrderService
}

type CreatePaymentIntentRequest struct {
	OrderID  uuid.UUID `json:"order_id" validate:"required"`
	Currency string    `json:"currency,omitempty"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	OrderID         uuid.UUID `json:"order_id" validate:"required"`
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, orders *OrderService) *PaymentService {
	stripe.Key = cfg.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		cfg:    cfg,
		orders: orders,
	}
}

// CreatePaymentIntent opens a Stripe intent for the order's total.
func (s *PaymentService) CreatePaymentIntent(actor Actor, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	order, err := s.orders.GetOrder(actor, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.IsPaid {
		return nil, apperrors.InvalidState("order is already paid")
	}

	currency := req.Currency
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(order.TotalPrice * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("user_id", actor.ID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, apperrors.Internal("failed to create payment intent", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment checks the intent with Stripe and, on success, marks
// the order paid with the intent as its payment snapshot.
func (s *PaymentService) ConfirmPayment(actor Actor, req *ConfirmPaymentRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, apperrors.Internal("failed to get payment intent", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, apperrors.InvalidState("payment has not succeeded: " + string(pi.Status))
	}

	return s.orders.PayOrder(actor, req.OrderID, &PayOrderRequest{
		PaymentResult: map[string]interface{}{
			"id":     pi.ID,
			"status": string(pi.Status),
			"amount": float64(pi.Amount) / 100,
		},
	})
}

// RefundOrder pushes a full refund through Stripe and cancels the
// order. Admin only.
func (s *PaymentService) RefundOrder(actor Actor, orderID uuid.UUID) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.Forbidden("admin access required")
	}

	order, err := s.orders.GetOrder(actor, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsPaid {
		return nil, apperrors.InvalidState("order has not been paid")
	}
	if order.Status == models.OrderStatusCancelled {
		return nil, apperrors.InvalidState("order is already cancelled")
	}

	if ref, ok := order.PaymentResult["id"].(string); ok && ref != "" {
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(ref),
			Reason:        stripe.String("requested_by_customer"),
		}
		if _, err := refund.New(params); err != nil {
			return nil, apperrors.Internal("failed to process refund", err)
		}
	}

	return s.orders.UpdateStatus(actor, orderID, &UpdateOrderStatusRequest{
		Status: models.OrderStatusCancelled,
	})
}

// PublishableKey is handed to the frontend for Stripe.js.
func (s *PaymentService) PublishableKey() string {
	return s.cfg.Payment.StripePublishableKey
}
