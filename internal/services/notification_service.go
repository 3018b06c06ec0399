// internal/services/notification_service.go
package services

import (
	"fmt"
	"net/smtp"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/config"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
)

// NotificationService fans order lifecycle events out as in-app
// notification rows and emails. Everything here is best-effort: a
// failed notification never fails the transition that caused it, it
// just logs.
type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{db: db, cfg: cfg}
}

func (s *NotificationService) NotifyOrderPlaced(order *models.Order, user *models.User) {
	s.notify(user, "order_placed", "Order received",
		fmt.Sprintf("Your order %s has been received and is awaiting payment.", order.ID),
		order.ID)
}

func (s *NotificationService) NotifyOrderPaid(order *models.Order, user *models.User) {
	s.notify(user, "order_paid", "Payment confirmed",
		fmt.Sprintf("Payment for order %s was confirmed. It is now awaiting approval.", order.ID),
		order.ID)
}

func (s *NotificationService) NotifyOrderApproved(order *models.Order, user *models.User) {
	s.notify(user, "order_approved", "Order approved",
		fmt.Sprintf("Your order %s was approved and is being processed.", order.ID),
		order.ID)
}

func (s *NotificationService) NotifyOrderStatusChanged(order *models.Order, user *models.User) {
	s.notify(user, "order_status", "Order update",
		fmt.Sprintf("Your order %s is now %s.", order.ID, order.Status),
		order.ID)
}

func (s *NotificationService) notify(user *models.User, kind, title, message string, orderID uuid.UUID) {
	if user == nil {
		return
	}

	resourceType := "order"
	notification := &models.Notification{
		UserID:              &user.ID,
		Type:                kind,
		Title:               title,
		Message:             message,
		RelatedResourceType: resourceType,
		RelatedResourceID:   &orderID,
	}
	if err := s.db.Create(notification).Error; err != nil {
		logrus.WithError(err).WithField("type", kind).Error("Failed to create notification")
	}

	go s.sendEmail(user.Email, title, message)
}

func (s *NotificationService) sendEmail(to, subject, body string) {
	if s.cfg.Email.SMTPHost == "" {
		return
	}

	from := s.cfg.Email.FromEmail
	msg := []byte(fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.Email.FromName, from, to, subject, body))

	addr := s.cfg.Email.SMTPHost + ":" + s.cfg.Email.SMTPPort
	auth := smtp.PlainAuth("", s.cfg.Email.SMTPUsername, s.cfg.Email.SMTPPassword, s.cfg.Email.SMTPHost)

	if err := smtp.SendMail(addr, auth, from, []string{to}, msg); err != nil {
		logrus.WithError(err).WithField("to", to).Error("Failed to send email")
	}
}

// MarkRead flips a single notification for its owner.
func (s *NotificationService) MarkRead(userID, notificationID uuid.UUID) error {
	return s.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

// ListForUser returns the user's notifications newest first.
func (s *NotificationService) ListForUser(userID uuid.UUID, limit int) ([]models.Notification, error) {
	if limit <= 0 {
		limit = 50
	}
	var notifications []models.Notification
	err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}
