// internal/models/order.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	UserID          uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	OrderItems      []OrderItem `json:"order_items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress JSONB       `json:"shipping_address" gorm:"type:jsonb"`
	PaymentMethod   string      `json:"payment_method" gorm:"size:50;not null"`
	PaymentResult   JSONB       `json:"payment_result,omitempty" gorm:"type:jsonb"`
	TaxPrice        float64     `json:"tax_price" gorm:"type:decimal(10,2);default:0"`
	ShippingPrice   float64     `json:"shipping_price" gorm:"type:decimal(10,2);default:0"`
	TotalPrice      float64     `json:"total_price" gorm:"type:decimal(10,2);not null"`
	Status          OrderStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	IsPaid          bool        `json:"is_paid" gorm:"default:false;index"`
	PaidAt          *time.Time  `json:"paid_at"`
	IsDelivered     bool        `json:"is_delivered" gorm:"default:false"`
	DeliveredAt     *time.Time  `json:"delivered_at"`
	ApprovedAt      *time.Time  `json:"approved_at"`
	ApprovedByName  string      `json:"approved_by_name,omitempty" gorm:"size:50"`
	ApprovedByEmail string      `json:"approved_by_email,omitempty" gorm:"size:255"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// OrderItem is an immutable snapshot of a cart line at checkout time.
// Title and price are copied so a later game edit or deletion never
// rewrites order history; Game resolves to nil once the game is gone.
type OrderItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	OrderID   uuid.UUID `json:"order_id" gorm:"type:uuid;not null;index"`
	GameID    uuid.UUID `json:"game_id" gorm:"type:uuid;not null"`
	Title     string    `json:"title" gorm:"size:255;not null"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`

	Game *Game `json:"game,omitempty" gorm:"foreignKey:GameID"`
}

// CanBeApproved reports whether the approve transition is legal:
// paid, still pending admin approval.
func (o *Order) CanBeApproved() bool {
	return o.Status == OrderStatusPending && o.IsPaid
}
