// internal/models/cart.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Cart is a per-user singleton, created lazily on first access.
type Cart struct {
	BaseModel
	UserID     uuid.UUID  `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	TotalPrice float64    `json:"total_price" gorm:"type:decimal(10,2);default:0"`
	Items      []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem captures the game's effective price at the time it is
// added. Hard-deleted rows, no soft-delete column: removing a line and
// re-adding the same game must not trip the unique index.
type CartItem struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	CartID    uuid.UUID `json:"cart_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_game"`
	GameID    uuid.UUID `json:"game_id" gorm:"type:uuid;not null;uniqueIndex:idx_cart_game"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`
	Price     float64   `json:"price" gorm:"type:decimal(10,2);not null"`

	Game *Game `json:"game,omitempty" gorm:"foreignKey:GameID"`
}

// RecalculateTotal recomputes the cart total from its items. Called on
// every cart mutation.
func (c *Cart) RecalculateTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	c.TotalPrice = total
}

type Wishlist struct {
	BaseModel
	UserID uuid.UUID      `json:"user_id" gorm:"type:uuid;uniqueIndex;not null"`
	Items  []WishlistItem `json:"items" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

type WishlistItem struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt  time.Time `json:"created_at"`
	WishlistID uuid.UUID `json:"wishlist_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_game"`
	GameID     uuid.UUID `json:"game_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_game"`

	Game *Game `json:"game,omitempty" gorm:"foreignKey:GameID"`
}
