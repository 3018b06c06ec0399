// internal/services/cart_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type CartService struct {
	db *gorm.DB
}

type AddToCartRequest struct {
	GameID   uuid.UUID `json:"game_id" validate:"required"`
	Quantity int       `json:"quantity" validate:"required,min=1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// GetCart returns the user's cart, creating the singleton on first
// access.
func (s *CartService) GetCart(userID uuid.UUID) (*models.Cart, error) {
	return s.getOrCreateCart(s.db, userID)
}

// AddItem adds a game to the cart or bumps its quantity if the line
// already exists. The line price is the game's effective price at the
// time of the call.
func (s *CartService) AddItem(userID uuid.UUID, req *AddToCartRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var cart *models.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, req.GameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("game")
			}
			return apperrors.Internal("database error", err)
		}

		if game.Stock < req.Quantity {
			return apperrors.Validation("not enough stock for "+game.Title, nil)
		}

		c, err := s.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		err = tx.Where("cart_id = ? AND game_id = ?", c.ID, req.GameID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += req.Quantity
			item.Price = game.EffectivePrice()
			if err := tx.Save(&item).Error; err != nil {
				return apperrors.Internal("failed to update cart item", err)
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			item = models.CartItem{
				CartID:   c.ID,
				GameID:   req.GameID,
				Quantity: req.Quantity,
				Price:    game.EffectivePrice(),
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.Internal("failed to add cart item", err)
			}
		default:
			return apperrors.Internal("database error", err)
		}

		cart, err = s.refreshTotal(tx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// UpdateItem sets a line's quantity outright.
func (s *CartService) UpdateItem(userID, gameID uuid.UUID, req *UpdateCartItemRequest) (*models.Cart, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var cart *models.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item models.CartItem
		if err := tx.Where("cart_id = ? AND game_id = ?", c.ID, gameID).First(&item).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("cart item")
			}
			return apperrors.Internal("database error", err)
		}

		var game models.Game
		if err := tx.First(&game, gameID).Error; err == nil && game.Stock < req.Quantity {
			return apperrors.Validation("not enough stock for "+game.Title, nil)
		}

		item.Quantity = req.Quantity
		if err := tx.Save(&item).Error; err != nil {
			return apperrors.Internal("failed to update cart item", err)
		}

		cart, err = s.refreshTotal(tx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem removes a game's line from the cart. Removing a game that
// is not in the cart is a no-op.
func (s *CartService) RemoveItem(userID, gameID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ? AND game_id = ?", c.ID, gameID).
			Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal("failed to remove cart item", err)
		}

		cart, err = s.refreshTotal(tx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// ClearCart empties the cart, keeping the singleton row.
func (s *CartService) ClearCart(userID uuid.UUID) (*models.Cart, error) {
	var cart *models.Cart
	err := s.db.Transaction(func(tx *gorm.DB) error {
		c, err := s.getOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", c.ID).Delete(&models.CartItem{}).Error; err != nil {
			return apperrors.Internal("failed to clear cart", err)
		}

		cart, err = s.refreshTotal(tx, c.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) getOrCreateCart(tx *gorm.DB, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Preload("Items.Game").Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("database error", err)
	}

	cart = models.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		// A concurrent first access may have won the unique index race.
		if err2 := tx.Preload("Items.Game").Where("user_id = ?", userID).First(&cart).Error; err2 == nil {
			return &cart, nil
		}
		return nil, apperrors.Internal("failed to create cart", err)
	}

	return &cart, nil
}

func (s *CartService) refreshTotal(tx *gorm.DB, cartID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Preload("Items.Game").First(&cart, cartID).Error; err != nil {
		return nil, apperrors.Internal("database error", err)
	}

	cart.RecalculateTotal()
	if err := tx.Model(&cart).UpdateColumn("total_price", cart.TotalPrice).Error; err != nil {
		return nil, apperrors.Internal("failed to update cart total", err)
	}

	return &cart, nil
}
