// internal/services/wishlist_service.go
package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
)

type WishlistService struct {
	db *gorm.DB
}

func NewWishlistService(db *gorm.DB) *WishlistService {
	return &WishlistService{db: db}
}

// GetWishlist returns the user's wishlist, creating the singleton on
// first access.
func (s *WishlistService) GetWishlist(userID uuid.UUID) (*models.Wishlist, error) {
	return s.getOrCreateWishlist(s.db, userID)
}

// AddGame puts a game on the wishlist. Adding a game that is already
// present is a no-op, not an error.
func (s *WishlistService) AddGame(userID, gameID uuid.UUID) (*models.Wishlist, error) {
	var wishlist *models.Wishlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var game models.Game
		if err := tx.First(&game, gameID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.NotFound("game")
			}
			return apperrors.Internal("database error", err)
		}

		w, err := s.getOrCreateWishlist(tx, userID)
		if err != nil {
			return err
		}

		var count int64
		tx.Model(&models.WishlistItem{}).
			Where("wishlist_id = ? AND game_id = ?", w.ID, gameID).
			Count(&count)
		if count == 0 {
			item := models.WishlistItem{WishlistID: w.ID, GameID: gameID}
			if err := tx.Create(&item).Error; err != nil {
				return apperrors.Internal("failed to add wishlist item", err)
			}
		}

		wishlist, err = s.reload(tx, w.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// RemoveGame drops a game from the wishlist. Removing an absent game
// is a no-op.
func (s *WishlistService) RemoveGame(userID, gameID uuid.UUID) (*models.Wishlist, error) {
	var wishlist *models.Wishlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		w, err := s.getOrCreateWishlist(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("wishlist_id = ? AND game_id = ?", w.ID, gameID).
			Delete(&models.WishlistItem{}).Error; err != nil {
			return apperrors.Internal("failed to remove wishlist item", err)
		}

		wishlist, err = s.reload(tx, w.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

// ClearWishlist empties the list, keeping the singleton row.
func (s *WishlistService) ClearWishlist(userID uuid.UUID) (*models.Wishlist, error) {
	var wishlist *models.Wishlist
	err := s.db.Transaction(func(tx *gorm.DB) error {
		w, err := s.getOrCreateWishlist(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.Where("wishlist_id = ?", w.ID).Delete(&models.WishlistItem{}).Error; err != nil {
			return apperrors.Internal("failed to clear wishlist", err)
		}

		wishlist, err = s.reload(tx, w.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return wishlist, nil
}

func (s *WishlistService) getOrCreateWishlist(tx *gorm.DB, userID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := tx.Preload("Items.Game").Where("user_id = ?", userID).First(&wishlist).Error
	if err == nil {
		return &wishlist, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("database error", err)
	}

	wishlist = models.Wishlist{UserID: userID}
	if err := tx.Create(&wishlist).Error; err != nil {
		if err2 := tx.Preload("Items.Game").Where("user_id = ?", userID).First(&wishlist).Error; err2 == nil {
			return &wishlist, nil
		}
		return nil, apperrors.Internal("failed to create wishlist", err)
	}

	return &wishlist, nil
}

func (s *WishlistService) reload(tx *gorm.DB, wishlistID uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	if err := tx.Preload("Items.Game").First(&wishlist, wishlistID).Error; err != nil {
		return nil, apperrors.Internal("database error", err)
	}
	return &wishlist, nil
}
