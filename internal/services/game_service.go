// internal/services/game_service.go
package services

import (
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/apperrors"
	"github.com/gamebazaar/gamebazaar-backend/internal/catalog"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

type GameService struct {
	db *gorm.DB
}

type CreateGameRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=255"`
	Description   string     `json:"description" validate:"required,min=10"`
	Publisher     string     `json:"publisher,omitempty" validate:"omitempty,max=255"`
	Genres        []string   `json:"genres,omitempty"`
	Platforms     []string   `json:"platforms,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Price         float64    `json:"price" validate:"required,min=0.01"`
	DiscountPrice *float64   `json:"discount_price,omitempty" validate:"omitempty,min=0.01"`
	Stock         int        `json:"stock" validate:"min=0"`
	CoverImage    string     `json:"cover_image,omitempty"`
	Screenshots   []string   `json:"screenshots,omitempty"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Featured      bool       `json:"featured,omitempty"`
}

type UpdateGameRequest struct {
	Title         string     `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Description   string     `json:"description,omitempty" validate:"omitempty,min=10"`
	Publisher     string     `json:"publisher,omitempty" validate:"omitempty,max=255"`
	Genres        []string   `json:"genres,omitempty"`
	Platforms     []string   `json:"platforms,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
	Price         *float64   `json:"price,omitempty" validate:"omitempty,min=0.01"`
	DiscountPrice *float64   `json:"discount_price,omitempty"`
	Stock         *int       `json:"stock,omitempty" validate:"omitempty,min=0"`
	CoverImage    string     `json:"cover_image,omitempty"`
	Screenshots   []string   `json:"screenshots,omitempty"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Featured      *bool      `json:"featured,omitempty"`
}

// gameFilterOptions declares which query keys the game listing
// translates into conditions. Genre/platform match whole values
// case-insensitively, search is a substring scan.
var gameFilterOptions = catalog.Options{
	Fields: map[string]string{
		"price":     "price",
		"stock":     "stock",
		"publisher": "publisher",
		"featured":  "featured",
	},
	ArraySetFields: map[string]string{
		"genre":    "genres",
		"platform": "platforms",
	},
	SearchColumns: []string{
		"title",
		"description",
		"array_to_string(tags, ' ')",
	},
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

func (s *GameService) CreateGame(req *CreateGameRequest) (*models.Game, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	game := &models.Game{
		Title:         req.Title,
		Description:   req.Description,
		Publisher:     req.Publisher,
		Genres:        pq.StringArray(req.Genres),
		Platforms:     pq.StringArray(req.Platforms),
		Tags:          pq.StringArray(req.Tags),
		Price:         req.Price,
		DiscountPrice: req.DiscountPrice,
		Stock:         req.Stock,
		CoverImage:    req.CoverImage,
		Screenshots:   pq.StringArray(req.Screenshots),
		ReleaseDate:   req.ReleaseDate,
		Featured:      req.Featured,
	}

	if err := s.db.Create(game).Error; err != nil {
		return nil, apperrors.Internal("failed to create game", err)
	}

	return game, nil
}

func (s *GameService) GetGame(id uuid.UUID) (*models.Game, error) {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("game")
		}
		return nil, apperrors.Internal("database error", err)
	}

	go s.incrementViewCount(id)

	return &game, nil
}

// ListGames translates the raw query bag into filters and returns one
// page plus the unpaginated total.
func (s *GameService) ListGames(query url.Values, params utils.PaginationParams) ([]models.Game, int64, error) {
	dbQuery := catalog.Apply(s.db.Model(&models.Game{}), query, gameFilterOptions)

	var total int64
	if err := dbQuery.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to count games", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "title", "price", "average_rating", "sales_count", "release_date"}
	dbQuery = utils.ApplySort(dbQuery, params, allowedSortFields)
	dbQuery = utils.ApplyPagination(dbQuery, params)

	var games []models.Game
	if err := dbQuery.Find(&games).Error; err != nil {
		return nil, 0, apperrors.Internal("failed to fetch games", err)
	}

	return games, total, nil
}

func (s *GameService) UpdateGame(id uuid.UUID, req *UpdateGameRequest) (*models.Game, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation("validation failed", utils.GetValidationErrors(err))
	}

	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("game")
		}
		return nil, apperrors.Internal("database error", err)
	}

	updates := make(map[string]interface{})
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Publisher != "" {
		updates["publisher"] = req.Publisher
	}
	if req.Genres != nil {
		updates["genres"] = pq.StringArray(req.Genres)
	}
	if req.Platforms != nil {
		updates["platforms"] = pq.StringArray(req.Platforms)
	}
	if req.Tags != nil {
		updates["tags"] = pq.StringArray(req.Tags)
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DiscountPrice != nil {
		updates["discount_price"] = req.DiscountPrice
	}
	if req.Stock != nil {
		updates["stock"] = *req.Stock
	}
	if req.CoverImage != "" {
		updates["cover_image"] = req.CoverImage
	}
	if req.Screenshots != nil {
		updates["screenshots"] = pq.StringArray(req.Screenshots)
	}
	if req.ReleaseDate != nil {
		updates["release_date"] = req.ReleaseDate
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}

	if err := s.db.Model(&game).Updates(updates).Error; err != nil {
		return nil, apperrors.Internal("failed to update game", err)
	}

	s.db.First(&game, id)
	return &game, nil
}

func (s *GameService) DeleteGame(id uuid.UUID) error {
	var game models.Game
	if err := s.db.First(&game, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("game")
		}
		return apperrors.Internal("database error", err)
	}

	// Soft delete; existing order lines keep their snapshot and
	// resolve the game reference to nil from here on.
	if err := s.db.Delete(&game).Error; err != nil {
		return apperrors.Internal("failed to delete game", err)
	}

	return nil
}

func (s *GameService) GetPopularGames(limit int) ([]models.Game, error) {
	var games []models.Game
	if err := s.db.
		Order("sales_count DESC, average_rating DESC, view_count DESC").
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch popular games", err)
	}

	return games, nil
}

func (s *GameService) GetFeaturedGames(limit int) ([]models.Game, error) {
	var games []models.Game
	if err := s.db.Where("featured = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, apperrors.Internal("failed to fetch featured games", err)
	}

	return games, nil
}

// RecalculateRating recomputes {average_rating, num_reviews} as a full
// mean and count over the game's remaining reviews. Resets to 0/0 when
// none remain. Runs inside tx when the caller is mid-transaction.
func (s *GameService) RecalculateRating(tx *gorm.DB, gameID uuid.UUID) error {
	if tx == nil {
		tx = s.db
	}

	var stats struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Where("game_id = ?", gameID).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Scan(&stats).Error; err != nil {
		return err
	}

	return tx.Model(&models.Game{}).Where("id = ?", gameID).
		Updates(map[string]interface{}{
			"average_rating": stats.Avg,
			"num_reviews":    stats.Count,
		}).Error
}

func (s *GameService) incrementViewCount(gameID uuid.UUID) {
	s.db.Model(&models.Game{}).Where("id = ?", gameID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
}
