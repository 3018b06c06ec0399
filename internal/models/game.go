// internal/models/game.go
package models

import (
	"time"

	"github.com/lib/pq"
)

type Game struct {
	BaseModel
	Title         string         `json:"title" gorm:"size:255;not null;index"`
	Description   string         `json:"description" gorm:"type:text"`
	Publisher     string         `json:"publisher" gorm:"size:255"`
	Genres        pq.StringArray `json:"genres" gorm:"type:text[]"`
	Platforms     pq.StringArray `json:"platforms" gorm:"type:text[]"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	DiscountPrice *float64       `json:"discount_price,omitempty" gorm:"type:decimal(10,2)"`
	Stock         int            `json:"stock" gorm:"default:0"`
	CoverImage    string         `json:"cover_image" gorm:"size:512"`
	Screenshots   pq.StringArray `json:"screenshots" gorm:"type:text[]"`
	ReleaseDate   *time.Time     `json:"release_date"`
	Featured      bool           `json:"featured" gorm:"default:false;index"`
	ViewCount     int64          `json:"view_count" gorm:"default:0"`
	SalesCount    int64          `json:"sales_count" gorm:"default:0"`
	AverageRating float64        `json:"average_rating" gorm:"type:decimal(3,2);default:0"`
	NumReviews    int64          `json:"num_reviews" gorm:"default:0"`

	// Relationships
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:GameID"`
}

// EffectivePrice is the price captured into cart lines and order
// snapshots: the discount price when one is set, else the list price.
func (g *Game) EffectivePrice() float64 {
	if g.DiscountPrice != nil && *g.DiscountPrice > 0 && *g.DiscountPrice < g.Price {
		return *g.DiscountPrice
	}
	return g.Price
}
