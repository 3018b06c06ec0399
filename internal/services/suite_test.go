// internal/services/suite_test.go
package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gamebazaar/gamebazaar-backend/internal/config"
	"github.com/gamebazaar/gamebazaar-backend/internal/models"
)

// Database-backed suites connect to TEST_DATABASE_URL and skip when it
// is unset, so the pure-logic tests still run everywhere.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping database-backed tests")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Cart{},
		&models.CartItem{},
		&models.Wishlist{},
		&models.WishlistItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.ReviewReply{},
		&models.ReviewNestedReply{},
		&models.ReviewLike{},
		&models.ReviewReplyLike{},
		&models.ReviewNestedReplyLike{},
		&models.Blog{},
		&models.BlogComment{},
		&models.BlogCommentReply{},
		&models.BlogLike{},
		&models.BlogCommentLike{},
		&models.BlogCommentReplyLike{},
		&models.Notification{},
		&models.AuditLog{},
	))

	cleanTables(t, db)
	return db
}

func cleanTables(t *testing.T, db *gorm.DB) {
	t.Helper()

	tables := []string{
		"audit_logs", "notifications",
		"blog_comment_reply_likes", "blog_comment_likes", "blog_likes",
		"blog_comment_replies", "blog_comments", "blog_related_games", "blogs",
		"review_nested_reply_likes", "review_reply_likes", "review_likes",
		"review_nested_replies", "review_replies", "reviews",
		"order_items", "orders",
		"wishlist_items", "wishlists",
		"cart_items", "carts",
		"games", "users",
	}
	for _, table := range tables {
		db.Exec("TRUNCATE TABLE " + table + " CASCADE")
	}
}

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Payment: config.PaymentConfig{
			TaxRatePercent:  10,
			ShippingFlatFee: 5,
		},
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) *models.User {
	t.Helper()

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Role:     role,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("Str0ng!pass"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestGame(t *testing.T, db *gorm.DB, title string, price float64, stock int) *models.Game {
	t.Helper()

	game := &models.Game{
		Title:       title,
		Description: "A test game with enough description text.",
		Price:       price,
		Stock:       stock,
	}
	require.NoError(t, db.Create(game).Error)
	return game
}

func asActor(u *models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}
