// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gamebazaar/gamebazaar-backend/internal/config"
	"github.com/gamebazaar/gamebazaar-backend/internal/handlers"
	"github.com/gamebazaar/gamebazaar-backend/internal/middleware"
	"github.com/gamebazaar/gamebazaar-backend/internal/services"
	"github.com/gamebazaar/gamebazaar-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db, cfg)
	storageService, _ := services.NewStorageService(cfg)

	authService := services.NewAuthService(db, cfg)
	gameService := services.NewGameService(db)
	cartService := services.NewCartService(db)
	wishlistService := services.NewWishlistService(db)
	orderService := services.NewOrderService(db, cfg, notificationService)
	paymentService := services.NewPaymentService(db, cfg, orderService)
	reviewService := services.NewReviewService(db, gameService)
	blogService := services.NewBlogService(db)
	adminService := services.NewAdminService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, storageService)
	gameHandler := handlers.NewGameHandler(gameService, storageService)
	cartHandler := handlers.NewCartHandler(cartService, wishlistService)
	orderHandler := handlers.NewOrderHandler(orderService, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	blogHandler := handlers.NewBlogHandler(blogService, storageService)
	adminHandler := handlers.NewAdminHandler(adminService, notificationService, storageService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
			auth.PUT("/me", middleware.AuthRequired(), authHandler.UpdateProfile)
			auth.POST("/me/avatar", middleware.AuthRequired(), middleware.UploadRateLimit(), authHandler.UploadAvatar)
		}

		// Game catalog
		games := api.Group("/games")
		{
			games.GET("", middleware.OptionalAuth(), gameHandler.GetGames)
			games.GET("/popular", gameHandler.GetPopularGames)
			games.GET("/featured", gameHandler.GetFeaturedGames)
			games.GET("/:id", middleware.OptionalAuth(), gameHandler.GetGame)
			games.GET("/:id/reviews", middleware.OptionalAuth(), reviewHandler.GetGameReviews)
			games.POST("/:id/reviews", middleware.AuthRequired(), reviewHandler.CreateReview)

			adminGames := games.Group("")
			adminGames.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				adminGames.POST("", gameHandler.CreateGame)
				adminGames.PUT("/:id", gameHandler.UpdateGame)
				adminGames.DELETE("/:id", gameHandler.DeleteGame)
				adminGames.POST("/images", middleware.UploadRateLimit(), gameHandler.UploadImage)
			}
		}

		// Reviews and the reply tree
		reviews := api.Group("/reviews")
		{
			reviews.GET("/:id", middleware.OptionalAuth(), reviewHandler.GetReview)

			protected := reviews.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.PUT("/:id", reviewHandler.UpdateReview)
				protected.DELETE("/:id", reviewHandler.DeleteReview)
				protected.PUT("/:id/like", reviewHandler.ToggleLike)
				protected.POST("/:id/reply", reviewHandler.CreateReply)
				protected.PUT("/:id/reply/:replyId", reviewHandler.UpdateReply)
				protected.DELETE("/:id/reply/:replyId", reviewHandler.DeleteReply)
				protected.PUT("/:id/reply/:replyId/like", reviewHandler.ToggleReplyLike)
				protected.POST("/:id/reply/:replyId/nested", reviewHandler.CreateNestedReply)
				protected.PUT("/:id/reply/:replyId/nested/:nestedReplyId", reviewHandler.UpdateNestedReply)
				protected.DELETE("/:id/reply/:replyId/nested/:nestedReplyId", reviewHandler.DeleteNestedReply)
				protected.PUT("/:id/reply/:replyId/nested/:nestedReplyId/like", reviewHandler.ToggleNestedReplyLike)
			}
		}

		// Cart and wishlist
		cart := api.Group("/cart")
		cart.Use(middleware.AuthRequired())
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddItem)
			cart.PUT("/items/:gameId", cartHandler.UpdateItem)
			cart.DELETE("/items/:gameId", cartHandler.RemoveItem)
		}

		wishlist := api.Group("/wishlist")
		wishlist.Use(middleware.AuthRequired())
		{
			wishlist.GET("", cartHandler.GetWishlist)
			wishlist.DELETE("", cartHandler.ClearWishlist)
			wishlist.POST("/:gameId", cartHandler.AddToWishlist)
			wishlist.DELETE("/:gameId", cartHandler.RemoveFromWishlist)
		}

		// Orders
		orders := api.Group("/orders")
		orders.Use(middleware.AuthRequired())
		{
			orders.POST("", orderHandler.CreateOrder)
			orders.GET("/myorders", orderHandler.MyOrders)
			orders.GET("/pending", middleware.AdminRequired(), orderHandler.PendingOrders)
			orders.GET("/processed", middleware.AdminRequired(), orderHandler.ProcessedOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.PUT("/:id/pay", orderHandler.PayOrder)
			orders.PUT("/:id/approve", middleware.AdminRequired(), orderHandler.ApproveOrder)
			orders.PUT("/:id/status", middleware.AdminRequired(), orderHandler.UpdateStatus)
		}

		// Payments
		payments := api.Group("/payments")
		{
			payments.GET("/config", paymentHandler.GetConfig)

			protected := payments.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("/intent", paymentHandler.CreateIntent)
				protected.POST("/confirm", paymentHandler.ConfirmPayment)
				protected.POST("/:orderId/refund", middleware.AdminRequired(), paymentHandler.RefundOrder)
			}
		}

		// Blog and the comment tree
		blogs := api.Group("/blogs")
		{
			blogs.GET("", middleware.OptionalAuth(), blogHandler.GetBlogs)
			blogs.GET("/featured", middleware.OptionalAuth(), blogHandler.GetFeaturedBlogs)
			blogs.GET("/slug/:slug", middleware.OptionalAuth(), blogHandler.GetBlogBySlug)
			blogs.GET("/:id", middleware.OptionalAuth(), blogHandler.GetBlog)

			protected := blogs.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", blogHandler.CreateBlog)
				protected.PUT("/:id", blogHandler.UpdateBlog)
				protected.DELETE("/:id", blogHandler.DeleteBlog)
				protected.PUT("/:id/like", blogHandler.ToggleLike)
				protected.POST("/:id/comment", blogHandler.CreateComment)
				protected.PUT("/:id/comment/:commentId", blogHandler.UpdateComment)
				protected.DELETE("/:id/comment/:commentId", blogHandler.DeleteComment)
				protected.PUT("/:id/comment/:commentId/like", blogHandler.ToggleCommentLike)
				protected.POST("/:id/comment/:commentId/reply", blogHandler.CreateCommentReply)
				protected.PUT("/:id/comment/:commentId/reply/:replyId", blogHandler.UpdateCommentReply)
				protected.DELETE("/:id/comment/:commentId/reply/:replyId", blogHandler.DeleteCommentReply)
				protected.PUT("/:id/comment/:commentId/reply/:replyId/like", blogHandler.ToggleCommentReplyLike)
				protected.POST("/images", middleware.UploadRateLimit(), blogHandler.UploadImage)
			}
		}

		// Notifications
		notifications := api.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", adminHandler.GetNotifications)
			notifications.PUT("/:id/read", adminHandler.MarkNotificationRead)
		}

		// Admin console
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/dashboard", adminHandler.GetDashboard)
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/users/:id/status", adminHandler.UpdateUserStatus)
			admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			admin.GET("/audit-logs", adminHandler.GetAuditLogs)
			admin.GET("/uploads/presign", adminHandler.GetUploadURL)
		}
	}

	// Static file serving (for development)
	if cfg.Environment == "development" {
		r.Static("/uploads", "./uploads")
	}

	return r
}
