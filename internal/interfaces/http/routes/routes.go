// internal/interfaces/http/routes/routes.go
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/velvety/storefront/internal/config"
	"github.com/velvety/storefront/internal/domain/cart"
	"github.com/velvety/storefront/internal/domain/coupon"
	"github.com/velvety/storefront/internal/domain/marketing"
	"github.com/velvety/storefront/internal/domain/order"
	"github.com/velvety/storefront/internal/domain/user"
	"github.com/velvety/storefront/internal/interfaces/http/handlers"
	"github.com/velvety/storefront/internal/interfaces/http/middleware"
	"github.com/velvety/storefront/internal/pkg/email"
	"gorm.io/gorm"
)

// SetupRoutes wires all API v1 routes onto the given router group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) error {
	// Shared services. Cart and coupon services feed both their own
	// handlers and the checkout flow.
	userService := user.NewService(db, cfg)
	cartService := cart.NewService(db, redisClient, cfg)
	couponService := coupon.NewService(db)

	emailService, err := email.NewService(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize email service: %w", err)
	}

	orderService := order.NewService(db, cfg, cartService, couponService, emailService, logger)
	marketingService := marketing.NewService(db)

	setupAuthRoutes(rg, userService, cartService, cfg)
	setupCatalogRoutes(rg, db, cfg)
	setupCartRoutes(rg, cartService, couponService, cfg)
	setupOrderRoutes(rg, orderService, cfg)
	setupAccountRoutes(rg, db, cfg)
	setupMarketingRoutes(rg, marketingService)
	setupAdminRoutes(rg, db, orderService, couponService, marketingService, cfg)

	return nil
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, userService *user.Service, cartService *cart.Service, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(userService, cartService, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.PUT("/password", authHandler.ChangePassword)
		}
	}
}

// setupCatalogRoutes sets up the public product catalog routes
func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db)
	variationHandler := handlers.NewVariationHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:slug", productHandler.GetProductBySlug)
		products.GET("/:slug/reviews", productHandler.GetProductReviews)
		products.POST("/:slug/resolve", variationHandler.ResolveVariation)

		// Review submission requires a logged-in customer
		authed := products.Group("")
		authed.Use(middleware.AuthMiddleware(cfg))
		{
			authed.POST("/:slug/reviews", reviewHandler.CreateReview)
		}
	}

	categories := rg.Group("/categories")
	{
		categories.GET("", categoryHandler.GetCategories)
		categories.GET("/:slug", categoryHandler.GetCategoryBySlug)
	}
}

// setupCartRoutes sets up cart and coupon preview routes. These work
// for guests via the X-Session-ID header as well as authenticated
// users.
func setupCartRoutes(rg *gin.RouterGroup, cartService *cart.Service, couponService *coupon.Service, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(cartService)
	couponHandler := handlers.NewCouponHandler(couponService)

	cartGroup := rg.Group("/cart")
	cartGroup.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:productId", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:productId", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}

	coupons := rg.Group("/coupons")
	{
		coupons.POST("/validate", couponHandler.ValidateCoupon)
	}
}

// setupOrderRoutes sets up checkout and order history routes
func setupOrderRoutes(rg *gin.RouterGroup, orderService *order.Service, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(orderService)

	rg.GET("/shipping-methods", orderHandler.GetShippingMethods)

	orders := rg.Group("/orders")
	{
		// Guest checkout is allowed; order history is not
		orders.POST("", middleware.OptionalAuthMiddleware(cfg), orderHandler.CreateOrder)

		authed := orders.Group("")
		authed.Use(middleware.AuthMiddleware(cfg))
		{
			authed.GET("", orderHandler.GetUserOrders)
			authed.GET("/:id", orderHandler.GetOrder)
		}
	}
}

// setupAccountRoutes sets up address book and wishlist routes
func setupAccountRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	addressHandler := handlers.NewAddressHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)

	account := rg.Group("/account")
	account.Use(middleware.AuthMiddleware(cfg))
	{
		addresses := account.Group("/addresses")
		{
			addresses.GET("", addressHandler.GetAddresses)
			addresses.POST("", addressHandler.CreateAddress)
			addresses.PUT("/:id", addressHandler.UpdateAddress)
			addresses.DELETE("/:id", addressHandler.DeleteAddress)
		}

		wishlist := account.Group("/wishlist")
		{
			wishlist.GET("", wishlistHandler.GetWishlist)
			wishlist.POST("/:productId", wishlistHandler.AddToWishlist)
			wishlist.DELETE("/:productId", wishlistHandler.RemoveFromWishlist)
		}
	}
}

// setupMarketingRoutes sets up the public newsletter and contact routes
func setupMarketingRoutes(rg *gin.RouterGroup, marketingService *marketing.Service) {
	marketingHandler := handlers.NewMarketingHandler(marketingService)

	rg.POST("/newsletter", marketingHandler.Subscribe)
	rg.POST("/contact", marketingHandler.SubmitContact)
}

// setupAdminRoutes sets up admin related routes
func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, orderService *order.Service, couponService *coupon.Service, marketingService *marketing.Service, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	categoryHandler := handlers.NewCategoryHandler(db)
	variationHandler := handlers.NewVariationHandler(db)
	reviewHandler := handlers.NewReviewHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(orderService)
	couponHandler := handlers.NewCouponHandler(couponService)
	marketingHandler := handlers.NewMarketingHandler(marketingService)
	analyticsHandler := handlers.NewAnalyticsHandler(db)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Product management
		products := admin.Group("/products")
		{
			products.GET("", productHandler.AdminGetProducts)
			products.GET("/:id", productHandler.AdminGetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
			products.PATCH("/bulk", productHandler.BulkUpdateProducts)

			// Attribute and variation management
			products.GET("/:id/attributes", variationHandler.GetAttributes)
			products.POST("/:id/attributes", variationHandler.CreateAttribute)
			products.PUT("/:id/attributes/:attributeId", variationHandler.UpdateAttribute)
			products.DELETE("/:id/attributes/:attributeId", variationHandler.DeleteAttribute)

			products.GET("/:id/variations", variationHandler.GetVariations)
			products.POST("/:id/variations", variationHandler.CreateVariation)
			products.POST("/:id/variations/generate", variationHandler.GenerateVariations)
			products.PUT("/:id/variations/:variationId", variationHandler.UpdateVariation)
			products.DELETE("/:id/variations/:variationId", variationHandler.DeleteVariation)
		}

		// Category management
		categories := admin.Group("/categories")
		{
			categories.GET("", categoryHandler.AdminGetCategories)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		// Coupon management
		coupons := admin.Group("/coupons")
		{
			coupons.GET("", couponHandler.AdminGetCoupons)
			coupons.POST("", couponHandler.CreateCoupon)
			coupons.PUT("/:id", couponHandler.UpdateCoupon)
			coupons.DELETE("/:id", couponHandler.DeleteCoupon)
		}

		// Order management
		orders := admin.Group("/orders")
		{
			orders.GET("", orderHandler.AdminGetOrders)
			orders.GET("/:id", orderHandler.AdminGetOrder)
			orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		}

		// Review moderation
		reviews := admin.Group("/reviews")
		{
			reviews.GET("/pending", reviewHandler.GetPendingReviews)
			reviews.PUT("/:id/approve", reviewHandler.ApproveReview)
			reviews.DELETE("/:id", reviewHandler.DeleteReview)
		}

		// Newsletter and contact form
		admin.GET("/newsletter/subscribers", marketingHandler.GetSubscribers)
		admin.GET("/contact-messages", marketingHandler.GetContactMessages)

		// Analytics
		analytics := admin.Group("/analytics")
		{
			analytics.GET("/dashboard", analyticsHandler.GetDashboard)
			analytics.GET("/revenue", analyticsHandler.GetRevenueSeries)
		}
	}
}
