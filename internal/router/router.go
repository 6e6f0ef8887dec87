// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/retailx/retailx-backend/internal/cache"
	"github.com/retailx/retailx-backend/internal/config"
	"github.com/retailx/retailx-backend/internal/database"
	"github.com/retailx/retailx-backend/internal/handlers"
	"github.com/retailx/retailx-backend/internal/middleware"
	"github.com/retailx/retailx-backend/internal/services"
	"github.com/retailx/retailx-backend/internal/utils"
)

const version = "1.0.0"

// Dependencies are the long-lived collaborators the routes are built on.
// A nil limiter disables that limit.
type Dependencies struct {
	Config         *config.Config
	Store          *database.Store
	Revocations    cache.RevocationStore
	Storage        *services.StorageService
	Assistant      services.Assistant
	GeneralLimiter *middleware.RateLimiter
	AuthLimiter    *middleware.RateLimiter
}

func Initialize(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	// Initialize services
	authService := services.NewAuthService(deps.Store, deps.Revocations, cfg)
	productService := services.NewProductService(deps.Store.Products)
	userService := services.NewUserService(deps.Store)
	adminService := services.NewAdminService(deps.Store)
	chatService := services.NewChatService(productService, deps.Assistant, cfg.Chat.GenericKeywords)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	sellerHandler := handlers.NewSellerHandler(authService, productService, userService, deps.Storage)
	productHandler := handlers.NewProductHandler(productService)
	userHandler := handlers.NewUserHandler(userService)
	chatHandler := handlers.NewChatHandler(chatService)
	adminHandler := handlers.NewAdminHandler(authService, adminService, productService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware(cfg.I18n.DefaultLocale))
	r.Use(limit(deps.GeneralLimiter))
	r.Use(middleware.AuditLogMiddleware(deps.Store.AuditLogs))

	authRequired := middleware.AuthRequired(deps.Revocations)
	authLimit := limit(deps.AuthLimiter)
	sellerOnly := []gin.HandlerFunc{authRequired, middleware.SellerRequired()}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "RetailX backend is running")
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": version,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/test-db", testDBHandler(deps.Store))

		// Shopper authentication
		auth := api.Group("/auth")
		{
			auth.POST("/register", authLimit, authHandler.Register)
			auth.POST("/login", authLimit, authHandler.Login)
			auth.POST("/logout", authRequired, authHandler.Logout)
			auth.GET("/me", authRequired, authHandler.Me)
		}

		// Seller accounts and catalogue management
		seller := api.Group("/seller")
		{
			seller.POST("/register", authLimit, sellerHandler.Register)
			seller.POST("/login", authLimit, sellerHandler.Login)

			protected := seller.Group("", sellerOnly...)
			{
				protected.GET("/inventory", sellerHandler.Inventory)
				protected.POST("/product/add", sellerHandler.AddProduct)
				protected.PUT("/product/update/:id", sellerHandler.UpdateProduct)
				protected.DELETE("/product/delete/:id", sellerHandler.DeleteProduct)
				protected.PATCH("/product/update-stock/:id", sellerHandler.UpdateStock)
				protected.POST("/product/upload-image", sellerHandler.UploadImage)
				protected.GET("/profile", sellerHandler.GetProfile)
				protected.PUT("/profile/update", sellerHandler.UpdateProfile)
			}
		}

		// Admin routes
		admin := api.Group("/admin")
		{
			admin.POST("/register", authLimit, adminHandler.Register)
			admin.POST("/login", authLimit, adminHandler.Login)

			protected := admin.Group("", authRequired, middleware.AdminRequired())
			{
				protected.GET("/stats", adminHandler.GetStats)
				protected.PATCH("/products/:id/status", adminHandler.UpdateProductStatus)
				protected.GET("/audit-logs", adminHandler.GetAuditLogs)
			}
		}

		api.POST("/preferences", authRequired, userHandler.SavePreferences)

		// Storefront reads
		api.GET("/product/:id", productHandler.GetProduct)
		api.GET("/products", productHandler.GetProducts)
		api.GET("/search", productHandler.Search)
		api.GET("/search/", productHandler.Search)
		api.POST("/chat", chatHandler.Chat)
		api.POST("/chat/", chatHandler.Chat)
	}

	// Legacy seller product routes still used by older dashboard builds
	legacy := r.Group("", sellerOnly...)
	{
		legacy.POST("/add", sellerHandler.AddProduct)
		legacy.GET("/seller", sellerHandler.Inventory)
		legacy.DELETE("/delete/:id", sellerHandler.DeleteProduct)
		legacy.PUT("/update/:id", sellerHandler.UpdateProduct)
	}

	// Locally stored uploads
	if deps.Storage != nil && !deps.Storage.UsesS3() {
		r.Static(services.UploadsRoute, cfg.Storage.UploadDir)
	}

	return r
}

func limit(rl *middleware.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return rl.Middleware()
}

func testDBHandler(store *database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			logrus.WithError(err).Error("Database ping failed")
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "database unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "database connected"})
	}
}
