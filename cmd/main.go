package main

import (
	"marketplace-service/internal/catalog"
	"marketplace-service/internal/handler"
	mid "marketplace-service/internal/middleware"
	"marketplace-service/internal/model"
	"marketplace-service/internal/notify"
	"marketplace-service/internal/profile"
	"marketplace-service/internal/store"
	"marketplace-service/pkg/cache"
	"marketplace-service/pkg/config"
	"marketplace-service/pkg/database"
	"marketplace-service/pkg/jwtutil"
	"marketplace-service/pkg/logger"
	"marketplace-service/prometheus"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration (.env is optional, env vars win)
	appConfig, err := config.Load("marketplace-service")
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	if err := logger.InitLogger(&logger.LogConfig{
		Level:       appConfig.Log.Level,
		Environment: appConfig.Server.Env,
		ServiceName: appConfig.ServiceName,
	}); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting marketplace-service",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	// Initialize Prometheus metrics
	prometheus.InitMetrics()
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	// Initialize database
	db, err := database.InitDB(appConfig)
	if err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Optional product read cache
	var cacheClient *cache.Client
	if appConfig.Cache.Addr != "" {
		cacheClient, err = cache.NewClient(
			appConfig.Cache.Addr,
			appConfig.Cache.Password,
			appConfig.Cache.DB,
			appConfig.Cache.TTL,
		)
		if err != nil {
			log.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer cacheClient.Close()
		log.Info("Redis cache connected", zap.String("addr", appConfig.Cache.Addr))
	} else {
		log.Info("Redis cache disabled")
	}

	// Core services
	jwtUtil := jwtutil.NewJWTUtil(&jwtutil.JWTConfig{
		SigningKey:      appConfig.JWT.SigningKey,
		ExpirationHours: appConfig.JWT.ExpirationHours,
	})
	gormStore := store.New(db)
	notifier := notify.NewLogNotifier(log)
	registry := profile.NewRegistry(gormStore, notifier, log)
	catalogSvc := catalog.NewService(gormStore, cacheClient, log)

	// Handlers
	authHandler := handler.NewAuthHandler(registry, jwtUtil)
	vendorHandler := handler.NewVendorHandler(registry)
	influencerHandler := handler.NewInfluencerHandler(registry)
	buyerHandler := handler.NewBuyerHandler(registry)
	productHandler := handler.NewProductHandler(catalogSvc)
	healthHandler := handler.NewHealthHandler(db)

	// Initialize Echo instance
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.NewHTTPMetrics(appConfig.ServiceName).Middleware())

	authRequired := mid.JWTAuthMiddleware(jwtUtil)
	adminOnly := mid.RequireRole(model.RoleAdmin)

	// Metrics and health endpoints
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", healthHandler.Health)

	// Auth routes
	authAPI := e.Group("/api/auth")
	authAPI.POST("/register", authHandler.Register)
	authAPI.POST("/login", authHandler.Login)
	authAPI.DELETE("/account", authHandler.DeleteAccount, authRequired)

	// Vendor routes
	vendorAPI := e.Group("/api/vendors")
	vendorAPI.GET("", vendorHandler.List)
	vendorAPI.GET("/:id", vendorHandler.Get)
	vendorAPI.GET("/username/:username", vendorHandler.GetByUsername)
	vendorAPI.GET("/user/:userId", vendorHandler.GetByUser)
	vendorAPI.GET("/:id/stats", vendorHandler.Stats)
	vendorAPI.POST("/:id/approve", vendorHandler.Approve, authRequired, adminOnly)
	vendorAPI.POST("/:id/reject", vendorHandler.Reject, authRequired, adminOnly)
	vendorAPI.POST("/:id/suspend", vendorHandler.Suspend, authRequired, adminOnly)
	vendorAPI.POST("/:id/reactivate", vendorHandler.Reactivate, authRequired, adminOnly)

	// Influencer routes
	influencerAPI := e.Group("/api/influencers")
	influencerAPI.GET("", influencerHandler.List)
	influencerAPI.GET("/:id", influencerHandler.Get)
	influencerAPI.GET("/username/:username", influencerHandler.GetByUsername)
	influencerAPI.GET("/user/:userId", influencerHandler.GetByUser)
	influencerAPI.GET("/:id/stats", influencerHandler.Stats)
	influencerAPI.PUT("/:id/social-metrics", influencerHandler.UpdateSocialMetrics, authRequired)
	influencerAPI.POST("/:id/approve", influencerHandler.Approve, authRequired, adminOnly)
	influencerAPI.POST("/:id/reject", influencerHandler.Reject, authRequired, adminOnly)
	influencerAPI.POST("/:id/suspend", influencerHandler.Suspend, authRequired, adminOnly)
	influencerAPI.POST("/:id/reactivate", influencerHandler.Reactivate, authRequired, adminOnly)
	influencerAPI.POST("/:id/verify", influencerHandler.VerifyCreator, authRequired, adminOnly)

	// Buyer routes
	buyerAPI := e.Group("/api/buyers")
	buyerAPI.GET("/me", buyerHandler.MyProfile, authRequired)
	buyerAPI.PUT("/me", buyerHandler.UpdateMyProfile, authRequired)
	buyerAPI.POST("/me/wishlist/:productId", buyerHandler.AddToWishlist, authRequired)
	buyerAPI.DELETE("/me/wishlist/:productId", buyerHandler.RemoveFromWishlist, authRequired)
	buyerAPI.GET("/:id", buyerHandler.Get, authRequired, adminOnly)
	buyerAPI.GET("/:id/stats", buyerHandler.Stats, authRequired, adminOnly)
	buyerAPI.POST("/:id/suspend", buyerHandler.Suspend, authRequired, adminOnly)
	buyerAPI.POST("/:id/reactivate", buyerHandler.Reactivate, authRequired, adminOnly)

	// Product routes
	productAPI := e.Group("/api/products")
	productAPI.GET("", productHandler.List)
	productAPI.GET("/:id", productHandler.Get)
	productAPI.GET("/:id/price", productHandler.Price)
	productAPI.GET("/:id/linked", productHandler.LinkedProducts)
	productAPI.GET("/vendor/:vendorId", productHandler.ByVendor)
	productAPI.GET("/influencer/:influencerId", productHandler.ByInfluencer)
	productAPI.POST("", productHandler.Create, authRequired)
	productAPI.POST("/:id/link", productHandler.Link, authRequired, mid.RequireRole(model.RoleInfluencer))
	productAPI.PUT("/:id", productHandler.Update, authRequired)
	productAPI.DELETE("/:id", productHandler.Delete, authRequired)

	// Start server
	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
