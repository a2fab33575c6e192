package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ratehub/store-ratings-api/internal/api/handler"
	"github.com/ratehub/store-ratings-api/internal/api/middleware"
	"github.com/ratehub/store-ratings-api/internal/core/domain"
	"github.com/ratehub/store-ratings-api/internal/core/service"
	"github.com/ratehub/store-ratings-api/internal/infrastructure/config"
	mongodb "github.com/ratehub/store-ratings-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ratehub/store-ratings-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storeratings"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	storeRepo := mongodb.NewStoreRepository(db)
	ratingRepo := mongodb.NewRatingRepository(db)
	statsCache := redisdb.NewStatsCache(rdb)

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, tokenService)
	ratingService := service.NewRatingService(ratingRepo, storeRepo, userRepo, log)
	directoryService := service.NewDirectoryService(userRepo, storeRepo, ratingService, authService, log)
	ownerService := service.NewOwnerService(storeRepo, ratingService)
	statsService := service.NewStatsService(userRepo, storeRepo, ratingRepo, statsCache, log)

	authHandler := handler.NewAuthHandler(authService)
	adminHandler := handler.NewAdminHandler(directoryService, statsService)
	userHandler := handler.NewUserHandler(directoryService, ratingService)
	ownerHandler := handler.NewOwnerHandler(ownerService)

	authMW := middleware.Auth(tokenService)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.PUT("/update-password", authHandler.UpdatePassword, authMW)

	// --- Admin routes ---
	admin := e.Group("/api/admin", authMW, middleware.RBAC(domain.RoleAdmin))
	admin.POST("/add-user", adminHandler.AddUser)
	admin.POST("/add-store", adminHandler.AddStore)
	admin.GET("/stats", adminHandler.Stats)
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/stores", adminHandler.ListStores)
	admin.GET("/user/:id", adminHandler.GetUserDetails)

	// --- Store owner routes ---
	owner := e.Group("/api/store-owner", authMW, middleware.RBAC(domain.RoleStoreOwner))
	owner.GET("/ratings", ownerHandler.Ratings)
	owner.GET("/average-rating", ownerHandler.AverageRating)
	owner.GET("/my-store", ownerHandler.MyStores)

	// --- User routes ---
	user := e.Group("/api/user", authMW, middleware.RBAC(domain.RoleUser))
	user.GET("/stores", userHandler.ListStores)
	user.POST("/rate", userHandler.RateStore)
	user.PUT("/rate/:id", userHandler.UpdateRating)
	user.DELETE("/rate/:id", userHandler.DeleteRating)
	user.GET("/ratings", userHandler.MyRatings)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
