package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/okothvientrevor/ALOVAZE/internal/api/handlers"
	"github.com/okothvientrevor/ALOVAZE/internal/api/middleware"
	"github.com/okothvientrevor/ALOVAZE/internal/cache"
	"github.com/okothvientrevor/ALOVAZE/internal/config"
	"github.com/okothvientrevor/ALOVAZE/internal/models"
	"github.com/okothvientrevor/ALOVAZE/internal/services"
	"github.com/okothvientrevor/ALOVAZE/internal/store"
	"github.com/okothvientrevor/ALOVAZE/internal/utils"
	"github.com/okothvientrevor/ALOVAZE/pkg/logger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, statsCache *cache.Client, cfg *config.Config) {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigin))
	router.Use(middleware.RateLimitMiddleware(cfg))

	tokens := utils.NewTokenService(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	userStore := store.NewUserStore(db)
	reviewStore := store.NewReviewStore(db)
	companyStore := store.NewCompanyStore(db)

	authService := services.NewAuthService(userStore, tokens)
	reviewService := services.NewReviewService(reviewStore, userStore, statsCache, cfg.StatsCacheTTL)
	companyService := services.NewCompanyService(companyStore)
	adminService := services.NewAdminService(userStore)

	authHandler := handlers.NewAuthHandler(authService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	adminHandler := handlers.NewAdminHandler(adminService, reviewService)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.GET("/profile", middleware.AuthMiddleware(tokens), authHandler.GetProfile)
		auth.PUT("/profile", middleware.AuthMiddleware(tokens), authHandler.UpdateProfile)
		auth.POST("/logout", middleware.AuthMiddleware(tokens), authHandler.Logout)
	}

	reviews := api.Group("/reviews")
	{
		reviews.POST("", middleware.AuthMiddleware(tokens), reviewHandler.Create)
		reviews.GET("/:reviewId", reviewHandler.GetByID)
		reviews.PUT("/:reviewId", middleware.AuthMiddleware(tokens), reviewHandler.Update)
		reviews.DELETE("/:reviewId", middleware.AuthMiddleware(tokens), reviewHandler.Delete)
		reviews.GET("/user/:userId", reviewHandler.GetByUser)
		reviews.GET("/company/:companyId", reviewHandler.GetByCompany)
		reviews.GET("/company/:companyId/statistics", reviewHandler.GetStatistics)
		reviews.POST("/:reviewId/vote", middleware.AuthMiddleware(tokens), reviewHandler.Vote)
	}

	api.GET("/companies", companyHandler.GetAll)

	admin := api.Group("/admin",
		middleware.AuthMiddleware(tokens),
		middleware.RequireRoles(models.RoleAdmin, models.RoleModerator))
	{
		admin.POST("/users/:userId/ban", adminHandler.BanUser)
		admin.POST("/users/:userId/unban", adminHandler.UnbanUser)
		admin.POST("/users/:userId/verify-email", adminHandler.VerifyEmail)
		admin.PUT("/users/:userId/trust-score", adminHandler.UpdateTrustScore)
		admin.POST("/reviews/:reviewId/moderate", adminHandler.ModerateReview)
	}

	logger.Info("Routes initialized successfully")
}
