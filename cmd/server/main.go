package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/okothvientrevor/ALOVAZE/internal/api/routes"
	"github.com/okothvientrevor/ALOVAZE/internal/cache"
	"github.com/okothvientrevor/ALOVAZE/internal/config"
	"github.com/okothvientrevor/ALOVAZE/internal/database"
	"github.com/okothvientrevor/ALOVAZE/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	logger.Init()

	cfg := config.Load()

	db, err := database.Init(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}

	// The statistics cache is optional; the service falls back to direct
	// queries when redis is unreachable.
	statsCache, err := cache.New(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, statistics caching disabled: ", err)
		statsCache = nil
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	routes.SetupRoutes(router, db, statsCache, cfg)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logger.Info("Server starting on port " + port)
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", err)
	}
}
