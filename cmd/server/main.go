package main

import (
	"context"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"marketpulse/server/config"
	"marketpulse/server/internal/analysis"
	"marketpulse/server/internal/api"
	"marketpulse/server/internal/cache"
	"marketpulse/server/internal/database"
	"marketpulse/server/internal/processor"
	"marketpulse/server/internal/queue"
	"marketpulse/server/internal/scheduler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	// Optional .env for local development
	if err := godotenv.Load(); err == nil {
		logger.Info("Loaded environment from .env")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	logger.Infof("Using database at: %s", cfg.Server.DBPath)

	// Initialize database
	db, err := database.NewDatabase(cfg.Server.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize database")
	}
	defer db.Close()

	// Run database migrations
	logger.Info("Running database migrations...")
	if err := db.RunMigrations(); err != nil {
		logger.WithError(err).Fatal("Failed to run database migrations")
	}

	// Separate gorm handle for the batch ingestion path
	gormDB, err := gorm.Open(sqlite.Open(cfg.Server.DBPath), &gorm.Config{})
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize gorm")
	}

	// Ingestion pipeline: queue feeding the batch processor
	saleQueue := queue.NewSaleQueue(cfg.BatchProcessing.MaxBatchSize, logger)
	saleQueue.Start()
	batchProcessor := processor.NewBatchProcessor(gormDB, saleQueue, cfg, logger)
	batchProcessor.Start()
	defer batchProcessor.Stop()

	// Forecasting engine over the listings store
	service := analysis.NewService(db, logger)

	// Optional Redis-backed result cache
	var forecastCache *cache.ForecastCache
	if cfg.Cache.RedisAddr != "" {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		forecastCache = cache.NewForecastCache(cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB, ttl, logger)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := forecastCache.Ping(ctx); err != nil {
			logger.WithError(err).Warn("Redis unreachable, disabling forecast cache")
			forecastCache = nil
		} else {
			logger.Infof("Forecast cache enabled with %dh TTL", cfg.Cache.TTLHours)
		}
		cancel()
	}

	// Periodic cache warming for configured regions
	if cfg.Scheduler.Enabled && forecastCache != nil {
		interval := time.Duration(cfg.Scheduler.IntervalMinutes) * time.Minute
		warmScheduler := scheduler.NewScheduler(service, forecastCache, func() ([]string, error) {
			return config.GetCityNames(db)
		}, interval, logger)
		warmScheduler.Start()
		defer warmScheduler.Stop()
		logger.Infof("Forecast warm-up scheduler enabled, interval %s", interval)
	}

	// Initialize handler and router
	handler := api.NewHandler(db, service, forecastCache, saleQueue, logger)

	router := gin.Default()
	router.Use(cors.Default())
	api.SetupRoutes(router, handler)

	logger.Infof("Starting server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.WithError(err).Fatal("Server failed to start")
	}
}
