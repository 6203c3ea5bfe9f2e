package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"keygate.backend/internal/config"
	"keygate.backend/internal/infrastructure/models"
	"keygate.backend/internal/infrastructure/repositories"
	"keygate.backend/internal/interfaces/http/handlers"
	"keygate.backend/internal/interfaces/http/middleware"
	"keygate.backend/internal/usecases"
	"keygate.backend/pkg/jwt"
	"keygate.backend/pkg/logger"
	"keygate.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			TranslateError: true,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis backs the verification cache only; the service runs without it.
	var cache usecases.VerificationCache
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, verification cache disabled", zap.Error(err))
	} else {
		cache = redis.NewVerificationCache(cfg.Keys.VerificationCacheTTL)
		logger.Info(context.Background(), "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}
	logger.Info(context.Background(), "Connected to PostgreSQL via GORM")

	if err := db.AutoMigrate(&models.ApiKey{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry)

	apiKeyRepo := repositories.NewApiKeyRepository(db)
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, cache, cfg.Keys.GenerationRetries)

	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)
	demoHandler := handlers.NewDemoHandler()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())

	registerAPIV1Routes(r, routeDeps{
		apiKeyHandler:        apiKeyHandler,
		demoHandler:          demoHandler,
		authMiddleware:       middleware.AuthMiddleware(jwtService),
		apiKeyAuthMiddleware: middleware.ApiKeyAuthMiddleware(apiKeyUsecase),
	})

	logger.Info(context.Background(), "Server starting", zap.String("port", cfg.Server.Port))
	return runServer(r, cfg.Server.Port)
}
