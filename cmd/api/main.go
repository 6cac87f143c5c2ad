package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pageza/mealplanner/backend/config"
	"github.com/pageza/mealplanner/backend/internal/api"
	"github.com/pageza/mealplanner/backend/internal/corpus"
	"github.com/pageza/mealplanner/backend/internal/database"
	"github.com/pageza/mealplanner/backend/internal/engine"
	"github.com/pageza/mealplanner/backend/internal/logger"
	"github.com/pageza/mealplanner/backend/internal/middleware"
	"github.com/pageza/mealplanner/backend/internal/server"
	"github.com/pageza/mealplanner/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info().Str("environment", string(cfg.Environment)).Msg("configuration loaded")

	dbLog := logger.Component(log, "database")
	db, err := database.Open(cfg, dbLog)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.RunMigrations(db, "migrations", dbLog); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Redis is optional; without it results are not cached and requests
	// are not rate limited.
	var (
		redisClient *redis.Client
		cache       service.ResultCache
		limiter     *middleware.RateLimiter
	)
	if cfg.RedisEnabled() {
		redisClient, err = database.NewRedisClient(cfg, logger.Component(log, "redis"))
		if err != nil {
			log.Warn().Err(err).Msg("continuing without redis")
		} else {
			cache = service.NewRedisCache(redisClient, cfg.CacheTTL, log)
			if cfg.RateLimitPerMinute > 0 {
				limiter = middleware.NewAPIRateLimiter(redisClient, cfg.RateLimitPerMinute, log)
			}
		}
	}

	opts, err := engine.LoadOptions(cfg.EngineConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load engine config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src := corpus.Source{}
	if corpus.IsS3(cfg.CorpusPath) {
		client, err := config.NewS3Client(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create s3 client")
		}
		src.S3 = client
	}

	recipes := service.NewRecommendationService(cache, log)
	tokens := service.NewTokenService(cfg.JWTSecret)
	srv := server.New(cfg, api.Services{
		Recipes:       recipes,
		MealPlans:     service.NewMealPlanService(db, recipes, log),
		ShoppingLists: service.NewShoppingListService(db, recipes, log),
		Tokens:        tokens,
		RateLimiter:   limiter,
	}, log)

	// The server answers 503 for recipe queries until the index is ready.
	// A failed load is not retried.
	go func() {
		if err := recipes.Load(ctx, src, cfg.CorpusPath, opts); err != nil {
			log.Error().Err(err).Str("location", cfg.CorpusPath).Msg("recipe search unavailable")
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	}

	shutdown(srv, db, redisClient, log)
}

func shutdown(srv *server.Server, db *gorm.DB, redisClient *redis.Client, log zerolog.Logger) {
	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
