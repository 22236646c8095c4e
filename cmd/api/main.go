package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"employee-onboarding-backend/config"
	_ "employee-onboarding-backend/docs" // Important for Swagger
	"employee-onboarding-backend/internal/catalog"
	"employee-onboarding-backend/internal/delivery/http/middleware"
	v1 "employee-onboarding-backend/internal/delivery/http/v1"
	"employee-onboarding-backend/internal/domain"
	"employee-onboarding-backend/internal/exchange/producer"
	"employee-onboarding-backend/internal/onboarding"
	"employee-onboarding-backend/internal/repository/memory"
	"employee-onboarding-backend/internal/repository/postgres"
	"employee-onboarding-backend/internal/usecase"
	"employee-onboarding-backend/pkg/database"
	"employee-onboarding-backend/pkg/logger"
	"employee-onboarding-backend/pkg/metrics"
	"employee-onboarding-backend/pkg/redis"
	"employee-onboarding-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// @title           Employee Onboarding API
// @version         1.0
// @description     Multi-step onboarding wizard with per-step and whole-record validation.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()
	gin.SetMode(cfg.GinMode)
	logger.Log.Infow("starting onboarding backend", "port", cfg.Port)

	ctx := context.Background()

	// 3. Catalog & engine
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Log.Errorw("failed to load catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	engine := onboarding.NewEngine(cat, onboarding.SystemClock(), cfg.Location())

	// 4. Session store
	store := memory.NewSessionStore(cfg.SessionIdleTTL(), memory.WithEvictHook(func(uuid.UUID) {
		metrics.ActiveSessions.Dec()
	}))
	store.StartCleanup(time.Minute)
	defer store.Close()

	health := map[string]usecase.Pinger{"database": nil, "redis": nil}

	// 5. Submission sinks
	var repo domain.SubmissionRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
		if err != nil {
			logger.Log.Errorw("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		repo = postgres.NewOnboardingRepository(dbPool)
		health["database"] = dbPool.Ping
	}

	var publisher domain.SubmissionPublisher
	if len(cfg.KafkaBrokers) > 0 {
		sp, err := producer.NewSyncProducer(cfg.KafkaBrokers, cfg.KafkaClientID)
		if err != nil {
			logger.Log.Errorw("failed to create kafka producer", "brokers", cfg.KafkaBrokers, "error", err)
			os.Exit(1)
		}
		p := producer.NewOnboardingProducer(sp, producer.Config{
			Topic:  cfg.KafkaOnboardingTopic,
			Source: cfg.KafkaClientID,
		})
		defer p.Close()
		publisher = p
	}

	// 6. Redis-backed rate limiting, in-memory when unavailable
	rc, err := redis.Connect(ctx, redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
	case err != nil:
		logger.Log.Warnw("redis unavailable, using in-memory rate limiting", "error", err)
	default:
		defer rc.Close()
		health["redis"] = func(ctx context.Context) error { return rc.Ping(ctx).Err() }
	}
	limiter := middleware.NewRateLimiter(rc)
	limiter.StartCleanup(5 * time.Minute)
	defer limiter.Close()

	// 7. Usecases
	onboardingUC := usecase.NewOnboardingUsecase(engine, store, repo, publisher, validation.NewValidator(),
		usecase.OnboardingConfig{SubmissionTimeout: cfg.SubmissionTimeout()})
	healthUC := usecase.NewHealthUsecase(health)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		OnboardingUC: onboardingUC,
		HealthUC:     healthUC,
		RateLimiter:  limiter,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Errorw("listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.SubmissionTimeout()+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("server forced to shutdown", "error", err)
	}

	logger.Log.Info("server exiting")
}
