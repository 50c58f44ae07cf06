package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/course-conflict-checker/api/swagger"
	"github.com/noah-isme/course-conflict-checker/internal/conflict"
	"github.com/noah-isme/course-conflict-checker/internal/handler"
	"github.com/noah-isme/course-conflict-checker/internal/repository"
	"github.com/noah-isme/course-conflict-checker/internal/router"
	"github.com/noah-isme/course-conflict-checker/internal/service"
	"github.com/noah-isme/course-conflict-checker/pkg/cache"
	"github.com/noah-isme/course-conflict-checker/pkg/config"
	"github.com/noah-isme/course-conflict-checker/pkg/database"
	"github.com/noah-isme/course-conflict-checker/pkg/logger"
)

// @title Course Conflict Checker API
// @version 1.0.0
// @description Detects instructor, room, constraint group and date range conflicts in course schedules
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, logr); err != nil {
		logr.Fatal("failed to run migrations", zap.Error(err))
	}

	probes := map[string]handler.Pinger{"postgres": handler.PingFunc(db.PingContext)}

	var cacheRepo service.CacheRepository
	if cfg.Checker.ConstraintCacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, constraint cache disabled", zap.Error(err))
		} else {
			redisRepo := repository.NewCacheRepository(client, logr)
			defer redisRepo.Close() //nolint:errcheck
			cacheRepo = redisRepo
			probes["redis"] = redisRepo
		}
	}

	metrics := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metrics, "conflicts", cfg.Checker.ConstraintCacheTTL, logr, cacheRepo != nil)
	tokens := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	engine := conflict.NewEngine(logr, conflict.EngineConfig{Workers: cfg.Checker.Workers})
	conflictSvc := service.NewConflictService(
		repository.NewMeetingRecordRepository(db),
		repository.NewConstraintGroupRepository(db),
		engine,
		cacheSvc,
		metrics,
		validator.New(),
		logr,
		service.ConflictServiceConfig{
			MaxRecords:         cfg.Checker.MaxRecords,
			ConstraintCacheTTL: cfg.Checker.ConstraintCacheTTL,
		},
	)

	r := router.New(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		EnableMetrics:  cfg.Metrics.Enabled,
		Logger:         logr,
		Metrics:        metrics,
		Tokens:         tokens,
		Conflicts:      handler.NewConflictHandler(conflictSvc),
		Probes:         handler.NewMetricsHandler(metrics, probes),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "workers", cfg.Checker.Workers)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
