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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/offers-api/api/swagger"
	"github.com/noah-isme/offers-api/internal/handler"
	"github.com/noah-isme/offers-api/internal/middleware"
	"github.com/noah-isme/offers-api/internal/models"
	"github.com/noah-isme/offers-api/internal/repository"
	"github.com/noah-isme/offers-api/internal/service"
	"github.com/noah-isme/offers-api/pkg/config"
	"github.com/noah-isme/offers-api/pkg/database"
	"github.com/noah-isme/offers-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/offers-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/offers-api/pkg/middleware/requestid"
	"github.com/noah-isme/offers-api/pkg/query"
)

// @title Offers API
// @version 1.0.0
// @description Read-only search over scholarship offers
// @BasePath /
// @schemes http

type offerStore interface {
	Count(ctx context.Context, predicate query.Predicate) (int, error)
	Find(ctx context.Context, fetch models.OfferFetch) ([]models.FetchedOffer, error)
	CountAll(ctx context.Context) (int, error)
	InsertMany(ctx context.Context, offers []models.Offer) error
	Ping(ctx context.Context) error
}

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to open offer store", zap.String("driver", cfg.Database.Driver), zap.Error(err))
	}
	defer closeStore()

	if cfg.Seed.Enabled {
		seeder := service.NewSeedService(store, validator.New(), logr.Named("seed"))
		if _, err := seeder.SeedFile(ctx, cfg.Seed.File); err != nil {
			logr.Error("offer seeding failed", zap.String("file", cfg.Seed.File), zap.Error(err))
		}
	}

	metricsSvc := service.NewMetricsService()
	offerSvc := service.NewOfferService(store, service.NewOfferQueryParser(cfg.Offers.MaxLimit), metricsSvc, logr.Named("offers"), cfg.Offers.DefaultLimit)

	offerHandler := handler.NewOfferHandler(offerSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc, store)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr, "/health", "/metrics"))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc, "/metrics"))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)
	r.GET("/metrics/summary", metricsHandler.Summary)

	api := r.Group(cfg.APIPrefix)
	api.GET("/offers", offerHandler.List)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "driver", cfg.Database.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (offerStore, func(), error) {
	if cfg.Driver == config.DriverMemory {
		return repository.NewMemoryOfferRepository(), func() {}, nil
	}

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	repo := repository.NewOfferRepository(db, cfg.QueryTimeout)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return repo, func() { _ = db.Close() }, nil
}
