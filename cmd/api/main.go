package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medatlas/hospital-discovery/internal/adapters/cache"
	"github.com/medatlas/hospital-discovery/internal/adapters/database"
	"github.com/medatlas/hospital-discovery/internal/api/handlers"
	"github.com/medatlas/hospital-discovery/internal/api/middleware"
	"github.com/medatlas/hospital-discovery/internal/api/routes"
	"github.com/medatlas/hospital-discovery/internal/application/services"
	"github.com/medatlas/hospital-discovery/internal/domain/providers"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/postgres"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/clients/redis"
	"github.com/medatlas/hospital-discovery/internal/infrastructure/observability"
	"github.com/medatlas/hospital-discovery/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Catalog source
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Cache is optional; everything works without it
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis cache initialized")
	}

	hospitalCatalog := database.NewHospitalAdapter(pgClient)
	conditionCatalog := database.NewConditionAdapter(pgClient)

	scorer := services.NewMatchScoringService(services.DefaultScoringWeights())

	matchService := services.NewHospitalMatchService(hospitalCatalog, scorer)
	matchService.SetMetrics(metrics)
	browseService := services.NewHospitalBrowseService(hospitalCatalog, scorer)
	suggestService := services.NewSuggestService(conditionCatalog)

	matchHandler := handlers.NewMatchHandler(matchService, cfg.Matching.RequestTimeout)
	hospitalHandler := handlers.NewHospitalHandler(browseService)
	conditionHandler := handlers.NewConditionHandler(conditionCatalog, suggestService)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider)
		cacheMiddleware.SetMetrics(metrics)
	}

	router := routes.NewRouter(
		matchHandler,
		hospitalHandler,
		conditionHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
