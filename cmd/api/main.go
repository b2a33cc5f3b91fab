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

	"github.com/clinicdesk/clinic-ledger/internal/adapters/cache"
	"github.com/clinicdesk/clinic-ledger/internal/adapters/events"
	"github.com/clinicdesk/clinic-ledger/internal/adapters/storage"
	"github.com/clinicdesk/clinic-ledger/internal/api/handlers"
	"github.com/clinicdesk/clinic-ledger/internal/api/middleware"
	"github.com/clinicdesk/clinic-ledger/internal/api/routes"
	"github.com/clinicdesk/clinic-ledger/internal/application/services"
	"github.com/clinicdesk/clinic-ledger/internal/domain/providers"
	"github.com/clinicdesk/clinic-ledger/internal/domain/repositories"
	"github.com/clinicdesk/clinic-ledger/internal/infrastructure/clients/postgres"
	redisclient "github.com/clinicdesk/clinic-ledger/internal/infrastructure/clients/redis"
	"github.com/clinicdesk/clinic-ledger/internal/infrastructure/observability"
	"github.com/clinicdesk/clinic-ledger/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing is opt-in; the ledger works fine without a collector.
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Warn().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Redis is optional: without it the service runs uncached and silent on
	// the event bus.
	var cacheProvider providers.CacheProvider
	var eventBus providers.EventBus
	if cfg.Redis.Enabled {
		redisCli, err := redisclient.NewClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize Redis client, continuing without cache")
		} else {
			defer redisCli.Close()
			cacheProvider = cache.NewRedisAdapter(redisCli)
			eventBus = events.NewRedisEventBus(redisCli)
			defer eventBus.Close()
		}
	}

	// Snapshot backend: flat JSON files by default, Postgres when selected.
	var snapshots repositories.SnapshotRepository
	switch cfg.Storage.Backend {
	case config.StorageBackendPostgres:
		pgClient, err := postgres.NewClient(&cfg.Database)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
		}
		defer pgClient.Close()
		snapshots = storage.NewPostgresSnapshotAdapter(pgClient)
	default:
		snapshots = storage.NewFileSnapshotAdapter(cfg.Storage.DataDir)
	}

	var catalogRepo repositories.CatalogRepository = storage.NewFileCatalogAdapter(cfg.Storage.ConfigFile)
	if cacheProvider != nil {
		catalogRepo = storage.NewCachedCatalogAdapter(catalogRepo, cacheProvider)
	}

	catalog, rules, err := catalogRepo.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load clinic configuration")
	}

	pricing := services.NewPricingService(catalog, rules)
	ledger := services.NewLedgerService(cfg.Clinic.Name, pricing, catalog, snapshots, eventBus)
	if err := ledger.LoadSnapshot(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to load roster snapshot")
	}

	patientHandler := handlers.NewPatientHandler(ledger)
	appointmentHandler := handlers.NewAppointmentHandler(ledger)
	tillHandler := handlers.NewTillHandler(ledger)
	reportHandler := handlers.NewReportHandler(ledger)

	var eventHandler *handlers.EventStreamHandler
	if eventBus != nil {
		eventHandler = handlers.NewEventStreamHandler(eventBus)
	}

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
	}

	router := routes.NewRouter(
		patientHandler,
		appointmentHandler,
		tillHandler,
		reportHandler,
		eventHandler,
		cacheMiddleware,
		metrics,
	)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
