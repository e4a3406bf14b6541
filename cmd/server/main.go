package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fleetkeeper/fleetkeeper/internal/handlers"
	fleetcache "github.com/fleetkeeper/fleetkeeper/internal/infrastructure/cache"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/config"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/database"
	"github.com/fleetkeeper/fleetkeeper/internal/infrastructure/metrics"
	"github.com/fleetkeeper/fleetkeeper/internal/repositories/postgres"
	"github.com/fleetkeeper/fleetkeeper/internal/services"
	"github.com/fleetkeeper/fleetkeeper/internal/services/alerts"
	"github.com/fleetkeeper/fleetkeeper/internal/services/authority"
	"github.com/fleetkeeper/fleetkeeper/pkg/cache/memorycache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const defaultEnv = "dev"

func main() {
	env := os.Getenv("ENV")
	if env == "" {
		env = defaultEnv
	}

	logger, err := newLogger(env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := config.InitConfig(env); err != nil {
		logger.Fatal("Failed to initialize config", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	pg, err := database.NewPostgres(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pg.Close()

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("database", cfg.Database.Database))

	// Repositories
	permissionRepo := postgres.NewPostgresPermissionRepository(pg.DB)
	fleetRepo := postgres.NewPostgresFleetRepository(pg.DB)

	// Permission authority. A failed initial load is not fatal: the
	// authority denies everything except admin until rules arrive.
	auth := authority.NewAuthority(permissionRepo)
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	if err := auth.Load(loadCtx); err != nil {
		logger.Warn("Failed to load permission rules, starting fail-closed", zap.Error(err))
	} else {
		logger.Info("Permission rules loaded", zap.Int("rules", len(auth.Rules())))
	}
	cancelLoad()

	// Fleet snapshot cache, invalidated on database change notifications
	snapshotCache := memorycache.New(&memorycache.Config{
		MaxEntries: cfg.Snapshot.MaxEntries,
		DefaultTTL: cfg.Snapshot.TTL,
	})
	defer snapshotCache.Close()

	fleetService := services.NewFleetService(fleetRepo, snapshotCache, cfg.Snapshot.TTL)

	listener := fleetcache.NewFleetListener(cfg.Database.ConnectionString(), fleetService.Invalidate, logger)
	if err := listener.Start(); err != nil {
		logger.Warn("Failed to start fleet change listener, relying on TTL expiry", zap.Error(err))
	} else {
		defer listener.Stop()
	}

	// Alert engine with thresholds from configuration
	engine := alerts.NewEngine(alerts.Thresholds{
		ServiceIntervalKm:  cfg.Alerts.ServiceIntervalKm,
		ServiceWarningKm:   cfg.Alerts.ServiceWarningKm,
		DocumentHighDays:   cfg.Alerts.DocumentHighDays,
		DocumentMediumDays: cfg.Alerts.DocumentMediumDays,
	})

	// Metrics
	collector := metrics.NewCollector()
	collector.SetCache(snapshotCache)
	exporter := metrics.NewPrometheusExporter(collector)

	stopMetrics := make(chan struct{})
	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				exporter.Update()
			case <-stopMetrics:
				return
			}
		}
	}()
	defer close(stopMetrics)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsMux,
	}
	go func() {
		logger.Info("Metrics server listening", zap.Int("port", cfg.Server.MetricsPort))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Metrics server error", zap.Error(err))
		}
	}()

	// HTTP API
	router := handlers.NewRouter(handlers.RouterConfig{
		Permissions: handlers.NewPermissionHandler(auth, collector, exporter, logger),
		Alerts:      handlers.NewAlertHandler(fleetService, engine, collector, exporter, logger),
		Health:      handlers.NewHealthHandler(pg, logger),
		Middleware: []func(http.Handler) http.Handler{
			handlers.LoggingMiddleware(logger),
			metrics.Middleware(collector, exporter),
		},
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	select {
	case err := <-serverErrors:
		logger.Fatal("Server error", zap.Error(err))
	case sig := <-sigChan:
		logger.Info("Received signal, initiating graceful shutdown", zap.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Shutdown timeout exceeded, forcing stop", zap.Error(err))
			server.Close()
		}
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			metricsServer.Close()
		}

		logger.Info("Shutdown complete")
	}
}

func newLogger(env string) (*zap.Logger, error) {
	if env == "prod" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
