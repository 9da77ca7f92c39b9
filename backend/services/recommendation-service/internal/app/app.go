package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	libdb "chargesmart/backend/libs/db"
	libredis "chargesmart/backend/libs/redis"
	"chargesmart/backend/services/recommendation-service/internal/catalog"
	"chargesmart/backend/services/recommendation-service/internal/config"
	httpserver "chargesmart/backend/services/recommendation-service/internal/http"
	"chargesmart/backend/services/recommendation-service/internal/http/handlers"
	"chargesmart/backend/services/recommendation-service/internal/http/middleware"
	"chargesmart/backend/services/recommendation-service/internal/metrics"
	"chargesmart/backend/services/recommendation-service/internal/models"
	"chargesmart/backend/services/recommendation-service/internal/recommend"
	"chargesmart/backend/services/recommendation-service/internal/service"
	"chargesmart/backend/services/recommendation-service/internal/ws"
)

// App wires recommendation-service dependencies.
type App struct {
	server    *httpserver.Server
	manager   *ws.Manager
	refresher *catalog.Refresher
	backend   *catalogBackend
	logger    *zap.Logger
}

// New constructs the application graph and loads the first catalog snapshot.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	backend, err := openCatalogBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.New(registry)
	if err != nil {
		backend.close(logger)
		return nil, err
	}

	manager := ws.NewManager(logger)
	snapshot := catalog.NewSnapshot(backend.source, catalog.Observers{recorder, manager}, logger)
	if err := snapshot.Refresh(ctx); err != nil {
		backend.close(logger)
		return nil, fmt.Errorf("initial catalog load from %s: %w", backend.source.Name(), err)
	}
	logger.Info("station catalog loaded",
		zap.String("source", snapshot.SourceName()),
		zap.Int("stations", snapshot.Len()))

	svc, err := service.NewRecommendationService(snapshot, ServiceOptions(cfg), recorder, logger)
	if err != nil {
		backend.close(logger)
		return nil, err
	}

	processor := ws.NewQueryProcessor(svc, logger)
	wsServer := ws.NewServer(manager, processor, cfg.WriteTimeout(), cfg.PingInterval(), logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		RecommendationHandlers: handlers.NewRecommendationHandlers(svc, logger),
		HealthHandler:          handlers.NewHealthHandler(snapshot),
		MetricsHandler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		DashboardHandler:       http.HandlerFunc(wsServer.HandleWS),
	})

	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		middleware.RecoveryMiddleware(logger),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(logger),
	)

	return &App{
		server:    server,
		manager:   manager,
		refresher: catalog.NewRefresher(snapshot, cfg.Catalog.RefreshInterval, logger),
		backend:   backend,
		logger:    logger,
	}, nil
}

// Run starts the catalog refresher, the dashboard manager and the HTTP server.
func (a *App) Run(ctx context.Context) error {
	if err := a.refresher.Start(); err != nil {
		return err
	}
	defer a.refresher.Stop()

	go a.manager.Start(ctx)

	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	a.backend.close(a.logger)
}

// RecommendOnce loads the configured catalog, ranks it for q and releases the backend.
func RecommendOnce(ctx context.Context, cfg *config.Config, q models.Query, logger *zap.Logger) ([]models.ScoredStation, error) {
	backend, err := openCatalogBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer backend.close(logger)

	snapshot := catalog.NewSnapshot(backend.source, nil, logger)
	if err := snapshot.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("load catalog from %s: %w", backend.source.Name(), err)
	}

	svc, err := service.NewRecommendationService(snapshot, ServiceOptions(cfg), nil, logger)
	if err != nil {
		return nil, err
	}
	return svc.Recommend(ctx, q)
}

// ServiceOptions maps configuration onto ranking options.
func ServiceOptions(cfg *config.Config) service.Options {
	r := cfg.Recommendation
	return service.Options{
		DefaultStrategy:    models.Strategy(r.Strategy),
		RangeKm:            r.RangeKm,
		BatteryCapacityKWh: r.BatteryCapacityKWh,
		Thresholds: recommend.ZoneThresholds{
			GreenKm:          r.GreenZoneKm,
			YellowKm:         r.YellowZoneKm,
			WaitLimitMinutes: r.WaitTimeLimitMinutes,
		},
	}
}

type catalogBackend struct {
	source      catalog.Source
	db          *sql.DB
	redisClient *redis.Client
}

func openCatalogBackend(ctx context.Context, cfg *config.Config) (*catalogBackend, error) {
	switch cfg.Catalog.Source {
	case config.SourcePostgres:
		sqlDB, err := libdb.NewPostgresDB(ctx, libdb.Options{DSN: cfg.Database.DSN})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return &catalogBackend{source: catalog.NewPostgresSource(sqlDB), db: sqlDB}, nil
	case config.SourceRedis:
		client, err := libredis.NewRedisClient(ctx, libredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return &catalogBackend{source: catalog.NewRedisSource(client, cfg.Redis.Key), redisClient: client}, nil
	case config.SourceSeed, "":
		return &catalogBackend{source: catalog.NewSeedSource()}, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

func (b *catalogBackend) close(logger *zap.Logger) {
	if b.db != nil {
		if err := b.db.Close(); err != nil {
			logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if b.redisClient != nil {
		if err := b.redisClient.Close(); err != nil {
			logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
