package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	coreport "github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/persistence"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/usecase/integration"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/usecase/pricing"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/usecase/syncer"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/cache"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/database"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/metrics"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/repository"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/telemetry"
	timeProvider "github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/time"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/config"
)

// App holds the wired services shared by the API server and the CLI
type App struct {
	Config       *config.Config
	Logger       coreport.Logger
	Metrics      *metrics.Registry
	Database     *database.Manager
	Redis        *redis.Client
	TimeProvider coreport.TimeProvider
	Sync         *syncer.Orchestrator
	Pricing      *pricing.Service
	Integrations *integration.Service
}

// New connects the database (and Redis when enabled) and wires the use cases
func New(ctx context.Context, cfg *config.Config, logger coreport.Logger) (*App, error) {
	location, err := time.LoadLocation(cfg.Sync.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid sync timezone %q: %w", cfg.Sync.Timezone, err)
	}
	tp := timeProvider.NewRealTimeProviderIn(location)

	registry := metrics.NewRegistry(cfg.Metrics.Namespace)

	dbConfig, err := database.NewConfig(cfg.Database, cfg.Logger.Level)
	if err != nil {
		return nil, err
	}
	if err := dbConfig.Validate(); err != nil {
		return nil, err
	}

	dbManager := database.NewManager(dbConfig, logger, tp, registry)
	if _, err := dbManager.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Metrics:      registry,
		Database:     dbManager,
		TimeProvider: tp,
	}

	db := dbManager.DB()
	errorMapper := dbManager.ErrorMapper()

	machineRepo := repository.NewMachineRepository(db, logger, errorMapper)
	transactionRepo := repository.NewTransactionRepository(db, logger, tp, errorMapper, dbConfig.InsertBatchSize)
	settingsRepo := repository.NewPricingSettingsRepository(db, logger, errorMapper)

	var tokenRepo persistence.IntegrationTokenRepository = repository.NewIntegrationTokenRepository(db, logger, tp, errorMapper)
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// The store alone still serves every lookup
			logger.Warn("Redis unavailable, token cache disabled", map[string]any{
				"addr":  cfg.Redis.Addr,
				"error": err.Error(),
			})
		} else {
			a.Redis = client
			tokenRepo = cache.NewTokenCache(tokenRepo, client, cfg.Redis.KeyPrefix, cfg.Redis.TokenTTL, logger)
		}
	}

	client := telemetry.NewHTTPClient(cfg.Telemetry.BaseURL, cfg.Telemetry.UserAgent, cfg.Telemetry.RequestTimeout, logger)

	a.Sync = syncer.NewOrchestrator(
		machineRepo,
		syncer.NewTokenResolver(tokenRepo, logger),
		client,
		syncer.NewMapper(),
		transactionRepo,
		registry,
		tp,
		logger,
		syncer.Options{
			Concurrency:    cfg.Sync.Concurrency,
			WindowDays:     cfg.Sync.WindowDays,
			RequestTimeout: cfg.Telemetry.RequestTimeout,
		},
	)
	a.Pricing = pricing.NewPricingService(settingsRepo, logger)
	a.Integrations = integration.NewIntegrationService(tokenRepo, tp, logger)

	return a, nil
}

// Close releases the Redis client and the database connection
func (a *App) Close() error {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Warn("Failed to close Redis client", map[string]any{
				"error": err.Error(),
			})
		}
	}
	return a.Database.Close()
}
