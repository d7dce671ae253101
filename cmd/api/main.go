package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/vending-sync/internal/app"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/port/core"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/routes"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/logger"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/config"
)

func main() {
	// Load configuration; edits of the config file re-apply the log level
	reloads := make(chan configReload, 4)
	cfg, err := config.LoadAndWatch(
		func(updated *config.Config, event fsnotify.Event) {
			sendReload(reloads, configReload{file: event.Name, level: updated.Logger.Level})
		},
		func(err error, event fsnotify.Event) {
			sendReload(reloads, configReload{file: event.Name, err: err})
		},
	)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate essential configuration
	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	jsonLogs := cfg.IsProduction() || strings.EqualFold(cfg.Logger.Format, "json")
	appLogger := logger.NewZapLoggerWithLevel(jsonLogs, core.ParseLogLevel(cfg.Logger.Level))
	defer func() { _ = appLogger.Flush() }()
	go followConfigReloads(appLogger, reloads)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 2*time.Minute)
	application, err := app.New(startupCtx, cfg, appLogger)
	if err != nil {
		cancelStartup()
		appLogger.Error("Failed to initialize application", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Run migrations
	if err := application.Database.Migrate(startupCtx); err != nil {
		cancelStartup()
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		_ = application.Close()
		os.Exit(1)
	}
	cancelStartup()

	// Initialize API handlers
	var requestObserver middleware.RequestObserver
	var quoteObserver handler.QuoteObserver
	handlers := routes.Handlers{
		Sync:        handler.NewSyncHandler(application.Sync, appLogger),
		Integration: handler.NewIntegrationHandler(application.Integrations, appLogger),
		Health:      handler.NewHealthHandler(application.Database),
	}
	if cfg.Metrics.Enabled {
		requestObserver = application.Metrics
		quoteObserver = application.Metrics
		handlers.Metrics = application.Metrics.Handler()
	}
	handlers.Pricing = handler.NewPricingHandler(application.Pricing, quoteObserver, appLogger)

	// Initialize Gin router
	router := gin.New()
	routes.SetupMiddlewares(router, appLogger, requestObserver)
	routes.SetupRoutes(router, handlers, cfg.Metrics.Path)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the sync scheduler
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	scheduler := app.NewScheduler(application.Sync, cfg.Sync.Interval, cfg.Sync.RunTimeout, application.TimeProvider, appLogger)
	go scheduler.Run(schedulerCtx)

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	// Create a deadline to wait for
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop scheduling and let the run in flight wind down
	stopScheduler()
	select {
	case <-scheduler.Done():
	case <-ctx.Done():
		appLogger.Warn("Scheduled sync did not stop before the shutdown deadline", nil)
	}

	// Shutdown the server
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	if err := application.Close(); err != nil {
		appLogger.Error("Failed to close database", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// configReload is the outcome of one config file change
type configReload struct {
	file  string
	level string
	err   error
}

// sendReload drops the event when the logger goroutine is behind
func sendReload(reloads chan<- configReload, reload configReload) {
	select {
	case reloads <- reload:
	default:
	}
}

// followConfigReloads applies reloaded log levels and reports rejected config files
func followConfigReloads(appLogger core.Logger, reloads <-chan configReload) {
	for reload := range reloads {
		if reload.err != nil {
			appLogger.Error("Config reload rejected, keeping previous configuration", map[string]any{
				"file":  reload.file,
				"error": reload.err.Error(),
			})
			continue
		}

		level := core.ParseLogLevel(reload.level)
		if level == appLogger.GetLevel() {
			continue
		}
		appLogger.SetLevel(level)
		appLogger.Info("Log level changed", map[string]any{
			"level": level.String(),
		})
	}
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missingConfigs []string

	// Validate server configuration
	if cfg.Server.Port == 0 {
		missingConfigs = append(missingConfigs, "server.port")
	}

	if cfg.Server.ReadTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.readTimeout")
	}

	if cfg.Server.WriteTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.writeTimeout")
	}

	if cfg.Server.ShutdownTimeout == 0 {
		missingConfigs = append(missingConfigs, "server.shutdownTimeout")
	}

	// Validate database configuration
	if cfg.Database.Host == "" {
		missingConfigs = append(missingConfigs, "database.host (or VS_DB_HOST environment variable)")
	}

	if cfg.Database.Username == "" {
		missingConfigs = append(missingConfigs, "database.username (or VS_DB_USERNAME environment variable)")
	}

	if cfg.Database.Password == "" && cfg.IsProduction() {
		missingConfigs = append(missingConfigs, "database.password (or VS_DB_PASSWORD environment variable)")
	}

	if cfg.Database.Database == "" {
		missingConfigs = append(missingConfigs, "database.database (or VS_DB_NAME environment variable)")
	}

	// Validate telemetry configuration
	if cfg.Telemetry.BaseURL == "" {
		missingConfigs = append(missingConfigs, "telemetry.baseURL (or VS_TELEMETRY_BASE_URL environment variable)")
	}

	if cfg.Telemetry.RequestTimeout == 0 {
		missingConfigs = append(missingConfigs, "telemetry.requestTimeout")
	}

	// Validate sync configuration
	if cfg.Sync.Concurrency <= 0 {
		missingConfigs = append(missingConfigs, "sync.concurrency")
	}

	if cfg.Sync.WindowDays <= 0 {
		missingConfigs = append(missingConfigs, "sync.windowDays")
	}

	if cfg.Sync.Interval > 0 && cfg.Sync.RunTimeout == 0 {
		missingConfigs = append(missingConfigs, "sync.runTimeout")
	}

	// Environment should be set with a valid value
	if cfg.Environment != config.Development &&
		cfg.Environment != config.Production &&
		cfg.Environment != config.Test {
		return fmt.Errorf("invalid environment value: %s, must be one of: %s, %s, or %s",
			cfg.Environment, config.Development, config.Production, config.Test)
	}

	// Metrics path must be routable
	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		return fmt.Errorf("invalid metrics.path %q: must start with /", cfg.Metrics.Path)
	}

	// Return error with list of missing configurations
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configurations: %v", missingConfigs)
	}

	// If we're in production, do additional validation for sensitive settings
	if cfg.IsProduction() {
		var warnings []string

		// Check database security settings
		sslMode := strings.ToLower(cfg.Database.SSLMode)
		if sslMode != "require" && sslMode != "verify-ca" && sslMode != "verify-full" {
			warnings = append(warnings, "database.sslMode should be set to 'require', 'verify-ca', or 'verify-full' in production")
		}

		if !strings.HasPrefix(cfg.Telemetry.BaseURL, "https://") {
			warnings = append(warnings, "telemetry.baseURL should use https in production")
		}

		// Check timeout settings
		if cfg.Server.ReadTimeout < 5*time.Second {
			warnings = append(warnings, "server.readTimeout is too low for production")
		}

		if len(warnings) > 0 {
			log.Printf("Warning: potential security issues in production configuration: %v", warnings)
		}
	}

	return nil
}
