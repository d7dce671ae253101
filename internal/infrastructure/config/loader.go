package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment constants
const (
	Development = "development"
	Production  = "production"
	Test        = "test"
)

// EnvPrefix is the prefix of every environment variable override
const EnvPrefix = "VS"

// ConfigPaths defines the paths to look for config files
var ConfigPaths = []string{
	"./configs",
	"../configs",
	"../../configs",
}

// DotEnvPaths defines the paths to look for .env files
var DotEnvPaths = []string{
	".env",
	"../.env",
	"../../.env",
	"./configs/.env",
	"../configs/.env",
}

// LoadConfig loads configuration from file based on the environment
func LoadConfig() (*Config, error) {
	cfg, _, err := load()
	return cfg, err
}

// load reads the configuration and returns the viper instance backing it
func load() (*Config, *viper.Viper, error) {
	if err := loadDotEnvFile(); err != nil {
		fmt.Println("Warning: Could not load .env file:", err)
	}

	env := getEnvironment()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	for _, path := range ConfigPaths {
		v.AddConfigPath(path)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	processEnvOverrides(v)

	cfg, err := decode(v, env)
	if err != nil {
		return nil, nil, err
	}
	return cfg, v, nil
}

// decode unmarshals the viper state into a Config and normalizes durations
func decode(v *viper.Viper, env string) (*Config, error) {
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	config.Environment = env
	processDurations(&config)
	return &config, nil
}

// loadDotEnvFile attempts to load environment variables from .env files
func loadDotEnvFile() error {
	var lastError error

	for _, path := range DotEnvPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			lastError = err
			continue
		}
		return nil
	}

	if lastError != nil {
		return fmt.Errorf("could not load any .env file: %w", lastError)
	}
	return fmt.Errorf("no .env file found in search paths")
}

// setDefaults sets default values for non-critical configuration
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.readTimeout", 15)       // seconds
	v.SetDefault("server.writeTimeout", 120)     // seconds, a sync run is answered synchronously
	v.SetDefault("server.idleTimeout", 60)       // seconds
	v.SetDefault("server.readHeaderTimeout", 10) // seconds
	v.SetDefault("server.shutdownTimeout", 15)   // seconds

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslMode", "disable")
	v.SetDefault("database.maxOpenConns", 20)
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.connMaxLifetime", 30) // minutes
	v.SetDefault("database.connMaxIdleTime", 15) // minutes
	v.SetDefault("database.queryTimeout", 10)    // seconds
	v.SetDefault("database.retryAttempts", 3)
	v.SetDefault("database.retryDelay", 1) // seconds
	v.SetDefault("database.insertBatchSize", 500)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "json")

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.keyPrefix", "vs:token:")
	v.SetDefault("redis.tokenTTL", 300) // seconds

	v.SetDefault("telemetry.requestTimeout", 30) // seconds
	v.SetDefault("telemetry.userAgent", "vending-sync/1.0")

	v.SetDefault("sync.concurrency", 4)
	v.SetDefault("sync.windowDays", 7)
	v.SetDefault("sync.interval", 0)    // minutes
	v.SetDefault("sync.runTimeout", 30) // minutes
	v.SetDefault("sync.timezone", "UTC")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("metrics.namespace", "vending_sync")
}

// getEnvironment determines the environment to use based on VS_ENV environment variable
func getEnvironment() string {
	env := os.Getenv(EnvPrefix + "_ENV")
	if env == "" {
		env = Development
	}
	return strings.ToLower(env)
}

// processEnvOverrides ensures environment variables override config values.
// Keys are listed explicitly because their names do not follow the nested key path.
func processEnvOverrides(v *viper.Viper) {
	stringOverrides := map[string]string{
		"VS_DB_HOST":            "database.host",
		"VS_DB_PORT":            "database.port",
		"VS_DB_USERNAME":        "database.username",
		"VS_DB_PASSWORD":        "database.password",
		"VS_DB_NAME":            "database.database",
		"VS_DB_SSL_MODE":        "database.sslMode",
		"VS_SERVER_HOST":        "server.host",
		"VS_LOGGER_LEVEL":       "logger.level",
		"VS_REDIS_ADDR":         "redis.addr",
		"VS_REDIS_PASSWORD":     "redis.password",
		"VS_TELEMETRY_BASE_URL": "telemetry.baseURL",
		"VS_SYNC_TIMEZONE":      "sync.timezone",
	}
	for env, key := range stringOverrides {
		if value := os.Getenv(env); value != "" {
			v.Set(key, value)
		}
	}

	intOverrides := map[string]string{
		"VS_SERVER_PORT":                   "server.port",
		"VS_DB_MAX_OPEN_CONNS":             "database.maxOpenConns",
		"VS_DB_MAX_IDLE_CONNS":             "database.maxIdleConns",
		"VS_DB_QUERY_TIMEOUT_SECONDS":      "database.queryTimeout",
		"VS_DB_RETRY_ATTEMPTS":             "database.retryAttempts",
		"VS_TELEMETRY_TIMEOUT_SECONDS":     "telemetry.requestTimeout",
		"VS_SYNC_CONCURRENCY":              "sync.concurrency",
		"VS_SYNC_WINDOW_DAYS":              "sync.windowDays",
		"VS_SYNC_INTERVAL_MINUTES":         "sync.interval",
		"VS_REDIS_TOKEN_TTL_SECONDS":       "redis.tokenTTL",
		"VS_DB_CONN_MAX_LIFETIME_MINUTES":  "database.connMaxLifetime",
		"VS_DB_CONN_MAX_IDLE_TIME_MINUTES": "database.connMaxIdleTime",
	}
	for env, key := range intOverrides {
		if value := getEnvInt(env, -1); value >= 0 {
			v.Set(key, value)
		}
	}

	if enabled := os.Getenv("VS_REDIS_ENABLED"); enabled != "" {
		v.Set("redis.enabled", strings.EqualFold(enabled, "true") || enabled == "1")
	}
}

// getEnvInt reads an environment variable as int
func getEnvInt(name string, defaultVal int) int {
	valStr := os.Getenv(name)
	if valStr == "" {
		return defaultVal
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return defaultVal
	}
	return val
}

// processDurations converts duration fields from their configured units
func processDurations(config *Config) {
	config.Server.ReadTimeout = config.Server.ReadTimeout * time.Second
	config.Server.WriteTimeout = config.Server.WriteTimeout * time.Second
	config.Server.IdleTimeout = config.Server.IdleTimeout * time.Second
	config.Server.ReadHeaderTimeout = config.Server.ReadHeaderTimeout * time.Second
	config.Server.ShutdownTimeout = config.Server.ShutdownTimeout * time.Second

	config.Database.ConnMaxLifetime = config.Database.ConnMaxLifetime * time.Minute
	config.Database.ConnMaxIdleTime = config.Database.ConnMaxIdleTime * time.Minute
	config.Database.QueryTimeout = config.Database.QueryTimeout * time.Second
	config.Database.RetryDelay = config.Database.RetryDelay * time.Second

	config.Redis.TokenTTL = config.Redis.TokenTTL * time.Second
	config.Telemetry.RequestTimeout = config.Telemetry.RequestTimeout * time.Second

	config.Sync.Interval = config.Sync.Interval * time.Minute
	config.Sync.RunTimeout = config.Sync.RunTimeout * time.Minute
}
