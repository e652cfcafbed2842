package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backend names accepted in STORAGE_BACKEND.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultSnapshotKey is the namespace the snapshot is stored under. It
// matches the key the data has always lived under, so existing snapshots
// rehydrate without migration.
const DefaultSnapshotKey = "ticketing-system"

// Config aggregates runtime configuration for the application.
type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Postgres PostgresConfig
	Logger   LoggerConfig
}

// AppConfig identifies the application instance.
type AppConfig struct {
	Name string
	Env  string
}

// StorageConfig selects and parameterizes the snapshot backend.
type StorageConfig struct {
	Backend string
	Key     string
	Dir     string
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults
// so a zero-config run works against a local data directory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "ticket-store"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Storage: StorageConfig{
			Backend: getEnv("STORAGE_BACKEND", BackendFile),
			Key:     getEnv("STORAGE_KEY", DefaultSnapshotKey),
			Dir:     getEnv("STORAGE_DIR", "./data"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Postgres: PostgresConfig{
			DSN:      os.Getenv("POSTGRES_DSN"),
			MaxConns: int32(getEnvAsInt("POSTGRES_MAX_CONNS", 4)),
			MinConns: int32(getEnvAsInt("POSTGRES_MIN_CONNS", 1)),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Storage.Backend {
	case BackendFile, BackendMemory, BackendRedis, BackendPostgres:
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
