package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is populated from environment variables, optionally seeded by a
// .env file.
type Config struct {
	App         AppConfig
	Store       StoreConfig
	Redis       RedisConfig
	OpenLibrary OpenLibraryConfig
}

type AppConfig struct {
	Environment string // development, production
	LogLevel    string
	Port        string
}

type StoreConfig struct {
	Backend    string // badger | redis | memory
	Key        string
	BadgerPath string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type OpenLibraryConfig struct {
	Enabled bool
	BaseURL string
	Retry   int
}

// Load reads the configuration. Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	_ = godotenv.Load(envFiles...)

	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Port:        getEnv("PORT", "8080"),
		},
		Store: StoreConfig{
			Backend:    strings.ToLower(getEnv("STORE_BACKEND", BackendBadger)),
			Key:        getEnv("STORE_KEY", "bookshelf-v1"),
			BadgerPath: getEnv("BADGER_PATH", "./data/bookshelf"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		OpenLibrary: OpenLibraryConfig{
			Enabled: getEnvBool("OPENLIBRARY_ENABLED", false),
			BaseURL: getEnv("OPENLIBRARY_URL", "https://openlibrary.org"),
			Retry:   getEnvInt("OPENLIBRARY_RETRY", 1),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendBadger, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("STORE_BACKEND must be one of badger, redis, memory (got %q)", c.Store.Backend)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}
	if c.Store.Backend == BackendBadger && c.Store.BadgerPath == "" {
		return fmt.Errorf("BADGER_PATH must be set for the badger backend")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
