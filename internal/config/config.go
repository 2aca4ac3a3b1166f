package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage backends
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

type Config struct {
	Environment    string        `yaml:"environment"`
	LogLevelName   string        `yaml:"log_level"`
	StorageBackend string        `yaml:"storage_backend"`
	DataDir        string        `yaml:"data_dir"`
	RedisURL       string        `yaml:"redis_url"`
	SessionTTL     time.Duration `yaml:"session_ttl"`

	LogLevel slog.Level `yaml:"-"`
}

func defaults() *Config {
	return &Config{
		Environment:    "development",
		LogLevelName:   "info",
		StorageBackend: BackendFile,
		DataDir:        "./data",
		RedisURL:       "localhost:6379",
		SessionTTL:     0,
	}
}

// Load builds the configuration from environment variables. If CONFIG_FILE
// is set, that YAML file is read first and the environment overrides it.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("CONFIG_FILE"))
}

// LoadFile reads the YAML file at path (skipped when path is empty), then
// applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
	cfg.LogLevelName = getEnv("LOG_LEVEL", cfg.LogLevelName)
	cfg.StorageBackend = strings.ToLower(getEnv("STORAGE_BACKEND", cfg.StorageBackend))
	cfg.DataDir = getEnv("DATA_DIR", cfg.DataDir)
	cfg.RedisURL = getEnv("REDIS_URL", cfg.RedisURL)
	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, fmt.Errorf("invalid SESSION_TTL %q: %w", ttl, err)
		}
		cfg.SessionTTL = d
	}
	cfg.LogLevel = parseLogLevel(cfg.LogLevelName)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown storage backend %q (want %q or %q)", c.StorageBackend, BackendFile, BackendRedis)
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("session ttl must not be negative, got %v", c.SessionTTL)
	}
	return nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
