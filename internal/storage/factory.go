package storage

import (
	"fmt"
	"log/slog"

	"github.com/jwebster45206/violeta/internal/config"
	"github.com/jwebster45206/violeta/pkg/storage"
)

// New returns the storage backend selected by cfg.
func New(cfg *config.Config, logger *slog.Logger) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rs, err := NewRedisStorage(cfg.RedisURL, cfg.SessionTTL, logger)
		if err != nil {
			return nil, err
		}
		return rs, nil
	case config.BackendFile, "":
		return NewFileStorage(cfg.DataDir, logger), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
