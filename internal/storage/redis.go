package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/violeta/pkg/gdsf"
	"github.com/jwebster45206/violeta/pkg/storage"
)

const documentKeyPrefix = "gdsf:"

// RedisStorage keeps each session's document as GDSF text under
// gdsf:<uuid>.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
	ttl    time.Duration
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage instance. redisURL is either a
// redis:// URL or a bare host:port. A ttl of zero keeps documents forever.
func NewRedisStorage(redisURL string, ttl time.Duration, logger *slog.Logger) (*RedisStorage, error) {
	opt := &redis.Options{Addr: redisURL}
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opt = parsed
	}

	return &RedisStorage{
		client: redis.NewClient(opt),
		logger: logger,
		ttl:    ttl,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context, maxRetries int, retryDelay time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Document operations

func (r *RedisStorage) SaveDocument(ctx context.Context, id uuid.UUID, doc *gdsf.Result) error {
	data, err := gdsf.Marshal(doc)
	if err != nil {
		r.logger.Error("Failed to encode document", "session", id, "error", err)
		return fmt.Errorf("failed to encode document: %w", err)
	}

	if err := r.client.Set(ctx, documentKeyPrefix+id.String(), string(data), r.ttl).Err(); err != nil {
		r.logger.Error("Failed to save document", "session", id, "error", err)
		return fmt.Errorf("failed to save document: %w", err)
	}

	r.logger.Debug("Document saved", "session", id, "bytes", len(data))
	return nil
}

func (r *RedisStorage) LoadDocument(ctx context.Context, id uuid.UUID) (*gdsf.Result, error) {
	data, err := r.client.Get(ctx, documentKeyPrefix+id.String()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Document not found", "session", id)
			return nil, nil
		}
		r.logger.Error("Failed to load document", "session", id, "error", err)
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	doc, err := gdsf.ParseString(data)
	if err != nil {
		r.logger.Error("Stored document is invalid", "session", id, "error", err)
		return nil, fmt.Errorf("failed to parse document for session %s: %w", id, err)
	}
	return doc, nil
}

func (r *RedisStorage) DeleteDocument(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, documentKeyPrefix+id.String()).Err(); err != nil {
		r.logger.Error("Failed to delete document", "session", id, "error", err)
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (r *RedisStorage) ListSessions(ctx context.Context) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	iter := r.client.Scan(ctx, 0, documentKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		id, err := uuid.Parse(strings.TrimPrefix(iter.Val(), documentKeyPrefix))
		if err != nil {
			r.logger.Warn("Skipping malformed document key", "key", iter.Val())
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids, nil
}
