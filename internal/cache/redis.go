package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	redis "github.com/go-redis/redis/v8"

	"github.com/AyushiKadu/Expense-Tracker/internal/models"
)

const snapshotKey = "ledger:snapshot"

// Config is the redis configuration.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache implements Cache backed by redis, so multiple server
// instances share one snapshot. Redis failures are logged and treated
// as cache misses; the ledger store stays the source of truth.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache creates a Cache backed by the given redis instance.
func NewRedisCache(config Config) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{
			Addr:     config.Addr,
			Password: config.Password,
			DB:       config.DB,
		}),
		ttl: config.TTL,
	}
}

// GetRows returns the cached snapshot, or a miss on absence or error.
func (c *RedisCache) GetRows(ctx context.Context) ([]models.LedgerRow, bool) {
	val, err := c.client.Get(ctx, snapshotKey).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("Ledger cache read failed", "error", err)
		return nil, false
	}

	var rows []models.LedgerRow
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		slog.Warn("Ledger cache entry corrupt, dropping", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return rows, true
}

// SetRows stores a snapshot with the configured TTL.
func (c *RedisCache) SetRows(ctx context.Context, rows []models.LedgerRow) {
	value, err := json.Marshal(rows)
	if err != nil {
		slog.Warn("Ledger cache encode failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, snapshotKey, value, c.ttl).Err(); err != nil {
		slog.Warn("Ledger cache write failed", "error", err)
	}
}

// Invalidate drops the cached snapshot.
func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		slog.Warn("Ledger cache invalidation failed", "error", err)
	}
}

// Close releases the redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
