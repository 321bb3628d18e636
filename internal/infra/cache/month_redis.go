package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/expert-scheduler/internal/domain/availability"
)

const defaultMonthTTL = 10 * time.Minute

// Client is the subset of redis commands the month cache issues.
// *redis.Client satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

// RedisMonthCache keys month entries by a per-expert generation number.
// Invalidation bumps the generation, so stale entries are never read again
// and simply expire.
type RedisMonthCache struct {
	rdb Client
	ttl time.Duration
	log *zap.Logger
}

func NewRedisMonthCache(rdb Client, ttl time.Duration, log *zap.Logger) *RedisMonthCache {
	if ttl <= 0 {
		ttl = defaultMonthTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisMonthCache{rdb: rdb, ttl: ttl, log: log}
}

func generationKey(expertID string) string {
	return fmt.Sprintf("availability:gen:%s", expertID)
}

func monthKey(expertID string, gen int64, month, year int) string {
	return fmt.Sprintf("availability:monthly:%s:%d:%04d-%02d", expertID, gen, year, month)
}

func (c *RedisMonthCache) generation(ctx context.Context, expertID string) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey(expertID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return gen, err
}

func (c *RedisMonthCache) GetMonth(ctx context.Context, expertID string, month, year int) (domain.MonthlyAvailability, bool) {
	gen, err := c.generation(ctx, expertID)
	if err != nil {
		c.log.Warn("month cache generation read failed", zap.Error(err))
		return nil, false
	}

	raw, err := c.rdb.Get(ctx, monthKey(expertID, gen, month, year)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("month cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var out domain.MonthlyAvailability
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("month cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return out, true
}

func (c *RedisMonthCache) SetMonth(ctx context.Context, expertID string, month, year int, m domain.MonthlyAvailability) {
	gen, err := c.generation(ctx, expertID)
	if err != nil {
		c.log.Warn("month cache generation read failed", zap.Error(err))
		return
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return
	}

	if err := c.rdb.Set(ctx, monthKey(expertID, gen, month, year), raw, c.ttl).Err(); err != nil {
		c.log.Warn("month cache write failed", zap.Error(err))
	}
}

func (c *RedisMonthCache) InvalidateExpert(ctx context.Context, expertID string) {
	if err := c.rdb.Incr(ctx, generationKey(expertID)).Err(); err != nil {
		c.log.Warn("month cache invalidation failed",
			zap.String("expert_id", expertID),
			zap.Error(err),
		)
	}
}

// Ping is used by the readiness check.
func (c *RedisMonthCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

var (
	_ domain.MonthCache = (*RedisMonthCache)(nil)
	_ Client            = (*redis.Client)(nil)
)
