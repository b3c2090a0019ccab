package redis

import (
	"context"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis connects to addr. An unreachable server is not an error: the
// client is closed, Redis stays disabled and searches go uncached.
func InitRedis(ctx context.Context, addr, password string, logger zerolog.Logger) error {
	logger = logger.With().Str("component", "redis").Str("addr", addr).Logger()

	RedisClient = redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          0,
		DialTimeout: 2 * time.Second,
	})

	// Test connection
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Msg("could not connect to redis, reply cache disabled")
		redisEnabled = false
		closeErr := RedisClient.Close()
		RedisClient = nil
		return errors.Wrap(closeErr, "close unreachable redis client")
	}

	redisEnabled = true
	logger.Info().Msg("connected")
	return nil
}

// IsRedisEnabled returns whether Redis is available
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection
func CloseRedis() error {
	if RedisClient == nil {
		return nil
	}
	redisEnabled = false
	err := RedisClient.Close()
	RedisClient = nil
	return errors.Wrap(err, "close redis")
}

// RedisCache wraps redis.Client as a game.CacheRepository.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Set stores a key-value pair with expiration
func (r *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return r.client.Set(ctx, key, value, expiration).Err()
}

// Get returns domain.ErrCacheMiss for an absent key.
func (r *RedisCache) Get(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrCacheMiss
	}
	return value, err
}

// Del deletes keys
func (r *RedisCache) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}
