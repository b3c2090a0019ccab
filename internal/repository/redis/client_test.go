package redis

import (
	"context"
	"testing"
	"time"

	"github.com/iamasit07/connect4-engine/internal/domain"
	"github.com/iamasit07/connect4-engine/internal/service/game"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ game.CacheRepository = (*RedisCache)(nil)

func TestInitRedisUnreachableServer(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// nothing listens on port 1
	err := InitRedis(ctx, "127.0.0.1:1", "", zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, IsRedisEnabled())
	assert.Nil(t, RedisClient)
	assert.NoError(t, CloseRedis())
}

func TestRedisCacheReportsErrorsFromUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	cache := NewRedisCache(client)

	_, err := cache.Get(context.Background(), "connect4:reply:v1:1:X")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCacheMiss)
	assert.Error(t, cache.Set(context.Background(), "k", 3, time.Minute))
	assert.Error(t, cache.Del(context.Background(), "k"))
}
