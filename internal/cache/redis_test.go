package cache

import (
	"context"
	"testing"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMixKeyKeepsOrder(t *testing.T) {
	assert.Equal(t, "strategy:mix:foodies:families", mixKey("foodies", "families"))
	assert.NotEqual(t, mixKey("foodies", "families"), mixKey("families", "foodies"))
}

func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestMixCacheReportsConnectionErrors(t *testing.T) {
	c := NewMixCacheWithClient(unreachableClient(t), time.Hour, zap.NewNop())
	ctx := context.Background()

	_, err := c.GetMix(ctx, "foodies", "families")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy:mix:foodies:families")

	err = c.PutMix(ctx, "foodies", "families", models.AudienceProfile{ID: "mixed"})
	require.Error(t, err)
}

func TestNewMixCacheFailsWithoutServer(t *testing.T) {
	_, err := NewMixCache(RedisConfig{Addr: "127.0.0.1:1"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
}
