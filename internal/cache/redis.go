package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/BerylCAtieno/fondue-strategy-agent/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const mixKeyPrefix = "strategy:mix"

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// MixCache keeps synthesized profiles in Redis keyed by the ordered pair of
// source audience ids. A zero TTL keeps entries forever.
type MixCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewMixCache connects to Redis and verifies the connection.
func NewMixCache(cfg RedisConfig, logger *zap.Logger) (*MixCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}

	logger.Info("Redis connected", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return NewMixCacheWithClient(client, cfg.TTL, logger), nil
}

func NewMixCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *MixCache {
	return &MixCache{client: client, ttl: ttl, logger: logger}
}

func mixKey(firstID, secondID string) string {
	return fmt.Sprintf("%s:%s:%s", mixKeyPrefix, firstID, secondID)
}

// GetMix returns nil, nil on a miss.
func (c *MixCache) GetMix(ctx context.Context, firstID, secondID string) (*models.AudienceProfile, error) {
	key := mixKey(firstID, secondID)
	value, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	var profile models.AudienceProfile
	if err := json.Unmarshal(value, &profile); err != nil {
		c.logger.Warn("Dropping unreadable cached mix", zap.String("key", key), zap.Error(err))
		_ = c.client.Del(ctx, key).Err()
		return nil, nil
	}
	return &profile, nil
}

func (c *MixCache) PutMix(ctx context.Context, firstID, secondID string, profile models.AudienceProfile) error {
	key := mixKey(firstID, secondID)
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("cache marshal %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *MixCache) Close() error {
	return c.client.Close()
}
