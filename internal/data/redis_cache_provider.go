package data

import (
	"context"
	"fmt"
	"image-resizer/internal/config"
	"image-resizer/internal/metrics"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/extra/redisprometheus/v9"
	"github.com/redis/go-redis/v9"
)

// RedisStateClient is the subset of the redis client used by RedisCache
type RedisStateClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type RedisCache struct {
	client    RedisStateClient
	keyPrefix string
	logger    *slog.Logger
}

// NewRedisCache connects to redis (directly or through sentinel) and returns a
// StateCache shared by every instance pointed at the same database.
func NewRedisCache(cfg *config.Config, logger *slog.Logger) (*RedisCache, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("redis cache selected but no redis configuration provided")
	}

	var client *redis.Client

	if cfg.Redis.Sentinel != nil {
		logger.Info("connecting to redis via sentinel",
			"master", cfg.Redis.Sentinel.MasterName,
			"sentinels", cfg.Redis.Sentinel.SentinelAddresses)

		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:       cfg.Redis.Sentinel.MasterName,
			SentinelAddrs:    cfg.Redis.Sentinel.SentinelAddresses,
			SentinelUsername: cfg.Redis.Sentinel.SentinelUsername,
			SentinelPassword: cfg.Redis.Sentinel.SentinelPassword,
			Username:         cfg.Redis.Username,
			Password:         cfg.Redis.Password,
			DB:               cfg.Redis.StateIndex,
			DialTimeout:      cfg.Redis.DialTimeout,
			MinIdleConns:     2,
		})
	} else {
		client = redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Username:     cfg.Redis.Username,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.StateIndex,
			DialTimeout:  cfg.Redis.DialTimeout,
			MinIdleConns: 2,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Redis.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if cfg.Server.Debug != nil && cfg.Server.Debug.Enabled {
		collector := redisprometheus.NewCollector(metrics.Namespace, "state_cache", client)
		if err := prometheus.Register(collector); err != nil {
			logger.Debug("failed to register redis state cache collector: already registered", "error", err)
		}
	}

	return newRedisCacheWithClient(client, cfg.Redis.KeyPrefix, logger), nil
}

func newRedisCacheWithClient(client RedisStateClient, keyPrefix string, logger *slog.Logger) *RedisCache {
	return &RedisCache{
		client:    client,
		keyPrefix: keyPrefix,
		logger:    logger,
	}
}

// key generates a namespaced Redis key
func (r *RedisCache) key(state string) string {
	return r.keyPrefix + state
}

// Consume uses SETNX so exactly one caller across all instances wins a state.
func (r *RedisCache) Consume(ctx context.Context, state string, ttl time.Duration) (bool, error) {
	if state == "" {
		return false, ErrEmptyState
	}

	stored, err := r.client.SetNX(ctx, r.key(state), time.Now().Unix(), ttl).Result()
	if err != nil {
		r.logger.Error("error executing redis 'SETNX'", "error", err)
		return false, fmt.Errorf("failed to record oauth state: %w", err)
	}

	return stored, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
