package data

import (
	"context"
	"errors"
	"image-resizer/internal/config"
	"log/slog"
	"time"
)

//go:generate mockgen -source=cache_provider.go -destination=../mocks/state_cache.go -package=mocks

var ErrEmptyState = errors.New("state must not be empty")

// StateCache remembers OAuth state values that have already been redeemed so a
// callback URL cannot be replayed while its state cookie is still alive.
type StateCache interface {
	// Consume marks state as used for ttl. It returns false when state was
	// already consumed and has not yet expired.
	Consume(ctx context.Context, state string, ttl time.Duration) (bool, error)
	Close() error
}

// NewStateCache returns a new StateCache
func NewStateCache(cfg *config.Config, logger *slog.Logger) (StateCache, error) {
	switch cfg.Cache.Type {
	case "redis":
		cache, err := NewRedisCache(cfg, logger)
		if err != nil {
			return nil, err
		}
		return cache, nil
	case "memory":
		fallthrough
	default:
		return NewMemCache(logger), nil
	}
}
