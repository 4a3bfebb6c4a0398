package data

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const memSweepInterval = time.Minute

type MemCache struct {
	consumed  map[string]time.Time
	mutex     sync.Mutex
	lastSweep time.Time
	now       func() time.Time
	logger    *slog.Logger
}

// NewMemCache returns a process local StateCache. Replays are only detected
// within a single instance.
func NewMemCache(logger *slog.Logger) *MemCache {
	return &MemCache{
		consumed: make(map[string]time.Time),
		now:      time.Now,
		logger:   logger,
	}
}

// Consume records state until ttl elapses
func (m *MemCache) Consume(_ context.Context, state string, ttl time.Duration) (bool, error) {
	if state == "" {
		return false, ErrEmptyState
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	now := m.now()
	m.sweep(now)

	if expiry, exists := m.consumed[state]; exists && now.Before(expiry) {
		return false, nil
	}

	m.consumed[state] = now.Add(ttl)
	return true, nil
}

// sweep drops expired entries, at most once per memSweepInterval. Callers must hold the mutex.
func (m *MemCache) sweep(now time.Time) {
	if now.Sub(m.lastSweep) < memSweepInterval {
		return
	}
	m.lastSweep = now

	removed := 0
	for state, expiry := range m.consumed {
		if !now.Before(expiry) {
			delete(m.consumed, state)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Debug("Swept expired oauth states", "removed", removed, "remaining", len(m.consumed))
	}
}

// Size returns the current number of remembered states
func (m *MemCache) Size() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.consumed)
}

func (m *MemCache) Close() error {
	return nil
}
