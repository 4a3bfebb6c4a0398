package data

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRedisStateClient is a mock implementation of RedisStateClient
type MockRedisStateClient struct {
	mock.Mock
}

func (m *MockRedisStateClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	args := m.Called(ctx, key, value, expiration)
	return args.Get(0).(*redis.BoolCmd)
}

func (m *MockRedisStateClient) Ping(ctx context.Context) *redis.StatusCmd {
	args := m.Called(ctx)
	return args.Get(0).(*redis.StatusCmd)
}

func (m *MockRedisStateClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// Helper function to create a BoolCmd with a result
func createBoolCmd(result bool, err error) *redis.BoolCmd {
	cmd := redis.NewBoolCmd(context.Background())
	if err != nil {
		cmd.SetErr(err)
	} else {
		cmd.SetVal(result)
	}
	return cmd
}

func TestRedisCache_Key(t *testing.T) {
	cache := newRedisCacheWithClient(new(MockRedisStateClient), "image-resizer:oauth_state:", slog.Default())

	tests := []struct {
		name     string
		state    string
		expected string
	}{
		{
			name:     "url safe state",
			state:    "abc-_123",
			expected: "image-resizer:oauth_state:abc-_123",
		},
		{
			name:     "empty state",
			state:    "",
			expected: "image-resizer:oauth_state:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cache.key(tt.state))
		})
	}
}

func TestRedisCache_Consume(t *testing.T) {
	ctx := context.Background()

	t.Run("first redemption wins", func(t *testing.T) {
		mockClient := new(MockRedisStateClient)
		cache := newRedisCacheWithClient(mockClient, "p:", slog.Default())

		mockClient.On("SetNX", ctx, "p:state-1", mock.Anything, 10*time.Minute).
			Return(createBoolCmd(true, nil))

		ok, err := cache.Consume(ctx, "state-1", 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)
		mockClient.AssertExpectations(t)
	})

	t.Run("replay is rejected", func(t *testing.T) {
		mockClient := new(MockRedisStateClient)
		cache := newRedisCacheWithClient(mockClient, "p:", slog.Default())

		mockClient.On("SetNX", ctx, "p:state-1", mock.Anything, time.Minute).
			Return(createBoolCmd(false, nil))

		ok, err := cache.Consume(ctx, "state-1", time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
		mockClient.AssertExpectations(t)
	})

	t.Run("redis error", func(t *testing.T) {
		mockClient := new(MockRedisStateClient)
		cache := newRedisCacheWithClient(mockClient, "p:", slog.Default())

		mockClient.On("SetNX", ctx, "p:state-1", mock.Anything, time.Minute).
			Return(createBoolCmd(false, errors.New("connection error")))

		ok, err := cache.Consume(ctx, "state-1", time.Minute)
		require.Error(t, err)
		assert.False(t, ok)
		mockClient.AssertExpectations(t)
	})

	t.Run("empty state never reaches redis", func(t *testing.T) {
		mockClient := new(MockRedisStateClient)
		cache := newRedisCacheWithClient(mockClient, "p:", slog.Default())

		ok, err := cache.Consume(ctx, "", time.Minute)
		assert.ErrorIs(t, err, ErrEmptyState)
		assert.False(t, ok)
		mockClient.AssertNotCalled(t, "SetNX", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRedisCache_Close(t *testing.T) {
	mockClient := new(MockRedisStateClient)
	cache := newRedisCacheWithClient(mockClient, "p:", slog.Default())

	mockClient.On("Close").Return(nil)

	assert.NoError(t, cache.Close())
	mockClient.AssertExpectations(t)
}
