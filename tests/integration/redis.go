package integration

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// TestRedis wraps a Redis container and a connected client.
type TestRedis struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// NewTestRedis starts a Redis container that is terminated when the test ends.
func NewTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "Failed to start Redis container")
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate redis container: %v", err)
		}
	})

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get redis connection string")

	opts, err := redis.ParseURL(url)
	require.NoError(t, err, "Failed to parse redis URL")

	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(ctx).Err(), "Failed to ping redis")

	return &TestRedis{Container: container, URL: url, Client: client}
}

// FlushAll removes every key so tests sharing the instance start clean.
func (r *TestRedis) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
