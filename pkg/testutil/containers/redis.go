//go:build integration

package containers

import (
	"context"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"sulfurwatch/internal/platform/config"
	redisclient "sulfurwatch/internal/platform/redis"
)

// RedisContainer is a Redis instance reached through the same client
// constructor the server uses.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redisclient.Client
}

// NewRedisContainer starts Redis and connects to it.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to get redis connection string: %v", err)
	}

	client, err := redisclient.New(ctx, config.RedisConfig{URL: url, PoolSize: 4})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("failed to connect to redis: %v", err)
	}

	return &RedisContainer{Container: container, URL: url, Client: client}
}

// FlushAll removes all keys, isolating tests that share the container.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
