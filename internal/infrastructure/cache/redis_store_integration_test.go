//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/codops/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, config.RedisConfig{Host: host, Port: port.Int()})
	require.NoError(t, err)
	store := NewRedisStore(client, "test:")
	defer store.Close()

	fresh, err := store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = store.MarkProcessed(ctx, "evt-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, fresh)

	done, err := store.IsProcessed(ctx, "evt-1")
	require.NoError(t, err)
	assert.True(t, done)

	ttl, err := client.TTL(ctx, "test:evt-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
