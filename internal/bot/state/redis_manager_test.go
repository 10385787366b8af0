package state

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *RedisManager {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping redis integration test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	m := NewRedisManagerWithClient(redis.NewClient(&redis.Options{Addr: endpoint}))
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestRedisManager(t *testing.T) {
	m := setupRedis(t)

	assert.Equal(t, None, m.GetUserState(10))
	m.SetUserState(10, WaitingForSimulationHours)
	assert.Equal(t, WaitingForSimulationHours, m.GetUserState(10))
	m.ClearUserState(10)
	assert.Equal(t, None, m.GetUserState(10))

	m.SetTempData(10, KeyLastRunID, "run-1")
	v, ok := m.GetTempData(10, KeyLastRunID)
	require.True(t, ok)
	assert.Equal(t, "run-1", v)

	ttl, err := m.client.TTL(context.Background(), tempKey(10)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Hour)

	m.ClearTempData(10)
	_, ok = m.GetTempData(10, KeyLastRunID)
	assert.False(t, ok)
}
