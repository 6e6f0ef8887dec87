package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retailx/retailx-backend/internal/config"
)

func TestConnect_UnreachableServer(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for server selection timeout")
	}

	client, err := Connect(context.Background(), config.MongoConfig{
		Driver:         "mongo",
		URI:            "mongodb://127.0.0.1:1/?directConnection=true",
		Database:       "retailx_test",
		TimeoutSeconds: 1,
	})
	require.Error(t, err)
	assert.Nil(t, client)
	assert.Contains(t, err.Error(), "failed to")
}

func TestInitialize_MemoryDriver(t *testing.T) {
	store, err := Initialize(context.Background(), config.MongoConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.NoError(t, store.Ping(context.Background()))
}
