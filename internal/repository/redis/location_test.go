package redis

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/location"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocationStore {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	ctx := context.Background()
	client, err := NewClient(ctx, url)
	require.NoError(t, err)

	key := fmt.Sprintf("test:locations:%d", time.Now().UnixNano())
	t.Cleanup(func() {
		client.Del(context.Background(), key)
		client.Close()
	})
	return NewLocationStore(client, key)
}

func TestRedisLocationStore_SeedAddRemove(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	seeded, err := store.SeedIfEmpty(ctx, []location.AuthorizedLocation{
		{ID: "sf", Name: "SF", Latitude: 37.7749, Longitude: -122.4194, CreatedAt: base},
	})
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = store.SeedIfEmpty(ctx, []location.AuthorizedLocation{{ID: "other", CreatedAt: base}})
	require.NoError(t, err)
	assert.False(t, seeded)

	require.NoError(t, store.Add(ctx, location.AuthorizedLocation{ID: "jlm", Name: "Jerusalem", Latitude: 31.771959, Longitude: 35.217018, CreatedAt: base.Add(time.Hour)}))

	locs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, locs, 2)
	assert.Equal(t, "sf", locs[0].ID)
	assert.Equal(t, 35.217018, locs[1].Longitude)

	require.NoError(t, store.Remove(ctx, "sf"))
	assert.ErrorIs(t, store.Remove(ctx, "sf"), location.ErrLocationNotFound)
}
