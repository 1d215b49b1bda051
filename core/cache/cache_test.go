package cache_test

import (
	"context"
	"testing"
	"time"

	"library-compare/core/cache"
	"library-compare/core/database"
	"library-compare/core/unify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLStore(t *testing.T) *cache.SQLStore {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	store, err := cache.NewSQLStore(db)
	require.NoError(t, err)
	return store
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestCache_PlatformRoundTrip(t *testing.T) {
	ctx := context.Background()
	clk := &clock{now: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)}
	c := cache.New(newSQLStore(t), 24*time.Hour).WithClock(clk.Now)

	games, ok, err := c.LoadPlatform(ctx, unify.Steam)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, games)

	raw := []unify.RawGame{{"appid": float64(570), "name": "Dota 2", "playtime_forever": float64(12)}}
	require.NoError(t, c.SavePlatform(ctx, unify.Steam, raw))

	games, ok, err = c.LoadPlatform(ctx, unify.Steam)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, raw, games)

	clk.now = clk.now.Add(25 * time.Hour)
	_, ok, err = c.LoadPlatform(ctx, unify.Steam)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_UnifiedRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := cache.New(newSQLStore(t), time.Hour)

	merged := unify.Merge(
		[]unify.RawGame{{"appid": float64(1), "name": "Halo Infinite", "playtime_forever": float64(100)}},
		[]unify.RawGame{{"titleId": "2", "name": "Halo Infinite"}},
		nil, nil, nil,
	)
	require.NoError(t, c.SaveUnified(ctx, merged))

	games, ok, err := c.LoadUnified(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, merged, games)
}

func TestCache_SaveOverwrites(t *testing.T) {
	ctx := context.Background()
	c := cache.New(newSQLStore(t), time.Hour)

	require.NoError(t, c.SavePlatform(ctx, unify.GOG, []unify.RawGame{{"id": "1"}}))
	require.NoError(t, c.SavePlatform(ctx, unify.GOG, []unify.RawGame{{"id": "1"}, {"id": "2"}}))

	games, ok, err := c.LoadPlatform(ctx, unify.GOG)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Len(t, games, 2)
}

func TestCache_Status(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	clk := &clock{now: start}
	c := cache.New(newSQLStore(t), 24*time.Hour).WithClock(clk.Now)

	require.NoError(t, c.SavePlatform(ctx, unify.Steam, []unify.RawGame{{"appid": float64(1)}, {"appid": float64(2)}}))
	clk.now = start.Add(20 * time.Hour)
	require.NoError(t, c.SaveUnified(ctx, []unify.UnifiedGame{{ID: "steam-1", Name: "Portal"}}))
	clk.now = start.Add(26 * time.Hour)

	status, err := c.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 2)

	assert.Equal(t, 2, status["steam"].Count)
	assert.True(t, status["steam"].Expired)
	assert.Equal(t, "1 day ago", status["steam"].Age)

	assert.Equal(t, 1, status["unified"].Count)
	assert.False(t, status["unified"].Expired)
	assert.Equal(t, "6 hours ago", status["unified"].Age)
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	c := cache.New(newSQLStore(t), time.Hour)

	require.NoError(t, c.SavePlatform(ctx, unify.Steam, []unify.RawGame{{"appid": float64(1)}}))
	require.NoError(t, c.SavePlatform(ctx, unify.Xbox, []unify.RawGame{{"titleId": "1"}}))
	require.NoError(t, c.SaveUnified(ctx, []unify.UnifiedGame{{ID: "steam-1"}}))

	require.NoError(t, c.ClearPlatform(ctx, unify.Steam))
	status, err := c.Status(ctx)
	require.NoError(t, err)
	assert.Contains(t, status, "xbox")
	assert.NotContains(t, status, "steam")
	assert.NotContains(t, status, "unified")

	require.NoError(t, c.Clear(ctx))
	status, err = c.Status(ctx)
	require.NoError(t, err)
	assert.Empty(t, status)
}

func TestCache_ZeroTTL(t *testing.T) {
	ctx := context.Background()
	c := cache.New(newSQLStore(t), 0)

	require.NoError(t, c.SavePlatform(ctx, unify.Amazon, []unify.RawGame{{"id": "a"}}))
	_, ok, err := c.LoadPlatform(ctx, unify.Amazon)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshot_Expired(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	snap := cache.Snapshot{FetchedAt: now.Add(-2 * time.Hour)}

	assert.False(t, snap.Expired(3*time.Hour, now))
	assert.True(t, snap.Expired(time.Hour, now))
	assert.True(t, snap.Expired(0, now))
}

func TestConfig_TTL(t *testing.T) {
	assert.Equal(t, 24*time.Hour, cache.Config{TTLHours: 24}.TTL())
	assert.Equal(t, time.Duration(0), cache.Config{TTLHours: -1}.TTL())
}

func TestNormalizeDriver(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", cache.DriverDatabase},
		{"  ", cache.DriverDatabase},
		{"database", cache.DriverDatabase},
		{"Redis", cache.DriverRedis},
		{"memcached", "memcached"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cache.NormalizeDriver(tt.in), "driver %q", tt.in)
	}
}

func TestNewStore(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	store, err := cache.NewStore(cache.Config{Driver: cache.DriverDatabase}, db)
	require.NoError(t, err)
	assert.IsType(t, &cache.SQLStore{}, store)

	_, err = cache.NewStore(cache.Config{Driver: cache.DriverDatabase}, nil)
	assert.Error(t, err)

	store, err = cache.NewStore(cache.Config{Driver: cache.DriverRedis, RedisURL: "redis://localhost:6379/2"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &cache.RedisStore{}, store)

	_, err = cache.NewStore(cache.Config{Driver: cache.DriverRedis, RedisURL: "://bad"}, nil)
	assert.Error(t, err)

	store, err = cache.NewStore(cache.Config{}, db)
	require.NoError(t, err)
	assert.IsType(t, &cache.SQLStore{}, store)

	_, err = cache.NewStore(cache.Config{Driver: "memcached"}, nil)
	assert.ErrorContains(t, err, "unsupported cache driver")
}
