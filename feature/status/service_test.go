package status

import (
	"context"
	"errors"
	"testing"
	"time"

	"library-compare/core/cache"
	"library-compare/core/database"
	"library-compare/core/sources"
	"library-compare/core/storage/mocks"
	"library-compare/core/unify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type stubSource struct {
	platform unify.Platform
	enabled  bool
}

func (s stubSource) Platform() unify.Platform { return s.platform }
func (s stubSource) Enabled() bool            { return s.enabled }
func (s stubSource) FetchGames(context.Context) ([]unify.RawGame, error) {
	return nil, nil
}

func setupDB(t *testing.T, migrate bool) (*gorm.DB, *cache.Cache) {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	if !migrate {
		return db, nil
	}
	store, err := cache.NewSQLStore(db)
	require.NoError(t, err)
	return db, cache.New(store, 24*time.Hour)
}

func testSources() []sources.Source {
	return []sources.Source{
		stubSource{platform: unify.Steam, enabled: true},
		stubSource{platform: unify.Xbox},
		stubSource{platform: unify.Epic, enabled: true},
	}
}

func TestCheck_Healthy(t *testing.T) {
	ctx := context.Background()
	db, c := setupDB(t, true)
	require.NoError(t, c.SaveUnified(ctx, []unify.UnifiedGame{{ID: "steam-1", Name: "Portal"}}))

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "library").Return(true, nil)

	svc := NewService(client, "library", db, cache.DriverDatabase, c, testSources(), zap.NewNop())
	report := svc.Check(ctx)

	assert.Equal(t, StatusOK, report.Status)
	assert.Equal(t, StatusOK, report.Storage.Status)
	assert.True(t, report.Storage.Exists)

	assert.Equal(t, StatusOK, report.Database.Status)
	assert.Equal(t, "sqlite", report.Database.Driver)
	assert.Empty(t, report.Database.MissingColumns)

	assert.Equal(t, StatusOK, report.Cache.Status)
	assert.Equal(t, "24h0m0s", report.Cache.TTL)
	assert.Equal(t, 1, report.Cache.Entries["unified"].Count)

	assert.Equal(t, []unify.Platform{unify.Steam, unify.Epic}, report.Platforms.Configured)
	assert.Equal(t, []unify.Platform{unify.Xbox, unify.GOG, unify.Amazon}, report.Platforms.Missing)
}

func TestCheckSchema_MissingTable(t *testing.T) {
	db, _ := setupDB(t, false)
	svc := NewService(nil, "library", db, cache.DriverDatabase, nil, nil, zap.NewNop())

	report := svc.CheckSchema()
	assert.Equal(t, StatusError, report.Status)
	assert.Equal(t, cache.Columns(), report.MissingColumns)
}

func TestCheckSchema_Skipped(t *testing.T) {
	svc := NewService(nil, "library", nil, cache.DriverRedis, nil, nil, zap.NewNop())
	assert.Equal(t, StatusSkipped, svc.CheckSchema().Status)

	svc = NewService(nil, "library", nil, cache.DriverDatabase, nil, nil, zap.NewNop())
	report := svc.CheckSchema()
	assert.Equal(t, StatusError, report.Status)
	assert.NotEmpty(t, report.Error)
}

func TestCheckSchema_DefaultDriver(t *testing.T) {
	db, _ := setupDB(t, true)
	svc := NewService(nil, "library", db, "", nil, nil, zap.NewNop())

	report := svc.CheckSchema()
	assert.Equal(t, StatusOK, report.Status)
	assert.Empty(t, report.MissingColumns)
	assert.Equal(t, cache.DriverDatabase, svc.CheckCache(context.Background()).Driver)
}

func TestCheckStorage(t *testing.T) {
	tests := []struct {
		name   string
		exists bool
		err    error
		status string
	}{
		{"Exists", true, nil, StatusOK},
		{"Missing", false, nil, StatusError},
		{"Unreachable", false, errors.New("dial tcp: connection refused"), StatusError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.Client)
			client.On("BucketExists", mock.Anything, "library").Return(tt.exists, tt.err)
			svc := NewService(client, "library", nil, cache.DriverDatabase, nil, nil, zap.NewNop())

			report := svc.CheckStorage(context.Background())
			assert.Equal(t, tt.status, report.Status)
			if tt.status == StatusError {
				assert.NotEmpty(t, report.Error)
			}
		})
	}

	svc := NewService(nil, "library", nil, cache.DriverDatabase, nil, nil, zap.NewNop())
	assert.Equal(t, StatusSkipped, svc.CheckStorage(context.Background()).Status)
}

func TestCheck_Degraded(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "library").Return(false, errors.New("timeout"))
	svc := NewService(client, "library", nil, cache.DriverRedis, nil, nil, zap.NewNop())

	report := svc.Check(context.Background())
	assert.Equal(t, StatusDegraded, report.Status)
	assert.Equal(t, StatusSkipped, report.Cache.Status)
	assert.Len(t, report.Platforms.Missing, 5)
}
