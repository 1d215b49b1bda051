package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ErrNotFound is returned by a Store when a scope holds no snapshot.
var ErrNotFound = errors.New("snapshot not found")

// Snapshot is one cached payload, either a platform's raw list or the unified list.
type Snapshot struct {
	Scope     string
	Payload   []byte
	Count     int
	FetchedAt time.Time
}

// Expired reports whether the snapshot is older than ttl at now.
// A non-positive ttl expires everything.
func (s Snapshot) Expired(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(s.FetchedAt) > ttl
}

// Store persists snapshots by scope.
type Store interface {
	Put(ctx context.Context, snap Snapshot) error
	// Get returns ErrNotFound when scope is empty.
	Get(ctx context.Context, scope string) (Snapshot, error)
	List(ctx context.Context) ([]Snapshot, error)
	Delete(ctx context.Context, scope string) error
	DeleteAll(ctx context.Context) error
}

// NewStore builds the store selected by cfg.Driver. The database driver needs db.
func NewStore(cfg Config, db *gorm.DB) (Store, error) {
	switch NormalizeDriver(cfg.Driver) {
	case DriverDatabase:
		if db == nil {
			return nil, errors.New("cache driver database requires a database connection")
		}
		return NewSQLStore(db)
	case DriverRedis:
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return NewRedisStore(redis.NewClient(opt), cfg.KeyPrefix), nil
	default:
		return nil, fmt.Errorf("unsupported cache driver %q", cfg.Driver)
	}
}
