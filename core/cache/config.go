package cache

import (
	"strings"
	"time"
)

const (
	DriverDatabase = "database"
	DriverRedis    = "redis"
)

// Config holds configuration for the library snapshot cache.
type Config struct {
	// Driver selects the backing store (database, redis).
	Driver string `mapstructure:"driver" default:"database"`
	// TTLHours is how long a snapshot stays fresh.
	TTLHours int `mapstructure:"ttl_hours" default:"24"`
	// RedisURL is used by the redis driver.
	RedisURL string `mapstructure:"redis_url" default:"redis://localhost:6379/0"`
	// KeyPrefix namespaces redis keys.
	KeyPrefix string `mapstructure:"key_prefix" default:"library:snapshot:"`
}

// TTL returns the snapshot lifetime. Non-positive values disable caching.
func (c Config) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 0
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// NormalizeDriver maps a configured driver name to its canonical form.
// An empty name selects the database driver.
func NormalizeDriver(driver string) string {
	driver = strings.ToLower(strings.TrimSpace(driver))
	if driver == "" {
		return DriverDatabase
	}
	return driver
}
