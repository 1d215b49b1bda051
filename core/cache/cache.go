package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-compare/core/unify"

	"github.com/dustin/go-humanize"
	"github.com/goccy/go-json"
)

// ScopeUnified is the scope of the merged library.
const ScopeUnified = "unified"

// PlatformScope returns the scope of a platform's raw list ("steam", "epic", ...).
func PlatformScope(p unify.Platform) string {
	return p.Key()
}

// Entry describes one cached scope.
type Entry struct {
	Count     int       `json:"count"`
	Age       string    `json:"age"`
	Expired   bool      `json:"expired"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Cache stores raw platform lists and the unified list with a shared TTL.
// Expired snapshots read as misses but are kept until overwritten or cleared.
type Cache struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// New returns a cache over store.
func New(store Store, ttl time.Duration) *Cache {
	return &Cache{store: store, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

// TTL returns the snapshot lifetime.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

// SavePlatform stores the raw list of platform p.
func (c *Cache) SavePlatform(ctx context.Context, p unify.Platform, games []unify.RawGame) error {
	return c.save(ctx, PlatformScope(p), games, len(games))
}

// LoadPlatform returns the raw list of platform p when a fresh snapshot exists.
func (c *Cache) LoadPlatform(ctx context.Context, p unify.Platform) ([]unify.RawGame, bool, error) {
	var games []unify.RawGame
	ok, err := c.load(ctx, PlatformScope(p), &games)
	return games, ok, err
}

// SaveUnified stores the merged library.
func (c *Cache) SaveUnified(ctx context.Context, games []unify.UnifiedGame) error {
	return c.save(ctx, ScopeUnified, games, len(games))
}

// LoadUnified returns the merged library when a fresh snapshot exists.
func (c *Cache) LoadUnified(ctx context.Context) ([]unify.UnifiedGame, bool, error) {
	var games []unify.UnifiedGame
	ok, err := c.load(ctx, ScopeUnified, &games)
	return games, ok, err
}

// Status reports every cached scope with its size and humanized age.
func (c *Cache) Status(ctx context.Context) (map[string]Entry, error) {
	snaps, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}

	now := c.now()
	status := make(map[string]Entry, len(snaps))
	for _, snap := range snaps {
		status[snap.Scope] = Entry{
			Count:     snap.Count,
			Age:       humanize.RelTime(snap.FetchedAt, now, "ago", "from now"),
			Expired:   snap.Expired(c.ttl, now),
			FetchedAt: snap.FetchedAt,
		}
	}
	return status, nil
}

// Clear removes every snapshot.
func (c *Cache) Clear(ctx context.Context) error {
	return c.store.DeleteAll(ctx)
}

// ClearPlatform removes the raw list of p and the unified list built from it.
func (c *Cache) ClearPlatform(ctx context.Context, p unify.Platform) error {
	if err := c.store.Delete(ctx, PlatformScope(p)); err != nil {
		return err
	}
	return c.store.Delete(ctx, ScopeUnified)
}

func (c *Cache) save(ctx context.Context, scope string, v any, count int) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s snapshot: %w", scope, err)
	}
	return c.store.Put(ctx, Snapshot{
		Scope:     scope,
		Payload:   payload,
		Count:     count,
		FetchedAt: c.now(),
	})
}

func (c *Cache) load(ctx context.Context, scope string, out any) (bool, error) {
	snap, err := c.store.Get(ctx, scope)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if snap.Expired(c.ttl, c.now()) {
		return false, nil
	}
	if err := json.Unmarshal(snap.Payload, out); err != nil {
		return false, fmt.Errorf("failed to decode %s snapshot: %w", scope, err)
	}
	return true, nil
}
