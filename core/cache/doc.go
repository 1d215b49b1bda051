// Package cache keeps snapshots of fetched platform libraries and of the merged
// library so the upstream platforms are not queried on every request.
//
// A snapshot is a JSON payload stored under a scope: one per platform key
// ("steam", "xbox", ...) and "unified" for the merged list. Snapshots older than
// the TTL (24 hours by default) read as misses.
//
// # Stores
//
//   - SQLStore: the library_snapshots table through GORM (MySQL or SQLite).
//   - RedisStore: one string key per scope under a configurable prefix.
//
// # Usage
//
//	store, err := cache.NewStore(cfg.Cache, db)
//	c := cache.New(store, cfg.Cache.TTL())
//
//	if games, ok, err := c.LoadUnified(ctx); err == nil && ok {
//	    return games
//	}
package cache
