// Package library serves the unified game library.
//
// Raw lists are fetched from every configured platform, cached per platform,
// merged by normalized title and cached again as the unified list. Both
// snapshot kinds share the cache TTL; rebuilding reuses fresh platform
// snapshots and refetches the rest.
//
// # HTTP Endpoints
//
//   - GET /library : Unified library (supports ?refresh=true).
//   - GET /library/platforms : Platforms and whether each is configured.
//   - GET /library/platforms/:platform : Raw library of one platform (supports ?refresh=true).
//   - GET /library/cache : Cached snapshots with age and expiry.
//   - DELETE /library/cache : Drops every snapshot.
//   - DELETE /library/cache/:platform : Drops one platform and the unified list.
package library
