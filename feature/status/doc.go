// Package status reports the health of the service's dependencies.
//
// # Checks Provided
//
//   - Storage: the icon bucket exists and is reachable.
//   - Database: the library_snapshots table has every expected column (database cache driver only).
//   - Cache: cached snapshots with age and expiry.
//   - Platforms: which store fronts have credentials.
//
// # HTTP Endpoints
//
//   - GET /status : Runs all checks.
//   - GET /status/platforms : Configured and missing platforms.
package status
