// Package sources fetches owned-game lists from each distribution platform.
//
// Every platform has one Source returning raw records in the platform's own
// shape; core/unify does all interpretation. Credentials are configured as
// already-issued tokens.
//
// # Platforms
//
//   - Steam: Web API IPlayerService/GetOwnedGames.
//   - Xbox: titlehub title history with an XBL3.0 authorization header.
//   - GOG: Galaxy library releases enriched from GamesDB.
//   - Epic: the legendary CLI ("legendary list --json").
//   - Amazon: the Amazon Games user library endpoint.
//
// # Failure Model
//
// FetchAll runs all enabled sources concurrently. A failing source is logged and
// contributes an empty list, so one broken platform never hides the others.
//
// # Usage
//
//	libs := sources.FetchAll(ctx, log, sources.New(cfg.Platforms)...)
//	games := unify.MergeLibraries(libs)
package sources
