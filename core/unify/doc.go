// Package unify merges the game libraries of several distribution platforms
// into one deduplicated list.
//
// Records from Steam, Xbox, GOG, Epic Games and Amazon arrive in their native
// shapes (RawGame). Each record's title is resolved (plain string or locale map),
// normalized into an identity key, and merged into the UnifiedGame that owns
// that key. Two records are the same game iff their normalized titles are equal;
// identifiers are never cross-referenced.
//
// # Processing Order
//
// Platforms are consumed Steam, Xbox, GOG, Epic, Amazon. The first record seen
// for a key creates the entry and fixes its id and display name; later records
// append platform entries and fill in identifiers, playtime, header art and genres.
//
// # Usage Example
//
//	games := unify.Merge(steamGames, xboxGames, gogGames, nil, nil)
//	for _, g := range games {
//	    fmt.Println(g.Name, unify.FormatPlaytime(g.TotalPlaytime()))
//	}
//
// The engine holds no state between calls. Callers cache results themselves
// (see core/cache).
package unify
