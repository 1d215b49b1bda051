package unify

// RawGame is a single title as returned by a platform source, in that
// platform's native shape (a decoded JSON object).
type RawGame map[string]any

// Libraries holds raw game lists keyed by platform.
type Libraries map[Platform][]RawGame

// Count returns the total number of raw records across all platforms.
func (l Libraries) Count() int {
	n := 0
	for _, games := range l {
		n += len(games)
	}
	return n
}

// PlatformEntry records that a unified game is owned on a platform.
type PlatformEntry struct {
	Name     Platform `json:"name"`
	Owned    bool     `json:"owned"`
	Playtime *int     `json:"playtime,omitempty"`
}

// Images holds artwork URLs for a unified game.
type Images struct {
	Header     string `json:"header,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Background string `json:"background,omitempty"`
}

// IsZero reports whether no image URL is set.
func (i Images) IsZero() bool {
	return i.Header == "" && i.Icon == "" && i.Background == ""
}

// UnifiedGame is one deduplicated title merged across platforms.
type UnifiedGame struct {
	// ID is "<platformKey>-<nativeId>" of the record that created the entry.
	// It is only stable within a single merge call.
	ID string `json:"id"`

	// Name is the cleaned display title.
	Name string `json:"name"`

	// Platforms lists one entry per contributing raw record, in processing order.
	Platforms []PlatformEntry `json:"platforms"`

	// AppID maps platform key to the platform's native identifier.
	AppID map[string]string `json:"appId,omitempty"`

	// Playtime maps platform key to minutes played, only for platforms that reported it.
	Playtime map[string]int `json:"playtime,omitempty"`

	Images *Images  `json:"images,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// Has reports whether the game is owned on platform p.
func (g UnifiedGame) Has(p Platform) bool {
	for _, entry := range g.Platforms {
		if entry.Name == p {
			return true
		}
	}
	return false
}

// TotalPlaytime sums playtime across all platforms, in minutes.
func (g UnifiedGame) TotalPlaytime() int {
	total := 0
	for _, minutes := range g.Playtime {
		total += minutes
	}
	return total
}
