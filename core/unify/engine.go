package unify

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Merge unifies the raw libraries of every platform into one list, deduplicated
// by normalized title and sorted by display name. Any argument may be nil.
func Merge(steam, xbox, gog, epic, amazon []RawGame) []UnifiedGame {
	return MergeLibraries(Libraries{
		Steam:  steam,
		Xbox:   xbox,
		GOG:    gog,
		Epic:   epic,
		Amazon: amazon,
	})
}

// MergeLibraries is Merge over a Libraries map. Platforms are always consumed
// in the order returned by Platforms; keys outside that set are ignored.
func MergeLibraries(libs Libraries) []UnifiedGame {
	m := newMerger()
	for _, p := range Platforms() {
		for _, raw := range libs[p] {
			m.add(p, raw)
		}
	}
	return m.result()
}

// merger is the working arena of a single merge call.
type merger struct {
	byKey      map[string]*UnifiedGame
	order      []*UnifiedGame
	missingIDs int
}

func newMerger() *merger {
	return &merger{byKey: make(map[string]*UnifiedGame)}
}

func (m *merger) add(p Platform, raw RawGame) {
	f, ok := extract(p, raw)
	if !ok {
		return
	}

	title := TitleOf(raw).Resolve()
	key := Normalize(title)

	if game, found := m.byKey[key]; found {
		m.absorb(game, p, f)
		return
	}

	game := m.create(p, CleanTitle(title), f)
	m.byKey[key] = game
	m.order = append(m.order, game)
}

func (m *merger) create(p Platform, name string, f fields) *UnifiedGame {
	id := f.id
	if id == "" {
		m.missingIDs++
		id = "unknown-" + strconv.Itoa(m.missingIDs)
	}

	game := &UnifiedGame{
		ID:        p.Key() + "-" + id,
		Name:      name,
		Platforms: []PlatformEntry{entryFor(p, f)},
	}
	if f.id != "" {
		game.AppID = map[string]string{p.Key(): f.id}
	}
	if f.playtimeKey() {
		game.Playtime = map[string]int{p.Key(): *f.playtime}
	}
	if !f.images.IsZero() {
		images := f.images
		game.Images = &images
	}
	if len(f.genres) > 0 {
		game.Genres = f.genres
	}
	return game
}

func (m *merger) absorb(game *UnifiedGame, p Platform, f fields) {
	game.Platforms = append(game.Platforms, entryFor(p, f))

	if f.id != "" {
		if game.AppID == nil {
			game.AppID = make(map[string]string)
		}
		game.AppID[p.Key()] = f.id
	}

	if f.playtimeKey() {
		if game.Playtime == nil {
			game.Playtime = make(map[string]int)
		}
		game.Playtime[p.Key()] = *f.playtime
	}

	if f.images.Header != "" {
		if game.Images == nil {
			game.Images = &Images{}
		}
		if game.Images.Header == "" {
			game.Images.Header = f.images.Header
		}
	}

	if len(game.Genres) == 0 && len(f.genres) > 0 {
		game.Genres = f.genres
	}
}

// result returns the merged games sorted by display name. Ties keep creation order.
func (m *merger) result() []UnifiedGame {
	out := make([]UnifiedGame, len(m.order))
	for i, game := range m.order {
		out[i] = *game
	}

	// Collators are not safe for concurrent use, so each call gets its own.
	c := collate.New(language.English)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func entryFor(p Platform, f fields) PlatformEntry {
	entry := PlatformEntry{Name: p, Owned: true}
	if f.playtime != nil {
		minutes := *f.playtime
		entry.Playtime = &minutes
	}
	return entry
}
