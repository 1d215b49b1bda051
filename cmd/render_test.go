package cmd

import (
	"strings"
	"testing"

	"library-compare/core/cache"
	"library-compare/core/unify"

	"github.com/stretchr/testify/assert"
)

func TestRenderTable(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"1"}, {"2", "3", "ignored"}}, []columnAlignment{alignLeft, alignRight})
	assert.Contains(t, out, "A")
	assert.Contains(t, out, "3")
	assert.NotContains(t, out, "ignored")

	assert.Empty(t, renderTable(nil, nil, nil))
}

func TestRenderLibrary(t *testing.T) {
	games := unify.Merge(
		[]unify.RawGame{
			{"appid": float64(1), "name": "Portal", "playtime_forever": float64(90)},
		},
		nil,
		[]unify.RawGame{{"id": "9", "title": "Portal"}},
		[]unify.RawGame{{"catalogItemId": "e1", "title": "Fortnite"}},
		nil,
	)

	out := renderLibrary(games)
	assert.Contains(t, out, "Portal")
	assert.Contains(t, out, "steam, gog")
	assert.Contains(t, out, "1h 30m")
	assert.Contains(t, out, "Fortnite")
	assert.Contains(t, out, "2 games")
}

func TestRenderCacheStatus(t *testing.T) {
	out := renderCacheStatus(map[string]cache.Entry{
		"unified": {Count: 3, Age: "2 hours ago"},
		"steam":   {Count: 10, Age: "2 days ago", Expired: true},
	})
	assert.Contains(t, out, "2 hours ago")
	assert.Contains(t, out, "expired")
	assert.Contains(t, out, "fresh")
	assert.Less(t, strings.Index(out, "steam"), strings.Index(out, "unified"))
}
