package sources_test

import (
	"context"
	"errors"
	"testing"

	"library-compare/core/sources"
	"library-compare/core/unify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legendaryList = `[
  {"app_name":"Fortnite","app_title":"Fortnite","metadata":{
    "developer":"Epic Games",
    "categories":[{"path":"games"},{"path":"applications"}],
    "keyImages":[{"type":"DieselGameBoxTall","url":"https://epic/fn-tall.jpg"}]
  }},
  {"app_name":"Sugar","metadata":null}
]`

func TestParseLegendaryList(t *testing.T) {
	games, err := sources.ParseLegendaryList([]byte(legendaryList))
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "Fortnite", games[0]["catalogItemId"])
	assert.Equal(t, "Fortnite", games[0]["title"])
	assert.Equal(t, "Epic Games", games[0]["developer"])
	assert.NotNil(t, games[0]["categories"])

	assert.Equal(t, "Sugar", games[1]["title"])
	assert.NotContains(t, games[1], "categories")

	merged := unify.Merge(nil, nil, nil, games, nil)
	require.Len(t, merged, 2)
	assert.Equal(t, []string{"games", "applications"}, merged[0].Genres)
	assert.Equal(t, "https://epic/fn-tall.jpg", merged[0].Images.Header)
	assert.Equal(t, "epic-Fortnite", merged[0].ID)
}

func TestParseLegendaryList_Edges(t *testing.T) {
	games, err := sources.ParseLegendaryList([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, games)

	_, err = sources.ParseLegendaryList([]byte("not json"))
	assert.Error(t, err)
}

func TestEpic_FetchGames(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(legendaryList), nil
	}

	src := sources.NewEpic(sources.EpicConfig{Enabled: true, LegendaryPath: "/opt/legendary"}, run)
	games, err := src.FetchGames(context.Background())
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Equal(t, "/opt/legendary", gotName)
	assert.Equal(t, []string{"list", "--json"}, gotArgs)
}

func TestEpic_Errors(t *testing.T) {
	src := sources.NewEpic(sources.EpicConfig{LegendaryPath: "legendary"}, nil)
	assert.False(t, src.Enabled())
	_, err := src.FetchGames(context.Background())
	assert.ErrorIs(t, err, sources.ErrNotConfigured)

	failing := sources.NewEpic(sources.EpicConfig{Enabled: true, LegendaryPath: "legendary"}, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("not logged in")
	})
	_, err = failing.FetchGames(context.Background())
	assert.ErrorContains(t, err, "not logged in")
}
