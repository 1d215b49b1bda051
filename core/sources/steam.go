package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"library-compare/core/unify"
)

// Steam reads owned games from the Steam Web API.
type Steam struct {
	cfg       SteamConfig
	client    *http.Client
	userAgent string
}

// NewSteam creates a Steam source.
func NewSteam(cfg SteamConfig, client *http.Client, userAgent string) *Steam {
	return &Steam{cfg: cfg, client: client, userAgent: userAgent}
}

func (s *Steam) Platform() unify.Platform { return unify.Steam }

func (s *Steam) Enabled() bool {
	return s.cfg.APIKey != "" && s.cfg.SteamID != ""
}

// FetchGames calls IPlayerService/GetOwnedGames with app info and free games included.
func (s *Steam) FetchGames(ctx context.Context) ([]unify.RawGame, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	q := url.Values{}
	q.Set("key", s.cfg.APIKey)
	q.Set("steamid", s.cfg.SteamID)
	q.Set("format", "json")
	q.Set("include_appinfo", "true")
	q.Set("include_played_free_games", "true")
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/IPlayerService/GetOwnedGames/v0001/?" + q.Encode()

	var body struct {
		Response struct {
			GameCount int             `json:"game_count"`
			Games     []unify.RawGame `json:"games"`
		} `json:"response"`
	}
	if err := getJSON(ctx, s.client, endpoint, map[string]string{"User-Agent": s.userAgent}, &body); err != nil {
		return nil, fmt.Errorf("steam: %w", err)
	}
	return body.Response.Games, nil
}
