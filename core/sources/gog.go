package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"library-compare/core/unify"
	"library-compare/core/utils"

	"golang.org/x/sync/errgroup"
)

// gogPlatformID marks library entries that belong to GOG itself rather than
// to a platform linked through Galaxy.
const gogPlatformID = "gog"

// GOG reads the GOG Galaxy library and enriches each entry from GamesDB.
type GOG struct {
	cfg       GOGConfig
	client    *http.Client
	userAgent string
}

// NewGOG creates a GOG source.
func NewGOG(cfg GOGConfig, client *http.Client, userAgent string) *GOG {
	return &GOG{cfg: cfg, client: client, userAgent: userAgent}
}

func (s *GOG) Platform() unify.Platform { return unify.GOG }

func (s *GOG) Enabled() bool {
	return s.cfg.UserID != "" && s.cfg.AccessToken != ""
}

// FetchGames lists the user's releases, keeps the GOG ones and looks up each in
// GamesDB. Releases unknown to GamesDB are skipped; other lookup failures keep
// the release under a placeholder title.
func (s *GOG) FetchGames(ctx context.Context) ([]unify.RawGame, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/users/%s/releases", strings.TrimRight(s.cfg.LibraryURL, "/"), url.PathEscape(s.cfg.UserID))
	var body struct {
		Items []unify.RawGame `json:"items"`
	}
	if err := getJSON(ctx, s.client, endpoint, s.headers(""), &body); err != nil {
		return nil, fmt.Errorf("gog: %w", err)
	}

	var releases []unify.RawGame
	for _, item := range body.Items {
		if utils.ToString(item["platform_id"]) == gogPlatformID {
			releases = append(releases, item)
		}
	}

	results := make([]unify.RawGame, len(releases))
	var g errgroup.Group
	if s.cfg.DetailConcurrency > 0 {
		g.SetLimit(s.cfg.DetailConcurrency)
	}
	for i, release := range releases {
		i, release := i, release
		g.Go(func() error {
			results[i] = s.withDetails(ctx, release)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("gog: %w", err)
	}

	games := make([]unify.RawGame, 0, len(results))
	for _, game := range results {
		if game != nil {
			games = append(games, game)
		}
	}
	return games, nil
}

// withDetails returns the release merged with its GamesDB record, nil when
// GamesDB does not know it, or a placeholder when the lookup failed.
func (s *GOG) withDetails(ctx context.Context, release unify.RawGame) unify.RawGame {
	externalID := utils.ToString(release["external_id"])
	base := unify.RawGame{
		"id":          externalID,
		"external_id": externalID,
		"platform":    unify.GOG.String(),
		"owned_since": release["owned_since"],
	}

	details, err := s.details(ctx, externalID, utils.ToString(release["certificate"]))
	if err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil
		}
		base["title"] = "GOG Game " + externalID
		return base
	}
	if !utils.Truthy(details["title"]) {
		return nil
	}

	game := make(unify.RawGame, len(details)+len(base))
	for k, v := range details {
		game[k] = v
	}
	// Identity stays the library external id; GamesDB ids are internal.
	for k, v := range base {
		game[k] = v
	}
	game["gamesdb_id"] = details["id"]
	if _, ok := game["genres"]; !ok {
		if inner, ok := utils.ToMap(details["game"]); ok && inner["genres"] != nil {
			game["genres"] = inner["genres"]
		}
	}
	return game
}

func (s *GOG) details(ctx context.Context, externalID, certificate string) (unify.RawGame, error) {
	endpoint := fmt.Sprintf("%s/platforms/gog/external_releases/%s", strings.TrimRight(s.cfg.GamesDBURL, "/"), url.PathEscape(externalID))
	var details unify.RawGame
	if err := getJSON(ctx, s.client, endpoint, s.headers(certificate), &details); err != nil {
		return nil, err
	}
	return details, nil
}

func (s *GOG) headers(certificate string) map[string]string {
	h := map[string]string{
		"Authorization": "Bearer " + s.cfg.AccessToken,
		"User-Agent":    s.userAgent,
	}
	if certificate != "" {
		h["X-GOG-Library-Cert"] = certificate
	}
	return h
}
