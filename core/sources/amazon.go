package sources

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"library-compare/core/unify"
)

// Amazon reads the Amazon Games library.
type Amazon struct {
	cfg       AmazonConfig
	client    *http.Client
	userAgent string
}

// NewAmazon creates an Amazon source.
func NewAmazon(cfg AmazonConfig, client *http.Client, userAgent string) *Amazon {
	return &Amazon{cfg: cfg, client: client, userAgent: userAgent}
}

func (s *Amazon) Platform() unify.Platform { return unify.Amazon }

func (s *Amazon) Enabled() bool {
	return s.cfg.AccessToken != ""
}

// FetchGames returns the games array. A 404 means the account has no library
// endpoint and yields an empty list.
func (s *Amazon) FetchGames(ctx context.Context) ([]unify.RawGame, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/api/v1/user/games"
	headers := map[string]string{
		"Authorization": "Bearer " + s.cfg.AccessToken,
		"User-Agent":    s.userAgent,
	}

	var body struct {
		Games []unify.RawGame `json:"games"`
	}
	if err := getJSON(ctx, s.client, endpoint, headers, &body); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return []unify.RawGame{}, nil
		}
		return nil, fmt.Errorf("amazon: %w", err)
	}
	return body.Games, nil
}
