package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"library-compare/core/unify"
)

// Xbox reads the title history of an Xbox Live account from titlehub.
type Xbox struct {
	cfg       XboxConfig
	client    *http.Client
	userAgent string
}

// NewXbox creates an Xbox source.
func NewXbox(cfg XboxConfig, client *http.Client, userAgent string) *Xbox {
	return &Xbox{cfg: cfg, client: client, userAgent: userAgent}
}

func (s *Xbox) Platform() unify.Platform { return unify.Xbox }

func (s *Xbox) Enabled() bool {
	return s.cfg.XUID != "" && s.cfg.UserHash != "" && s.cfg.XSTSToken != ""
}

// FetchGames returns the titles array of the decorated title history.
func (s *Xbox) FetchGames(ctx context.Context) ([]unify.RawGame, error) {
	if !s.Enabled() {
		return nil, ErrNotConfigured
	}

	endpoint := fmt.Sprintf("%s/users/xuid(%s)/titles/titlehistory/decoration/detail",
		strings.TrimRight(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.XUID))
	headers := map[string]string{
		"Authorization":          fmt.Sprintf("XBL3.0 x=%s;%s", s.cfg.UserHash, s.cfg.XSTSToken),
		"X-XBL-Contract-Version": "2",
		"Accept-Language":        "en-US",
		"User-Agent":             s.userAgent,
	}

	var body struct {
		Titles []unify.RawGame `json:"titles"`
	}
	if err := getJSON(ctx, s.client, endpoint, headers, &body); err != nil {
		return nil, fmt.Errorf("xbox: %w", err)
	}
	return body.Titles, nil
}
