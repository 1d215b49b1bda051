package sources

import (
	"context"
	"net/http"
	"sync"
	"time"

	"library-compare/core/unify"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source fetches one platform's owned games in that platform's native shape.
type Source interface {
	Platform() unify.Platform
	// Enabled reports whether the source has the credentials it needs.
	Enabled() bool
	FetchGames(ctx context.Context) ([]unify.RawGame, error)
}

// New builds one source per platform from cfg, in processing order.
func New(cfg Config) []Source {
	client := &http.Client{Timeout: cfg.Timeout()}
	return []Source{
		NewSteam(cfg.Steam, client, cfg.UserAgent),
		NewXbox(cfg.Xbox, client, cfg.UserAgent),
		NewGOG(cfg.GOG, client, cfg.UserAgent),
		NewEpic(cfg.Epic, nil),
		NewAmazon(cfg.Amazon, client, cfg.UserAgent),
	}
}

// Find returns the source for platform p.
func Find(sources []Source, p unify.Platform) (Source, bool) {
	for _, s := range sources {
		if s.Platform() == p {
			return s, true
		}
	}
	return nil, false
}

// Enabled returns the platforms of the sources that are configured.
func Enabled(sources []Source) []unify.Platform {
	var out []unify.Platform
	for _, s := range sources {
		if s.Enabled() {
			out = append(out, s.Platform())
		}
	}
	return out
}

// FetchAll fetches every enabled source concurrently. A failing or disabled
// source contributes an empty list; FetchAll itself never fails.
func FetchAll(ctx context.Context, logger *zap.Logger, sources ...Source) unify.Libraries {
	libs := make(unify.Libraries, len(sources))
	for _, src := range sources {
		libs[src.Platform()] = []unify.RawGame{}
	}

	var mu sync.Mutex
	var g errgroup.Group
	for _, src := range sources {
		src := src
		p := src.Platform()
		if !src.Enabled() {
			logger.Debug("Source disabled", zap.String("platform", p.String()))
			continue
		}

		g.Go(func() error {
			start := time.Now()
			games, err := src.FetchGames(ctx)
			if err != nil {
				logger.Warn("Failed to fetch platform games",
					zap.String("platform", p.String()),
					zap.Error(err))
				return nil
			}
			logger.Info("Fetched platform games",
				zap.String("platform", p.String()),
				zap.Int("count", len(games)),
				zap.Duration("took", time.Since(start)))

			if games == nil {
				games = []unify.RawGame{}
			}
			mu.Lock()
			libs[p] = games
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return libs
}
