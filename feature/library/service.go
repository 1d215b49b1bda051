package library

import (
	"context"
	"errors"
	"fmt"

	"library-compare/core/cache"
	"library-compare/core/sources"
	"library-compare/core/unify"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrPlatformDisabled is returned when a platform has no configured source.
var ErrPlatformDisabled = errors.New("platform not configured")

// PlatformInfo describes one store front and whether it is configured.
type PlatformInfo struct {
	Name    unify.Platform `json:"name"`
	Key     string         `json:"key"`
	Enabled bool           `json:"enabled"`
}

// Service builds the unified library from platform sources and keeps it cached.
type Service struct {
	sources []sources.Source
	cache   *cache.Cache
	logger  *zap.Logger
	sf      singleflight.Group
}

// NewService creates a new library service.
func NewService(srcs []sources.Source, c *cache.Cache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sources: srcs,
		cache:   c,
		logger:  logger,
	}
}

// Platforms lists every platform in processing order with its configuration state.
func (s *Service) Platforms() []PlatformInfo {
	out := make([]PlatformInfo, 0, len(unify.Platforms()))
	for _, p := range unify.Platforms() {
		src, ok := sources.Find(s.sources, p)
		out = append(out, PlatformInfo{Name: p, Key: p.Key(), Enabled: ok && src.Enabled()})
	}
	return out
}

// Library returns the unified library. A fresh cached copy is returned unless
// refresh is set; otherwise the platforms are fetched and merged again.
// Concurrent rebuilds share one run.
func (s *Service) Library(ctx context.Context, refresh bool) ([]unify.UnifiedGame, error) {
	if !refresh {
		games, ok, err := s.cache.LoadUnified(ctx)
		if err != nil {
			s.logger.Warn("Failed to read unified cache", zap.Error(err))
		} else if ok {
			return games, nil
		}
	}

	key := "library"
	if refresh {
		key = "library:refresh"
	}
	v, err, shared := s.sf.Do(key, func() (any, error) {
		// Detach from the first caller so its cancellation does not fail the others.
		return s.rebuild(context.WithoutCancel(ctx), refresh)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		s.logger.Debug("Joined in-flight library rebuild")
	}
	return v.([]unify.UnifiedGame), nil
}

func (s *Service) rebuild(ctx context.Context, refresh bool) ([]unify.UnifiedGame, error) {
	libs := make(unify.Libraries)
	var stale []sources.Source

	for _, src := range s.sources {
		if !src.Enabled() {
			continue
		}
		if !refresh {
			games, ok, err := s.cache.LoadPlatform(ctx, src.Platform())
			if err != nil {
				s.logger.Warn("Failed to read platform cache", zap.String("platform", src.Platform().String()), zap.Error(err))
			} else if ok {
				libs[src.Platform()] = games
				continue
			}
		}
		stale = append(stale, src)
	}

	fetched := sources.FetchAll(ctx, s.logger, stale...)
	for p, games := range fetched {
		libs[p] = games
		// Empty lists are usually failed fetches, so they are retried next time.
		if len(games) == 0 {
			continue
		}
		if err := s.cache.SavePlatform(ctx, p, games); err != nil {
			s.logger.Warn("Failed to cache platform library", zap.String("platform", p.String()), zap.Error(err))
		}
	}

	unified := unify.MergeLibraries(libs)
	if err := s.cache.SaveUnified(ctx, unified); err != nil {
		s.logger.Warn("Failed to cache unified library", zap.Error(err))
	}

	s.logger.Info("Library rebuilt",
		zap.Int("raw", libs.Count()),
		zap.Int("unified", len(unified)),
		zap.Int("fetched", len(stale)),
	)
	return unified, nil
}

// PlatformGames returns the raw list of a single platform.
func (s *Service) PlatformGames(ctx context.Context, p unify.Platform, refresh bool) ([]unify.RawGame, error) {
	src, ok := sources.Find(s.sources, p)
	if !ok || !src.Enabled() {
		return nil, fmt.Errorf("%w: %s", ErrPlatformDisabled, p)
	}

	if !refresh {
		games, ok, err := s.cache.LoadPlatform(ctx, p)
		if err != nil {
			s.logger.Warn("Failed to read platform cache", zap.String("platform", p.String()), zap.Error(err))
		} else if ok {
			return games, nil
		}
	}

	games, err := src.FetchGames(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s library: %w", p, err)
	}
	if games == nil {
		games = []unify.RawGame{}
	}
	if err := s.cache.SavePlatform(ctx, p, games); err != nil {
		s.logger.Warn("Failed to cache platform library", zap.String("platform", p.String()), zap.Error(err))
	}
	return games, nil
}

// CacheStatus reports every cached scope.
func (s *Service) CacheStatus(ctx context.Context) (map[string]cache.Entry, error) {
	return s.cache.Status(ctx)
}

// ClearCache drops the snapshot of p, or every snapshot when p is nil.
func (s *Service) ClearCache(ctx context.Context, p *unify.Platform) error {
	if p == nil {
		s.logger.Info("Clearing library cache")
		return s.cache.Clear(ctx)
	}
	s.logger.Info("Clearing platform cache", zap.String("platform", p.String()))
	return s.cache.ClearPlatform(ctx, *p)
}
