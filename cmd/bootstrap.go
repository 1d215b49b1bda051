package cmd

import (
	"fmt"

	"library-compare/core/cache"
	"library-compare/core/config"
	"library-compare/core/database"
	"library-compare/core/logger"
	"library-compare/core/sources"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// deps is what every command needs after loading configuration.
type deps struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	cache   *cache.Cache
	sources []sources.Source
}

func bootstrap() (*deps, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &deps{cfg: cfg, logger: logg, sources: sources.New(cfg.Platforms)}

	// The database is only required when snapshots live there.
	if cache.NormalizeDriver(cfg.Cache.Driver) != cache.DriverRedis {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database connection required: %w", err)
		}
		rt.db = db
	}

	store, err := cache.NewStore(cfg.Cache, rt.db)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	rt.cache = cache.New(store, cfg.Cache.TTL())

	return rt, nil
}
