package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"library-compare/core/loader"
	"library-compare/core/logger"
	"library-compare/core/middleware/auth"
	"library-compare/core/middleware/rayid"
	"library-compare/core/storage"
	"library-compare/feature/icons"
	"library-compare/feature/library"
	"library-compare/feature/status"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Library Compare API
// @version 1.0
// @description Unified game library across Steam, Xbox, GOG, Epic Games and Amazon Games.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the library server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := bootstrap()
		if err != nil {
			log.Fatalf("Failed to start: %v", err)
		}
		logg := rt.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		logg.Info("Platforms configured", zap.Any("platforms", enabledKeys(rt)))

		// Storage is optional; without it icons are disabled.
		var store storage.Client
		if client, err := storage.NewClient(rt.cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable, icons disabled", zap.Error(err))
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := storage.EnsureBucket(ctx, client, rt.cfg.Storage.Bucket, rt.cfg.Storage.Region); err != nil {
				logg.Warn("Icon bucket not ready", zap.Error(err))
			}
			cancel()
			store = client
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			ReadTimeout:           rt.cfg.Server.ReadTimeout(),
			WriteTimeout:          rt.cfg.Server.WriteTimeout(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(library.NewFeature(rt.sources, rt.cache, logg))
		mgr.Register(icons.NewFeature(store, rt.cfg.Storage.Bucket, nil, logg))
		mgr.Register(status.NewFeature(store, rt.cfg.Storage.Bucket, rt.db, rt.cfg.Cache.Driver, rt.cache, rt.sources, logg))

		// RayID first so every log line carries it.
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			l.Info("Request",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			)
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: rt.cfg.Server.ApiKey, Skip: []string{"/swagger"}}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("addr", rt.cfg.Server.Addr()))
			if err := app.Listen(rt.cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	},
}

func enabledKeys(rt *deps) []string {
	var keys []string
	for _, s := range rt.sources {
		if s.Enabled() {
			keys = append(keys, s.Platform().Key())
		}
	}
	return keys
}

func init() {
	RootCmd.AddCommand(startCmd)
}
