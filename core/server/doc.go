// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// settings it reads: listen port, API key and request timeouts.
//
// # Usage
//
// This package is embedded by core/config and read by the start command:
//
//	app := fiber.New(fiber.Config{
//	    ReadTimeout:  cfg.Server.ReadTimeout(),
//	    WriteTimeout: cfg.Server.WriteTimeout(),
//	})
//	app.Listen(cfg.Server.Addr())
package server
