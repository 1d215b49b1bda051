// Package config loads the application configuration.
//
// Values come from the environment, optionally seeded from a .env file.
// Keys follow the struct nesting with dots replaced by underscores:
//
//	SERVER_PORT=8080
//	PLATFORMS_STEAM_API_KEY=...
//	PLATFORMS_STEAM_STEAM_ID=7656119...
//	PLATFORMS_EPIC_ENABLED=true
//	CACHE_DRIVER=redis
//	CACHE_TTL_HOURS=24
//
// Every field carries its default in a `default` struct tag.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
