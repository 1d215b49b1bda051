package sources

import (
	"time"
)

// Config holds credentials and endpoints for every platform source.
// Tokens are supplied already issued; no login flow runs here.
type Config struct {
	// TimeoutSeconds bounds each upstream HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// UserAgent is sent with every upstream request.
	UserAgent string `mapstructure:"user_agent" default:"library-compare/1.0"`

	Steam  SteamConfig  `mapstructure:"steam"`
	Xbox   XboxConfig   `mapstructure:"xbox"`
	GOG    GOGConfig    `mapstructure:"gog"`
	Epic   EpicConfig   `mapstructure:"epic"`
	Amazon AmazonConfig `mapstructure:"amazon"`
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SteamConfig configures the Steam Web API source.
type SteamConfig struct {
	APIKey  string `mapstructure:"api_key" default:""`
	SteamID string `mapstructure:"steam_id" default:""`
	BaseURL string `mapstructure:"base_url" default:"https://api.steampowered.com"`
}

// XboxConfig configures the Xbox Live titlehub source.
type XboxConfig struct {
	XUID      string `mapstructure:"xuid" default:""`
	UserHash  string `mapstructure:"user_hash" default:""`
	XSTSToken string `mapstructure:"xsts_token" default:""`
	BaseURL   string `mapstructure:"base_url" default:"https://titlehub.xboxlive.com"`
}

// GOGConfig configures the GOG Galaxy library source.
type GOGConfig struct {
	UserID      string `mapstructure:"user_id" default:""`
	AccessToken string `mapstructure:"access_token" default:""`
	LibraryURL  string `mapstructure:"library_url" default:"https://galaxy-library.gog.com"`
	GamesDBURL  string `mapstructure:"gamesdb_url" default:"https://gamesdb.gog.com"`
	// DetailConcurrency limits parallel GamesDB detail requests.
	DetailConcurrency int `mapstructure:"detail_concurrency" default:"4"`
}

// EpicConfig configures the legendary-backed Epic Games source.
type EpicConfig struct {
	Enabled bool `mapstructure:"enabled" default:"false"`
	// LegendaryPath is the legendary binary, resolved through PATH when not absolute.
	LegendaryPath string `mapstructure:"legendary_path" default:"legendary"`
}

// AmazonConfig configures the Amazon Games source.
type AmazonConfig struct {
	AccessToken string `mapstructure:"access_token" default:""`
	BaseURL     string `mapstructure:"base_url" default:"https://gaming.amazon.com"`
}
