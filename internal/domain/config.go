package domain

import "time"

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Upstream UpstreamConfig `mapstructure:"upstream"`
	Redirect RedirectConfig `mapstructure:"redirect"`
	Journal  JournalConfig  `mapstructure:"journal"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
	APIKey      string `mapstructure:"api_key"` // empty disables the download key check
}

// UpstreamConfig contains the third-party services queried for metadata and media
type UpstreamConfig struct {
	OEmbedURL       string        `mapstructure:"oembed_url"`
	TikTokAPIURL    string        `mapstructure:"tiktok_api_url"`
	TikTokReferer   string        `mapstructure:"tiktok_referer"`
	UserAgent       string        `mapstructure:"user_agent"`
	MetadataTimeout time.Duration `mapstructure:"metadata_timeout"`
	TikTokTimeout   time.Duration `mapstructure:"tiktok_timeout"`
	StreamTimeout   time.Duration `mapstructure:"stream_timeout"`
}

// RedirectConfig contains the loader pages YouTube and Facebook downloads are sent to.
// {url} is replaced with the escaped video URL and {format} with the requested format.
type RedirectConfig struct {
	YouTubeTemplate  string `mapstructure:"youtube_template"`
	FacebookTemplate string `mapstructure:"facebook_template"`
}

// JournalConfig contains the optional lookup journal configuration
type JournalConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DatabasePath string `mapstructure:"database_path"`
}

// LoggingConfig contains logging-related configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, or file path
}

// DefaultBrowserUserAgent is sent to upstreams that reject non-browser clients
const DefaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        3000,
			Environment: "development",
			APIKey:      "",
		},
		Upstream: UpstreamConfig{
			OEmbedURL:       "https://noembed.com/embed",
			TikTokAPIURL:    "https://www.tikwm.com/api/",
			TikTokReferer:   "https://www.tiktok.com/",
			UserAgent:       DefaultBrowserUserAgent,
			MetadataTimeout: 8 * time.Second,
			TikTokTimeout:   10 * time.Second,
			StreamTimeout:   30 * time.Second,
		},
		Redirect: RedirectConfig{
			YouTubeTemplate:  "https://loader.to/api/button/?url={url}&f={format}",
			FacebookTemplate: "https://fdown.net/download.php?URLz={url}",
		},
		Journal: JournalConfig{
			Enabled:      false,
			DatabasePath: "$HOME/.vidrelay/lookups.db",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stdout",
		},
	}
}
