package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/yourusername/vidrelay/internal/domain"
)

// LoadConfig loads configuration from file and environment
func LoadConfig(configPath string) (*domain.Config, error) {
	// Start with default config
	config := domain.DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.vidrelay")
		v.AddConfigPath("/etc/vidrelay")
	}

	// VIDRELAY_SERVER_PORT, VIDRELAY_SERVER_API_KEY, ...
	v.SetEnvPrefix("VIDRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindDefaults(v, config)

	// Conventional platform variables win over the prefixed ones
	v.BindEnv("server.port", "PORT", "VIDRELAY_SERVER_PORT")
	v.BindEnv("server.api_key", "API_KEY", "VIDRELAY_SERVER_API_KEY")
	v.BindEnv("server.environment", "ENVIRONMENT", "VIDRELAY_SERVER_ENVIRONMENT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, use defaults
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config = expandPaths(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// bindDefaults registers every key so AutomaticEnv can override values that
// appear in no config file.
func bindDefaults(v *viper.Viper, config *domain.Config) {
	v.SetDefault("server.host", config.Server.Host)
	v.SetDefault("server.port", config.Server.Port)
	v.SetDefault("server.environment", config.Server.Environment)
	v.SetDefault("server.api_key", config.Server.APIKey)
	v.SetDefault("upstream.oembed_url", config.Upstream.OEmbedURL)
	v.SetDefault("upstream.tiktok_api_url", config.Upstream.TikTokAPIURL)
	v.SetDefault("upstream.tiktok_referer", config.Upstream.TikTokReferer)
	v.SetDefault("upstream.user_agent", config.Upstream.UserAgent)
	v.SetDefault("upstream.metadata_timeout", config.Upstream.MetadataTimeout)
	v.SetDefault("upstream.tiktok_timeout", config.Upstream.TikTokTimeout)
	v.SetDefault("upstream.stream_timeout", config.Upstream.StreamTimeout)
	v.SetDefault("redirect.youtube_template", config.Redirect.YouTubeTemplate)
	v.SetDefault("redirect.facebook_template", config.Redirect.FacebookTemplate)
	v.SetDefault("journal.enabled", config.Journal.Enabled)
	v.SetDefault("journal.database_path", config.Journal.DatabasePath)
	v.SetDefault("logging.level", config.Logging.Level)
	v.SetDefault("logging.format", config.Logging.Format)
	v.SetDefault("logging.output_path", config.Logging.OutputPath)
}

// expandPaths expands environment variables in path configurations
func expandPaths(config *domain.Config) *domain.Config {
	if config.Journal.DatabasePath != ":memory:" {
		config.Journal.DatabasePath = expandPath(config.Journal.DatabasePath)
	}

	if config.Logging.OutputPath != "stdout" && config.Logging.OutputPath != "stderr" {
		config.Logging.OutputPath = expandPath(config.Logging.OutputPath)
	}

	return config
}

// expandPath expands environment variables and ~ in paths
func expandPath(path string) string {
	path = os.ExpandEnv(path)

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return path
}

// validateConfig validates the configuration
func validateConfig(config *domain.Config) error {
	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Upstream.OEmbedURL == "" {
		return fmt.Errorf("oembed url not configured")
	}

	if config.Upstream.TikTokAPIURL == "" {
		return fmt.Errorf("tiktok api url not configured")
	}

	if config.Upstream.MetadataTimeout <= 0 || config.Upstream.TikTokTimeout <= 0 || config.Upstream.StreamTimeout <= 0 {
		return fmt.Errorf("upstream timeouts must be positive")
	}

	if !strings.Contains(config.Redirect.YouTubeTemplate, "{url}") {
		return fmt.Errorf("youtube redirect template must contain {url}")
	}

	if !strings.Contains(config.Redirect.FacebookTemplate, "{url}") {
		return fmt.Errorf("facebook redirect template must contain {url}")
	}

	if config.Journal.Enabled && config.Journal.DatabasePath == "" {
		return fmt.Errorf("journal database path not configured")
	}

	if config.Server.Environment == "" {
		config.Server.Environment = "development"
	}

	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	return nil
}
