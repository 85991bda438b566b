package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// Sonarr
	SonarrURL    string
	SonarrAPIKey string

	// Air window
	FutureDays      int     // Days ahead a first episode still counts as upcoming (default: 30)
	UTCOffset       float64 // Flat hour shift applied to UTC air times (default: 0)
	SkipUnmonitored bool

	// Trailers
	DownloadTrailers bool
	SkipChannels     []string // Uploaders never considered for selection

	// Output
	OutputDir string // Directory receiving the two Kometa YAML files

	// Scheduling
	Schedule string // Cron expression; empty means run once and exit

	// Paths
	DatabaseFile string // $CONFIG_DIR/utsk.db

	// Logging
	Debug    bool
	LogLevel string

	// Styling sections, key order preserved from the YAML file
	Backdrop   Section
	Text       Section
	Collection Section
}

// Load loads configuration from the YAML settings file and environment variables
func Load() (*Config, error) {
	configFile := os.Getenv("UTSK_CONFIG")
	if configFile == "" {
		configFile = filepath.Join("config", "config.yml")
	}

	viper.SetConfigFile(configFile)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	// Set defaults
	viper.SetDefault("future_days_upcoming_shows", 30)
	viper.SetDefault("utc_offset", 0.0)
	viper.SetDefault("skip_unmonitored", false)
	viper.SetDefault("download_trailers", true)
	viper.SetDefault("debug", false)
	viper.SetDefault("output_dir", "Kometa")
	viper.SetDefault("log_level", "info")

	configDir := viper.GetString("config_dir")
	if configDir == "" {
		configDir = filepath.Dir(configFile)
	}
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		// Sonarr
		SonarrURL:    viper.GetString("sonarr_url"),
		SonarrAPIKey: viper.GetString("sonarr_api_key"),

		// Air window
		FutureDays:      viper.GetInt("future_days_upcoming_shows"),
		UTCOffset:       viper.GetFloat64("utc_offset"),
		SkipUnmonitored: viper.GetBool("skip_unmonitored"),

		// Trailers
		DownloadTrailers: viper.GetBool("download_trailers"),
		SkipChannels:     parseSkipChannels(viper.Get("skip_channels")),

		// Output
		OutputDir: viper.GetString("output_dir"),

		// Scheduling
		Schedule: viper.GetString("schedule"),

		// Paths
		DatabaseFile: filepath.Join(configDir, "utsk.db"),

		// Logging
		Debug:    viper.GetBool("debug"),
		LogLevel: viper.GetString("log_level"),
	}

	if config.Debug {
		config.LogLevel = "debug"
	}

	// Validate required fields
	if config.SonarrURL == "" {
		return nil, fmt.Errorf("sonarr_url is required")
	}
	if config.SonarrAPIKey == "" {
		return nil, fmt.Errorf("sonarr_api_key is required")
	}
	if config.FutureDays <= 0 {
		return nil, fmt.Errorf("future_days_upcoming_shows must be positive")
	}

	// The styling sections feed the synthesizer, whose output key order
	// must reproduce the config key order. Viper maps are unordered, so
	// these are decoded separately from the raw file.
	sections, err := LoadSections(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse styling sections: %w", err)
	}
	config.Backdrop = sections.Backdrop
	config.Text = sections.Text
	config.Collection = sections.Collection

	return config, nil
}

// parseSkipChannels accepts either a YAML list or a comma-separated string
func parseSkipChannels(raw interface{}) []string {
	switch v := raw.(type) {
	case string:
		var channels []string
		for _, ch := range strings.Split(v, ",") {
			ch = strings.TrimSpace(ch)
			if ch != "" {
				channels = append(channels, ch)
			}
		}
		return channels
	case []interface{}:
		var channels []string
		for _, item := range v {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				channels = append(channels, strings.TrimSpace(s))
			}
		}
		return channels
	}
	return nil
}
