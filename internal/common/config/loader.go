// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	// Load .env from multiple possible locations
	loadEnvFile()

	// Base config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SPOTIFY_CLIENT_ID
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// 1️⃣ LOAD BASE CONFIG
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// 2️⃣ LOAD ENV CONFIG
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	// 3️⃣ EXPAND ENV PLACEHOLDERS
	expandEnvVars(viper.GetViper())

	// 4️⃣ Unmarshal final config
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5️⃣ DIRECT OVERRIDE IF STILL EMPTY
	overrideEmptyConfig(&cfg)

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Load .env from multiple possible locations
func loadEnvFile() {
	// Try multiple paths (for running from different directories)
	possiblePaths := []string{
		".env",          // Current directory
		"../.env",       // Parent directory
		"../../.env",    // Two levels up (for tests in test/e2e/)
		"../../../.env", // Three levels up
	}

	// Also try to find project root by looking for go.mod
	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("✅ Loaded .env from: %s\n", path)
				return
			}
		}
	}

	fmt.Printf("⚠️  .env file not found in any location, using system environment variables\n")
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Walk up directories looking for go.mod
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			break
		}
		dir = parent
	}

	return ""
}

// Improved environment variable expansion
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		// Only process string values
		if strVal, ok := val.(string); ok {
			// Check if it contains environment variable pattern
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	// Service credentials
	if cfg.Auth.BearerToken == "" {
		if val := os.Getenv("AUTH_TOKEN"); val != "" {
			cfg.Auth.BearerToken = val
		}
	}
	if cfg.Auth.PhoneNumber == "" {
		if val := os.Getenv("MY_NUMBER"); val != "" {
			cfg.Auth.PhoneNumber = val
		}
	}

	// Spotify
	if cfg.APIs.Spotify.ClientID == "" {
		if val := os.Getenv("SPOTIFY_CLIENT_ID"); val != "" {
			cfg.APIs.Spotify.ClientID = val
		}
	}
	if cfg.APIs.Spotify.ClientSecret == "" {
		if val := os.Getenv("SPOTIFY_CLIENT_SECRET"); val != "" {
			cfg.APIs.Spotify.ClientSecret = val
		}
	}

	// YouTube
	if cfg.APIs.YouTube.APIKey == "" {
		if val := os.Getenv("YOUTUBE_API_KEY"); val != "" {
			cfg.APIs.YouTube.APIKey = val
		}
	}

	// OMDb
	if cfg.APIs.OMDb.APIKey == "" {
		if val := os.Getenv("OMDB_API_KEY"); val != "" {
			cfg.APIs.OMDb.APIKey = val
		}
	}

	// Google Maps (places + geocoding)
	if cfg.APIs.GoogleMaps.APIKey == "" {
		if val := os.Getenv("GOOGLE_MAPS_API_KEY"); val != "" {
			cfg.APIs.GoogleMaps.APIKey = val
		}
	}

	// Server port
	if cfg.Server.Port == 0 {
		if val := os.Getenv("SERVER_PORT"); val != "" {
			if port, err := strconv.Atoi(val); err == nil {
				cfg.Server.Port = port
			}
		}
	}

	// App environment and logging
	if cfg.App.Environment == "" {
		if val := os.Getenv("APP_ENVIRONMENT"); val != "" {
			cfg.App.Environment = val
		}
	}
	if cfg.Logging.Level == "" {
		if val := os.Getenv("LOG_LEVEL"); val != "" {
			cfg.Logging.Level = val
		}
	}
	if cfg.Logging.Format == "" {
		if val := os.Getenv("LOG_FORMAT"); val != "" {
			cfg.Logging.Format = val
		}
	}
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile() // Load env file first

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Expand environment variables before unmarshal
	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	// App defaults
	if cfg.App.Name == "" {
		cfg.App.Name = "vibe-planner"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8086
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Provider endpoint defaults
	if cfg.APIs.Spotify.TokenURL == "" {
		cfg.APIs.Spotify.TokenURL = "https://accounts.spotify.com/api/token"
	}
	if cfg.APIs.Spotify.BaseURL == "" {
		cfg.APIs.Spotify.BaseURL = "https://api.spotify.com/v1"
	}
	if cfg.APIs.YouTube.BaseURL == "" {
		cfg.APIs.YouTube.BaseURL = "https://www.googleapis.com/youtube/v3/search"
	}
	if cfg.APIs.Books.BaseURL == "" {
		cfg.APIs.Books.BaseURL = "https://www.googleapis.com/books/v1/volumes"
	}
	if cfg.APIs.OMDb.BaseURL == "" {
		cfg.APIs.OMDb.BaseURL = "https://www.omdbapi.com/"
	}
	if cfg.APIs.GoogleMaps.NearbySearchURL == "" {
		cfg.APIs.GoogleMaps.NearbySearchURL = "https://maps.googleapis.com/maps/api/place/nearbysearch/json"
	}
	if cfg.APIs.GoogleMaps.TextSearchURL == "" {
		cfg.APIs.GoogleMaps.TextSearchURL = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	}
	if cfg.APIs.GoogleMaps.GeocodeURL == "" {
		cfg.APIs.GoogleMaps.GeocodeURL = "https://maps.googleapis.com/maps/api/geocode/json"
	}
	if cfg.APIs.GoogleMaps.RadiusMeters == 0 {
		cfg.APIs.GoogleMaps.RadiusMeters = 5000
	}

	// Provider timeout defaults (token exchange makes Spotify slower)
	if cfg.APIs.Spotify.Timeout == 0 {
		cfg.APIs.Spotify.Timeout = 20000
	}
	if cfg.APIs.YouTube.Timeout == 0 {
		cfg.APIs.YouTube.Timeout = 10000
	}
	if cfg.APIs.Books.Timeout == 0 {
		cfg.APIs.Books.Timeout = 10000
	}
	if cfg.APIs.OMDb.Timeout == 0 {
		cfg.APIs.OMDb.Timeout = 10000
	}
	if cfg.APIs.GoogleMaps.Timeout == 0 {
		cfg.APIs.GoogleMaps.Timeout = 10000
	}

	// Provider result limits
	if cfg.APIs.Spotify.MaxResults == 0 {
		cfg.APIs.Spotify.MaxResults = 5
	}
	if cfg.APIs.YouTube.MaxResults == 0 {
		cfg.APIs.YouTube.MaxResults = 5
	}
	if cfg.APIs.Books.MaxResults == 0 {
		cfg.APIs.Books.MaxResults = 5
	}
	if cfg.APIs.OMDb.MaxResults == 0 {
		cfg.APIs.OMDb.MaxResults = 5
	}
	if cfg.APIs.GoogleMaps.MaxResults == 0 {
		cfg.APIs.GoogleMaps.MaxResults = 5
	}
}

// validateConfig validates critical configuration fields.
// Provider credentials are deliberately not validated here: a missing
// credential disables that provider, it does not prevent startup.
func validateConfig(cfg *Config) error {
	if cfg.Auth.BearerToken == "" {
		return fmt.Errorf("auth.bearer_token is required (set AUTH_TOKEN)")
	}

	if cfg.Auth.PhoneNumber == "" {
		return fmt.Errorf("auth.phone_number is required (set MY_NUMBER)")
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be a valid TCP port, got %d", cfg.Server.Port)
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
