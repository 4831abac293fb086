// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Auth    AuthConfig    `mapstructure:"auth"`
	APIs    APIsConfig    `mapstructure:"apis"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port            int `mapstructure:"port"`
	ReadTimeout     int `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"` // milliseconds
}

// AuthConfig holds the service credentials.
// Both fields are required; startup fails without them.
type AuthConfig struct {
	BearerToken string `mapstructure:"bearer_token"`
	PhoneNumber string `mapstructure:"phone_number"`
}

// --- Provider Configuration Sections ---

// APIsConfig holds settings for the external content providers.
// A missing credential disables only that provider.
type APIsConfig struct {
	Spotify struct {
		TokenURL     string `mapstructure:"token_url"`
		BaseURL      string `mapstructure:"base_url"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
		Timeout      int    `mapstructure:"timeout"` // milliseconds
		MaxResults   int    `mapstructure:"max_results"`
	} `mapstructure:"spotify"`

	YouTube struct {
		BaseURL    string `mapstructure:"base_url"`
		APIKey     string `mapstructure:"api_key"`
		Timeout    int    `mapstructure:"timeout"` // milliseconds
		MaxResults int    `mapstructure:"max_results"`
	} `mapstructure:"youtube"`

	Books struct {
		BaseURL    string `mapstructure:"base_url"`
		Timeout    int    `mapstructure:"timeout"` // milliseconds
		MaxResults int    `mapstructure:"max_results"`
	} `mapstructure:"books"`

	OMDb struct {
		BaseURL    string `mapstructure:"base_url"`
		APIKey     string `mapstructure:"api_key"`
		Timeout    int    `mapstructure:"timeout"` // milliseconds
		MaxResults int    `mapstructure:"max_results"`
	} `mapstructure:"omdb"`

	GoogleMaps struct {
		NearbySearchURL string `mapstructure:"nearby_search_url"`
		TextSearchURL   string `mapstructure:"text_search_url"`
		GeocodeURL      string `mapstructure:"geocode_url"`
		APIKey          string `mapstructure:"api_key"`
		RadiusMeters    int    `mapstructure:"radius_meters"`
		Timeout         int    `mapstructure:"timeout"` // milliseconds
		MaxResults      int    `mapstructure:"max_results"`
	} `mapstructure:"google_maps"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
