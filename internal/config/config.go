package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var ErrMissingEnvironmentVariables = errors.New("missing required environment variables")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env              string     `mapstructure:"env"`          // current application environment (local, dev, production etc)
	ServiceName      string     `mapstructure:"service_name"` // reported by the health endpoint
	Version          string     `mapstructure:"version"`      // reported by the health endpoint
	TelegramAPIToken string     `mapstructure:"-"`            // Telegram API token loaded from environment
	SocialAPI        SocialAPI  `mapstructure:"social_api"`   // matchmaking backend section
	DB               DB         `mapstructure:"database"`     // database configuration section
	HTTP             HTTP       `mapstructure:"http"`         // health and metrics listener
	Onboarding       Onboarding `mapstructure:"onboarding"`   // onboarding flow section
}

// SocialAPI contains settings of the matchmaking backend.
type SocialAPI struct {
	BaseURL      string        `mapstructure:"base_url"`       // backend origin, e.g. https://api.222.place
	Timeout      time.Duration `mapstructure:"timeout"`        // per-request timeout
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"` // response size limit
	StaticToken  string        `mapstructure:"-"`              // development token used when a user has none linked
}

// DB contains database-related configuration parameters.
type DB struct {
	URL             string        `mapstructure:"-"`                 // database connection string loaded from environment
	MaxConnections  int           `mapstructure:"max_connections"`   // maximum number of open connections in the pool
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"` // maximum lifetime of a single connection
}

// HTTP contains the health/metrics listener settings.
type HTTP struct {
	Addr string `mapstructure:"addr"`
}

// Onboarding contains settings of the onboarding sessions.
type Onboarding struct {
	DashboardURL string        `mapstructure:"dashboard_url"` // sent once onboarding is complete
	MaxSessions  int           `mapstructure:"max_sessions"`  // in-memory session capacity
	SessionTTL   time.Duration `mapstructure:"session_ttl"`   // idle sessions are discarded after this
}

// DSN returns the database connection string if it is configured.
func (db DB) DSN() (string, error) {
	if db.URL == "" {
		return "", ErrMissingEnvironmentVariables
	}
	return db.URL, nil
}

// Load reads configuration from config files and environment variables.
func Load() (*Config, error) {
	// Pick up a local .env file; real environment variables take precedence.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("service_name", "222.place Onboarding Bot")
	v.SetDefault("version", "1.0.0")
	v.SetDefault("social_api.base_url", "http://localhost:5001")
	v.SetDefault("social_api.timeout", "15s")
	v.SetDefault("social_api.max_body_bytes", 1<<20)
	v.SetDefault("database.max_connections", 20)
	v.SetDefault("database.max_conn_lifetime", "30s")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("onboarding.dashboard_url", "https://222.place/dashboard")
	v.SetDefault("onboarding.max_sessions", 10000)
	v.SetDefault("onboarding.session_ttl", "24h")

	// Configure environment variable handling and key mapping.
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // map nested keys to ENV style names
	v.AutomaticEnv()

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("telegram_api_token", "TELEGRAM_API_TOKEN")
	_ = v.BindEnv("database_url", "DATABASE_URL")
	_ = v.BindEnv("social_api_token", "SOCIAL_API_TOKEN")
	_ = v.BindEnv("env", "APP_ENV")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	// Load sensitive values from environment variables.
	cfg.TelegramAPIToken = v.GetString("telegram_api_token")
	if cfg.TelegramAPIToken == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.DB.URL = v.GetString("database_url")
	if cfg.DB.URL == "" {
		return nil, ErrMissingEnvironmentVariables
	}

	cfg.SocialAPI.StaticToken = v.GetString("social_api_token")

	return &cfg, nil
}
