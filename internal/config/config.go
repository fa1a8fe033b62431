package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port     string
	LogLevel string
	Database DatabaseConfig
	GitHub   GitHubConfig
	Sync     SyncConfig
}

// DatabaseConfig selects the store backend and how to reach it
type DatabaseConfig struct {
	Driver           string
	ConnectionString string
	SQLitePath       string
}

// Load reads configuration from the environment, falling back to defaults
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Port:     v.GetString("PORT"),
		LogLevel: v.GetString("LOG_LEVEL"),
		Database: DatabaseConfig{
			Driver:           strings.ToLower(v.GetString("DB_DRIVER")),
			ConnectionString: v.GetString("DB_CONNECTION_STRING"),
			SQLitePath:       v.GetString("SQLITE_PATH"),
		},
		GitHub: GitHubConfig{
			Token:      v.GetString("GITHUB_TOKEN"),
			APIBaseURL: v.GetString("GITHUB_API_URL"),
			Timeout:    v.GetDuration("GITHUB_TIMEOUT"),
			PerPage:    v.GetInt("GITHUB_PER_PAGE"),
		},
		Sync: SyncConfig{
			Interval:           minutes(v.GetInt("SYNC_INTERVAL_MINUTES")),
			MaxConcurrentSyncs: v.GetInt("SYNC_MAX_CONCURRENT"),
			OnStartup:          v.GetBool("SYNC_ON_STARTUP"),
		},
	}

	if cfg.Database.ConnectionString == "" {
		cfg.Database.ConnectionString = postgresURL(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the services cannot run with
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.ConnectionString == "" {
			return fmt.Errorf("database connection string is required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver %q", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver)
	}
	if err := c.GitHub.Validate(); err != nil {
		return err
	}
	return c.Sync.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_CONNECTION_STRING", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USERNAME", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_DATABASE", "github_tracker")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("SQLITE_PATH", "github_tracker.db")

	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_API_URL", defaultAPIBaseURL)
	v.SetDefault("GITHUB_TIMEOUT", defaultTimeout)
	v.SetDefault("GITHUB_PER_PAGE", maxPerPage)

	v.SetDefault("SYNC_INTERVAL_MINUTES", 60)
	v.SetDefault("SYNC_MAX_CONCURRENT", 1)
	v.SetDefault("SYNC_ON_STARTUP", true)
}

// postgresURL assembles a DSN from the discrete DB_* variables
func postgresURL(v *viper.Viper) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(v.GetString("DB_USERNAME"), v.GetString("DB_PASSWORD")),
		Host:     fmt.Sprintf("%s:%s", v.GetString("DB_HOST"), v.GetString("DB_PORT")),
		Path:     "/" + v.GetString("DB_DATABASE"),
		RawQuery: "sslmode=" + url.QueryEscape(v.GetString("DB_SSLMODE")),
	}
	return u.String()
}
