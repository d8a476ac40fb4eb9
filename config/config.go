// Package config loads application configuration from an optional config
// file and environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	// Application
	App AppConfig `mapstructure:"app"`

	// Storage
	Storage StorageConfig `mapstructure:"storage"`

	// Statistics
	Stats StatsConfig `mapstructure:"stats"`

	// Logging
	Log LogConfig `mapstructure:"log"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// StorageConfig holds the persistence settings.
type StorageConfig struct {
	// DataFile is the path of the JSON data file.
	DataFile string `mapstructure:"data_file"`

	// BackupDir is the directory holding timestamped backup copies.
	BackupDir string `mapstructure:"backup_dir"`
}

// StatsConfig holds statistics cache settings.
type StatsConfig struct {
	// CacheTTL bounds how long computed statistics stay cached. Mutations
	// invalidate the cache regardless, so the TTL is a safety net.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads configuration from studentctl.yaml (if present, in the working
// directory) and STUDENTCTL_* environment variables, over built-in defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "student-record-manager")
	v.SetDefault("app.version", "0.1.0")
	v.SetDefault("storage.data_file", "student_records.json")
	v.SetDefault("storage.backup_dir", "backups")
	v.SetDefault("stats.cache_ttl", time.Minute)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("studentctl")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("STUDENTCTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything has defaults.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Storage.DataFile) == "" {
		errs = append(errs, "storage.data_file must not be empty")
	}
	if strings.TrimSpace(c.Storage.BackupDir) == "" {
		errs = append(errs, "storage.backup_dir must not be empty")
	}
	if c.Stats.CacheTTL <= 0 {
		errs = append(errs, "stats.cache_ttl must be positive")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, "log.format must be json or text")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
