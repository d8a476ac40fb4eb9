package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "student-record-manager", cfg.App.Name)
	assert.Equal(t, "student_records.json", cfg.Storage.DataFile)
	assert.Equal(t, "backups", cfg.Storage.BackupDir)
	assert.Equal(t, time.Minute, cfg.Stats.CacheTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STUDENTCTL_LOG_LEVEL", "debug")
	t.Setenv("STUDENTCTL_STORAGE_DATA_FILE", "/tmp/records.json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/records.json", cfg.Storage.DataFile)
}

func TestValidate(t *testing.T) {
	valid := &Config{
		Storage: StorageConfig{DataFile: "student_records.json", BackupDir: "backups"},
		Stats:   StatsConfig{CacheTTL: time.Minute},
		Log:     LogConfig{Level: "info", Format: "text"},
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data file", func(c *Config) { c.Storage.DataFile = " " }},
		{"empty backup dir", func(c *Config) { c.Storage.BackupDir = "" }},
		{"non-positive cache ttl", func(c *Config) { c.Stats.CacheTTL = 0 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "loud" }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := *valid
			tc.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
