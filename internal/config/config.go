package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"

	"chartdeck/internal/models"
)

// Storage modes
const (
	StorageLocal = "local"
	StorageGCS   = "gcs"
)

// Config holds all configuration for the dashboard service
type Config struct {
	// Server configuration
	Port        string `env:"PORT,default=8980"`
	Environment string `env:"ENVIRONMENT,default=development"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL,default=info"`
	LogFormat string `env:"LOG_FORMAT,default=text"`

	// Storage for the theme flag and exports
	StorageMode  string `env:"STORAGE_MODE,default=local"`
	LocalDataDir string `env:"LOCAL_DATA_DIR,default=./data"`
	GCSBucket    string `env:"GCS_BUCKET"`

	// Initial dashboard selection; the filters are also the reset target
	DefaultBackend   string `env:"DEFAULT_BACKEND,default=echarts"`
	DefaultTimeRange string `env:"DEFAULT_TIME_RANGE,default=last30days"`
	DefaultCategory  string `env:"DEFAULT_CATEGORY,default=all"`
	DefaultRegion    string `env:"DEFAULT_REGION,default=all"`
	DarkTheme        bool   `env:"DARK_THEME,default=false"`

	// Seed for the scatter, heatmap and candlestick generators; 0 seeds from the clock
	RandomSeed int64 `env:"RANDOM_SEED,default=0"`

	// PNG snapshot size in pixels
	SnapshotWidth  int `env:"SNAPSHOT_WIDTH,default=800"`
	SnapshotHeight int `env:"SNAPSHOT_HEIGHT,default=400"`
}

// Load loads configuration from environment variables and validates it
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown enum values and incomplete storage settings
func (c *Config) Validate() error {
	switch c.StorageMode {
	case StorageLocal:
		if c.LocalDataDir == "" {
			return fmt.Errorf("LOCAL_DATA_DIR is required for local storage")
		}
	case StorageGCS:
		if c.GCSBucket == "" {
			return fmt.Errorf("GCS_BUCKET is required for gcs storage")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_MODE %q", c.StorageMode)
	}
	if _, err := c.Backend(); err != nil {
		return fmt.Errorf("invalid DEFAULT_BACKEND: %w", err)
	}
	if _, err := c.DefaultFilters(); err != nil {
		return fmt.Errorf("invalid default filters: %w", err)
	}
	if c.SnapshotWidth <= 0 || c.SnapshotHeight <= 0 {
		return fmt.Errorf("snapshot size must be positive, got %dx%d", c.SnapshotWidth, c.SnapshotHeight)
	}
	return nil
}

// Backend returns the configured initial backend
func (c *Config) Backend() (models.Backend, error) {
	return models.ParseBackend(c.DefaultBackend)
}

// DefaultFilters returns the configured initial filter state
func (c *Config) DefaultFilters() (models.FilterState, error) {
	f := models.FilterState{
		TimeRange: models.TimeRange(c.DefaultTimeRange),
		Category:  models.Category(c.DefaultCategory),
		Region:    models.Region(c.DefaultRegion),
	}
	if err := f.Validate(); err != nil {
		return models.FilterState{}, err
	}
	return f, nil
}
