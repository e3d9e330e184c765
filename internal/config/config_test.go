package config

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sethvargo/go-envconfig"

	"chartdeck/internal/models"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		envVars     map[string]string
		expectError string
		validate    func(t *testing.T, cfg *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "8980" {
					t.Errorf("Expected default Port to be '8980', got '%s'", cfg.Port)
				}
				if cfg.Environment != "development" {
					t.Errorf("Expected default Environment to be 'development', got '%s'", cfg.Environment)
				}
				if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
					t.Errorf("Expected info/text logging, got %s/%s", cfg.LogLevel, cfg.LogFormat)
				}
				if cfg.StorageMode != StorageLocal || cfg.LocalDataDir != "./data" {
					t.Errorf("Expected local storage in ./data, got %s in %s", cfg.StorageMode, cfg.LocalDataDir)
				}
				if cfg.DarkTheme {
					t.Error("Expected DarkTheme to default to false")
				}
				if cfg.RandomSeed != 0 {
					t.Errorf("Expected RandomSeed 0, got %d", cfg.RandomSeed)
				}
				if cfg.SnapshotWidth != 800 || cfg.SnapshotHeight != 400 {
					t.Errorf("Expected 800x400 snapshots, got %dx%d", cfg.SnapshotWidth, cfg.SnapshotHeight)
				}
				backend, _ := cfg.Backend()
				if backend != models.BackendECharts {
					t.Errorf("Expected echarts backend, got %s", backend)
				}
				filters, _ := cfg.DefaultFilters()
				if filters != models.DefaultFilters() {
					t.Errorf("Expected default filters, got %s", filters)
				}
			},
		},
		{
			name: "custom values",
			envVars: map[string]string{
				"PORT":               "9000",
				"ENVIRONMENT":        "production",
				"STORAGE_MODE":       "gcs",
				"GCS_BUCKET":         "dash-bucket",
				"DEFAULT_BACKEND":    "chartjs",
				"DEFAULT_TIME_RANGE": "thisYear",
				"DEFAULT_CATEGORY":   "food",
				"DEFAULT_REGION":     "west",
				"DARK_THEME":         "true",
				"RANDOM_SEED":        "42",
				"SNAPSHOT_WIDTH":     "1024",
			},
			validate: func(t *testing.T, cfg *Config) {
				if cfg.Port != "9000" {
					t.Errorf("Expected Port '9000', got '%s'", cfg.Port)
				}
				if cfg.GCSBucket != "dash-bucket" {
					t.Errorf("Expected GCSBucket 'dash-bucket', got '%s'", cfg.GCSBucket)
				}
				if !cfg.DarkTheme {
					t.Error("Expected DarkTheme true")
				}
				if cfg.RandomSeed != 42 {
					t.Errorf("Expected RandomSeed 42, got %d", cfg.RandomSeed)
				}
				if cfg.SnapshotWidth != 1024 {
					t.Errorf("Expected SnapshotWidth 1024, got %d", cfg.SnapshotWidth)
				}
				backend, _ := cfg.Backend()
				if backend != models.BackendChartJS {
					t.Errorf("Expected chartjs backend, got %s", backend)
				}
				filters, _ := cfg.DefaultFilters()
				expected := models.FilterState{TimeRange: models.TimeThisYear, Category: models.CategoryFood, Region: models.RegionWest}
				if filters != expected {
					t.Errorf("Expected filters %s, got %s", expected, filters)
				}
			},
		},
		{
			name:        "gcs without bucket",
			envVars:     map[string]string{"STORAGE_MODE": "gcs"},
			expectError: "GCS_BUCKET",
		},
		{
			name:        "unknown storage mode",
			envVars:     map[string]string{"STORAGE_MODE": "s3"},
			expectError: "STORAGE_MODE",
		},
		{
			name:        "unknown backend",
			envVars:     map[string]string{"DEFAULT_BACKEND": "d3"},
			expectError: "DEFAULT_BACKEND",
		},
		{
			name:        "unknown region",
			envVars:     map[string]string{"DEFAULT_REGION": "moon"},
			expectError: "default filters",
		},
		{
			name:        "bad snapshot size",
			envVars:     map[string]string{"SNAPSHOT_HEIGHT": "0"},
			expectError: "snapshot size",
		},
		{
			name:        "unparsable seed",
			envVars:     map[string]string{"RANDOM_SEED": "lots"},
			expectError: "failed to process config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load(context.Background(), envconfig.MapLookuper(tt.envVars))

			if tt.expectError != "" {
				if err == nil {
					t.Fatalf("Expected error containing '%s', got nil", tt.expectError)
				}
				if !strings.Contains(err.Error(), tt.expectError) {
					t.Errorf("Expected error containing '%s', got '%v'", tt.expectError, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "7001")
	t.Setenv("STORAGE_MODE", "local")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "7001" {
		t.Errorf("Expected Port '7001', got '%s'", cfg.Port)
	}
}

func TestValidateWrapsUnknownValue(t *testing.T) {
	cfg := &Config{
		StorageMode:      StorageLocal,
		LocalDataDir:     "data",
		DefaultBackend:   "echarts",
		DefaultTimeRange: "yesterday",
		DefaultCategory:  "all",
		DefaultRegion:    "all",
		SnapshotWidth:    1,
		SnapshotHeight:   1,
	}
	err := cfg.Validate()
	if !errors.Is(err, models.ErrUnknownValue) {
		t.Errorf("Expected ErrUnknownValue, got %v", err)
	}
}
