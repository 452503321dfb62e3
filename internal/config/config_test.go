package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8, cfg.Batch.MaxConcurrentProspects)
	assert.Equal(t, "", cfg.Scoring.ICPFile)
	assert.Equal(t, "ecommerce_dtc", cfg.Scoring.DefaultICP)
	assert.False(t, cfg.Scoring.BestMatch)
	assert.False(t, cfg.Scoring.EvaluateUnqualified)
	assert.Equal(t, MetricsSourceNone, cfg.Metrics.Source)
	assert.Equal(t, int64(42), cfg.Metrics.Seed)
	assert.Equal(t, 0.0, cfg.Metrics.RatePerSec)
	assert.Equal(t, 1, cfg.Metrics.Burst)
	assert.Equal(t, 3, cfg.Metrics.RetryAttempts)
	assert.Equal(t, 250, cfg.Metrics.RetryBackoffMs)
	assert.Empty(t, cfg.Projection.GrowthFactors)
	assert.Empty(t, cfg.Projection.ConfidenceLevels)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
batch:
  max_concurrent_prospects: 2
scoring:
  default_icp: b2b_saas
  best_match: true
metrics:
  source: file
  file: metrics.yaml
projection:
  confidence_levels:
    pilot: 0.6
    month1: 0.7
  growth_factors:
    month2: 0.1
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 2, cfg.Batch.MaxConcurrentProspects)
	assert.Equal(t, "b2b_saas", cfg.Scoring.DefaultICP)
	assert.True(t, cfg.Scoring.BestMatch)
	assert.Equal(t, MetricsSourceFile, cfg.Metrics.Source)
	assert.Equal(t, "metrics.yaml", cfg.Metrics.File)
	assert.InDelta(t, 0.6, cfg.Projection.ConfidenceLevels["pilot"], 0.001)
	assert.InDelta(t, 0.1, cfg.Projection.GrowthFactors["month2"], 0.001)
	// Defaults still apply for unset values
	assert.Equal(t, int64(42), cfg.Metrics.Seed)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
scoring:
  default_icp: b2b_saas
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LEADSCORE_LOG_LEVEL", "warn")
	t.Setenv("LEADSCORE_SCORING_DEFAULT_ICP", "professional_services")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "professional_services", cfg.Scoring.DefaultICP)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LEADSCORE_BATCH_MAX_CONCURRENT_PROSPECTS", "3")
	t.Setenv("LEADSCORE_METRICS_SOURCE", "random")
	t.Setenv("LEADSCORE_METRICS_RATE_PER_SEC", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Batch.MaxConcurrentProspects)
	assert.Equal(t, MetricsSourceRandom, cfg.Metrics.Source)
	assert.InDelta(t, 2.5, cfg.Metrics.RatePerSec, 0.001)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("log: [\n"), 0644))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Batch.MaxConcurrentProspects = 8
	cfg.Scoring.DefaultICP = "ecommerce_dtc"
	cfg.Metrics.Source = MetricsSourceNone
	cfg.Metrics.Burst = 1
	cfg.Metrics.RetryAttempts = 3
	cfg.Metrics.RetryBackoffMs = 250
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"zero concurrency", func(c *Config) { c.Batch.MaxConcurrentProspects = 0 }, "max_concurrent_prospects must be >= 1"},
		{"blank default icp", func(c *Config) { c.Scoring.DefaultICP = " " }, "scoring.default_icp is required"},
		{"unknown source", func(c *Config) { c.Metrics.Source = "bigquery" }, "must be one of none, file, random"},
		{"file without path", func(c *Config) { c.Metrics.Source = MetricsSourceFile }, "metrics.file is required"},
		{"file with path", func(c *Config) {
			c.Metrics.Source = MetricsSourceFile
			c.Metrics.File = "m.yaml"
		}, ""},
		{"negative rate", func(c *Config) { c.Metrics.RatePerSec = -1 }, "rate_per_sec must be >= 0"},
		{"rate without burst", func(c *Config) {
			c.Metrics.RatePerSec = 5
			c.Metrics.Burst = 0
		}, "metrics.burst must be >= 1"},
		{"zero retry attempts", func(c *Config) { c.Metrics.RetryAttempts = 0 }, "metrics.retry_attempts must be >= 1"},
		{"negative backoff", func(c *Config) { c.Metrics.RetryBackoffMs = -5 }, "retry_backoff_ms must be > 0"},
		{"zero backoff with retries", func(c *Config) { c.Metrics.RetryBackoffMs = 0 }, "retry_backoff_ms must be > 0"},
		{"zero backoff without retries", func(c *Config) {
			c.Metrics.RetryAttempts = 1
			c.Metrics.RetryBackoffMs = 0
		}, ""},
		{"confidence above one", func(c *Config) {
			c.Projection.ConfidenceLevels = map[string]float64{"month3": 1.5}
		}, "projection.confidence_levels.month3"},
		{"growth below minus one", func(c *Config) {
			c.Projection.GrowthFactors = map[string]float64{"month4": -2}
		}, "projection.growth_factors.month4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateJoinsAllProblems(t *testing.T) {
	cfg := validDefaults()
	cfg.Batch.MaxConcurrentProspects = 0
	cfg.Metrics.Source = "bogus"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrent_prospects")
	assert.Contains(t, err.Error(), "bogus")
}
