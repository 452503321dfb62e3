package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Metrics sources.
const (
	MetricsSourceNone   = "none"
	MetricsSourceFile   = "file"
	MetricsSourceRandom = "random"
)

// Config holds the full application configuration.
type Config struct {
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Batch      BatchConfig      `yaml:"batch" mapstructure:"batch"`
	Scoring    ScoringConfig    `yaml:"scoring" mapstructure:"scoring"`
	Metrics    MetricsConfig    `yaml:"metrics" mapstructure:"metrics"`
	Projection ProjectionConfig `yaml:"projection" mapstructure:"projection"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// BatchConfig configures batch evaluation.
type BatchConfig struct {
	MaxConcurrentProspects int `yaml:"max_concurrent_prospects" mapstructure:"max_concurrent_prospects"`
}

// ScoringConfig selects the profiles prospects are qualified against.
type ScoringConfig struct {
	// ICPFile is a YAML profile file; empty uses the built-in profiles.
	ICPFile    string `yaml:"icp_file" mapstructure:"icp_file"`
	DefaultICP string `yaml:"default_icp" mapstructure:"default_icp"`
	// BestMatch qualifies against every profile and keeps the best passing one.
	BestMatch bool `yaml:"best_match" mapstructure:"best_match"`
	// EvaluateUnqualified runs leak detection and projection even for
	// prospects that fail qualification.
	EvaluateUnqualified bool `yaml:"evaluate_unqualified" mapstructure:"evaluate_unqualified"`
}

// MetricsConfig configures the performance/conversion metrics source.
type MetricsConfig struct {
	Source     string  `yaml:"source" mapstructure:"source"`
	File       string  `yaml:"file" mapstructure:"file"`
	Seed       int64   `yaml:"seed" mapstructure:"seed"`
	RatePerSec float64 `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	Burst      int     `yaml:"burst" mapstructure:"burst"`
	// RetryAttempts counts the first try; 1 disables retries.
	RetryAttempts  int `yaml:"retry_attempts" mapstructure:"retry_attempts"`
	RetryBackoffMs int `yaml:"retry_backoff_ms" mapstructure:"retry_backoff_ms"`
}

// ProjectionConfig overrides the projection horizon tables. Empty maps use
// the built-in tables.
type ProjectionConfig struct {
	GrowthFactors    map[string]float64 `yaml:"growth_factors" mapstructure:"growth_factors"`
	ConfidenceLevels map[string]float64 `yaml:"confidence_levels" mapstructure:"confidence_levels"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADSCORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("batch.max_concurrent_prospects", 8)
	v.SetDefault("scoring.icp_file", "")
	v.SetDefault("scoring.default_icp", "ecommerce_dtc")
	v.SetDefault("scoring.best_match", false)
	v.SetDefault("scoring.evaluate_unqualified", false)
	v.SetDefault("metrics.source", MetricsSourceNone)
	v.SetDefault("metrics.file", "")
	v.SetDefault("metrics.seed", 42)
	v.SetDefault("metrics.rate_per_sec", 0)
	v.SetDefault("metrics.burst", 1)
	v.SetDefault("metrics.retry_attempts", 3)
	v.SetDefault("metrics.retry_backoff_ms", 250)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	var errs []string

	if c.Batch.MaxConcurrentProspects < 1 {
		errs = append(errs, fmt.Sprintf("batch.max_concurrent_prospects must be >= 1, got %d", c.Batch.MaxConcurrentProspects))
	}
	if strings.TrimSpace(c.Scoring.DefaultICP) == "" {
		errs = append(errs, "scoring.default_icp is required")
	}

	switch c.Metrics.Source {
	case MetricsSourceNone, MetricsSourceRandom:
	case MetricsSourceFile:
		if c.Metrics.File == "" {
			errs = append(errs, "metrics.file is required when metrics.source is file")
		}
	default:
		errs = append(errs, fmt.Sprintf("metrics.source %q must be one of none, file, random", c.Metrics.Source))
	}
	if c.Metrics.RatePerSec < 0 {
		errs = append(errs, "metrics.rate_per_sec must be >= 0")
	}
	if c.Metrics.RatePerSec > 0 && c.Metrics.Burst < 1 {
		errs = append(errs, "metrics.burst must be >= 1 when rate limiting")
	}
	if c.Metrics.RetryAttempts < 1 {
		errs = append(errs, "metrics.retry_attempts must be >= 1")
	}
	// Zero would be replaced by the retry default, so it is refused when retries are on.
	if c.Metrics.RetryBackoffMs < 0 || (c.Metrics.RetryAttempts > 1 && c.Metrics.RetryBackoffMs == 0) {
		errs = append(errs, "metrics.retry_backoff_ms must be > 0")
	}

	for _, k := range sortedKeys(c.Projection.ConfidenceLevels) {
		if v := c.Projection.ConfidenceLevels[k]; v < 0 || v > 1 {
			errs = append(errs, fmt.Sprintf("projection.confidence_levels.%s must be between 0 and 1, got %g", k, v))
		}
	}
	for _, k := range sortedKeys(c.Projection.GrowthFactors) {
		if v := c.Projection.GrowthFactors[k]; v < -1 {
			errs = append(errs, fmt.Sprintf("projection.growth_factors.%s must be >= -1, got %g", k, v))
		}
	}

	if len(errs) > 0 {
		return eris.Errorf("config: invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
