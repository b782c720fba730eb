// Package config loads application configuration from file and environment.
package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Selection SelectionConfig `yaml:"selection" mapstructure:"selection"`
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// SelectionConfig configures the candidate selection pipeline. Price bounds
// and decision thresholds are policy defaults observed in production, carried
// here so they can be tuned per run instead of living as magic numbers.
type SelectionConfig struct {
	TopN               int     `yaml:"top_n" mapstructure:"top_n"`
	VariantsPerProduct int     `yaml:"variants_per_product" mapstructure:"variants_per_product"`
	MinPrice           float64 `yaml:"min_price" mapstructure:"min_price"`
	MaxPrice           float64 `yaml:"max_price" mapstructure:"max_price"`
	RetentionDays      int     `yaml:"retention_days" mapstructure:"retention_days"`
	FallbackAngle      string  `yaml:"fallback_angle" mapstructure:"fallback_angle"`
	// ApproveThreshold and HoldThreshold derive a verdict from the numeric
	// score when the model's own decision string is unusable.
	ApproveThreshold float64 `yaml:"approve_threshold" mapstructure:"approve_threshold"`
	HoldThreshold    float64 `yaml:"hold_threshold" mapstructure:"hold_threshold"`
	// OnScoreError selects the policy for a failed scoring call:
	// "fail" aborts the run, "skip" drops the candidate and continues.
	OnScoreError string `yaml:"on_score_error" mapstructure:"on_score_error"`
	// ScoreIntervalMs paces sequential scoring calls. Zero disables pacing.
	ScoreIntervalMs int `yaml:"score_interval_ms" mapstructure:"score_interval_ms"`
	// MaxParallelScores above 1 switches to the bounded-parallel sequencer.
	MaxParallelScores int `yaml:"max_parallel_scores" mapstructure:"max_parallel_scores"`
	// DefaultTrackingTag and DefaultMarket back-fill artifact defaults when
	// the input document carries none.
	DefaultTrackingTag string `yaml:"default_tracking_tag" mapstructure:"default_tracking_tag"`
	DefaultMarket      string `yaml:"default_market" mapstructure:"default_market"`
}

// Retention returns the variant retention window as a duration.
func (s SelectionConfig) Retention() time.Duration {
	return time.Duration(s.RetentionDays) * 24 * time.Hour
}

// StoreConfig configures the run history backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("SELECTION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("selection.top_n", 8)
	v.SetDefault("selection.variants_per_product", 3)
	v.SetDefault("selection.min_price", 15)
	v.SetDefault("selection.max_price", 60)
	v.SetDefault("selection.retention_days", 14)
	v.SetDefault("selection.fallback_angle", "Everyday problem, solved")
	v.SetDefault("selection.approve_threshold", 70)
	v.SetDefault("selection.hold_threshold", 55)
	v.SetDefault("selection.on_score_error", "fail")
	v.SetDefault("selection.score_interval_ms", 0)
	v.SetDefault("selection.max_parallel_scores", 1)
	v.SetDefault("selection.default_tracking_tag", "offerline-20")
	v.SetDefault("selection.default_market", "US")
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "selection.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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

// Validate checks that settings required for a scoring run are present.
func (c *Config) Validate() error {
	if c.Anthropic.Key == "" {
		return eris.New("config: anthropic.key is required")
	}
	if c.Selection.TopN <= 0 {
		return eris.New("config: selection.top_n must be positive")
	}
	if c.Selection.VariantsPerProduct <= 0 {
		return eris.New("config: selection.variants_per_product must be positive")
	}
	if c.Selection.ApproveThreshold < c.Selection.HoldThreshold {
		return eris.New("config: selection.approve_threshold must not be below selection.hold_threshold")
	}
	switch c.Selection.OnScoreError {
	case "fail", "skip":
	default:
		return eris.Errorf("config: unknown selection.on_score_error %q (use fail or skip)", c.Selection.OnScoreError)
	}
	return nil
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
