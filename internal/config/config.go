// Package config loads service settings from an optional config file and
// FLOOD_RISK_* environment variables, applying defaults where unset.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service settings.
type Config struct {
	Kafka    KafkaConfig    `mapstructure:"kafka"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	History  HistoryConfig  `mapstructure:"history"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// KafkaConfig holds broker and topic settings for the assessment pipeline.
type KafkaConfig struct {
	Brokers     string `mapstructure:"brokers"` // comma-separated
	SourceTopic string `mapstructure:"source_topic"`
	SinkTopic   string `mapstructure:"sink_topic"`
	GroupID     string `mapstructure:"group_id"`
}

// BrokerList splits the comma-separated broker string.
func (k KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(k.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// HTTPConfig holds the listen address for health and assessment endpoints.
type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

// PipelineConfig holds batch sizing and shutdown behavior.
type PipelineConfig struct {
	BatchSize       int           `mapstructure:"batch_size"`
	FlushInterval   time.Duration `mapstructure:"flush_interval"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HistoryConfig controls the sqlite-backed historical flood-frequency model.
// When disabled, the deterministic placeholder model is used instead.
type HistoryConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	DBPath    string `mapstructure:"db_path"`
	CacheSize int    `mapstructure:"cache_size"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file (optional; pass "" for
// defaults and environment only) and FLOOD_RISK_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FLOOD_RISK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("kafka.brokers", "localhost:9092")
	v.SetDefault("kafka.source_topic", "feature-bundles")
	v.SetDefault("kafka.sink_topic", "risk-assessments")
	v.SetDefault("kafka.group_id", "flood-risk-engine")

	v.SetDefault("http.addr", ":8080")

	v.SetDefault("pipeline.batch_size", 50)
	v.SetDefault("pipeline.flush_interval", 500*time.Millisecond)
	v.SetDefault("pipeline.shutdown_timeout", 10*time.Second)

	v.SetDefault("history.enabled", false)
	v.SetDefault("history.db_path", "")
	v.SetDefault("history.cache_size", 1000)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

func (c *Config) validate() error {
	if len(c.Kafka.BrokerList()) == 0 {
		return errors.New("kafka.brokers is required")
	}
	if c.Kafka.SourceTopic == "" {
		return errors.New("kafka.source_topic is required")
	}
	if c.Kafka.SinkTopic == "" {
		return errors.New("kafka.sink_topic is required")
	}
	if c.Pipeline.BatchSize <= 0 {
		return errors.New("pipeline.batch_size must be positive")
	}
	if c.Pipeline.FlushInterval <= 0 {
		return errors.New("pipeline.flush_interval must be positive")
	}
	if c.Pipeline.ShutdownTimeout <= 0 {
		return errors.New("pipeline.shutdown_timeout must be positive")
	}
	if c.History.Enabled && c.History.DBPath == "" {
		return errors.New("history.enabled is true but history.db_path is not set")
	}
	if c.History.CacheSize <= 0 {
		return errors.New("history.cache_size must be positive")
	}
	return nil
}
