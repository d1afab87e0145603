package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Memo     MemoConfig     `mapstructure:"memo" yaml:"memo"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Tune     TuneConfig     `mapstructure:"tune" yaml:"tune"`
	Sampling SamplingConfig `mapstructure:"sampling" yaml:"sampling"`
}

// MemoConfig selects the store behind memoized functions.
type MemoConfig struct {
	Store    string `mapstructure:"store" yaml:"store"`       // trie, sync, bounded, sharded, lru, ristretto, memdb
	Capacity int    `mapstructure:"capacity" yaml:"capacity"` // bounded kinds only
	Shards   int    `mapstructure:"shards" yaml:"shards"`     // sharded only
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"` // json, console
}

// TuneConfig drives the hyperparameter search demo.
type TuneConfig struct {
	Trials     int    `mapstructure:"trials" yaml:"trials"`
	Workers    int    `mapstructure:"workers" yaml:"workers"`
	Seed       uint64 `mapstructure:"seed" yaml:"seed"`
	Direction  string `mapstructure:"direction" yaml:"direction"` // maximize, minimize
	SampleSize int    `mapstructure:"sample_size" yaml:"sample_size"`
}

// SamplingConfig drives the Monte Carlo demo.
type SamplingConfig struct {
	Samples int    `mapstructure:"samples" yaml:"samples"`
	Workers int    `mapstructure:"workers" yaml:"workers"`
	Seed    uint64 `mapstructure:"seed" yaml:"seed"`
}

var ErrInvalidConfig = errors.New("invalid config")

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyMemoStore, "trie")
	v.SetDefault(KeyMemoCapacity, 1024)
	v.SetDefault(KeyMemoShards, 16)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "json")
	v.SetDefault(KeyTuneTrials, 20)
	v.SetDefault(KeyTuneWorkers, 4)
	v.SetDefault(KeyTuneSeed, 42)
	v.SetDefault(KeyTuneDirection, "maximize")
	v.SetDefault(KeyTuneSampleSize, 200)
	v.SetDefault(KeySamplingSamples, 1_000_000)
	v.SetDefault(KeySamplingWorkers, 4)
	v.SetDefault(KeySamplingSeed, 7)
}

// Load reads configuration from path (if non-empty), then TABLEIZE_* environment
// variables, on top of defaults.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(delimiter, "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values viper can't type-check.
func (c Config) Validate() error {
	if c.Memo.Capacity < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidConfig, KeyMemoCapacity)
	}
	if c.Tune.Trials <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyTuneTrials)
	}
	if c.Tune.Workers <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeyTuneWorkers)
	}
	if c.Tune.SampleSize < 10 {
		return fmt.Errorf("%w: %s must be at least 10", ErrInvalidConfig, KeyTuneSampleSize)
	}
	switch c.Tune.Direction {
	case "maximize", "minimize":
	default:
		return fmt.Errorf("%w: %s must be maximize or minimize, got %q", ErrInvalidConfig, KeyTuneDirection, c.Tune.Direction)
	}
	if c.Sampling.Samples <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, KeySamplingSamples)
	}
	return nil
}

// YAML renders the effective configuration.
func (c Config) YAML() (string, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
