/*
Copyright 2026 Megaprog

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

     http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package config loads the simulator configuration.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/Megaprog/simplest-cache/internal/logger"
)

// Strategy names accepted in cache.strategy.
const (
	StrategyFIFO = "fifo"
	StrategyLRU  = "lru"
	StrategyLFU  = "lfu"
)

// Config is the simulator configuration.
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	Workload WorkloadConfig `mapstructure:"workload"`
	Log      logger.Config  `mapstructure:"log"`
}

// CacheConfig describes the cache under test.
type CacheConfig struct {
	Name     string `mapstructure:"name"`
	Strategy string `mapstructure:"strategy"` // fifo, lru, lfu
	Capacity int    `mapstructure:"capacity"`
}

// WorkloadConfig describes the operations replayed against the cache.
// When TraceFile is set the remaining fields except FillOnMiss are ignored.
type WorkloadConfig struct {
	TraceFile  string  `mapstructure:"trace_file"`
	Keys       int     `mapstructure:"keys"`        // distinct keys in a generated workload
	Operations int     `mapstructure:"operations"`  // generated operations
	WriteRatio float64 `mapstructure:"write_ratio"` // fraction of generated operations that are puts
	Skew       float64 `mapstructure:"skew"`        // zipf exponent, must be > 1
	Seed       int64   `mapstructure:"seed"`
	FillOnMiss bool    `mapstructure:"fill_on_miss"` // put the key after a missed get
}

// Load reads the configuration from configPath, or from cachesim.yaml in
// the working directory or /etc/cachesim when configPath is empty.
// Environment variables prefixed with CACHESIM_ override file values, for
// example CACHESIM_CACHE_CAPACITY.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("cachesim")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/cachesim")
	}

	v.SetEnvPrefix("CACHESIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.name", "sim")
	v.SetDefault("cache.strategy", StrategyLRU)
	v.SetDefault("cache.capacity", 100)

	v.SetDefault("workload.trace_file", "")
	v.SetDefault("workload.keys", 1000)
	v.SetDefault("workload.operations", 100000)
	v.SetDefault("workload.write_ratio", 0.1)
	v.SetDefault("workload.skew", 1.1)
	v.SetDefault("workload.seed", 1)
	v.SetDefault("workload.fill_on_miss", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_path", "stdout")
}

// Validate checks the configuration for values the simulator cannot use.
func (c *Config) Validate() error {
	switch c.Cache.Strategy {
	case StrategyFIFO, StrategyLRU, StrategyLFU:
	default:
		return fmt.Errorf("invalid cache strategy: %q", c.Cache.Strategy)
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache capacity must be positive, got %d", c.Cache.Capacity)
	}
	if c.Cache.Name == "" {
		return errors.New("cache name cannot be empty")
	}

	if c.Workload.TraceFile == "" {
		if c.Workload.Keys <= 0 {
			return fmt.Errorf("workload keys must be positive, got %d", c.Workload.Keys)
		}
		if c.Workload.Operations < 0 {
			return fmt.Errorf("workload operations cannot be negative, got %d", c.Workload.Operations)
		}
		if c.Workload.WriteRatio < 0 || c.Workload.WriteRatio > 1 {
			return fmt.Errorf("workload write_ratio must be within [0, 1], got %v", c.Workload.WriteRatio)
		}
		if c.Workload.Skew <= 1 {
			return fmt.Errorf("workload skew must be greater than 1, got %v", c.Workload.Skew)
		}
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	return nil
}
