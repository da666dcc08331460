// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the config file locations searched in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/novusfeed/config.yaml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "NOVUSFEED_CONFIG"

// envPrefix is stripped from environment variables before mapping them
// to koanf paths: NOVUSFEED_SERVER_PORT -> server.port.
const envPrefix = "NOVUSFEED_"

// defaultConfig returns a Config with all defaults applied.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:               "0.0.0.0",
			Port:               8080,
			ReadTimeout:        15 * time.Second,
			WriteTimeout:       30 * time.Second,
			ShutdownTimeout:    10 * time.Second,
			RateLimitPerMinute: 300,
		},
		Store: StoreConfig{
			Path:       "/data/novusfeed",
			GCInterval: 10 * time.Minute,
		},
		Cache: CacheConfig{
			Backend:       "badger",
			SweepInterval: time.Minute,
		},
		Provider: ProviderConfig{
			Backend:       "gnews",
			BaseURL:       "https://gnews.io/api/v4",
			Language:      "en",
			Country:       "in",
			MaxResults:    10,
			Timeout:       10 * time.Second,
			RatePerSecond: 1,
			Burst:         3,
		},
		Recommend: RecommendConfig{
			ContentWeight:    0.6,
			CollabWeight:     0.4,
			KeywordFactor:    3,
			SimilarityTTL:    time.Hour,
			HybridTTL:        10 * time.Minute,
			ProfileScanLimit: 500,
			ProviderTimeout:  10 * time.Second,
		},
		Enrich: EnrichConfig{
			Workers:          4,
			MaxKeywords:      5,
			SummarySentences: 3,
			FetchTimeout:     10 * time.Second,
			NewsTTL:          5 * time.Minute,
		},
		Auth: AuthConfig{
			TokenExpiry: 30 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file
// and NOVUSFEED_-prefixed environment variables, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(envPrefix, ".", envTransform)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, honoring
// the NOVUSFEED_CONFIG override.
func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps NOVUSFEED_SECTION_SOME_KEY to section.some_key.
// Only the first underscore separates the section; the rest stay
// underscored to match the koanf struct tags.
func envTransform(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	parts := strings.SplitN(s, "_", 2)
	if len(parts) == 1 {
		return parts[0]
	}
	return parts[0] + "." + parts[1]
}
