// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package config holds the application configuration loaded via koanf.
//
// Configuration loading order:
//  1. Built-in defaults
//  2. Optional YAML config file (config.yaml)
//  3. Environment variables (NOVUSFEED_ prefix, highest priority)
//
// Config is immutable after Load() and safe for concurrent reads.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Store     StoreConfig     `koanf:"store"`
	Cache     CacheConfig     `koanf:"cache"`
	Provider  ProviderConfig  `koanf:"provider"`
	Recommend RecommendConfig `koanf:"recommend"`
	Enrich    EnrichConfig    `koanf:"enrich"`
	Auth      AuthConfig      `koanf:"auth"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// RateLimitPerMinute caps requests per client IP across the API.
	RateLimitPerMinute int `koanf:"rate_limit_per_minute"`
}

// StoreConfig holds BadgerDB settings for the document store.
type StoreConfig struct {
	// Path is the on-disk Badger directory. Ignored when InMemory is set.
	Path     string `koanf:"path"`
	InMemory bool   `koanf:"in_memory"`

	// GCInterval is how often the value-log garbage collector runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// CacheConfig holds TTL-cache settings.
type CacheConfig struct {
	// Backend selects the cache implementation: badger or memory.
	Backend string `koanf:"backend"`

	// SweepInterval is how often the memory backend evicts expired
	// entries. The badger backend expires keys natively.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// ProviderConfig holds news-provider settings.
type ProviderConfig struct {
	// Backend selects the provider: gnews or rss.
	Backend string `koanf:"backend"`

	BaseURL    string        `koanf:"base_url"`
	APIKey     string        `koanf:"api_key"`
	Language   string        `koanf:"language"`
	Country    string        `koanf:"country"`
	MaxResults int           `koanf:"max_results"`
	Timeout    time.Duration `koanf:"timeout"`

	// RatePerSecond and Burst bound outbound request rate.
	RatePerSecond float64 `koanf:"rate_per_second"`
	Burst         int     `koanf:"burst"`

	// Feeds lists RSS feed URLs for the rss backend.
	Feeds []string `koanf:"feeds"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	ContentWeight float64 `koanf:"content_weight"`
	CollabWeight  float64 `koanf:"collab_weight"`
	KeywordFactor float64 `koanf:"keyword_factor"`

	// SimilarityTTL bounds staleness of cached similar-user lists.
	SimilarityTTL time.Duration `koanf:"similarity_ttl"`

	// HybridTTL bounds staleness of cached hybrid bundles.
	HybridTTL time.Duration `koanf:"hybrid_ttl"`

	// ProfileScanLimit caps the all-profiles scan used by the
	// similarity engine. A fixed-size sample, not full coverage.
	ProfileScanLimit int `koanf:"profile_scan_limit"`

	// ProviderTimeout bounds each external candidate fetch.
	ProviderTimeout time.Duration `koanf:"provider_timeout"`
}

// EnrichConfig holds article enrichment settings.
type EnrichConfig struct {
	// Workers bounds the enrichment worker pool.
	Workers int `koanf:"workers"`

	MaxKeywords      int           `koanf:"max_keywords"`
	SummarySentences int           `koanf:"summary_sentences"`
	FetchTimeout     time.Duration `koanf:"fetch_timeout"`

	// NewsTTL is the cache TTL for enriched search/headline results.
	NewsTTL time.Duration `koanf:"news_ttl"`
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	JWTSecret   string        `koanf:"jwt_secret"`
	TokenExpiry time.Duration `koanf:"token_expiry"`

	// AdminKey guards the admin endpoints. Empty disables them.
	AdminKey string `koanf:"admin_key"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("store.path is required unless store.in_memory is set")
	}
	switch c.Cache.Backend {
	case "badger", "memory":
	default:
		return fmt.Errorf("cache.backend must be badger or memory, got %q", c.Cache.Backend)
	}
	switch c.Provider.Backend {
	case "gnews", "rss":
	default:
		return fmt.Errorf("provider.backend must be gnews or rss, got %q", c.Provider.Backend)
	}
	if c.Provider.Backend == "gnews" && c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required for the gnews backend")
	}
	if c.Recommend.ContentWeight <= 0 || c.Recommend.CollabWeight <= 0 {
		return fmt.Errorf("recommend weights must be positive")
	}
	if c.Recommend.ProfileScanLimit <= 0 {
		return fmt.Errorf("recommend.profile_scan_limit must be positive")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	return nil
}
