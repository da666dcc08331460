// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"fmt"
	"time"
)

// Config tunes the recommendation core.
type Config struct {
	// ContentWeight and CollabWeight scale the two hybrid inputs.
	ContentWeight float64
	CollabWeight  float64

	// KeywordFactor is the per-keyword-match bonus in content scoring.
	KeywordFactor float64

	// SimilarityTTL bounds staleness of cached similar-user lists.
	SimilarityTTL time.Duration

	// HybridTTL bounds staleness of cached recommendation bundles.
	HybridTTL time.Duration

	// ProfileScanLimit caps the profile sample used for similarity.
	ProfileScanLimit int

	// CandidateLimit caps articles fetched per provider call.
	CandidateLimit int

	// ProviderTimeout bounds each external candidate fetch inside the
	// hybrid computation.
	ProviderTimeout time.Duration
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ContentWeight:    0.6,
		CollabWeight:     0.4,
		KeywordFactor:    3,
		SimilarityTTL:    time.Hour,
		HybridTTL:        10 * time.Minute,
		ProfileScanLimit: 500,
		CandidateLimit:   10,
		ProviderTimeout:  10 * time.Second,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.ContentWeight <= 0 || c.CollabWeight <= 0 {
		return fmt.Errorf("weights must be positive: content=%v collab=%v", c.ContentWeight, c.CollabWeight)
	}
	if c.KeywordFactor < 0 {
		return fmt.Errorf("keyword factor must be non-negative: %v", c.KeywordFactor)
	}
	if c.SimilarityTTL <= 0 || c.HybridTTL <= 0 {
		return fmt.Errorf("cache TTLs must be positive")
	}
	if c.ProfileScanLimit <= 0 {
		return fmt.Errorf("profile scan limit must be positive: %d", c.ProfileScanLimit)
	}
	if c.CandidateLimit <= 0 {
		return fmt.Errorf("candidate limit must be positive: %d", c.CandidateLimit)
	}
	return nil
}
