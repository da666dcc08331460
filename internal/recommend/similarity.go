// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/metrics"
	"github.com/tomtom215/novusfeed/internal/models"
)

// SimilarityEngine computes user-user cosine similarity over keyword
// score vectors.
type SimilarityEngine struct {
	profiles ProfileStore
	cache    cache.Cache
	cfg      Config
}

// NewSimilarityEngine builds a similarity engine.
func NewSimilarityEngine(profiles ProfileStore, c cache.Cache, cfg Config) *SimilarityEngine {
	return &SimilarityEngine{profiles: profiles, cache: c, cfg: cfg}
}

// SimilarUsers returns other users ranked by cosine similarity to the
// target user's keyword vector, highest first. Only strictly positive
// similarities are kept, rounded to four decimals.
//
// Results are cached; an empty result is never cached, so a user who
// gains neighbors becomes visible on the next call rather than after
// the TTL.
func (e *SimilarityEngine) SimilarUsers(ctx context.Context, userID string) ([]models.SimilarityEntry, error) {
	key := cache.KeySimilarUsers(userID)

	if data, found, err := e.cache.Get(key); err == nil && found {
		var entries []models.SimilarityEntry
		if derr := json.Unmarshal(data, &entries); derr == nil {
			metrics.CacheHits.WithLabelValues("similar_users").Inc()
			return entries, nil
		} else {
			logging.Ctx(ctx).Warn().Err(derr).Str("key", key).Msg("Corrupt similarity cache entry")
		}
	}
	metrics.CacheMisses.WithLabelValues("similar_users").Inc()

	target, found, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load target profile: %w", err)
	}
	if !found {
		return nil, ErrNoProfile
	}

	// Bounded sample of the profile population, not full coverage.
	others, err := e.profiles.ListProfiles(ctx, e.cfg.ProfileScanLimit)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	entries := make([]models.SimilarityEntry, 0, len(others))
	for _, other := range others {
		if other.UserID == userID {
			continue
		}
		sim := cosineSimilarity(target.Keywords, other.Keywords)
		if sim > 0 {
			entries = append(entries, models.SimilarityEntry{
				UserID:     other.UserID,
				Similarity: round4(sim),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Similarity > entries[j].Similarity
	})

	if len(entries) > 0 {
		if data, err := json.Marshal(entries); err == nil {
			if err := e.cache.SetEx(key, e.cfg.SimilarityTTL, data); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("Similarity cache write failed")
			}
		}
	}

	logging.Ctx(ctx).Debug().
		Str("user_id", userID).
		Int("neighbors", len(entries)).
		Int("scanned", len(others)).
		Msg("Similarity computed")

	return entries, nil
}

// cosineSimilarity computes the cosine of two sparse score vectors.
// The dot product runs over the union of keys; each norm is taken over
// the vector's own full set of values. Either vector having zero norm
// yields 0.
func cosineSimilarity(a, b map[string]float64) float64 {
	var dot float64
	for k, av := range a {
		if bv, ok := b[k]; ok {
			dot += av * bv
		}
	}

	var normA, normB float64
	for _, v := range a {
		normA += v * v
	}
	for _, v := range b {
		normB += v * v
	}
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// round4 rounds to four decimal places for stable serialized output.
func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
