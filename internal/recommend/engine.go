// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/metrics"
	"github.com/tomtom215/novusfeed/internal/models"
)

// Cold-start messages distinguish a brand-new user from an established
// user whose every recommendation stage came up empty.
const (
	msgColdStartNewUser = "No interactions yet. Showing trending news."
	msgColdStartNoData  = "Not enough data. Showing trending news."
)

// Engine orchestrates the recommendation fallback chain.
//
// The engine owns the hybrid cache: it is the single writer of
// hybrid_rec keys, and cached values are complete bundles encoded with
// the canonical codec. Only successful hybrid bundles are cached;
// fallback results are recomputed per request.
type Engine struct {
	profiles   ProfileStore
	cache      cache.Cache
	provider   CandidateProvider
	similarity *SimilarityEngine
	content    *ContentScorer
	blender    *Blender
	cfg        Config
}

// NewEngine wires the recommendation core together.
func NewEngine(profiles ProfileStore, c cache.Cache, provider CandidateProvider, cfg Config) *Engine {
	return &Engine{
		profiles:   profiles,
		cache:      c,
		provider:   provider,
		similarity: NewSimilarityEngine(profiles, c, cfg),
		content:    NewContentScorer(cfg),
		blender:    NewBlender(cfg),
		cfg:        cfg,
	}
}

// Similarity exposes the similarity engine for the collaborative API
// endpoint.
func (e *Engine) Similarity() *SimilarityEngine {
	return e.similarity
}

// Recommend produces a recommendation bundle for the user, walking the
// fallback chain until a stage yields results. An error is returned
// only when every stage, including trending headlines, fails.
func (e *Engine) Recommend(ctx context.Context, userID string) (*Bundle, error) {
	log := logging.Ctx(ctx)

	// Stage 0: cached bundle.
	key := cache.KeyHybrid(userID)
	if data, found, err := e.cache.Get(key); err == nil && found {
		bundle := &Bundle{}
		if derr := json.Unmarshal(data, bundle); derr == nil {
			bundle.Source = SourceCache
			metrics.CacheHits.WithLabelValues("hybrid_rec").Inc()
			metrics.RecommendationsServed.WithLabelValues(string(SourceCache)).Inc()
			return bundle, nil
		} else {
			log.Warn().Err(derr).Str("key", key).Msg("Corrupt hybrid cache entry")
		}
	}
	metrics.CacheMisses.WithLabelValues("hybrid_rec").Inc()

	// Stage 1: cold start for users with no profile.
	profile, found, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		log.Debug().Str("user_id", userID).Msg("Cold start: no profile")
		return e.coldStart(ctx, msgColdStartNewUser)
	}

	// Stage 2: hybrid. Both inputs run concurrently; a failed input
	// degrades to empty rather than failing the request.
	contentScores, simEntries := e.hybridInputs(ctx, userID, profile)

	collab := make([]CollabItem, 0, len(simEntries))
	for _, entry := range simEntries {
		// Similarity entries carry no article key; Blend skips them.
		collab = append(collab, CollabItem{Score: entry.Similarity})
	}

	blended, err := e.blender.Blend(contentScores, collab)
	if err == nil {
		bundle := &Bundle{
			Source:          SourceHybrid,
			Count:           len(blended),
			Recommendations: blended,
		}
		if data, merr := json.Marshal(bundle); merr == nil {
			if cerr := e.cache.SetEx(key, e.cfg.HybridTTL, data); cerr != nil {
				log.Warn().Err(cerr).Str("key", key).Msg("Hybrid cache write failed")
			}
		}
		metrics.RecommendationsServed.WithLabelValues(string(SourceHybrid)).Inc()
		return bundle, nil
	}
	if !errors.Is(err, ErrNothingToBlend) {
		log.Warn().Err(err).Str("user_id", userID).Msg("Hybrid blend failed")
	}

	// Stage 3: collaborative fallback reuses the similarity result.
	if len(simEntries) > 0 {
		metrics.RecommendationsServed.WithLabelValues(string(SourceCollaborative)).Inc()
		return &Bundle{
			Source:       SourceCollaborative,
			Count:        len(simEntries),
			SimilarUsers: simEntries,
		}, nil
	}

	// Stage 4: content-based fallback with an independent fetch.
	if ranked, err := e.contentFallback(ctx, profile); err == nil && len(ranked) > 0 {
		metrics.RecommendationsServed.WithLabelValues(string(SourceContentBased)).Inc()
		return &Bundle{
			Source:          SourceContentBased,
			Count:           len(ranked),
			Recommendations: ranked,
		}, nil
	} else if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Content-based fallback failed")
	}

	// Stage 5: trending as the last resort.
	return e.coldStart(ctx, msgColdStartNoData)
}

// hybridInputs computes the content and collaborative inputs
// concurrently. Either input failing yields an empty result for that
// side.
func (e *Engine) hybridInputs(ctx context.Context, userID string, profile *models.UserProfile) (map[string]models.ScoredArticle, []models.SimilarityEntry) {
	log := logging.Ctx(ctx)

	contentCh := make(chan map[string]models.ScoredArticle, 1)
	simCh := make(chan []models.SimilarityEntry, 1)

	go func() {
		scores, err := e.contentScores(ctx, profile)
		if err != nil {
			if !errors.Is(err, ErrNoTopics) {
				log.Debug().Err(err).Str("user_id", userID).Msg("Content scoring unavailable")
			}
			contentCh <- nil
			return
		}
		contentCh <- scores
	}()

	go func() {
		entries, err := e.similarity.SimilarUsers(ctx, userID)
		if err != nil {
			if !errors.Is(err, ErrNoProfile) {
				log.Debug().Err(err).Str("user_id", userID).Msg("Similarity unavailable")
			}
			simCh <- nil
			return
		}
		simCh <- entries
	}()

	return <-contentCh, <-simCh
}

// contentScores fetches candidates for the profile's top topic and
// scores them.
func (e *Engine) contentScores(ctx context.Context, profile *models.UserProfile) (map[string]models.ScoredArticle, error) {
	topTopic, _, ok := profile.TopTopic()
	if !ok {
		return nil, ErrNoTopics
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	candidates, err := e.provider.Search(fetchCtx, topTopic, e.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates for %q: %w", topTopic, err)
	}

	return e.content.Score(profile, candidates)
}

// contentFallback fetches and ranks candidates independently of the
// hybrid attempt.
func (e *Engine) contentFallback(ctx context.Context, profile *models.UserProfile) ([]Recommendation, error) {
	topTopic, _, ok := profile.TopTopic()
	if !ok {
		return nil, ErrNoTopics
	}

	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	candidates, err := e.provider.Search(fetchCtx, topTopic, e.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates for %q: %w", topTopic, err)
	}

	return e.content.Rank(profile, candidates)
}

// coldStart serves trending headlines. This is the chain's floor: if
// trending fails too, the whole request fails.
func (e *Engine) coldStart(ctx context.Context, message string) (*Bundle, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, e.cfg.ProviderTimeout)
	defer cancel()

	articles, err := e.provider.TopHeadlines(fetchCtx, "general", e.cfg.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: trending fetch: %v", ErrUpstreamUnavailable, err)
	}

	metrics.RecommendationsServed.WithLabelValues(string(SourceColdStart)).Inc()
	return &Bundle{
		Source:   SourceColdStart,
		Message:  message,
		Count:    len(articles),
		Articles: articles,
	}, nil
}
