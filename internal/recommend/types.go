// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"context"
	"errors"

	"github.com/tomtom215/novusfeed/internal/models"
)

// Source identifies which stage of the fallback chain produced a
// bundle.
type Source string

// Bundle sources, in fallback order.
const (
	SourceCache         Source = "cache"
	SourceHybrid        Source = "hybrid"
	SourceCollaborative Source = "collaborative"
	SourceContentBased  Source = "content_based"
	SourceColdStart     Source = "cold_start"
)

// Sentinel errors for the recommendation stages.
var (
	// ErrNoProfile means the user has never interacted: the cold-start
	// signal.
	ErrNoProfile = errors.New("user has no profile")

	// ErrNoTopics means the profile exists but carries no topic scores,
	// so content-based scoring has no anchor.
	ErrNoTopics = errors.New("profile has no topics")

	// ErrEmptyKeywords rejects interaction events without keywords.
	ErrEmptyKeywords = errors.New("interaction has no keywords")

	// ErrNothingToBlend means both hybrid inputs were empty.
	ErrNothingToBlend = errors.New("no recommendations to blend")

	// ErrUpstreamUnavailable means every stage including trending
	// failed.
	ErrUpstreamUnavailable = errors.New("recommendation upstreams unavailable")
)

// Recommendation is one scored article in a bundle. Key is the
// article's identity (its URL).
type Recommendation struct {
	Key     string                  `json:"key"`
	Article models.CandidateArticle `json:"article"`
	Score   float64                 `json:"score"`

	// MatchedKeywords is set by content-based bundles only.
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// Bundle is a complete recommendation response. Exactly one of the
// payload fields is populated, according to Source: Recommendations for
// hybrid and content_based, SimilarUsers for collaborative, Articles
// for cold_start. Cached bundles replay whichever payload they carried.
type Bundle struct {
	Source  Source `json:"source"`
	Message string `json:"message,omitempty"`
	Count   int    `json:"count,omitempty"`

	Recommendations []Recommendation          `json:"recommendations,omitempty"`
	SimilarUsers    []models.SimilarityEntry  `json:"similar_users,omitempty"`
	Articles        []models.CandidateArticle `json:"articles,omitempty"`
}

// ProfileStore is the profile persistence the core depends on.
// GetProfile reports absence through the boolean, not an error.
type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error)
	UpsertProfile(ctx context.Context, profile *models.UserProfile) error
	ListProfiles(ctx context.Context, limit int) ([]*models.UserProfile, error)
}

// InteractionStore is the append-only interaction log the aggregator
// writes to.
type InteractionStore interface {
	AppendInteraction(ctx context.Context, event *models.InteractionEvent) error
}

// CandidateProvider fetches candidate articles from the news upstream.
type CandidateProvider interface {
	Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error)
	TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error)
}
