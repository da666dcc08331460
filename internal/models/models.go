// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package models defines the shared domain types for Novusfeed.
//
// The types here are pure data: interaction events, user profiles,
// candidate articles and scored results. All behavior that mutates a
// profile lives in the recommend package; models only expose read
// helpers so ownership stays unambiguous.
package models

import (
	"sort"
	"time"
)

// InteractionType classifies user-article interactions.
type InteractionType string

// Supported interaction types.
const (
	InteractionView    InteractionType = "view"
	InteractionRead    InteractionType = "read"
	InteractionLike    InteractionType = "like"
	InteractionSave    InteractionType = "save"
	InteractionDislike InteractionType = "dislike"
)

// Weight returns the behavioral score contribution for this interaction
// type. Unknown types default to 1 so a schema drift upstream degrades
// to a weak positive signal instead of an error.
func (t InteractionType) Weight() float64 {
	switch t {
	case InteractionLike:
		return 5
	case InteractionSave:
		return 8
	case InteractionDislike:
		return -5
	case InteractionView, InteractionRead:
		return 1
	default:
		return 1
	}
}

// Valid reports whether t is one of the supported interaction types.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionView, InteractionRead, InteractionLike, InteractionSave, InteractionDislike:
		return true
	default:
		return false
	}
}

// InteractionEvent is an immutable record of a single user-article
// interaction. Events are persisted verbatim for audit and folded into
// the user's profile by the aggregator.
type InteractionEvent struct {
	// ID is assigned by the aggregator when the event is recorded.
	ID string `json:"id,omitempty"`

	UserID    string   `json:"user_id" validate:"required"`
	ArticleID string   `json:"article_id" validate:"required"`
	Topic     string   `json:"topic" validate:"required"`
	Keywords  []string `json:"keywords" validate:"required,min=1,dive,required"`

	// Type is the interaction class (view, read, like, save, dislike).
	Type InteractionType `json:"interaction_type" validate:"required"`

	// CreatedAt is the arrival timestamp, assigned on record.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// UserProfile holds a user's aggregated behavioral scores. A profile
// exists only after the first recorded interaction; absence is the
// cold-start signal, not an empty profile.
type UserProfile struct {
	UserID string `json:"user_id"`

	// Topics maps topic label to cumulative interaction score.
	Topics map[string]float64 `json:"topics"`

	// Keywords maps keyword to cumulative interaction score.
	Keywords map[string]float64 `json:"keywords"`

	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// NewUserProfile returns an empty profile for the given user.
func NewUserProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:   userID,
		Topics:   make(map[string]float64),
		Keywords: make(map[string]float64),
	}
}

// TopTopic returns the highest-scoring topic. Ties are broken by
// lexicographic order so the result is deterministic regardless of map
// iteration order. The boolean is false when the profile has no topics.
func (p *UserProfile) TopTopic() (string, float64, bool) {
	if len(p.Topics) == 0 {
		return "", 0, false
	}

	topics := make([]string, 0, len(p.Topics))
	for t := range p.Topics {
		topics = append(topics, t)
	}
	sort.Strings(topics)

	best := topics[0]
	for _, t := range topics[1:] {
		if p.Topics[t] > p.Topics[best] {
			best = t
		}
	}
	return best, p.Topics[best], true
}

// SimilarityEntry is one collaborative-filtering result: another user
// and their cosine similarity to the target user.
type SimilarityEntry struct {
	UserID     string  `json:"user_id"`
	Similarity float64 `json:"similarity"`
}

// CandidateArticle is an article fetched from an external provider.
// It is ephemeral: the recommendation core reads it but never owns it.
// URL is the article's identity.
type CandidateArticle struct {
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Content     string    `json:"content,omitempty"`
	Source      string    `json:"source,omitempty"`
	Topic       string    `json:"topic,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`

	// Keywords and Summary are filled by the enrichment pipeline.
	Keywords []string `json:"keywords,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

// ScoredArticle pairs a candidate article with its content score.
// Scores are dimensionless and comparable only within one response.
type ScoredArticle struct {
	Article CandidateArticle `json:"article"`
	Score   float64          `json:"score"`

	// MatchedKeywords lists the profile keywords found in the article
	// text, sorted alphabetically.
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// User is a registered account. PasswordHash is a bcrypt hash and is
// never serialized in API responses.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
