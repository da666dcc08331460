// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package cache provides the TTL key-value cache used for recommendation
// bundles, similarity lists and enriched news results.
//
// Two backends implement the same contract: a BadgerDB-backed cache with
// native key TTLs (shared with the document store's DB handle) and an
// in-process map cache for tests and single-node deployments.
//
// Values are opaque bytes; callers own the encoding. All recommendation
// values use one canonical codec (goccy/go-json) so the similarity and
// hybrid write paths can never diverge.
package cache

import "time"

// Cache is the TTL key-value contract.
//
// Readers never block writers; keys have last-write-wins semantics.
// Get returns (nil, false, nil) for a missing or expired key - absence
// is not an error.
type Cache interface {
	Get(key string) ([]byte, bool, error)
	SetEx(key string, ttl time.Duration, value []byte) error
	Delete(key string) error

	// Keys returns all live keys with the given prefix. Used by the
	// admin surface; not part of the hot path.
	Keys(prefix string) ([]string, error)
}

// Well-known key builders. Every writer and invalidator goes through
// these so no two code paths can construct the same key differently.

// KeySimilarUsers is the similarity-list cache key for a user.
func KeySimilarUsers(userID string) string {
	return "similar_users:" + userID
}

// KeyHybrid is the hybrid-recommendation cache key for a user.
// Recording an interaction for the user deletes exactly this key.
func KeyHybrid(userID string) string {
	return "hybrid_rec:" + userID
}

// KeyNews is the cache key for an enriched search result.
func KeyNews(query string) string {
	return "news:" + query
}

// KeyHeadlines is the cache key for enriched category headlines.
func KeyHeadlines(category string) string {
	return "headlines:" + category
}
