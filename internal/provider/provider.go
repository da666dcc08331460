// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package provider fetches candidate articles from external news
// sources. The GNews HTTP API is the primary backend; an RSS backend
// exists for deployments without an API key.
//
// Providers are rate limited per instance and wrapped in a circuit
// breaker so a failing upstream degrades recommendations instead of
// stalling them.
package provider

import (
	"context"
	"errors"

	"github.com/tomtom215/novusfeed/internal/models"
)

// ErrUnavailable is returned when the upstream cannot serve requests,
// whether from transport failure or an open circuit breaker.
var ErrUnavailable = errors.New("news provider unavailable")

// Provider fetches candidate articles. Implementations must honor the
// context deadline and return ErrUnavailable (possibly wrapped) when
// the upstream cannot be reached.
type Provider interface {
	// Search returns articles matching the query.
	Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error)

	// TopHeadlines returns current top stories for a category. Empty
	// category means the general feed.
	TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error)
}
