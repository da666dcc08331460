// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/metrics"
	"github.com/tomtom215/novusfeed/internal/models"
)

// BreakerProvider wraps a Provider with a circuit breaker. When the
// upstream fails repeatedly, calls fail fast with ErrUnavailable so
// the recommendation fallback chain can move on without waiting out
// timeouts.
//
// The breaker uses real time for its interval and timeout windows;
// tests exercise the wrapped provider directly.
type BreakerProvider struct {
	inner Provider
	cb    *gobreaker.CircuitBreaker[[]models.CandidateArticle]
	name  string
}

// NewBreakerProvider wraps inner with a named circuit breaker.
// The circuit opens at a 60% failure rate over a one-minute window
// with at least 10 requests, and probes recovery after 2 minutes.
func NewBreakerProvider(name string, inner Provider) *BreakerProvider {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]models.CandidateArticle](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Info().
				Str("breaker", name).
				Str("from", stateToString(from)).
				Str("to", stateToString(to)).
				Msg("Circuit breaker state transition")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
		},
	})

	return &BreakerProvider{inner: inner, cb: cb, name: name}
}

// Search fetches matching articles through the breaker.
func (b *BreakerProvider) Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error) {
	return b.execute(ctx, "search", func() ([]models.CandidateArticle, error) {
		return b.inner.Search(ctx, query, limit)
	})
}

// TopHeadlines fetches top stories through the breaker.
func (b *BreakerProvider) TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error) {
	return b.execute(ctx, "top_headlines", func() ([]models.CandidateArticle, error) {
		return b.inner.TopHeadlines(ctx, category, limit)
	})
}

func (b *BreakerProvider) execute(ctx context.Context, operation string, fn func() ([]models.CandidateArticle, error)) ([]models.CandidateArticle, error) {
	articles, err := b.cb.Execute(fn)
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.ProviderRequests.WithLabelValues(operation, "rejected").Inc()
			logging.Ctx(ctx).Warn().
				Str("breaker", b.name).
				Str("operation", operation).
				Msg("Circuit breaker rejected request")
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		metrics.ProviderRequests.WithLabelValues(operation, "failure").Inc()
		return nil, err
	}

	metrics.ProviderRequests.WithLabelValues(operation, "success").Inc()
	return articles, nil
}

// State reports the breaker state as a string for health reporting.
func (b *BreakerProvider) State() string {
	return stateToString(b.cb.State())
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

var _ Provider = (*BreakerProvider)(nil)
