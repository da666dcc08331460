// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration observes API request latency by route and
	// status class.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "novusfeed",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method", "status"},
	)

	// CacheHits counts cache hits by key family (similar_users,
	// hybrid_rec, news, headlines).
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novusfeed",
			Subsystem: "cache",
			Name:      "hits_total",
			Help:      "Cache hits by key family.",
		},
		[]string{"family"},
	)

	// CacheMisses counts cache misses by key family.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novusfeed",
			Subsystem: "cache",
			Name:      "misses_total",
			Help:      "Cache misses by key family.",
		},
		[]string{"family"},
	)

	// InteractionsRecorded counts recorded interaction events by type.
	InteractionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novusfeed",
			Subsystem: "interactions",
			Name:      "recorded_total",
			Help:      "Interaction events recorded, by type.",
		},
		[]string{"type"},
	)

	// RecommendationsServed counts served recommendation bundles by the
	// source that produced them (cache, hybrid, collaborative,
	// content_based, cold_start).
	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novusfeed",
			Subsystem: "recommend",
			Name:      "served_total",
			Help:      "Recommendation bundles served, by source.",
		},
		[]string{"source"},
	)

	// ProviderRequests counts outbound news-provider calls by operation
	// and outcome.
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "novusfeed",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "News provider requests, by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	// CircuitBreakerState exposes the provider breaker state
	// (0=closed, 1=half-open, 2=open).
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "novusfeed",
			Subsystem: "provider",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0=closed, 1=half-open, 2=open.",
		},
		[]string{"name"},
	)

	// EnrichmentDuration observes article enrichment latency.
	EnrichmentDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "novusfeed",
			Subsystem: "enrich",
			Name:      "duration_seconds",
			Help:      "Per-article enrichment latency.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)
