// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package metrics registers Novusfeed's Prometheus collectors.
//
// All collectors use promauto against the default registry and are
// exposed at /metrics. Label cardinality is kept low on purpose: no
// per-user or per-article labels.
package metrics
