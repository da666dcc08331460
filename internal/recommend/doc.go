// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package recommend implements the recommendation core: interaction
// aggregation into user profiles, user-user collaborative filtering,
// content-based candidate scoring, hybrid blending and the fallback
// orchestration that ties them together.
//
// The engine degrades through a fixed chain: cached bundle, hybrid
// (content + collaborative), collaborative alone, content-based alone,
// and finally trending headlines for cold starts. Every stage that
// fails hands over to the next; only a failure of the entire chain
// surfaces as an error.
//
// Dependencies are expressed as small consumer interfaces (ProfileStore,
// InteractionStore, CandidateProvider) so the store and provider
// packages stay decoupled from the core and tests can swap fakes in.
package recommend
