// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/metrics"
	"github.com/tomtom215/novusfeed/internal/models"
)

// Aggregator folds interaction events into user profiles. It is the
// only writer of profiles; everything else reads them.
type Aggregator struct {
	profiles     ProfileStore
	interactions InteractionStore
	cache        cache.Cache
}

// NewAggregator builds an aggregator over the given stores.
func NewAggregator(profiles ProfileStore, interactions InteractionStore, c cache.Cache) *Aggregator {
	return &Aggregator{profiles: profiles, interactions: interactions, cache: c}
}

// Record persists an interaction event and applies its weight to the
// user's profile. The topic gains the weight once; every listed
// keyword gains it once. The user's cached hybrid bundle is
// invalidated; the similarity cache is left to expire on its own TTL.
//
// Returns the updated profile.
func (a *Aggregator) Record(ctx context.Context, event *models.InteractionEvent) (*models.UserProfile, error) {
	if len(event.Keywords) == 0 {
		return nil, ErrEmptyKeywords
	}

	event.ID = uuid.NewString()
	event.CreatedAt = time.Now().UTC()

	if err := a.interactions.AppendInteraction(ctx, event); err != nil {
		return nil, fmt.Errorf("append interaction: %w", err)
	}

	profile, found, err := a.profiles.GetProfile(ctx, event.UserID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		profile = models.NewUserProfile(event.UserID)
	}

	weight := event.Type.Weight()
	profile.Topics[event.Topic] += weight
	for _, kw := range event.Keywords {
		profile.Keywords[kw] += weight
	}
	profile.UpdatedAt = event.CreatedAt

	if err := a.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	// Cache invalidation is best-effort: the bundle expires on its TTL
	// anyway, so a failed delete only delays freshness.
	if err := a.cache.Delete(cache.KeyHybrid(event.UserID)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("user_id", event.UserID).
			Msg("Hybrid cache invalidation failed")
	}

	metrics.InteractionsRecorded.WithLabelValues(string(event.Type)).Inc()
	logging.Ctx(ctx).Debug().
		Str("user_id", event.UserID).
		Str("topic", event.Topic).
		Str("type", string(event.Type)).
		Float64("weight", weight).
		Msg("Interaction recorded")

	return profile, nil
}

// SeedInterests applies declared interests to a user's profile as
// view-weight topic scores. Preference updates flow through the
// aggregator so profile writes stay single-writer.
func (a *Aggregator) SeedInterests(ctx context.Context, userID string, interests []string) (*models.UserProfile, error) {
	profile, found, err := a.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if !found {
		profile = models.NewUserProfile(userID)
	}

	weight := models.InteractionView.Weight()
	for _, interest := range interests {
		if interest == "" {
			continue
		}
		profile.Topics[interest] += weight
	}
	profile.UpdatedAt = time.Now().UTC()

	if err := a.profiles.UpsertProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	if err := a.cache.Delete(cache.KeyHybrid(userID)); err != nil {
		logging.Ctx(ctx).Warn().Err(err).
			Str("user_id", userID).
			Msg("Hybrid cache invalidation failed")
	}

	return profile, nil
}
