// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/models"
)

func newTestAggregator() (*Aggregator, *fakeStore, *cache.MemoryCache) {
	store := newFakeStore()
	c := cache.NewMemoryCache()
	return NewAggregator(store, store, c), store, c
}

func TestRecordCreatesProfileAndAppliesWeights(t *testing.T) {
	agg, store, _ := newTestAggregator()
	ctx := context.Background()

	profile, err := agg.Record(ctx, &models.InteractionEvent{
		UserID:    "u1",
		ArticleID: "https://example.com/a",
		Topic:     "technology",
		Keywords:  []string{"ai", "chips"},
		Type:      models.InteractionLike,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if profile.Topics["technology"] != 5 {
		t.Errorf("topic score = %v, want 5", profile.Topics["technology"])
	}
	if profile.Keywords["ai"] != 5 || profile.Keywords["chips"] != 5 {
		t.Errorf("keyword scores = %v, want 5 each", profile.Keywords)
	}

	if len(store.events) != 1 {
		t.Fatalf("got %d persisted events, want 1", len(store.events))
	}
	event := store.events[0]
	if event.ID == "" {
		t.Error("event ID not assigned")
	}
	if event.CreatedAt.IsZero() {
		t.Error("event timestamp not assigned")
	}
}

func TestRecordAccumulatesAcrossInteractions(t *testing.T) {
	agg, _, _ := newTestAggregator()
	ctx := context.Background()

	interactions := []struct {
		typ  models.InteractionType
		want float64
	}{
		{models.InteractionView, 1},
		{models.InteractionLike, 6},
		{models.InteractionSave, 14},
		{models.InteractionDislike, 9},
	}

	var profile *models.UserProfile
	var err error
	for _, in := range interactions {
		profile, err = agg.Record(ctx, &models.InteractionEvent{
			UserID:    "u1",
			ArticleID: "https://example.com/a",
			Topic:     "sports",
			Keywords:  []string{"cricket"},
			Type:      in.typ,
		})
		if err != nil {
			t.Fatalf("Record(%s) failed: %v", in.typ, err)
		}
		if got := profile.Topics["sports"]; got != in.want {
			t.Errorf("after %s: topic score = %v, want %v", in.typ, got, in.want)
		}
	}

	if profile.Keywords["cricket"] != 9 {
		t.Errorf("keyword score = %v, want 9", profile.Keywords["cricket"])
	}
}

func TestRecordLikeThenDislikeCancels(t *testing.T) {
	agg, _, _ := newTestAggregator()
	ctx := context.Background()

	for _, typ := range []models.InteractionType{models.InteractionLike, models.InteractionDislike} {
		if _, err := agg.Record(ctx, &models.InteractionEvent{
			UserID:    "u1",
			ArticleID: "https://example.com/a",
			Topic:     "politics",
			Keywords:  []string{"election"},
			Type:      typ,
		}); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := agg.Record(ctx, &models.InteractionEvent{
		UserID:    "u1",
		ArticleID: "https://example.com/b",
		Topic:     "politics",
		Keywords:  []string{"election"},
		Type:      models.InteractionView,
	})
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	// 5 - 5 + 1: the pair cancels, leaving only the view.
	if got.Topics["politics"] != 1 {
		t.Errorf("topic score = %v, want 1", got.Topics["politics"])
	}
}

func TestRecordRejectsEmptyKeywords(t *testing.T) {
	agg, store, _ := newTestAggregator()

	_, err := agg.Record(context.Background(), &models.InteractionEvent{
		UserID:    "u1",
		ArticleID: "https://example.com/a",
		Topic:     "technology",
		Type:      models.InteractionView,
	})
	if !errors.Is(err, ErrEmptyKeywords) {
		t.Fatalf("got %v, want ErrEmptyKeywords", err)
	}
	if len(store.events) != 0 {
		t.Error("rejected event was persisted")
	}
}

func TestRecordInvalidatesOnlyOwnHybridCache(t *testing.T) {
	agg, _, c := newTestAggregator()
	ctx := context.Background()

	c.SetEx(cache.KeyHybrid("u1"), time.Minute, []byte(`{"source":"hybrid"}`))
	c.SetEx(cache.KeyHybrid("u2"), time.Minute, []byte(`{"source":"hybrid"}`))
	c.SetEx(cache.KeySimilarUsers("u1"), time.Minute, []byte(`[]`))

	if _, err := agg.Record(ctx, &models.InteractionEvent{
		UserID:    "u1",
		ArticleID: "https://example.com/a",
		Topic:     "technology",
		Keywords:  []string{"ai"},
		Type:      models.InteractionView,
	}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	if _, found, _ := c.Get(cache.KeyHybrid("u1")); found {
		t.Error("u1 hybrid cache not invalidated")
	}
	if _, found, _ := c.Get(cache.KeyHybrid("u2")); !found {
		t.Error("u2 hybrid cache wrongly invalidated")
	}
	// Similarity entries expire by TTL only.
	if _, found, _ := c.Get(cache.KeySimilarUsers("u1")); !found {
		t.Error("similarity cache wrongly invalidated")
	}
}

func TestSeedInterests(t *testing.T) {
	agg, _, c := newTestAggregator()
	ctx := context.Background()

	c.SetEx(cache.KeyHybrid("u1"), time.Minute, []byte(`{"source":"hybrid"}`))

	profile, err := agg.SeedInterests(ctx, "u1", []string{"technology", "sports", ""})
	if err != nil {
		t.Fatalf("SeedInterests failed: %v", err)
	}
	if profile.Topics["technology"] != 1 || profile.Topics["sports"] != 1 {
		t.Errorf("seeded topics = %v", profile.Topics)
	}
	if _, seeded := profile.Topics[""]; seeded {
		t.Error("empty interest was seeded")
	}
	if _, found, _ := c.Get(cache.KeyHybrid("u1")); found {
		t.Error("hybrid cache not invalidated by seeding")
	}

	// Seeding again stacks on the existing profile.
	profile, err = agg.SeedInterests(ctx, "u1", []string{"technology"})
	if err != nil {
		t.Fatalf("SeedInterests failed: %v", err)
	}
	if profile.Topics["technology"] != 2 {
		t.Errorf("re-seeded topic score = %v, want 2", profile.Topics["technology"])
	}
}
