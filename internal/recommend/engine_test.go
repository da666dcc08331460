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

	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/models"
)

func newTestEngine(store *fakeStore, provider *fakeProvider) (*Engine, *cache.MemoryCache) {
	c := cache.NewMemoryCache()
	return NewEngine(store, c, provider, DefaultConfig()), c
}

func candidates() []models.CandidateArticle {
	return []models.CandidateArticle{
		{URL: "https://example.com/ai", Title: "AI everywhere", Description: "ai news"},
		{URL: "https://example.com/other", Title: "Unrelated story"},
	}
}

func trending() []models.CandidateArticle {
	return []models.CandidateArticle{
		{URL: "https://example.com/trend1", Title: "Trending one"},
		{URL: "https://example.com/trend2", Title: "Trending two"},
	}
}

func TestRecommendColdStartForNewUser(t *testing.T) {
	provider := &fakeProvider{headlines: trending()}
	engine, _ := newTestEngine(newFakeStore(), provider)

	bundle, err := engine.Recommend(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if bundle.Source != SourceColdStart {
		t.Errorf("source = %q, want cold_start", bundle.Source)
	}
	if bundle.Message != "No interactions yet. Showing trending news." {
		t.Errorf("message = %q", bundle.Message)
	}
	if len(bundle.Articles) != 2 || bundle.Count != 2 {
		t.Errorf("articles = %d, count = %d", len(bundle.Articles), bundle.Count)
	}
	if provider.searchCalls != 0 {
		t.Error("cold start should not search")
	}
}

func TestRecommendHybridPathAndCaching(t *testing.T) {
	store := newFakeStore()
	profile := models.NewUserProfile("u1")
	profile.Topics["technology"] = 10
	profile.Keywords["ai"] = 5
	store.UpsertProfile(context.Background(), profile)

	provider := &fakeProvider{searchResults: candidates()}
	engine, c := newTestEngine(store, provider)

	bundle, err := engine.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if bundle.Source != SourceHybrid {
		t.Fatalf("source = %q, want hybrid", bundle.Source)
	}
	if provider.lastQuery != "technology" {
		t.Errorf("searched %q, want the top topic", provider.lastQuery)
	}
	if bundle.Count != 2 || len(bundle.Recommendations) != 2 {
		t.Fatalf("recommendations = %+v", bundle.Recommendations)
	}
	// ai article: (10 + 1*3) * 0.6; other: 10 * 0.6.
	if bundle.Recommendations[0].Key != "https://example.com/ai" {
		t.Errorf("ranking wrong: %+v", bundle.Recommendations)
	}

	// The bundle is cached and replayed with source=cache.
	if _, found, _ := c.Get(cache.KeyHybrid("u1")); !found {
		t.Fatal("hybrid bundle not cached")
	}
	again, err := engine.Recommend(context.Background(), "u1")
	if err != nil {
		t.Fatalf("second Recommend failed: %v", err)
	}
	if again.Source != SourceCache {
		t.Errorf("source = %q, want cache", again.Source)
	}
	if provider.searchCalls != 1 {
		t.Errorf("provider searched %d times, want 1 (second call cached)", provider.searchCalls)
	}
}

func TestRecommendCollaborativeFallback(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	// Target has keywords but no topics: content scoring has no
	// anchor, so the hybrid blend is empty and similarity wins.
	target := models.NewUserProfile("u1")
	target.Keywords["ai"] = 5
	store.UpsertProfile(ctx, target)

	neighbor := models.NewUserProfile("u2")
	neighbor.Keywords["ai"] = 3
	store.UpsertProfile(ctx, neighbor)

	provider := &fakeProvider{searchErr: errors.New("upstream down")}
	engine, _ := newTestEngine(store, provider)

	bundle, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if bundle.Source != SourceCollaborative {
		t.Fatalf("source = %q, want collaborative", bundle.Source)
	}
	if len(bundle.SimilarUsers) != 1 || bundle.SimilarUsers[0].UserID != "u2" {
		t.Errorf("similar users = %+v", bundle.SimilarUsers)
	}
}

func TestRecommendContentFallback(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	// Profile with topics but no keyword overlap with anyone, and no
	// other users: similarity is empty, hybrid still blends content.
	// To force the content fallback instead, make the first search
	// fail and the second succeed.
	profile := models.NewUserProfile("u1")
	profile.Topics["technology"] = 10
	store.UpsertProfile(ctx, profile)

	provider := &sequencedProvider{
		errs:    []error{errors.New("first call fails")},
		results: candidates(),
	}
	c := cache.NewMemoryCache()
	engine := NewEngine(store, c, provider, DefaultConfig())

	bundle, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if bundle.Source != SourceContentBased {
		t.Fatalf("source = %q, want content_based", bundle.Source)
	}
	if len(bundle.Recommendations) != 2 {
		t.Errorf("recommendations = %+v", bundle.Recommendations)
	}
	// Fallback results are not cached.
	if _, found, _ := c.Get(cache.KeyHybrid("u1")); found {
		t.Error("content fallback bundle was cached")
	}
}

func TestRecommendTrendingFinalFallback(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	profile := models.NewUserProfile("u1")
	profile.Topics["technology"] = 10
	store.UpsertProfile(ctx, profile)

	provider := &fakeProvider{
		searchErr: errors.New("search down"),
		headlines: trending(),
	}
	engine, _ := newTestEngine(store, provider)

	bundle, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if bundle.Source != SourceColdStart {
		t.Fatalf("source = %q, want cold_start", bundle.Source)
	}
	if bundle.Message != "Not enough data. Showing trending news." {
		t.Errorf("message = %q", bundle.Message)
	}
}

func TestRecommendAllStagesFail(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	profile := models.NewUserProfile("u1")
	profile.Topics["technology"] = 10
	store.UpsertProfile(ctx, profile)

	provider := &fakeProvider{
		searchErr:    errors.New("search down"),
		headlinesErr: errors.New("headlines down"),
	}
	engine, _ := newTestEngine(store, provider)

	if _, err := engine.Recommend(ctx, "u1"); !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("got %v, want ErrUpstreamUnavailable", err)
	}
}

func TestRecommendCorruptCacheRecomputes(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	profile := models.NewUserProfile("u1")
	profile.Topics["technology"] = 10
	store.UpsertProfile(ctx, profile)

	provider := &fakeProvider{searchResults: candidates()}
	engine, c := newTestEngine(store, provider)

	c.SetEx(cache.KeyHybrid("u1"), time.Minute, []byte("not json"))

	bundle, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if bundle.Source != SourceHybrid {
		t.Errorf("source = %q, want hybrid after corrupt cache", bundle.Source)
	}
}

func TestRecommendCachedBundleRoundTrips(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	profile := models.NewUserProfile("u1")
	profile.Topics["technology"] = 10
	store.UpsertProfile(ctx, profile)

	provider := &fakeProvider{searchResults: candidates()}
	engine, c := newTestEngine(store, provider)

	first, err := engine.Recommend(ctx, "u1")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}

	data, found, _ := c.Get(cache.KeyHybrid("u1"))
	if !found {
		t.Fatal("bundle not cached")
	}
	var cached Bundle
	if err := json.Unmarshal(data, &cached); err != nil {
		t.Fatalf("cached bundle not canonical JSON: %v", err)
	}
	if cached.Count != first.Count || len(cached.Recommendations) != len(first.Recommendations) {
		t.Errorf("cached bundle diverges: %+v vs %+v", cached, first)
	}
}

// sequencedProvider fails the first len(errs) Search calls, then
// serves results.
type sequencedProvider struct {
	errs    []error
	results []models.CandidateArticle
	calls   int
}

func (p *sequencedProvider) Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error) {
	p.calls++
	if p.calls <= len(p.errs) {
		return nil, p.errs[p.calls-1]
	}
	return p.results, nil
}

func (p *sequencedProvider) TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error) {
	return nil, errors.New("headlines unavailable")
}
