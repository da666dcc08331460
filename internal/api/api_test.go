// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/auth"
	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/config"
	"github.com/tomtom215/novusfeed/internal/extract"
	"github.com/tomtom215/novusfeed/internal/models"
	"github.com/tomtom215/novusfeed/internal/recommend"
	"github.com/tomtom215/novusfeed/internal/store"
)

type fakeAPIStore struct {
	users        map[string]*models.User
	usersByEmail map[string]*models.User
	profiles     map[string]*models.UserProfile
	interactions []*models.InteractionEvent
	articles     map[string]*models.CandidateArticle
	saved        map[string][]string
}

func newFakeAPIStore() *fakeAPIStore {
	return &fakeAPIStore{
		users:        make(map[string]*models.User),
		usersByEmail: make(map[string]*models.User),
		profiles:     make(map[string]*models.UserProfile),
		articles:     make(map[string]*models.CandidateArticle),
		saved:        make(map[string][]string),
	}
}

func (s *fakeAPIStore) CreateUser(_ context.Context, user *models.User) error {
	key := strings.ToLower(user.Email)
	if _, exists := s.usersByEmail[key]; exists {
		return store.ErrEmailTaken
	}
	s.users[user.ID] = user
	s.usersByEmail[key] = user
	return nil
}

func (s *fakeAPIStore) GetUser(_ context.Context, userID string) (*models.User, bool, error) {
	u, ok := s.users[userID]
	return u, ok, nil
}

func (s *fakeAPIStore) GetUserByEmail(_ context.Context, email string) (*models.User, bool, error) {
	u, ok := s.usersByEmail[strings.ToLower(email)]
	return u, ok, nil
}

func (s *fakeAPIStore) ListUsers(_ context.Context, limit int) ([]*models.User, error) {
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		if len(out) >= limit {
			break
		}
		out = append(out, u)
	}
	return out, nil
}

func (s *fakeAPIStore) GetProfile(_ context.Context, userID string) (*models.UserProfile, bool, error) {
	p, ok := s.profiles[userID]
	return p, ok, nil
}

func (s *fakeAPIStore) ListProfiles(_ context.Context, limit int) ([]*models.UserProfile, error) {
	out := make([]*models.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		if len(out) >= limit {
			break
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeAPIStore) ListInteractions(_ context.Context, userID string, limit int) ([]*models.InteractionEvent, error) {
	out := make([]*models.InteractionEvent, 0)
	for _, ev := range s.interactions {
		if ev.UserID == userID && len(out) < limit {
			out = append(out, ev)
		}
	}
	return out, nil
}

func (s *fakeAPIStore) ListAllInteractions(_ context.Context, limit int) ([]*models.InteractionEvent, error) {
	if len(s.interactions) > limit {
		return s.interactions[:limit], nil
	}
	return s.interactions, nil
}

func (s *fakeAPIStore) ListSavedArticles(_ context.Context, userID string, _ int) ([]string, error) {
	return s.saved[userID], nil
}

func (s *fakeAPIStore) UpsertArticle(_ context.Context, article *models.CandidateArticle) error {
	s.articles[article.URL] = article
	return nil
}

func (s *fakeAPIStore) GetArticle(_ context.Context, url string) (*models.CandidateArticle, bool, error) {
	a, ok := s.articles[url]
	return a, ok, nil
}

type fakeRecommender struct {
	bundle *recommend.Bundle
	err    error
}

func (f *fakeRecommender) Recommend(context.Context, string) (*recommend.Bundle, error) {
	return f.bundle, f.err
}

type fakeSimilarity struct {
	entries []models.SimilarityEntry
	err     error
}

func (f *fakeSimilarity) SimilarUsers(context.Context, string) ([]models.SimilarityEntry, error) {
	return f.entries, f.err
}

type fakeRecorder struct {
	store   *fakeAPIStore
	lastRec *models.InteractionEvent
	err     error
}

func (f *fakeRecorder) Record(_ context.Context, event *models.InteractionEvent) (*models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	event.ID = "evt-1"
	event.CreatedAt = time.Now().UTC()
	f.lastRec = event
	f.store.interactions = append(f.store.interactions, event)

	profile, ok := f.store.profiles[event.UserID]
	if !ok {
		profile = models.NewUserProfile(event.UserID)
		f.store.profiles[event.UserID] = profile
	}
	weight := event.Type.Weight()
	profile.Topics[event.Topic] += weight
	for _, kw := range event.Keywords {
		profile.Keywords[kw] += weight
	}
	return profile, nil
}

func (f *fakeRecorder) SeedInterests(_ context.Context, userID string, interests []string) (*models.UserProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.store.profiles[userID]
	if !ok {
		profile = models.NewUserProfile(userID)
		f.store.profiles[userID] = profile
	}
	for _, interest := range interests {
		profile.Topics[interest] += models.InteractionView.Weight()
	}
	return profile, nil
}

type fakeNewsProvider struct {
	articles    []models.CandidateArticle
	err         error
	searchCalls int
}

func (f *fakeNewsProvider) Search(context.Context, string, int) ([]models.CandidateArticle, error) {
	f.searchCalls++
	return f.articles, f.err
}

func (f *fakeNewsProvider) TopHeadlines(context.Context, string, int) ([]models.CandidateArticle, error) {
	return f.articles, f.err
}

type testEnv struct {
	store      *fakeAPIStore
	cache      *cache.MemoryCache
	recommends *fakeRecommender
	similarity *fakeSimilarity
	recorder   *fakeRecorder
	provider   *fakeNewsProvider
	jwt        *auth.JWTManager
	server     *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.RateLimitPerMinute = 1000
	cfg.Provider.MaxResults = 10
	cfg.Enrich.NewsTTL = time.Minute
	cfg.Enrich.Workers = 1
	cfg.Enrich.MaxKeywords = 5
	cfg.Enrich.SummarySentences = 2
	cfg.Enrich.FetchTimeout = time.Second
	cfg.Auth.AdminKey = "test-admin-key"

	st := newFakeAPIStore()
	env := &testEnv{
		store:      st,
		cache:      cache.NewMemoryCache(),
		recommends: &fakeRecommender{},
		similarity: &fakeSimilarity{},
		recorder:   &fakeRecorder{store: st},
		provider:   &fakeNewsProvider{},
		jwt:        auth.NewJWTManager("test-secret", time.Hour),
	}

	h := NewHandler(cfg, st, env.cache, env.recommends, env.similarity, env.recorder,
		env.provider, extract.NewEnricher(cfg.Enrich), env.jwt)
	env.server = httptest.NewServer(h.Router())
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) (*http.Response, []byte) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp, buf.Bytes()
}

func (e *testEnv) token(t *testing.T, userID string) string {
	t.Helper()
	token, err := e.jwt.Issue(userID, userID+"@example.com")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.do(t, http.MethodPost, "/api/v1/users/register", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
		"name":     "Alice",
	}, nil)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.StatusCode, body)
	}

	var reg authResponse
	if err := json.Unmarshal(body, &reg); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if reg.Token == "" {
		t.Error("register returned empty token")
	}
	if reg.User == nil || reg.User.Email != "alice@example.com" {
		t.Errorf("register user = %+v", reg.User)
	}
	if strings.Contains(string(body), "password_hash") {
		t.Error("register response leaked password hash")
	}

	// Duplicate email conflicts.
	resp, _ = env.do(t, http.MethodPost, "/api/v1/users/register", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", resp.StatusCode)
	}

	resp, body = env.do(t, http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "correct-horse",
	}, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, body %s", resp.StatusCode, body)
	}

	resp, _ = env.do(t, http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad password status = %d, want 401", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "whatever-pass",
	}, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("unknown email status = %d, want 401", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad email", map[string]string{"email": "not-an-email", "password": "longenough"}},
		{"short password", map[string]string{"email": "a@b.com", "password": "short"}},
		{"missing password", map[string]string{"email": "a@b.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := env.do(t, http.MethodPost, "/api/v1/users/register", tt.body, nil)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestAddInteractionRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	body := map[string]any{
		"user_id":          "u1",
		"article_id":       "https://example.com/a",
		"topic":            "tech",
		"keywords":         []string{"go"},
		"interaction_type": "like",
	}

	resp, _ := env.do(t, http.MethodPost, "/api/v1/interactions/add", body, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token status = %d, want 401", resp.StatusCode)
	}

	headers := map[string]string{"Authorization": "Bearer " + env.token(t, "u1")}
	resp, raw := env.do(t, http.MethodPost, "/api/v1/interactions/add", body, headers)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("with token status = %d, body %s", resp.StatusCode, raw)
	}

	var out addInteractionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Message != "Interaction recorded and profile updated" {
		t.Errorf("message = %q", out.Message)
	}
	if out.UpdatedProfile == nil || out.UpdatedProfile.Topics["tech"] != 5 {
		t.Errorf("updated profile = %+v", out.UpdatedProfile)
	}
}

func TestAddInteractionValidation(t *testing.T) {
	env := newTestEnv(t)
	headers := map[string]string{"Authorization": "Bearer " + env.token(t, "u1")}

	tests := []struct {
		name string
		body map[string]any
	}{
		{"bad type", map[string]any{
			"user_id": "u1", "article_id": "a", "topic": "tech",
			"keywords": []string{"go"}, "interaction_type": "stare",
		}},
		{"no keywords", map[string]any{
			"user_id": "u1", "article_id": "a", "topic": "tech",
			"keywords": []string{}, "interaction_type": "like",
		}},
		{"missing topic", map[string]any{
			"user_id": "u1", "article_id": "a",
			"keywords": []string{"go"}, "interaction_type": "like",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := env.do(t, http.MethodPost, "/api/v1/interactions/add", tt.body, headers)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestSavedArticlesPlaceholder(t *testing.T) {
	env := newTestEnv(t)
	env.store.saved["u1"] = []string{"https://example.com/known", "https://example.com/gone"}
	env.store.articles["https://example.com/known"] = &models.CandidateArticle{
		URL:   "https://example.com/known",
		Title: "Known article",
	}

	headers := map[string]string{"Authorization": "Bearer " + env.token(t, "u1")}
	resp, raw := env.do(t, http.MethodGet, "/api/v1/interactions/saved/u1", nil, headers)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var out struct {
		Count    int                        `json:"count"`
		Articles []*models.CandidateArticle `json:"articles"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
	if out.Articles[0].Title != "Known article" {
		t.Errorf("first title = %q", out.Articles[0].Title)
	}
	if out.Articles[1].Title != "Saved article" || out.Articles[1].Summary != "Article details not available" {
		t.Errorf("placeholder = %+v", out.Articles[1])
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	headers := map[string]string{"Authorization": "Bearer " + env.token(t, "u1")}

	resp, raw := env.do(t, http.MethodPost, "/api/v1/preferences/update", map[string]any{
		"user_id":   "u1",
		"interests": []string{"science", "sports"},
	}, headers)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update status = %d, body %s", resp.StatusCode, raw)
	}

	resp, raw = env.do(t, http.MethodGet, "/api/v1/preferences/u1", nil, headers)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, body %s", resp.StatusCode, raw)
	}
	var prefs preferencesResponse
	if err := json.Unmarshal(raw, &prefs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(prefs.Interests) != 2 {
		t.Fatalf("interests = %v", prefs.Interests)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/v1/preferences/unknown", nil, headers)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown user status = %d, want 404", resp.StatusCode)
	}
}

func TestRecommendationsStatusMapping(t *testing.T) {
	env := newTestEnv(t)

	env.recommends.bundle = &recommend.Bundle{
		Source:  recommend.SourceColdStart,
		Message: "No interactions yet. Showing trending news.",
		Count:   1,
		Articles: []models.CandidateArticle{
			{URL: "https://example.com/t", Title: "Trending"},
		},
	}
	resp, raw := env.do(t, http.MethodGet, "/api/v1/recommendations/u1", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var bundle recommend.Bundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if bundle.Source != recommend.SourceColdStart || len(bundle.Articles) != 1 {
		t.Errorf("bundle = %+v", bundle)
	}

	env.recommends.bundle = nil
	env.recommends.err = fmt.Errorf("%w: trending fetch failed", recommend.ErrUpstreamUnavailable)
	resp, _ = env.do(t, http.MethodGet, "/api/v1/recommendations/u1", nil, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("upstream failure status = %d, want 502", resp.StatusCode)
	}

	env.recommends.err = errors.New("boom")
	resp, _ = env.do(t, http.MethodGet, "/api/v1/recommendations/u1", nil, nil)
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("internal failure status = %d, want 500", resp.StatusCode)
	}
}

func TestCollaborativeEndpoint(t *testing.T) {
	env := newTestEnv(t)

	env.similarity.entries = []models.SimilarityEntry{
		{UserID: "u2", Similarity: 0.8123},
	}
	resp, raw := env.do(t, http.MethodGet, "/api/v1/recommendations/collaborative/u1", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var out struct {
		UserID       string                   `json:"user_id"`
		Count        int                      `json:"count"`
		SimilarUsers []models.SimilarityEntry `json:"similar_users"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Count != 1 || out.SimilarUsers[0].UserID != "u2" {
		t.Errorf("response = %+v", out)
	}

	env.similarity.entries = nil
	env.similarity.err = recommend.ErrNoProfile
	resp, _ = env.do(t, http.MethodGet, "/api/v1/recommendations/collaborative/ghost", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("no profile status = %d, want 404", resp.StatusCode)
	}
}

func TestNewsCachingAndPagination(t *testing.T) {
	env := newTestEnv(t)

	for i := 0; i < 7; i++ {
		env.provider.articles = append(env.provider.articles, models.CandidateArticle{
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Title:   fmt.Sprintf("Article %d", i),
			Content: strings.Repeat("news content words here ", 20),
		})
	}

	resp, raw := env.do(t, http.MethodGet, "/api/v1/news/golang", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var page struct {
		Source     string                    `json:"source"`
		Page       int                       `json:"page"`
		PageSize   int                       `json:"page_size"`
		Total      int                       `json:"total"`
		TotalPages int                       `json:"total_pages"`
		Articles   []models.CandidateArticle `json:"articles"`
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Source != "api" || page.Total != 7 || page.TotalPages != 2 || len(page.Articles) != 5 {
		t.Errorf("first page = %+v", page)
	}

	// Second request is served from cache without hitting the provider.
	resp, raw = env.do(t, http.MethodGet, "/api/v1/news/golang?page=2", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Source != "cache" || page.Page != 2 || len(page.Articles) != 2 {
		t.Errorf("second page = %+v", page)
	}
	if env.provider.searchCalls != 1 {
		t.Errorf("searchCalls = %d, want 1", env.provider.searchCalls)
	}

	// Out-of-range page clamps to the last page.
	resp, raw = env.do(t, http.MethodGet, "/api/v1/news/golang?page=99", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.Page != 2 {
		t.Errorf("clamped page = %d, want 2", page.Page)
	}

	// Oversized page_size clamps to the maximum.
	resp, raw = env.do(t, http.MethodGet, "/api/v1/news/golang?page_size=50", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if err := json.Unmarshal(raw, &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if page.PageSize != maxPageSize {
		t.Errorf("page_size = %d, want %d", page.PageSize, maxPageSize)
	}
}

func TestNewsUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	env.provider.err = errors.New("gnews down")

	resp, _ := env.do(t, http.MethodGet, "/api/v1/news/golang", nil, nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", resp.StatusCode)
	}
}

func TestNewsEmptyResult(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/news/nothingness", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHeadlinesCategoryValidation(t *testing.T) {
	env := newTestEnv(t)
	env.provider.articles = []models.CandidateArticle{
		{
			URL:     "https://example.com/h",
			Title:   "Headline",
			Content: strings.Repeat("headline content words here ", 20),
		},
	}

	resp, _ := env.do(t, http.MethodGet, "/api/v1/headlines/technology", nil, nil)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("valid category status = %d, want 200", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/v1/headlines/astrology", nil, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("invalid category status = %d, want 400", resp.StatusCode)
	}
}

func TestAdminKeyGating(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/api/v1/admin/users", nil, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("no key status = %d, want 403", resp.StatusCode)
	}

	resp, _ = env.do(t, http.MethodGet, "/api/v1/admin/users", nil, map[string]string{"X-Admin-Key": "wrong"})
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("wrong key status = %d, want 403", resp.StatusCode)
	}

	good := map[string]string{"X-Admin-Key": "test-admin-key"}
	resp, raw := env.do(t, http.MethodGet, "/api/v1/admin/users", nil, good)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("good key status = %d, body %s", resp.StatusCode, raw)
	}
}

func TestAdminCacheEndpoints(t *testing.T) {
	env := newTestEnv(t)
	good := map[string]string{"X-Admin-Key": "test-admin-key"}

	if err := env.cache.SetEx("news:golang", time.Minute, []byte(`{}`)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}
	if err := env.cache.SetEx("hybrid_rec:u1", time.Minute, []byte(`{}`)); err != nil {
		t.Fatalf("seed cache: %v", err)
	}

	resp, raw := env.do(t, http.MethodGet, "/api/v1/admin/cache/keys", nil, good)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("keys status = %d", resp.StatusCode)
	}
	var keysOut struct {
		CachedKeys []string `json:"cached_keys"`
	}
	if err := json.Unmarshal(raw, &keysOut); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(keysOut.CachedKeys) != 2 {
		t.Errorf("cached_keys = %v, want 2 entries", keysOut.CachedKeys)
	}

	resp, raw = env.do(t, http.MethodDelete, "/api/v1/admin/cache/clear", nil, good)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("clear status = %d", resp.StatusCode)
	}
	var clearOut struct {
		Status  string `json:"status"`
		Cleared int    `json:"cleared"`
	}
	if err := json.Unmarshal(raw, &clearOut); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if clearOut.Status != "success" || clearOut.Cleared != 2 {
		t.Errorf("clear = %+v", clearOut)
	}

	if _, found, _ := env.cache.Get("news:golang"); found {
		t.Error("cache entry survived clear")
	}
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/v1/health", "/api/v1/health/live", "/api/v1/health/ready"} {
		resp, raw := env.do(t, http.MethodGet, path, nil, nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("%s status = %d, body %s", path, resp.StatusCode, raw)
		}
	}
}

func TestRequestIDEchoed(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.do(t, http.MethodGet, "/", nil, map[string]string{"X-Request-ID": "trace-123"})
	if got := resp.Header.Get("X-Request-ID"); got != "trace-123" {
		t.Errorf("X-Request-ID = %q, want trace-123", got)
	}

	resp, _ = env.do(t, http.MethodGet, "/", nil, nil)
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("missing generated X-Request-ID")
	}
}
