// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/tomtom215/novusfeed/internal/models"
)

// fakeStore implements ProfileStore and InteractionStore in memory.
type fakeStore struct {
	mu       sync.Mutex
	profiles map[string]*models.UserProfile
	events   []*models.InteractionEvent

	failProfiles bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{profiles: make(map[string]*models.UserProfile)}
}

var errFakeStore = errors.New("store failure")

func (s *fakeStore) GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failProfiles {
		return nil, false, errFakeStore
	}
	p, ok := s.profiles[userID]
	if !ok {
		return nil, false, nil
	}
	return cloneProfile(p), true, nil
}

func (s *fakeStore) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failProfiles {
		return errFakeStore
	}
	s.profiles[profile.UserID] = cloneProfile(profile)
	return nil
}

func (s *fakeStore) ListProfiles(ctx context.Context, limit int) ([]*models.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failProfiles {
		return nil, errFakeStore
	}

	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]*models.UserProfile, 0, limit)
	for _, id := range ids {
		if len(out) >= limit {
			break
		}
		out = append(out, cloneProfile(s.profiles[id]))
	}
	return out, nil
}

func (s *fakeStore) AppendInteraction(ctx context.Context, event *models.InteractionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func cloneProfile(p *models.UserProfile) *models.UserProfile {
	c := models.NewUserProfile(p.UserID)
	for k, v := range p.Topics {
		c.Topics[k] = v
	}
	for k, v := range p.Keywords {
		c.Keywords[k] = v
	}
	c.UpdatedAt = p.UpdatedAt
	return c
}

// fakeProvider serves canned candidates and records calls.
type fakeProvider struct {
	mu            sync.Mutex
	searchResults []models.CandidateArticle
	headlines     []models.CandidateArticle
	searchErr     error
	headlinesErr  error

	searchCalls    int
	headlinesCalls int
	lastQuery      string
}

func (p *fakeProvider) Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.searchCalls++
	p.lastQuery = query
	if p.searchErr != nil {
		return nil, p.searchErr
	}
	return p.searchResults, nil
}

func (p *fakeProvider) TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.headlinesCalls++
	if p.headlinesErr != nil {
		return nil, p.headlinesErr
	}
	return p.headlines, nil
}
