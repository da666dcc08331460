// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package recommend

import (
	"sort"
	"strings"

	"github.com/tomtom215/novusfeed/internal/models"
)

// ContentScorer scores candidate articles against a user profile.
//
// An article's score is the profile's top topic score plus
// KeywordFactor for every profile keyword found in the article's
// lowercased title and description.
type ContentScorer struct {
	cfg Config
}

// NewContentScorer builds a content scorer.
func NewContentScorer(cfg Config) *ContentScorer {
	return &ContentScorer{cfg: cfg}
}

// Score returns a score per candidate URL. Candidates without a URL
// are skipped. Returns ErrNoTopics when the profile has no topic to
// anchor the base score on.
func (s *ContentScorer) Score(profile *models.UserProfile, candidates []models.CandidateArticle) (map[string]models.ScoredArticle, error) {
	_, topScore, ok := profile.TopTopic()
	if !ok {
		return nil, ErrNoTopics
	}

	scored := make(map[string]models.ScoredArticle, len(candidates))
	for _, candidate := range candidates {
		if candidate.URL == "" {
			continue
		}
		matched := matchKeywords(profile.Keywords, candidate)
		scored[candidate.URL] = models.ScoredArticle{
			Article:         candidate,
			Score:           topScore + float64(len(matched))*s.cfg.KeywordFactor,
			MatchedKeywords: matched,
		}
	}

	return scored, nil
}

// Rank returns candidates scored and sorted highest first. Used by the
// content-based fallback, where the blend step is skipped.
func (s *ContentScorer) Rank(profile *models.UserProfile, candidates []models.CandidateArticle) ([]Recommendation, error) {
	scored, err := s.Score(profile, candidates)
	if err != nil {
		return nil, err
	}

	ranked := make([]Recommendation, 0, len(scored))
	for url, sa := range scored {
		ranked = append(ranked, Recommendation{
			Key:             url,
			Article:         sa.Article,
			Score:           sa.Score,
			MatchedKeywords: sa.MatchedKeywords,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Key < ranked[j].Key
	})

	return ranked, nil
}

// matchKeywords returns the profile keywords found in the candidate's
// title and description, case-insensitively, sorted alphabetically.
func matchKeywords(keywords map[string]float64, candidate models.CandidateArticle) []string {
	if len(keywords) == 0 {
		return nil
	}

	text := strings.ToLower(candidate.Title + " " + candidate.Description)
	var matched []string
	for kw := range keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	sort.Strings(matched)
	return matched
}
