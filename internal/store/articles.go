// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package store

import (
	"context"

	"github.com/tomtom215/novusfeed/internal/models"
)

const articlePrefix = "article:"

// UpsertArticle stores an enriched article keyed by URL. Re-fetching
// the same URL overwrites the previous enrichment.
func (s *Store) UpsertArticle(ctx context.Context, article *models.CandidateArticle) error {
	return s.setJSON(articlePrefix+article.URL, article)
}

// GetArticle loads an article by URL.
func (s *Store) GetArticle(ctx context.Context, url string) (*models.CandidateArticle, bool, error) {
	article := &models.CandidateArticle{}
	found, err := s.getJSON(articlePrefix+url, article)
	if err != nil || !found {
		return nil, false, err
	}
	return article, true, nil
}
