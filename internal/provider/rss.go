// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package provider

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/models"
)

// RSSProvider serves candidate articles from configured RSS feeds.
// It is the keyless alternative to the GNews backend, intended for
// self-hosted deployments.
type RSSProvider struct {
	feeds  []string
	parser *gofeed.Parser
}

// NewRSSProvider builds a provider over the given feed URLs.
func NewRSSProvider(feeds []string) *RSSProvider {
	return &RSSProvider{feeds: feeds, parser: gofeed.NewParser()}
}

// Search returns feed items whose title or description contains the
// query, case-insensitively, newest first.
func (p *RSSProvider) Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error) {
	articles, err := p.fetchAll(ctx, query)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)
	matched := articles[:0]
	for _, a := range articles {
		haystack := strings.ToLower(a.Title + " " + a.Description)
		if strings.Contains(haystack, needle) {
			matched = append(matched, a)
		}
	}

	return capArticles(matched, limit), nil
}

// TopHeadlines returns the newest feed items. RSS feeds carry no
// category taxonomy, so the category only labels the results.
func (p *RSSProvider) TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error) {
	articles, err := p.fetchAll(ctx, category)
	if err != nil {
		return nil, err
	}
	return capArticles(articles, limit), nil
}

// fetchAll parses every configured feed, tolerating individual feed
// failures as long as at least one succeeds.
func (p *RSSProvider) fetchAll(ctx context.Context, topic string) ([]models.CandidateArticle, error) {
	var articles []models.CandidateArticle
	var lastErr error
	succeeded := 0

	for _, feedURL := range p.feeds {
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = err
			logging.Ctx(ctx).Warn().Err(err).Str("feed", feedURL).Msg("RSS feed fetch failed")
			continue
		}
		succeeded++

		for _, item := range feed.Items {
			if item.Link == "" {
				continue
			}
			var published time.Time
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			articles = append(articles, models.CandidateArticle{
				URL:         item.Link,
				Title:       item.Title,
				Description: item.Description,
				Source:      feed.Title,
				Topic:       topic,
				PublishedAt: published,
			})
		}
	}

	if succeeded == 0 && lastErr != nil {
		return nil, ErrUnavailable
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
	return articles, nil
}

func capArticles(articles []models.CandidateArticle, limit int) []models.CandidateArticle {
	if limit > 0 && len(articles) > limit {
		return articles[:limit]
	}
	return articles
}

var _ Provider = (*RSSProvider)(nil)
