// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/novusfeed/internal/config"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/models"
)

// maxResponseBytes caps upstream response bodies.
const maxResponseBytes = 4 << 20

// GNewsClient talks to the GNews v4 HTTP API.
type GNewsClient struct {
	baseURL    string
	apiKey     string
	language   string
	country    string
	maxResults int

	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewGNewsClient builds a client from provider configuration.
func NewGNewsClient(cfg config.ProviderConfig) *GNewsClient {
	return &GNewsClient{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		language:   cfg.Language,
		country:    cfg.Country,
		maxResults: cfg.MaxResults,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.Burst),
	}
}

// gnewsResponse mirrors the GNews API article envelope.
type gnewsResponse struct {
	TotalArticles int            `json:"totalArticles"`
	Articles      []gnewsArticle `json:"articles"`
}

type gnewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Search returns articles matching the query.
func (c *GNewsClient) Search(ctx context.Context, query string, limit int) ([]models.CandidateArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	return c.fetch(ctx, "/search", params, limit, query)
}

// TopHeadlines returns current top stories for a category.
func (c *GNewsClient) TopHeadlines(ctx context.Context, category string, limit int) ([]models.CandidateArticle, error) {
	params := url.Values{}
	if category != "" {
		params.Set("category", category)
	}
	return c.fetch(ctx, "/top-headlines", params, limit, category)
}

func (c *GNewsClient) fetch(ctx context.Context, endpoint string, params url.Values, limit int, topic string) ([]models.CandidateArticle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if limit <= 0 || limit > c.maxResults {
		limit = c.maxResults
	}
	params.Set("lang", c.language)
	params.Set("country", c.country)
	params.Set("max", strconv.Itoa(limit))
	params.Set("apikey", c.apiKey)

	reqURL := c.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		logging.Ctx(ctx).Warn().
			Int("status", resp.StatusCode).
			Str("endpoint", endpoint).
			Msg("News API returned non-200")
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded gnewsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	articles := make([]models.CandidateArticle, 0, len(decoded.Articles))
	for _, a := range decoded.Articles {
		if a.URL == "" {
			continue
		}
		articles = append(articles, models.CandidateArticle{
			URL:         a.URL,
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			Source:      a.Source.Name,
			Topic:       topic,
			PublishedAt: a.PublishedAt,
		})
	}

	logging.Ctx(ctx).Debug().
		Str("endpoint", endpoint).
		Int("articles", len(articles)).
		Dur("elapsed", time.Since(start)).
		Msg("News API fetch complete")

	return articles, nil
}

var _ Provider = (*GNewsClient)(nil)
