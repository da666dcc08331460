// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package extract enriches candidate articles with full text, keywords
// and extractive summaries.
//
// Enrichment is best-effort: a fetch or parse failure leaves the
// article with whatever the provider supplied and never fails the
// calling request.
package extract

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	readability "github.com/go-shiori/go-readability"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tomtom215/novusfeed/internal/config"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/metrics"
	"github.com/tomtom215/novusfeed/internal/models"
)

// minExtractedChars rejects boilerplate-only extractions.
const minExtractedChars = 200

// maxBodyBytes caps fetched article bodies.
const maxBodyBytes = 8 << 20

// Enricher fetches article pages and derives keywords and summaries.
type Enricher struct {
	client           *http.Client
	workers          int
	maxKeywords      int
	summarySentences int
}

// NewEnricher builds an Enricher from configuration.
func NewEnricher(cfg config.EnrichConfig) *Enricher {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	return &Enricher{
		client:           &http.Client{Timeout: cfg.FetchTimeout},
		workers:          workers,
		maxKeywords:      cfg.MaxKeywords,
		summarySentences: cfg.SummarySentences,
	}
}

// EnrichAll enriches articles in place with a bounded worker pool.
// Individual failures are logged and skipped.
func (e *Enricher) EnrichAll(ctx context.Context, articles []models.CandidateArticle) {
	if len(articles) == 0 {
		return
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e.Enrich(ctx, &articles[i])
			}
		}()
	}

	for i := range articles {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		}
	}
	close(jobs)
	wg.Wait()
}

// Enrich fills Keywords and Summary for one article. The article page
// is fetched when the provider's content is too short to work with.
func (e *Enricher) Enrich(ctx context.Context, article *models.CandidateArticle) {
	timer := prometheus.NewTimer(metrics.EnrichmentDuration)
	defer timer.ObserveDuration()

	text := article.Content
	if len(text) < minExtractedChars {
		if fetched, err := e.FullText(ctx, article.URL); err == nil {
			text = fetched
		} else {
			logging.Ctx(ctx).Debug().Err(err).Str("url", article.URL).Msg("Full-text fetch failed")
		}
	}
	if text == "" {
		text = article.Title + " " + article.Description
	}

	if len(article.Keywords) == 0 {
		article.Keywords = Keywords(text, e.maxKeywords)
	}
	if article.Summary == "" {
		article.Summary = Summarize(text, e.summarySentences)
	}
}

// FullText fetches the article page and extracts the readable body.
// Extractions shorter than minExtractedChars are rejected as
// boilerplate.
func (e *Enricher) FullText(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Novusfeed/1.0 (news recommendation)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}

	parsed, _ := url.Parse(articleURL)
	extracted, err := readability.FromReader(strings.NewReader(string(body)), parsed)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(extracted.TextContent)
	if len(text) < minExtractedChars {
		return "", errTooShort
	}
	return text, nil
}

type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return "unexpected status: " + http.StatusText(e.code)
}

var errTooShort = &extractError{"extracted text below minimum length"}

type extractError struct {
	msg string
}

func (e *extractError) Error() string { return e.msg }
