// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/metrics"
	"github.com/tomtom215/novusfeed/internal/models"
)

// Pagination bounds for news and headlines listings.
const (
	defaultPageSize = 5
	maxPageSize     = 10
)

// validCategories are the headline categories the upstream supports.
var validCategories = map[string]struct{}{
	"general": {}, "world": {}, "nation": {}, "business": {},
	"technology": {}, "entertainment": {}, "sports": {},
	"science": {}, "health": {},
}

type newsPayload struct {
	Topic    string                    `json:"topic,omitempty"`
	Category string                    `json:"category,omitempty"`
	Articles []models.CandidateArticle `json:"articles"`
}

// News serves enriched search results for a topic, cached and
// paginated server-side.
func (h *Handler) News(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")

	payload, source, ok := h.loadNewsPayload(w, r, cache.KeyNews(topic), "news", func() (*newsPayload, error) {
		articles, err := h.provider.Search(r.Context(), topic, h.cfg.Provider.MaxResults)
		if err != nil {
			return nil, err
		}
		h.enrichAndStore(r, articles)
		return &newsPayload{Topic: topic, Articles: articles}, nil
	})
	if !ok {
		return
	}

	h.respondPaginated(w, r, payload, source)
}

// Headlines serves enriched top headlines for a category.
func (h *Handler) Headlines(w http.ResponseWriter, r *http.Request) {
	category := chi.URLParam(r, "category")
	if _, valid := validCategories[category]; !valid {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid category")
		return
	}

	payload, source, ok := h.loadNewsPayload(w, r, cache.KeyHeadlines(category), "headlines", func() (*newsPayload, error) {
		articles, err := h.provider.TopHeadlines(r.Context(), category, h.cfg.Provider.MaxResults)
		if err != nil {
			return nil, err
		}
		h.enrichAndStore(r, articles)
		return &newsPayload{Category: category, Articles: articles}, nil
	})
	if !ok {
		return
	}

	h.respondPaginated(w, r, payload, source)
}

// loadNewsPayload serves a payload from cache or builds it with fetch
// and caches the result. A false return means an error response was
// already written.
func (h *Handler) loadNewsPayload(w http.ResponseWriter, r *http.Request, key, family string, fetch func() (*newsPayload, error)) (*newsPayload, string, bool) {
	if data, found, err := h.cache.Get(key); err == nil && found {
		payload := &newsPayload{}
		if derr := json.Unmarshal(data, payload); derr == nil {
			metrics.CacheHits.WithLabelValues(family).Inc()
			return payload, "cache", true
		}
		logging.Ctx(r.Context()).Warn().Str("key", key).Msg("Corrupt news cache entry")
	}
	metrics.CacheMisses.WithLabelValues(family).Inc()

	payload, err := fetch()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("key", key).Msg("News fetch failed")
		respondError(w, r, http.StatusBadGateway, codeUpstreamFailure, "news upstream unavailable")
		return nil, "", false
	}
	if len(payload.Articles) == 0 {
		respondError(w, r, http.StatusNotFound, codeNotFound, "no articles found")
		return nil, "", false
	}

	if data, merr := json.Marshal(payload); merr == nil {
		if cerr := h.cache.SetEx(key, h.cfg.Enrich.NewsTTL, data); cerr != nil {
			logging.Ctx(r.Context()).Warn().Err(cerr).Str("key", key).Msg("News cache write failed")
		}
	}

	return payload, "api", true
}

// enrichAndStore enriches articles in place and persists them so saved
// articles resolve later.
func (h *Handler) enrichAndStore(r *http.Request, articles []models.CandidateArticle) {
	h.enricher.EnrichAll(r.Context(), articles)
	for i := range articles {
		if err := h.store.UpsertArticle(r.Context(), &articles[i]); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("url", articles[i].URL).Msg("Article persist failed")
		}
	}
}

// respondPaginated applies server-side pagination over the full cached
// article list.
func (h *Handler) respondPaginated(w http.ResponseWriter, r *http.Request, payload *newsPayload, source string) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", defaultPageSize)

	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	total := len(payload.Articles)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"source":      source,
		"topic":       payload.Topic,
		"category":    payload.Category,
		"page":        page,
		"page_size":   pageSize,
		"total":       total,
		"total_pages": totalPages,
		"articles":    payload.Articles[start:end],
	})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
