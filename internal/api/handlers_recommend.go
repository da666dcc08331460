// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/recommend"
)

// Recommendations serves the personalized recommendation bundle for a
// user, walking the engine's fallback chain.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	bundle, err := h.recommend.Recommend(r.Context(), userID)
	if err != nil {
		if errors.Is(err, recommend.ErrUpstreamUnavailable) {
			respondError(w, r, http.StatusBadGateway, codeUpstreamFailure, "recommendation upstreams unavailable")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("Recommendation failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not build recommendations")
		return
	}

	respondJSON(w, r, http.StatusOK, bundle)
}

// Collaborative serves the raw similar-user ranking for a user.
func (h *Handler) Collaborative(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	entries, err := h.similarity.SimilarUsers(r.Context(), userID)
	if err != nil {
		if errors.Is(err, recommend.ErrNoProfile) {
			respondError(w, r, http.StatusNotFound, codeNotFound, "user has no interaction history")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", userID).Msg("Similarity lookup failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not compute similar users")
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"user_id":       userID,
		"count":         len(entries),
		"similar_users": entries,
	})
}
