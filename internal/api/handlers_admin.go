// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"net/http"

	"github.com/tomtom215/novusfeed/internal/logging"
)

// Admin listing caps.
const (
	adminUserLimit        = 500
	adminProfileLimit     = 500
	adminInteractionLimit = 1000
)

// AdminUsers lists registered accounts.
func (h *Handler) AdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context(), adminUserLimit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Admin user listing failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not list users")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"count": len(users), "users": users})
}

// AdminInteractions lists recorded interaction events. With a user_id
// query the listing narrows to that user.
func (h *Handler) AdminInteractions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")

	events, err := func() (any, error) {
		if userID != "" {
			return h.store.ListInteractions(r.Context(), userID, adminInteractionLimit)
		}
		return h.store.ListAllInteractions(r.Context(), adminInteractionLimit)
	}()
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Admin interaction listing failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not list interactions")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"interactions": events})
}

// AdminProfiles lists user profiles.
func (h *Handler) AdminProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.store.ListProfiles(r.Context(), adminProfileLimit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Admin profile listing failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not list profiles")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"count": len(profiles), "profiles": profiles})
}

// AdminCacheKeys lists live cache keys.
func (h *Handler) AdminCacheKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.cache.Keys("")
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Cache key listing failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not list cache keys")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"cached_keys": keys})
}

// AdminCacheClear drops every cache entry.
func (h *Handler) AdminCacheClear(w http.ResponseWriter, r *http.Request) {
	keys, err := h.cache.Keys("")
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Cache key listing failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not clear cache")
		return
	}

	cleared := 0
	for _, key := range keys {
		if err := h.cache.Delete(key); err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("key", key).Msg("Cache delete failed")
			continue
		}
		cleared++
	}

	logging.Ctx(r.Context()).Info().Int("cleared", cleared).Msg("Cache cleared by admin")
	respondJSON(w, r, http.StatusOK, map[string]any{
		"status":  "success",
		"cleared": cleared,
	})
}
