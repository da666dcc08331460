// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/validation"
)

type updatePreferencesRequest struct {
	UserID    string   `json:"user_id" validate:"required"`
	Interests []string `json:"interests" validate:"required,min=1,dive,required"`
}

type preferencesResponse struct {
	UserID    string   `json:"user_id"`
	Interests []string `json:"interests"`
}

// UpdatePreferences seeds declared interests into the user's profile.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req updatePreferencesRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, verr.Error())
		return
	}

	if _, err := h.recorder.SeedInterests(r.Context(), req.UserID, req.Interests); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Preference seeding failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not update preferences")
		return
	}

	respondJSON(w, r, http.StatusOK, preferencesResponse{
		UserID:    req.UserID,
		Interests: req.Interests,
	})
}

// GetPreferences returns the user's interests, derived from profile
// topic scores, strongest first.
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	profile, found, err := h.store.GetProfile(r.Context(), userID)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Profile lookup failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not load preferences")
		return
	}
	if !found {
		respondError(w, r, http.StatusNotFound, codeNotFound, "preferences not found")
		return
	}

	interests := make([]string, 0, len(profile.Topics))
	for topic := range profile.Topics {
		interests = append(interests, topic)
	}
	sort.Slice(interests, func(i, j int) bool {
		if profile.Topics[interests[i]] != profile.Topics[interests[j]] {
			return profile.Topics[interests[i]] > profile.Topics[interests[j]]
		}
		return interests[i] < interests[j]
	})

	respondJSON(w, r, http.StatusOK, preferencesResponse{
		UserID:    userID,
		Interests: interests,
	})
}
