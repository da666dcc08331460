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
	"github.com/tomtom215/novusfeed/internal/models"
	"github.com/tomtom215/novusfeed/internal/recommend"
	"github.com/tomtom215/novusfeed/internal/validation"
)

// savedArticlesLimit caps the saved-articles listing.
const savedArticlesLimit = 100

type addInteractionRequest struct {
	UserID    string   `json:"user_id" validate:"required"`
	ArticleID string   `json:"article_id" validate:"required"`
	Topic     string   `json:"topic" validate:"required"`
	Keywords  []string `json:"keywords" validate:"required,min=1,dive,required"`
	Type      string   `json:"interaction_type" validate:"required,oneof=view read like save dislike"`
}

type addInteractionResponse struct {
	Message        string              `json:"message"`
	InteractionID  string              `json:"interaction_id"`
	UserID         string              `json:"user_id"`
	ArticleID      string              `json:"article_id"`
	Topic          string              `json:"topic"`
	UpdatedProfile *models.UserProfile `json:"updated_profile"`
}

// AddInteraction records one user-article interaction and returns the
// updated profile.
func (h *Handler) AddInteraction(w http.ResponseWriter, r *http.Request) {
	var req addInteractionRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, verr.Error())
		return
	}

	event := &models.InteractionEvent{
		UserID:    req.UserID,
		ArticleID: req.ArticleID,
		Topic:     req.Topic,
		Keywords:  req.Keywords,
		Type:      models.InteractionType(req.Type),
	}

	profile, err := h.recorder.Record(r.Context(), event)
	if err != nil {
		if errors.Is(err, recommend.ErrEmptyKeywords) {
			respondError(w, r, http.StatusBadRequest, codeValidation, "keywords must not be empty")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Interaction recording failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not record interaction")
		return
	}

	respondJSON(w, r, http.StatusCreated, addInteractionResponse{
		Message:        "Interaction recorded and profile updated",
		InteractionID:  event.ID,
		UserID:         event.UserID,
		ArticleID:      event.ArticleID,
		Topic:          event.Topic,
		UpdatedProfile: profile,
	})
}

// SavedArticles lists the articles a user saved, newest first. Saved
// articles missing from the article store get a minimal placeholder so
// the list stays complete.
func (h *Handler) SavedArticles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	saved, err := h.store.ListSavedArticles(r.Context(), userID, savedArticlesLimit)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Saved articles lookup failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not load saved articles")
		return
	}

	articles := make([]*models.CandidateArticle, 0, len(saved))
	for _, articleID := range saved {
		article, found, err := h.store.GetArticle(r.Context(), articleID)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Str("article", articleID).Msg("Article lookup failed")
		}
		if !found || err != nil {
			article = &models.CandidateArticle{
				URL:     articleID,
				Title:   "Saved article",
				Summary: "Article details not available",
			}
		}
		articles = append(articles, article)
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"user_id":  userID,
		"count":    len(articles),
		"articles": articles,
	})
}
