// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package api provides the HTTP surface: routing, handlers and
// request/response plumbing.
package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/auth"
	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/config"
	"github.com/tomtom215/novusfeed/internal/extract"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/models"
	"github.com/tomtom215/novusfeed/internal/provider"
	"github.com/tomtom215/novusfeed/internal/recommend"
)

// Store is the persistence surface the handlers depend on. *store.Store
// implements it.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, userID string) (*models.User, bool, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, bool, error)
	ListUsers(ctx context.Context, limit int) ([]*models.User, error)

	GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error)
	ListProfiles(ctx context.Context, limit int) ([]*models.UserProfile, error)

	ListInteractions(ctx context.Context, userID string, limit int) ([]*models.InteractionEvent, error)
	ListAllInteractions(ctx context.Context, limit int) ([]*models.InteractionEvent, error)
	ListSavedArticles(ctx context.Context, userID string, limit int) ([]string, error)

	UpsertArticle(ctx context.Context, article *models.CandidateArticle) error
	GetArticle(ctx context.Context, url string) (*models.CandidateArticle, bool, error)
}

// Recommender produces recommendation bundles. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, userID string) (*recommend.Bundle, error)
}

// SimilarityFinder ranks similar users. *recommend.SimilarityEngine
// implements it.
type SimilarityFinder interface {
	SimilarUsers(ctx context.Context, userID string) ([]models.SimilarityEntry, error)
}

// Recorder folds interactions and preference seeds into profiles.
// *recommend.Aggregator implements it.
type Recorder interface {
	Record(ctx context.Context, event *models.InteractionEvent) (*models.UserProfile, error)
	SeedInterests(ctx context.Context, userID string, interests []string) (*models.UserProfile, error)
}

// Handler carries the dependencies of all HTTP handlers.
type Handler struct {
	cfg        *config.Config
	store      Store
	cache      cache.Cache
	recommend  Recommender
	similarity SimilarityFinder
	recorder   Recorder
	provider   provider.Provider
	enricher   *extract.Enricher
	jwt        *auth.JWTManager
}

// NewHandler wires the HTTP handlers.
func NewHandler(
	cfg *config.Config,
	store Store,
	c cache.Cache,
	rec Recommender,
	sim SimilarityFinder,
	recorder Recorder,
	prov provider.Provider,
	enricher *extract.Enricher,
	jwt *auth.JWTManager,
) *Handler {
	return &Handler{
		cfg:        cfg,
		store:      store,
		cache:      c,
		recommend:  rec,
		similarity: sim,
		recorder:   recorder,
		provider:   prov,
		enricher:   enricher,
		jwt:        jwt,
	}
}

// respondJSON writes v as a JSON response.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Response encoding failed")
	}
}

// respondError writes a structured error response.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, errorResponse{
		Error: errorBody{Code: code, Message: message},
	})
}

// decodeBody decodes the request body into v, rejecting unknown fields.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
