// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/novusfeed/internal/auth"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/models"
	"github.com/tomtom215/novusfeed/internal/store"
	"github.com/tomtom215/novusfeed/internal/validation"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=100"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account and returns a token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, verr.Error())
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "password not acceptable")
		return
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondError(w, r, http.StatusConflict, codeConflict, "email already registered")
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("User creation failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not create user")
		return
	}

	token, err := h.jwt.Issue(user.ID, user.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token issue failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not issue token")
		return
	}

	logging.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("User registered")
	respondJSON(w, r, http.StatusCreated, authResponse{Token: token, User: user})
}

// Login verifies credentials and returns a token. Unknown email and
// wrong password produce the same response.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, codeBadRequest, "invalid request body")
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		respondError(w, r, http.StatusBadRequest, codeValidation, verr.Error())
		return
	}

	user, found, err := h.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("User lookup failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "login failed")
		return
	}
	if !found || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		respondError(w, r, http.StatusUnauthorized, codeUnauthorized, "invalid credentials")
		return
	}

	token, err := h.jwt.Issue(user.ID, user.Email)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("Token issue failed")
		respondError(w, r, http.StatusInternalServerError, codeInternal, "could not issue token")
		return
	}

	respondJSON(w, r, http.StatusOK, authResponse{Token: token, User: user})
}
