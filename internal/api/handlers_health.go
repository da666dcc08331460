// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"net/http"
	"time"
)

var startTime = time.Now()

// Health reports overall service health, including the provider
// breaker state when the provider exposes one.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":         "healthy",
		"uptime_seconds": int(time.Since(startTime).Seconds()),
	}
	if bp, ok := h.provider.(interface{ State() string }); ok {
		payload["provider_state"] = bp.State()
	}
	respondJSON(w, r, http.StatusOK, payload)
}

// HealthLive is the liveness probe: the process is up.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady is the readiness probe: the store answers reads.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if _, _, err := h.store.GetProfile(r.Context(), "readiness-probe"); err != nil {
		respondError(w, r, http.StatusServiceUnavailable, codeInternal, "store not ready")
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ready"})
}
