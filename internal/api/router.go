// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP routing tree.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(requestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogging)
	r.Use(securityHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-Admin-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(h.cfg.Server.RateLimitPerMinute, time.Minute))

	r.Get("/", h.Root)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(requestMetrics)

		r.Route("/health", func(r chi.Router) {
			r.Get("/", h.Health)
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
		})

		// Endpoints that act on behalf of a user require a token.
		r.Group(func(r chi.Router) {
			r.Use(h.jwt.Middleware)

			r.Route("/interactions", func(r chi.Router) {
				r.Post("/add", h.AddInteraction)
				r.Get("/saved/{userID}", h.SavedArticles)
			})

			r.Route("/preferences", func(r chi.Router) {
				r.Post("/update", h.UpdatePreferences)
				r.Get("/{userID}", h.GetPreferences)
			})
		})

		r.Get("/news/{topic}", h.News)
		r.Get("/headlines/{category}", h.Headlines)

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/{userID}", h.Recommendations)
			r.Get("/collaborative/{userID}", h.Collaborative)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.adminOnly)
			r.Get("/users", h.AdminUsers)
			r.Get("/interactions", h.AdminInteractions)
			r.Get("/profiles", h.AdminProfiles)
			r.Get("/cache/keys", h.AdminCacheKeys)
			r.Delete("/cache/clear", h.AdminCacheClear)
		})
	})

	return r
}

// Root identifies the service.
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"service": "novusfeed",
		"status":  "ok",
	})
}
