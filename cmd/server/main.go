// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package main is the entry point for the Novusfeed server.
//
// Novusfeed is a personalized news recommendation service. It records
// user-article interactions, folds them into behavioral profiles, and
// serves recommendations through a fallback chain: cached hybrid
// results, a fresh hybrid blend of content-based and collaborative
// scores, collaborative-only, content-only, and finally trending
// headlines for cold-start users.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: koanf v2 over defaults, config.yaml and
//     NOVUSFEED_-prefixed environment variables
//  2. Store: BadgerDB document store for users, profiles, interactions
//     and articles
//  3. Cache: TTL cache (badger or in-memory backend)
//  4. Provider: GNews or RSS candidate source behind a circuit breaker
//  5. Recommendation core: aggregator, similarity engine, content
//     scorer, blender and the orchestrating engine
//  6. HTTP server: chi router with JWT-protected user surfaces
//
// Everything long-running is supervised by a suture tree; the store GC
// loop and cache sweeper live in the data layer, the HTTP server in the
// API layer.
//
// # Signal Handling
//
// SIGINT and SIGTERM trigger graceful shutdown: the HTTP server drains
// in-flight requests within the configured timeout, then the store is
// closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/novusfeed/internal/api"
	"github.com/tomtom215/novusfeed/internal/auth"
	"github.com/tomtom215/novusfeed/internal/cache"
	"github.com/tomtom215/novusfeed/internal/config"
	"github.com/tomtom215/novusfeed/internal/extract"
	"github.com/tomtom215/novusfeed/internal/logging"
	"github.com/tomtom215/novusfeed/internal/provider"
	"github.com/tomtom215/novusfeed/internal/recommend"
	"github.com/tomtom215/novusfeed/internal/store"
	"github.com/tomtom215/novusfeed/internal/supervisor"
	"github.com/tomtom215/novusfeed/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("store_path", cfg.Store.Path).
		Bool("store_in_memory", cfg.Store.InMemory).
		Str("cache_backend", cfg.Cache.Backend).
		Str("provider_backend", cfg.Provider.Backend).
		Msg("Configuration loaded")

	st, err := store.Open(cfg.Store.Path, cfg.Store.InMemory, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open store")
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()
	logging.Info().Msg("Store opened")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Supervisor tree with the zerolog-backed slog adapter for
	// sutureslog.
	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	var c cache.Cache
	switch cfg.Cache.Backend {
	case "memory":
		mem := cache.NewMemoryCache()
		c = mem
		tree.AddDataService(services.NewCacheSweepService(mem, cfg.Cache.SweepInterval))
	default:
		c = cache.NewBadgerCache(st.DB())
	}

	var upstream provider.Provider
	switch cfg.Provider.Backend {
	case "rss":
		upstream = provider.NewRSSProvider(cfg.Provider.Feeds)
	default:
		upstream = provider.NewGNewsClient(cfg.Provider)
	}
	upstream = provider.NewBreakerProvider(cfg.Provider.Backend, upstream)
	logging.Info().Str("backend", cfg.Provider.Backend).Msg("News provider initialized")

	recCfg := recommend.Config{
		ContentWeight:    cfg.Recommend.ContentWeight,
		CollabWeight:     cfg.Recommend.CollabWeight,
		KeywordFactor:    cfg.Recommend.KeywordFactor,
		SimilarityTTL:    cfg.Recommend.SimilarityTTL,
		HybridTTL:        cfg.Recommend.HybridTTL,
		ProfileScanLimit: cfg.Recommend.ProfileScanLimit,
		CandidateLimit:   cfg.Provider.MaxResults,
		ProviderTimeout:  cfg.Recommend.ProviderTimeout,
	}
	if err := recCfg.Validate(); err != nil {
		logging.Fatal().Err(err).Msg("Invalid recommendation configuration")
	}

	engine := recommend.NewEngine(st, c, upstream, recCfg)
	aggregator := recommend.NewAggregator(st, st, c)
	enricher := extract.NewEnricher(cfg.Enrich)
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)

	if cfg.Auth.AdminKey == "" {
		logging.Warn().Msg("Admin key not configured; admin endpoints are disabled")
	}

	handler := api.NewHandler(cfg, st, c, engine, engine.Similarity(), aggregator, upstream, enricher, jwtManager)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree.AddDataService(services.NewStoreGCService(st, cfg.Store.GCInterval))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain the channel so shutdown errors are not lost.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Novusfeed stopped gracefully")
}
