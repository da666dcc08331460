// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package services

import (
	"context"
	"time"

	"github.com/tomtom215/novusfeed/internal/logging"
)

// gcDiscardRatio is the Badger value-log rewrite threshold. A file is
// rewritten when at least half of it is garbage.
const gcDiscardRatio = 0.5

// GarbageCollector runs value-log garbage collection. *store.Store
// implements it.
type GarbageCollector interface {
	RunGC(discardRatio float64) error
}

// StoreGCService periodically runs the store's value-log garbage
// collector.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	name     string
}

// NewStoreGCService creates the wrapper. interval defaults to 10
// minutes when unset.
func NewStoreGCService(store GarbageCollector, interval time.Duration) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		name:     "store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.store.RunGC(gcDiscardRatio); err != nil {
				logging.Warn().Err(err).Msg("Store GC pass failed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *StoreGCService) String() string {
	return s.name
}
