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

// Sweeper evicts expired entries. *cache.MemoryCache implements it;
// the badger cache backend expires keys natively and needs no sweep.
type Sweeper interface {
	Sweep() int
}

// CacheSweepService periodically evicts expired cache entries.
type CacheSweepService struct {
	sweeper  Sweeper
	interval time.Duration
	name     string
}

// NewCacheSweepService creates the wrapper. interval defaults to one
// minute when unset.
func NewCacheSweepService(sweeper Sweeper, interval time.Duration) *CacheSweepService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &CacheSweepService{
		sweeper:  sweeper,
		interval: interval,
		name:     "cache-sweep",
	}
}

// Serve implements suture.Service.
func (s *CacheSweepService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if evicted := s.sweeper.Sweep(); evicted > 0 {
				logging.Debug().Int("evicted", evicted).Msg("Cache sweep completed")
			}
		}
	}
}

// String identifies the service in supervisor logs.
func (s *CacheSweepService) String() string {
	return s.name
}
