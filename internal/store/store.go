// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

// Package store persists Novusfeed's documents in BadgerDB.
//
// Key layout:
//
//	user:<id>                       registered account
//	useremail:<email>               email -> user id index
//	profile:<user_id>               aggregated user profile
//	interaction:<uid>:<ts>:<id>     interaction event (append-only)
//	article:<url>                   enriched article
//
// All values are goccy/go-json documents. The cache package shares the
// same DB handle under its own "cache:" prefix.
package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Store is the BadgerDB-backed document store.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// Open opens (or creates) the store at path. With inMemory set, data
// lives only for the process lifetime; used by tests.
func Open(path string, inMemory bool, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithInMemory(inMemory).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %q: %w", path, err)
	}

	logger.Info().Str("path", path).Bool("in_memory", inMemory).Msg("Document store opened")
	return &Store{db: db, logger: logger}, nil
}

// DB exposes the underlying Badger handle so the cache backend and the
// value-log GC service can share it.
func (s *Store) DB() *badger.DB {
	return s.db
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close badger: %w", err)
	}
	return nil
}

// RunGC runs one value-log garbage collection pass. Badger returns
// ErrNoRewrite when there was nothing to reclaim; that is not an error.
func (s *Store) RunGC(discardRatio float64) error {
	err := s.db.RunValueLogGC(discardRatio)
	if err == badger.ErrNoRewrite {
		return nil
	}
	return err
}

// setJSON marshals v and stores it under key.
func (s *Store) setJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %q: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return fmt.Errorf("store %q: %w", key, err)
	}
	return nil
}

// getJSON loads key into v. Returns found=false when the key is absent.
func (s *Store) getJSON(key string, v any) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(data []byte) error {
			return json.Unmarshal(data, v)
		})
	})
	if err == badger.ErrKeyNotFound {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}
	return true, nil
}
