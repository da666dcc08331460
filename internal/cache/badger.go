// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package cache

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// badgerKeyPrefix namespaces cache entries inside the shared Badger DB
// so cache keys can never collide with document-store keys.
const badgerKeyPrefix = "cache:"

// BadgerCache implements Cache on BadgerDB using native key TTLs.
// Expired keys become invisible to reads immediately and are reclaimed
// by Badger's garbage collector.
type BadgerCache struct {
	db *badger.DB
}

// NewBadgerCache creates a cache on an already-open Badger DB. The DB
// handle is shared with the document store; lifecycle (open/close)
// belongs to the caller.
func NewBadgerCache(db *badger.DB) *BadgerCache {
	return &BadgerCache{db: db}
}

// Get returns the value for key, or found=false when absent or expired.
func (c *BadgerCache) Get(key string) ([]byte, bool, error) {
	var value []byte

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}

	return value, true, nil
}

// SetEx stores value under key with the given TTL.
func (c *BadgerCache) SetEx(key string, ttl time.Duration, value []byte) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(badgerKeyPrefix+key), value).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
	if err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (c *BadgerCache) Delete(key string) error {
	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(badgerKeyPrefix + key))
	})
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("cache delete %q: %w", key, err)
	}
	return nil
}

// Keys returns all live cache keys with the given prefix.
func (c *BadgerCache) Keys(prefix string) ([]string, error) {
	var keys []string

	err := c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		scan := []byte(badgerKeyPrefix + prefix)
		for it.Seek(scan); it.ValidForPrefix(scan); it.Next() {
			keys = append(keys, string(it.Item().Key()[len(badgerKeyPrefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cache keys %q: %w", prefix, err)
	}

	return keys, nil
}

var _ Cache = (*BadgerCache)(nil)
