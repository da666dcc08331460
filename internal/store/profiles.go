// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package store

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/models"
)

const profilePrefix = "profile:"

// GetProfile loads a user's profile. found=false means the user has no
// profile yet, which is the cold-start signal.
func (s *Store) GetProfile(ctx context.Context, userID string) (*models.UserProfile, bool, error) {
	profile := &models.UserProfile{}
	found, err := s.getJSON(profilePrefix+userID, profile)
	if err != nil || !found {
		return nil, false, err
	}
	return profile, true, nil
}

// UpsertProfile writes a profile, replacing any previous version.
// The aggregator is the only writer; last write wins.
func (s *Store) UpsertProfile(ctx context.Context, profile *models.UserProfile) error {
	return s.setJSON(profilePrefix+profile.UserID, profile)
}

// ListProfiles returns up to limit profiles in key order. The scan is
// deliberately bounded: the similarity engine works on a sample, not on
// guaranteed full coverage.
func (s *Store) ListProfiles(ctx context.Context, limit int) ([]*models.UserProfile, error) {
	profiles := make([]*models.UserProfile, 0, limit)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(profilePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if len(profiles) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			profile := &models.UserProfile{}
			err := it.Item().Value(func(data []byte) error {
				return json.Unmarshal(data, profile)
			})
			if err != nil {
				return err
			}
			profiles = append(profiles, profile)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	return profiles, nil
}
