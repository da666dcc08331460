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

const interactionPrefix = "interaction:"

// interactionKey orders events per user by arrival time. The nanosecond
// timestamp plus the event ID keeps keys unique even for same-instant
// events.
func interactionKey(event *models.InteractionEvent) string {
	return fmt.Sprintf("%s%s:%020d:%s",
		interactionPrefix, event.UserID, event.CreatedAt.UnixNano(), event.ID)
}

// AppendInteraction persists an interaction event. Events are immutable
// once written.
func (s *Store) AppendInteraction(ctx context.Context, event *models.InteractionEvent) error {
	return s.setJSON(interactionKey(event), event)
}

// ListInteractions returns up to limit of the user's events, newest
// first.
func (s *Store) ListInteractions(ctx context.Context, userID string, limit int) ([]*models.InteractionEvent, error) {
	events := make([]*models.InteractionEvent, 0, limit)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(interactionPrefix + userID + ":")
		// Reverse iteration starts past the last key in the prefix range.
		seek := append(append([]byte{}, prefix...), 0xff)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if len(events) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			event := &models.InteractionEvent{}
			err := it.Item().Value(func(data []byte) error {
				return json.Unmarshal(data, event)
			})
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list interactions for %s: %w", userID, err)
	}

	return events, nil
}

// ListAllInteractions returns up to limit events across all users in
// key order. Admin surface only.
func (s *Store) ListAllInteractions(ctx context.Context, limit int) ([]*models.InteractionEvent, error) {
	events := make([]*models.InteractionEvent, 0, limit)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(interactionPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if len(events) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			event := &models.InteractionEvent{}
			err := it.Item().Value(func(data []byte) error {
				return json.Unmarshal(data, event)
			})
			if err != nil {
				return err
			}
			events = append(events, event)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list all interactions: %w", err)
	}

	return events, nil
}

// ListSavedArticles returns the IDs of articles the user saved, newest
// first, deduplicated, capped at limit.
func (s *Store) ListSavedArticles(ctx context.Context, userID string, limit int) ([]string, error) {
	// Scan more events than the cap since most are not saves.
	events, err := s.ListInteractions(ctx, userID, limit*10)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	saved := make([]string, 0, limit)
	for _, event := range events {
		if event.Type != models.InteractionSave {
			continue
		}
		if _, dup := seen[event.ArticleID]; dup {
			continue
		}
		seen[event.ArticleID] = struct{}{}
		saved = append(saved, event.ArticleID)
		if len(saved) >= limit {
			break
		}
	}

	return saved, nil
}
