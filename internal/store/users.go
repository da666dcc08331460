// Novusfeed - Personalized News Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/novusfeed

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/novusfeed/internal/models"
)

const (
	userPrefix      = "user:"
	userEmailPrefix = "useremail:"
)

// ErrEmailTaken is returned when registering an email that already has
// an account.
var ErrEmailTaken = errors.New("email already registered")

// storedUser persists the password hash, which models.User deliberately
// excludes from JSON serialization.
type storedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
}

// CreateUser persists a new account and its email index entry. The
// email uniqueness check and both writes happen in one transaction.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	email := strings.ToLower(user.Email)

	userData, err := json.Marshal(&storedUser{User: *user, PasswordHash: user.PasswordHash})
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(userEmailPrefix + email))
		if err == nil {
			return ErrEmailTaken
		}
		if err != badger.ErrKeyNotFound {
			return err
		}

		if err := txn.Set([]byte(userPrefix+user.ID), userData); err != nil {
			return err
		}
		return txn.Set([]byte(userEmailPrefix+email), []byte(user.ID))
	})
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetUser loads an account by ID.
func (s *Store) GetUser(ctx context.Context, userID string) (*models.User, bool, error) {
	stored := &storedUser{}
	found, err := s.getJSON(userPrefix+userID, stored)
	if err != nil || !found {
		return nil, false, err
	}

	user := stored.User
	user.PasswordHash = stored.PasswordHash
	return &user, true, nil
}

// GetUserByEmail resolves an email through the index and loads the
// account.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	var userID string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(userEmailPrefix + strings.ToLower(email)))
		if err != nil {
			return err
		}
		return item.Value(func(data []byte) error {
			userID = string(data)
			return nil
		})
	})
	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("resolve email: %w", err)
	}

	return s.GetUser(ctx, userID)
}

// ListUsers returns up to limit accounts in key order. Admin surface
// only.
func (s *Store) ListUsers(ctx context.Context, limit int) ([]*models.User, error) {
	users := make([]*models.User, 0, limit)

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(userPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if len(users) >= limit {
				break
			}

			stored := &storedUser{}
			err := it.Item().Value(func(data []byte) error {
				return json.Unmarshal(data, stored)
			})
			if err != nil {
				return err
			}

			user := stored.User
			user.PasswordHash = stored.PasswordHash
			users = append(users, &user)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}
