// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// FollowStore manages directed subscription edges between users.
// Both Create and Delete are idempotent from the caller's perspective.
type FollowStore struct {
	db *sql.DB
}

// NewFollowStore creates a new FollowStore with the given database connection.
func NewFollowStore(db *sql.DB) *FollowStore {
	return &FollowStore{db: db}
}

// Exists reports whether user already follows author.
func (s *FollowStore) Exists(userID, authorID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM follows WHERE user_id = $1 AND author_id = $2)
	`, userID, authorID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("follow exists: %w", err)
	}
	return exists, nil
}

// Create adds a follow edge. Re-following is a silent no-op: the unique
// constraint on (user_id, author_id) absorbs the duplicate.
func (s *FollowStore) Create(userID, authorID uuid.UUID) error {
	_, err := s.db.Exec(`
		INSERT INTO follows (user_id, author_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, author_id) DO NOTHING
	`, userID, authorID)
	if err != nil {
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

// Delete removes a follow edge. Unfollowing a nonexistent edge is a
// silent no-op.
func (s *FollowStore) Delete(userID, authorID uuid.UUID) error {
	_, err := s.db.Exec(`
		DELETE FROM follows WHERE user_id = $1 AND author_id = $2
	`, userID, authorID)
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

// CountFollowing returns how many authors the user follows.
func (s *FollowStore) CountFollowing(userID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count following: %w", err)
	}
	return n, nil
}

// CountFollowers returns how many users follow the author.
func (s *FollowStore) CountFollowers(authorID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE author_id = $1`, authorID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count followers: %w", err)
	}
	return n, nil
}
