// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"inkwell/internal/models"
)

// CommentStore handles all comment-related database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore with the given database connection.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

// ListByPost returns all comments on a post, oldest first, with the
// author's username joined for display.
func (s *CommentStore) ListByPost(postID uuid.UUID) ([]models.Comment, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.post_id, c.author_id, c.text, c.created, u.username
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = $1
		ORDER BY c.created ASC
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.Created, &c.AuthorUsername)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// Create inserts a new comment on a post. Created is set by the database.
func (s *CommentStore) Create(postID, authorID uuid.UUID, text string) (*models.Comment, error) {
	var c models.Comment
	err := s.db.QueryRow(`
		INSERT INTO comments (post_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, post_id, author_id, text, created
	`, postID, authorID, text).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.Created)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return &c, nil
}

// CountByPost returns the number of comments on a post.
func (s *CommentStore) CountByPost(postID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM comments WHERE post_id = $1`, postID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return n, nil
}
