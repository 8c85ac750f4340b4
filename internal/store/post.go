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

// PostStore handles all post-related database operations. Every listing
// query orders by publication date, newest first, and joins author and
// group display fields so handlers render without extra lookups.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postSelect = `
	SELECT p.id, p.text, p.pub_date, p.author_id, p.group_id, p.image,
	       u.username, g.title, g.slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id`

// scanPost scans a joined row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Text, &p.PubDate, &p.AuthorID, &p.GroupID, &p.Image,
		&p.AuthorUsername, &p.GroupTitle, &p.GroupSlug,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// collectPosts drains a result set into a slice.
func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	defer rows.Close()

	var items []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListAll returns one page of all posts, newest first.
func (s *PostStore) ListAll(limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		ORDER BY p.pub_date DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return collectPosts(rows)
}

// CountAll returns the total number of posts.
func (s *PostStore) CountAll() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

// ListByGroup returns one page of posts in the given group, newest first.
func (s *PostStore) ListByGroup(groupID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.group_id = $1
		ORDER BY p.pub_date DESC
		LIMIT $2 OFFSET $3
	`, groupID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by group: %w", err)
	}
	return collectPosts(rows)
}

// CountByGroup returns the number of posts in a group.
func (s *PostStore) CountByGroup(groupID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE group_id = $1`, groupID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts by group: %w", err)
	}
	return n, nil
}

// ListByAuthor returns one page of posts by the given author, newest first.
func (s *PostStore) ListByAuthor(authorID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.author_id = $1
		ORDER BY p.pub_date DESC
		LIMIT $2 OFFSET $3
	`, authorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return collectPosts(rows)
}

// CountByAuthor returns the number of posts by an author.
func (s *PostStore) CountByAuthor(authorID uuid.UUID) (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts by author: %w", err)
	}
	return n, nil
}

// ListFeed returns one page of posts authored by anyone the given user
// follows, newest first.
func (s *PostStore) ListFeed(userID uuid.UUID, limit, offset int) ([]models.Post, error) {
	rows, err := s.db.Query(postSelect+`
		WHERE p.author_id IN (SELECT author_id FROM follows WHERE user_id = $1)
		ORDER BY p.pub_date DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list feed: %w", err)
	}
	return collectPosts(rows)
}

// CountFeed returns the number of posts visible in a user's follow feed.
func (s *PostStore) CountFeed(userID uuid.UUID) (int, error) {
	var n int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM posts
		WHERE author_id IN (SELECT author_id FROM follows WHERE user_id = $1)
	`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count feed: %w", err)
	}
	return n, nil
}

// FindByID retrieves a post by its UUID. Returns nil if not found.
func (s *PostStore) FindByID(id uuid.UUID) (*models.Post, error) {
	row := s.db.QueryRow(postSelect+` WHERE p.id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}
	return p, nil
}

// Create inserts a new post. PubDate is set by the database.
func (s *PostStore) Create(text string, authorID uuid.UUID, groupID *uuid.UUID, image *string) (*models.Post, error) {
	var id uuid.UUID
	err := s.db.QueryRow(`
		INSERT INTO posts (text, author_id, group_id, image)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, text, authorID, groupID, image).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	return s.FindByID(id)
}

// Update modifies the mutable fields of a post: text, group, and image.
// Author and publication date never change.
func (s *PostStore) Update(id uuid.UUID, text string, groupID *uuid.UUID, image *string) error {
	_, err := s.db.Exec(`
		UPDATE posts SET text = $1, group_id = $2, image = $3
		WHERE id = $4
	`, text, groupID, image, id)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return nil
}

// Delete removes a post by ID. No public handler deletes posts; this
// exists for operator tooling and tests. Comments referencing the post
// are orphaned, not deleted (ON DELETE SET NULL).
func (s *PostStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM posts WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return nil
}
