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

// GroupStore manages post groups in the database.
type GroupStore struct {
	db *sql.DB
}

// NewGroupStore returns a new GroupStore.
func NewGroupStore(db *sql.DB) *GroupStore {
	return &GroupStore{db: db}
}

const groupColumns = `id, title, slug, description`

// scanGroup scans a row into a Group struct.
func scanGroup(scanner interface{ Scan(...any) error }) (*models.Group, error) {
	var g models.Group
	if err := scanner.Scan(&g.ID, &g.Title, &g.Slug, &g.Description); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns all groups ordered by title. Used for the post form's
// group dropdown.
func (s *GroupStore) List() ([]models.Group, error) {
	rows, err := s.db.Query(`SELECT ` + groupColumns + ` FROM groups ORDER BY title`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	defer rows.Close()

	var items []models.Group
	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		items = append(items, *g)
	}
	return items, rows.Err()
}

// FindBySlug retrieves a group by its unique slug. Returns nil if not found.
func (s *GroupStore) FindBySlug(slug string) (*models.Group, error) {
	row := s.db.QueryRow(`SELECT `+groupColumns+` FROM groups WHERE slug = $1`, slug)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find group by slug: %w", err)
	}
	return g, nil
}

// FindByID retrieves a group by ID. Returns nil if not found.
func (s *GroupStore) FindByID(id uuid.UUID) (*models.Group, error) {
	row := s.db.QueryRow(`SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	g, err := scanGroup(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find group by id: %w", err)
	}
	return g, nil
}

// Create inserts a new group and returns it. Groups are created by seed
// data or operator tooling, never by a public handler.
func (s *GroupStore) Create(g *models.Group) (*models.Group, error) {
	row := s.db.QueryRow(`
		INSERT INTO groups (title, slug, description)
		VALUES ($1, $2, $3)
		RETURNING `+groupColumns,
		g.Title, g.Slug, g.Description,
	)
	created, err := scanGroup(row)
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return created, nil
}

// Delete removes a group by ID. Posts referencing it are orphaned, not
// deleted (ON DELETE SET NULL).
func (s *GroupStore) Delete(id uuid.UUID) error {
	if _, err := s.db.Exec(`DELETE FROM groups WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}
