// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "github.com/google/uuid"

// Group is a named topical category for posts. Groups are created out of
// band (seed or operator tooling); no public handler creates or deletes them.
type Group struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
}

// String renders a group by its title.
func (g Group) String() string {
	return g.Title
}
