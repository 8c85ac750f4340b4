// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a reply to a post. PostID is required at creation but becomes
// NULL if the referenced post is deleted; the comment itself survives.
type Comment struct {
	ID       uuid.UUID  `json:"id"`
	PostID   *uuid.UUID `json:"post_id,omitempty"`
	AuthorID uuid.UUID  `json:"author_id"`
	Text     string     `json:"text"`
	Created  time.Time  `json:"created"`

	// Populated by JOIN queries in the store.
	AuthorUsername string `json:"author_username,omitempty"`
}
