// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// previewLength is how many characters of a post's text are used when the
// post is rendered as a one-line title.
const previewLength = 15

// Post is a single authored article. GroupID and Image are optional;
// GroupID becomes NULL when the referenced group is deleted. PubDate is
// set by the database on insert and never changes afterwards.
type Post struct {
	ID       uuid.UUID  `json:"id"`
	Text     string     `json:"text"`
	PubDate  time.Time  `json:"pub_date"`
	AuthorID uuid.UUID  `json:"author_id"`
	GroupID  *uuid.UUID `json:"group_id,omitempty"`
	Image    *string    `json:"image,omitempty"` // relative path under the media root, e.g. "posts/small.gif"

	// Denormalized display fields populated by JOIN queries in the store.
	AuthorUsername string  `json:"author_username,omitempty"`
	GroupTitle     *string `json:"group_title,omitempty"`
	GroupSlug      *string `json:"group_slug,omitempty"`
}

// String renders a post as a short preview of its text.
func (p Post) String() string {
	return p.Preview()
}

// Preview returns the first 15 characters of the post text. Counted in
// runes so multi-byte text (the platform serves a Cyrillic audience) is
// not cut mid-character.
func (p Post) Preview() string {
	runes := []rune(p.Text)
	if len(runes) <= previewLength {
		return p.Text
	}
	return string(runes[:previewLength])
}
