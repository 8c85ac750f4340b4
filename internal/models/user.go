// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the persisted entities of the Inkwell blogging
// platform: users, groups, posts, comments, and follow edges. The structs
// mirror the relational schema one to one; all business rules beyond
// simple string rendering live in the store and handler layers.
package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User is a registered author. Usernames are unique and serve as the
// natural key in profile URLs.
type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// FullName returns the user's display name, falling back to the username
// when no real name was provided at signup.
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}
