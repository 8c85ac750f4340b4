// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides shared test infrastructure for store integration
// tests. Tests are skipped when PostgreSQL is unavailable.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"inkwell/internal/database"
	"inkwell/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "inkwell")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "inkwell")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// seedTestUser creates a user with a unique username and registers cleanup.
// Deleting the user cascades to their posts, comments, and follow edges.
func seedTestUser(t *testing.T, db *sql.DB, prefix string) *models.User {
	t.Helper()

	username := fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
	u, err := NewUserStore(db).Create(username, username+"@store-test.local", "Test", "User", "testpass123")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = $1", u.ID) })
	return u
}

// seedTestGroup creates a group with a unique slug and registers cleanup.
func seedTestGroup(t *testing.T, db *sql.DB, title string) *models.Group {
	t.Helper()

	g, err := NewGroupStore(db).Create(&models.Group{
		Title:       title,
		Slug:        fmt.Sprintf("test-%s", uuid.NewString()[:8]),
		Description: "store test group",
	})
	if err != nil {
		t.Fatalf("seed group: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM groups WHERE id = $1", g.ID) })
	return g
}

// seedTestPost creates a post for the given author, optionally in a group.
func seedTestPost(t *testing.T, db *sql.DB, text string, authorID uuid.UUID, groupID *uuid.UUID) *models.Post {
	t.Helper()

	p, err := NewPostStore(db).Create(text, authorID, groupID, nil)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}
