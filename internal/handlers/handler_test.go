// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"inkwell/internal/cache"
	"inkwell/internal/database"
	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/session"
	"inkwell/internal/store"
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

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Valkey    *redis.Client
	Renderer  *render.Renderer
	Sessions  *session.Store
	Users     *store.UserStore
	Groups    *store.GroupStore
	PostStore *store.PostStore
	Comments  *store.CommentStore
	Follows   *store.FollowStore
	Media     *media.Storage
	PageCache *cache.PageCache
	Posts     *Posts
	Auth      *Auth
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Uploaded media lands in a per-test temp directory.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	users := store.NewUserStore(db)
	groups := store.NewGroupStore(db)
	posts := store.NewPostStore(db)
	comments := store.NewCommentStore(db)
	follows := store.NewFollowStore(db)

	mediaStore, err := media.New(t.TempDir())
	if err != nil {
		t.Fatalf("media.New: %v", err)
	}

	pageCache := cache.NewPageCache(vk, cache.IndexTTL)

	return &testEnv{
		DB:        db,
		Valkey:    vk,
		Renderer:  renderer,
		Sessions:  sessions,
		Users:     users,
		Groups:    groups,
		PostStore: posts,
		Comments:  comments,
		Follows:   follows,
		Media:     mediaStore,
		PageCache: pageCache,
		Posts:     NewPosts(renderer, posts, groups, comments, follows, users, mediaStore, pageCache),
		Auth:      NewAuth(renderer, users, sessions),
	}
}

// seedUser creates a user with a unique username and removes it (and,
// via cascade, its posts, comments, and follows) when the test ends.
func seedUser(t *testing.T, env *testEnv) *models.User {
	t.Helper()

	name := "u" + uuid.NewString()[:8]
	user, err := env.Users.Create(name, name+"@example.com", "Test", "User", "secret-pass-123")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM users WHERE id = $1", user.ID) })
	return user
}

// seedGroup creates a group with a unique slug and removes it when the
// test ends.
func seedGroup(t *testing.T, env *testEnv) *models.Group {
	t.Helper()

	slug := "g" + uuid.NewString()[:8]
	group, err := env.Groups.Create(&models.Group{
		Title:       "Group " + slug,
		Slug:        slug,
		Description: "test group",
	})
	if err != nil {
		t.Fatalf("seed group: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM groups WHERE id = $1", group.ID) })
	return group
}

// seedPost creates a post; cleanup rides on the author's cascade.
func seedPost(t *testing.T, env *testEnv, text string, authorID uuid.UUID, groupID *uuid.UUID) *models.Post {
	t.Helper()

	post, err := env.PostStore.Create(text, authorID, groupID, nil)
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return post
}

// testSession builds session data for a seeded user.
func testSession(user *models.User) *session.Data {
	return &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName(),
	}
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both a chi URL param and a session.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}
