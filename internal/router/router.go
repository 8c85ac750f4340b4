// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires the HTTP routes and middleware chain. Links are
// written with trailing slashes; StripSlashes normalizes them so both
// forms reach the same handler without a redirect hop.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"inkwell/internal/config"
	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/internal/session"
)

// New builds the application router. loginLimiter throttles the
// credential-bearing POST endpoints; pass nil to disable (tests).
func New(
	cfg *config.Config,
	posts *handlers.Posts,
	auth *handlers.Auth,
	sessions *session.Store,
	loginLimiter *middleware.RateLimiter,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(chimw.StripSlashes)
	r.Use(middleware.LoadSession(sessions))
	r.Use(middleware.NewCSRF(!cfg.IsDev()))

	throttled := func(h http.HandlerFunc) http.HandlerFunc {
		if loginLimiter == nil {
			return h
		}
		return loginLimiter.Middleware(h).ServeHTTP
	}

	// Public pages.
	r.Get("/", posts.Index)
	r.Get("/group/{slug}", posts.GroupPosts)
	r.Get("/profile/{username}", posts.Profile)
	r.Get("/posts/{postID}", posts.PostDetail)
	r.Post("/posts/{postID}", posts.PostDetail)

	r.Get("/auth/signup", auth.SignupForm)
	r.Post("/auth/signup", throttled(auth.SignupSubmit))
	r.Get("/auth/login", auth.LoginForm)
	r.Post("/auth/login", throttled(auth.LoginSubmit))

	// Pages that need a logged-in user.
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/create", posts.CreateForm)
		pr.Post("/create", posts.CreateSubmit)
		pr.Get("/posts/{postID}/edit", posts.EditForm)
		pr.Post("/posts/{postID}/edit", posts.EditSubmit)
		pr.Post("/posts/{postID}/comment", posts.AddComment)
		pr.Get("/follow", posts.FollowIndex)
		pr.Get("/profile/{username}/follow", posts.ProfileFollow)
		pr.Get("/profile/{username}/unfollow", posts.ProfileUnfollow)

		pr.Post("/auth/logout", auth.Logout)
		pr.Get("/auth/password_change", auth.PasswordChangeForm)
		pr.Post("/auth/password_change", auth.PasswordChangeSubmit)
	})

	// Uploaded images.
	r.Handle("/media/*", http.StripPrefix("/media/",
		http.FileServer(http.Dir(cfg.MediaRoot))))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
