// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"inkwell/internal/forms"
	"inkwell/internal/middleware"
	"inkwell/internal/render"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// Auth serves signup, login, logout, and password change.
type Auth struct {
	render   *render.Renderer
	users    *store.UserStore
	sessions *session.Store
}

// NewAuth creates the authentication handler group.
func NewAuth(r *render.Renderer, users *store.UserStore, sessions *session.Store) *Auth {
	return &Auth{render: r, users: users, sessions: sessions}
}

// LoginForm serves the login page. Already-authenticated visitors are
// sent to the front page. A "next" query parameter is carried through
// the form so a successful login returns to the original target.
func (h *Auth) LoginForm(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	h.render.Page(w, r, "login", &render.PageData{
		Title: "Log in",
		Data:  map[string]any{"Next": r.URL.Query().Get("next")},
	})
}

// LoginSubmit checks the credentials and starts a session. The error
// message never says which of the two fields was wrong.
func (h *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := h.users.FindByUsername(username)
	if err != nil {
		serverError(w, "find user", err)
		return
	}

	if user == nil || !h.users.CheckPassword(user, password) {
		h.render.Page(w, r, "login", &render.PageData{
			Title: "Log in",
			Data: map[string]any{
				"Error": "Please enter a correct username and password.",
				"Next":  r.URL.Query().Get("next"),
			},
		})
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:   user.ID,
		Username: user.Username,
		FullName: user.FullName(),
	})
	if err != nil {
		serverError(w, "create session", err)
		return
	}

	http.Redirect(w, r, safeNext(r.URL.Query().Get("next")), http.StatusFound)
}

// Logout destroys the session and returns to the front page.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		serverError(w, "destroy session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// SignupForm serves the registration page.
func (h *Auth) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "signup", &render.PageData{
		Title: "Sign up",
		Data:  map[string]any{"Form": &forms.SignupForm{}},
	})
}

// SignupSubmit registers a new user and sends them to the login page.
// The username's uniqueness is decided by the insert itself, so two
// concurrent signups with the same name cannot both succeed.
func (h *Auth) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	form := forms.BindSignupForm(r)

	rerender := func() {
		h.render.Page(w, r, "signup", &render.PageData{
			Title: "Sign up",
			Data:  map[string]any{"Form": form},
		})
	}

	if !form.Validate() {
		rerender()
		return
	}

	_, err := h.users.Create(form.Username, form.Email, form.FirstName, form.LastName, form.Password)
	if errors.Is(err, store.ErrUsernameTaken) {
		form.Fail("username", "A user with that username already exists.")
		rerender()
		return
	}
	if err != nil {
		serverError(w, "create user", err)
		return
	}

	http.Redirect(w, r, middleware.LoginPath, http.StatusFound)
}

// PasswordChangeForm serves the password change page.
func (h *Auth) PasswordChangeForm(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "password_change", &render.PageData{
		Title: "Change password",
		Data:  map[string]any{"Form": &forms.PasswordChangeForm{}},
	})
}

// PasswordChangeSubmit rehashes the password after verifying the
// current one. The session stays valid.
func (h *Auth) PasswordChangeSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	form := forms.BindPasswordChangeForm(r)

	done := false
	if form.Validate() {
		ok, err := h.users.ChangePassword(sess.UserID, form.Current, form.New)
		if err != nil {
			serverError(w, "change password", err)
			return
		}
		if !ok {
			form.Fail("current_password", "Your current password was entered incorrectly.")
		}
		done = ok
	}

	h.render.Page(w, r, "password_change", &render.PageData{
		Title: "Change password",
		Data:  map[string]any{"Form": form, "Done": done},
	})
}

// safeNext keeps post-login redirects on this site: only local absolute
// paths are honored, anything else falls back to the front page.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return "/"
}
