// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"inkwell/internal/session"
)

// ctxWithSession returns a context carrying the given session data using
// the same context key the middleware uses. This allows tests to simulate
// the state after LoadSession has run without needing a real Valkey store.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, SessionKey, data)
}

// okHandler is a simple handler that records whether it was invoked.
func okHandler() (http.Handler, *bool) {
	var called bool
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})
	return h, &called
}

func TestRequireAuthAnonymousRedirects(t *testing.T) {
	inner, called := okHandler()
	handler := RequireAuth(inner)

	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if *called {
		t.Error("inner handler must not run for anonymous requests")
	}
	if rr.Code != http.StatusFound {
		t.Errorf("status: got %d, want 302", rr.Code)
	}

	// The redirect carries the original path in "next".
	loc := rr.Header().Get("Location")
	want := "/auth/login?next=%2Fcreate"
	if loc != want {
		t.Errorf("location: got %q, want %q", loc, want)
	}
}

func TestRequireAuthAuthenticatedPasses(t *testing.T) {
	inner, called := okHandler()
	handler := RequireAuth(inner)

	sess := &session.Data{UserID: uuid.New(), Username: "leo"}
	req := httptest.NewRequest(http.MethodGet, "/create", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sess))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !*called {
		t.Error("inner handler should run for authenticated requests")
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rr.Code)
	}
}

func TestSessionFromCtx(t *testing.T) {
	if got := SessionFromCtx(context.Background()); got != nil {
		t.Errorf("empty context: got %+v, want nil", got)
	}

	sess := &session.Data{UserID: uuid.New(), Username: "leo"}
	ctx := ctxWithSession(context.Background(), sess)
	if got := SessionFromCtx(ctx); got != sess {
		t.Errorf("got %+v, want the stored session", got)
	}
}
