package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

// CSRFTokenKey is the context key under which the active CSRF token is
// stored, so templates can embed it even on the response that first set
// the cookie.
const CSRFTokenKey contextKey = "csrf_token"

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "iw_csrf"

	// CSRFHeaderName is an alternative carrier for clients that submit
	// the token as a header instead of a form field.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field name used by HTML forms.
	CSRFFormField = "csrf_token"
)

// NewCSRF returns a double-submit cookie CSRF middleware. It generates a
// token stored in a cookie and validates that subsequent state-changing
// requests (POST, PUT, PATCH, DELETE) include the same token as a form
// field or header. When secure is true, the cookie is HTTPS-only.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Ensure a CSRF token cookie exists.
			cookie, err := r.Cookie(CSRFCookieName)
			if err != nil || cookie.Value == "" {
				token, err := generateCSRFToken()
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: false,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
				cookie = &http.Cookie{Value: token}
			}

			r = r.WithContext(context.WithValue(r.Context(), CSRFTokenKey, cookie.Value))

			// Safe methods don't need CSRF validation.
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// For state-changing methods, validate the token.
			// Check the form field first (HTML forms), then the header.
			submitted := r.PostFormValue(CSRFFormField)
			if submitted == "" {
				submitted = r.Header.Get(CSRFHeaderName)
			}

			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(submitted)) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// GetCSRFToken returns the active CSRF token for a request: the one the
// middleware placed in the context, falling back to the request cookie.
// Used by the renderer to populate hidden form fields.
func GetCSRFToken(r *http.Request) string {
	if token, _ := r.Context().Value(CSRFTokenKey).(string); token != "" {
		return token
	}
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
