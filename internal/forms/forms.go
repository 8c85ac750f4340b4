// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package forms defines the input-validation objects for user-submitted
// data: posts, comments, signup, and password change. Each form binds raw
// request values, validates its own fields, and collects field-level error
// messages. Referential checks (does the group exist, is the username
// taken) belong to the handlers, which record failures via Fail.
package forms

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Validation limits for user-submitted fields.
const (
	maxTextLen     = 100_000
	maxNameLen     = 150
	maxUsernameLen = 150
	maxEmailLen    = 254
)

// Form is the shared error-collecting base embedded in every form.
type Form struct {
	Errors map[string]string
}

// Fail records a field-level error message. The first message per field wins.
func (f *Form) Fail(field, message string) {
	if f.Errors == nil {
		f.Errors = make(map[string]string)
	}
	if _, exists := f.Errors[field]; !exists {
		f.Errors[field] = message
	}
}

// Valid reports whether no field errors were recorded.
func (f *Form) Valid() bool {
	return len(f.Errors) == 0
}

// Error returns the message recorded for a field, or "".
func (f *Form) Error(field string) string {
	return f.Errors[field]
}

// PostForm validates post creation and edit submissions. GroupID is set
// only when the submitted group value parses as a UUID; the handler
// verifies the group actually exists.
type PostForm struct {
	Form
	Text    string
	GroupID *uuid.UUID
	// Image is the relative media path of an uploaded picture, filled in
	// by the handler after it stores the file. Optional.
	Image *string
}

// BindPostForm reads post fields from a submitted form.
func BindPostForm(r *http.Request) *PostForm {
	f := &PostForm{Text: r.FormValue("text")}

	if raw := strings.TrimSpace(r.FormValue("group")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			f.Fail("group", "Select a valid group.")
		} else {
			f.GroupID = &id
		}
	}

	return f
}

// Validate checks the local field rules and returns whether the form is valid.
func (f *PostForm) Validate() bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Fail("text", "This field is required.")
	}
	if utf8.RuneCountInString(f.Text) > maxTextLen {
		f.Fail("text", "Post text is too long.")
	}
	return f.Valid()
}

// CommentForm validates comment submissions.
type CommentForm struct {
	Form
	Text string
}

// BindCommentForm reads the comment text from a submitted form.
func BindCommentForm(r *http.Request) *CommentForm {
	return &CommentForm{Text: r.FormValue("text")}
}

// Validate checks the comment field rules.
func (f *CommentForm) Validate() bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Fail("text", "This field is required.")
	}
	if utf8.RuneCountInString(f.Text) > maxTextLen {
		f.Fail("text", "Comment text is too long.")
	}
	return f.Valid()
}

// SignupForm validates new-user registration. The username-taken check is
// delegated to the identity layer: the handler records it via Fail.
type SignupForm struct {
	Form
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Password        string
	PasswordConfirm string
}

// BindSignupForm reads registration fields from a submitted form.
func BindSignupForm(r *http.Request) *SignupForm {
	return &SignupForm{
		FirstName:       strings.TrimSpace(r.FormValue("first_name")),
		LastName:        strings.TrimSpace(r.FormValue("last_name")),
		Username:        strings.TrimSpace(r.FormValue("username")),
		Email:           strings.TrimSpace(r.FormValue("email")),
		Password:        r.FormValue("password1"),
		PasswordConfirm: r.FormValue("password2"),
	}
}

// Validate checks the local registration rules.
func (f *SignupForm) Validate() bool {
	if f.Username == "" {
		f.Fail("username", "This field is required.")
	}
	if utf8.RuneCountInString(f.Username) > maxUsernameLen {
		f.Fail("username", "Username is too long.")
	}
	if strings.ContainsAny(f.Username, " /") {
		f.Fail("username", "Username may not contain spaces or slashes.")
	}
	if utf8.RuneCountInString(f.FirstName) > maxNameLen {
		f.Fail("first_name", "First name is too long.")
	}
	if utf8.RuneCountInString(f.LastName) > maxNameLen {
		f.Fail("last_name", "Last name is too long.")
	}
	if utf8.RuneCountInString(f.Email) > maxEmailLen {
		f.Fail("email", "Email is too long.")
	}
	if f.Password == "" {
		f.Fail("password1", "This field is required.")
	}
	if f.Password != f.PasswordConfirm {
		f.Fail("password2", "The two password fields didn't match.")
	}
	return f.Valid()
}

// PasswordChangeForm validates a password-change submission. Only field
// presence is checked here; verifying the current password happens in the
// identity layer.
type PasswordChangeForm struct {
	Form
	Current string
	New     string
	Repeat  string
}

// BindPasswordChangeForm reads the three password fields.
func BindPasswordChangeForm(r *http.Request) *PasswordChangeForm {
	return &PasswordChangeForm{
		Current: r.FormValue("current_password"),
		New:     r.FormValue("new_password"),
		Repeat:  r.FormValue("repeat_new_password"),
	}
}

// Validate checks that all fields are present and the repeat matches.
func (f *PasswordChangeForm) Validate() bool {
	if f.Current == "" {
		f.Fail("current_password", "This field is required.")
	}
	if f.New == "" {
		f.Fail("new_password", "This field is required.")
	}
	if f.Repeat == "" {
		f.Fail("repeat_new_password", "This field is required.")
	}
	if f.New != "" && f.New != f.Repeat {
		f.Fail("repeat_new_password", "The two password fields didn't match.")
	}
	return f.Valid()
}
