// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers for the site: the post
// listings, post authoring, comments, profiles, follows, and the
// authentication pages. Handlers render HTML pages and redirect with
// 302 Found after successful mutations.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"inkwell/internal/cache"
	"inkwell/internal/forms"
	"inkwell/internal/media"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/paginate"
	"inkwell/internal/render"
	"inkwell/internal/session"
	"inkwell/internal/store"
)

// maxUploadBytes bounds the in-memory part of multipart parsing.
const maxUploadBytes = 10 << 20

// Posts serves the content pages: listings, detail, authoring, comments,
// and follows.
type Posts struct {
	render   *render.Renderer
	posts    *store.PostStore
	groups   *store.GroupStore
	comments *store.CommentStore
	follows  *store.FollowStore
	users    *store.UserStore
	media    *media.Storage
	pages    *cache.PageCache
}

// NewPosts creates the content handler group.
func NewPosts(
	r *render.Renderer,
	posts *store.PostStore,
	groups *store.GroupStore,
	comments *store.CommentStore,
	follows *store.FollowStore,
	users *store.UserStore,
	mediaStore *media.Storage,
	pages *cache.PageCache,
) *Posts {
	return &Posts{
		render:   r,
		posts:    posts,
		groups:   groups,
		comments: comments,
		follows:  follows,
		users:    users,
		media:    mediaStore,
		pages:    pages,
	}
}

// Index serves the main listing of all posts. The rendered page is kept
// in the page cache for a fixed window; within that window every visitor
// gets the cached bytes, even if posts were created or deleted meanwhile.
func (h *Posts) Index(w http.ResponseWriter, r *http.Request) {
	key := cache.RequestKey(r)
	if html, ok := h.pages.Get(r.Context(), key); ok {
		writeHTML(w, html)
		return
	}

	total, err := h.posts.CountAll()
	if err != nil {
		serverError(w, "count posts", err)
		return
	}
	page := paginate.FromRequest(r, total)

	posts, err := h.posts.ListAll(page.Limit(), page.Offset())
	if err != nil {
		serverError(w, "list posts", err)
		return
	}

	html, err := h.render.Bytes(r, "index", &render.PageData{
		Title: "Latest posts",
		Data:  map[string]any{"Posts": posts, "Page": page},
	})
	if err != nil {
		serverError(w, "render index", err)
		return
	}

	h.pages.Set(r.Context(), key, html)
	writeHTML(w, html)
}

// GroupPosts serves the post listing of one group, looked up by slug.
func (h *Posts) GroupPosts(w http.ResponseWriter, r *http.Request) {
	group, err := h.groups.FindBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		serverError(w, "find group", err)
		return
	}
	if group == nil {
		http.NotFound(w, r)
		return
	}

	total, err := h.posts.CountByGroup(group.ID)
	if err != nil {
		serverError(w, "count group posts", err)
		return
	}
	page := paginate.FromRequest(r, total)

	posts, err := h.posts.ListByGroup(group.ID, page.Limit(), page.Offset())
	if err != nil {
		serverError(w, "list group posts", err)
		return
	}

	h.render.Page(w, r, "group_list", &render.PageData{
		Title: group.Title,
		Data:  map[string]any{"Group": group, "Posts": posts, "Page": page},
	})
}

// Profile serves an author's page: their posts plus a follow or unfollow
// link for logged-in visitors looking at someone else's profile.
func (h *Posts) Profile(w http.ResponseWriter, r *http.Request) {
	author, err := h.users.FindByUsername(chi.URLParam(r, "username"))
	if err != nil {
		serverError(w, "find author", err)
		return
	}
	if author == nil {
		http.NotFound(w, r)
		return
	}

	total, err := h.posts.CountByAuthor(author.ID)
	if err != nil {
		serverError(w, "count author posts", err)
		return
	}
	page := paginate.FromRequest(r, total)

	posts, err := h.posts.ListByAuthor(author.ID, page.Limit(), page.Offset())
	if err != nil {
		serverError(w, "list author posts", err)
		return
	}

	followers, err := h.follows.CountFollowers(author.ID)
	if err != nil {
		serverError(w, "count followers", err)
		return
	}
	followingCount, err := h.follows.CountFollowing(author.ID)
	if err != nil {
		serverError(w, "count following", err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	showFollow := sess != nil && sess.Username != author.Username
	following := false
	if showFollow {
		following, err = h.follows.Exists(sess.UserID, author.ID)
		if err != nil {
			serverError(w, "check follow", err)
			return
		}
	}

	h.render.Page(w, r, "profile", &render.PageData{
		Title: author.Username,
		Data: map[string]any{
			"Author":           author,
			"Posts":            posts,
			"Page":             page,
			"Followers":        followers,
			"FollowingCount":   followingCount,
			"ShowFollowButton": showFollow,
			"Following":        following,
		},
	})
}

// PostDetail serves one post with its full text, image, and comments.
// On POST the submitted comment text is bound back into the form, so the
// page re-renders what the visitor typed.
func (h *Posts) PostDetail(w http.ResponseWriter, r *http.Request) {
	post := h.findPost(w, r)
	if post == nil {
		return
	}

	comments, err := h.comments.ListByPost(post.ID)
	if err != nil {
		serverError(w, "list comments", err)
		return
	}

	form := &forms.CommentForm{}
	if r.Method == http.MethodPost {
		form = forms.BindCommentForm(r)
	}

	sess := middleware.SessionFromCtx(r.Context())
	isAuthor := sess != nil && sess.UserID == post.AuthorID

	h.render.Page(w, r, "post_detail", &render.PageData{
		Title: post.Preview(),
		Data: map[string]any{
			"Post":     post,
			"Comments": comments,
			"Form":     form,
			"IsAuthor": isAuthor,
		},
	})
}

// CreateForm serves the empty new-post form.
func (h *Posts) CreateForm(w http.ResponseWriter, r *http.Request) {
	h.renderPostForm(w, r, &forms.PostForm{}, nil)
}

// CreateSubmit handles a new-post submission: an optional image upload,
// the text, and an optional group. On success the author lands on their
// own profile page.
func (h *Posts) CreateSubmit(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	form, ok := h.bindPostForm(w, r)
	if form == nil {
		return
	}
	if !ok {
		h.renderPostForm(w, r, form, nil)
		return
	}

	if _, err := h.posts.Create(form.Text, sess.UserID, form.GroupID, form.Image); err != nil {
		serverError(w, "create post", err)
		return
	}

	http.Redirect(w, r, "/profile/"+sess.Username+"/", http.StatusFound)
}

// EditForm serves the edit form pre-filled with the post's current
// values. Only the author may edit; anyone else is sent back to the
// post page without changes.
func (h *Posts) EditForm(w http.ResponseWriter, r *http.Request) {
	post := h.findPost(w, r)
	if post == nil {
		return
	}
	if !h.requireAuthor(w, r, post) {
		return
	}

	form := &forms.PostForm{Text: post.Text, GroupID: post.GroupID, Image: post.Image}
	h.renderPostForm(w, r, form, post)
}

// EditSubmit applies an edit to a post's text, group, and image. The
// author and publication date stay as they were. Non-authors are
// redirected away without any change being made.
func (h *Posts) EditSubmit(w http.ResponseWriter, r *http.Request) {
	post := h.findPost(w, r)
	if post == nil {
		return
	}
	if !h.requireAuthor(w, r, post) {
		return
	}

	form, ok := h.bindPostForm(w, r)
	if form == nil {
		return
	}
	if form.Image == nil {
		// No new upload keeps the existing picture.
		form.Image = post.Image
	}
	if !ok {
		h.renderPostForm(w, r, form, post)
		return
	}

	if err := h.posts.Update(post.ID, form.Text, form.GroupID, form.Image); err != nil {
		serverError(w, "update post", err)
		return
	}

	http.Redirect(w, r, postPath(post.ID), http.StatusFound)
}

// AddComment attaches a comment to a post. An invalid submission is
// dropped without feedback; either way the visitor lands back on the
// post page.
func (h *Posts) AddComment(w http.ResponseWriter, r *http.Request) {
	post := h.findPost(w, r)
	if post == nil {
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	form := forms.BindCommentForm(r)
	if form.Validate() {
		if _, err := h.comments.Create(post.ID, sess.UserID, form.Text); err != nil {
			serverError(w, "create comment", err)
			return
		}
	}

	http.Redirect(w, r, postPath(post.ID), http.StatusFound)
}

// FollowIndex serves the personal feed: posts from every author the
// logged-in user follows, newest first.
func (h *Posts) FollowIndex(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())

	total, err := h.posts.CountFeed(sess.UserID)
	if err != nil {
		serverError(w, "count feed", err)
		return
	}
	page := paginate.FromRequest(r, total)

	posts, err := h.posts.ListFeed(sess.UserID, page.Limit(), page.Offset())
	if err != nil {
		serverError(w, "list feed", err)
		return
	}

	h.render.Page(w, r, "follow", &render.PageData{
		Title: "My feed",
		Data:  map[string]any{"Posts": posts, "Page": page},
	})
}

// ProfileFollow subscribes the logged-in user to an author. Following
// yourself is ignored; following twice keeps a single subscription.
func (h *Posts) ProfileFollow(w http.ResponseWriter, r *http.Request) {
	author, sess := h.findFollowTarget(w, r)
	if author == nil {
		return
	}

	if sess.Username != author.Username {
		if err := h.follows.Create(sess.UserID, author.ID); err != nil {
			serverError(w, "create follow", err)
			return
		}
	}

	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
}

// ProfileUnfollow removes a subscription. Unfollowing someone you never
// followed is a no-op.
func (h *Posts) ProfileUnfollow(w http.ResponseWriter, r *http.Request) {
	author, sess := h.findFollowTarget(w, r)
	if author == nil {
		return
	}

	if err := h.follows.Delete(sess.UserID, author.ID); err != nil {
		serverError(w, "delete follow", err)
		return
	}

	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
}

// findPost resolves the postID URL parameter, writing a 404 and
// returning nil when the value is not a UUID or no such post exists.
func (h *Posts) findPost(w http.ResponseWriter, r *http.Request) *models.Post {
	id, err := uuid.Parse(chi.URLParam(r, "postID"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	post, err := h.posts.FindByID(id)
	if err != nil {
		serverError(w, "find post", err)
		return nil
	}
	if post == nil {
		http.NotFound(w, r)
		return nil
	}
	return post
}

// requireAuthor lets only the post's author through; everyone else is
// silently redirected to the post page.
func (h *Posts) requireAuthor(w http.ResponseWriter, r *http.Request, post *models.Post) bool {
	sess := middleware.SessionFromCtx(r.Context())
	if sess.UserID != post.AuthorID {
		http.Redirect(w, r, postPath(post.ID), http.StatusFound)
		return false
	}
	return true
}

// findFollowTarget resolves the username URL parameter for the follow
// handlers, writing a 404 when the author does not exist.
func (h *Posts) findFollowTarget(w http.ResponseWriter, r *http.Request) (*models.User, *session.Data) {
	author, err := h.users.FindByUsername(chi.URLParam(r, "username"))
	if err != nil {
		serverError(w, "find author", err)
		return nil, nil
	}
	if author == nil {
		http.NotFound(w, r)
		return nil, nil
	}
	return author, middleware.SessionFromCtx(r.Context())
}

// bindPostForm parses a post submission including the optional image
// upload, runs validation, and verifies a submitted group exists. The
// uploaded file is written to media storage only once the form is valid,
// so rejected submissions leave nothing on disk. It returns (nil, false)
// when a response was already written.
func (h *Posts) bindPostForm(w http.ResponseWriter, r *http.Request) (*forms.PostForm, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil && err != http.ErrNotMultipart {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return nil, false
	}

	form := forms.BindPostForm(r)

	ok := form.Validate()
	if form.GroupID != nil {
		group, err := h.groups.FindByID(*form.GroupID)
		if err != nil {
			serverError(w, "find group", err)
			return nil, false
		}
		if group == nil {
			form.Fail("group", "Select a valid group.")
			ok = false
		}
	}

	if ok {
		if file, header, err := r.FormFile("image"); err == nil {
			defer file.Close()
			rel, err := h.media.SavePostImage(header.Filename, file)
			if err != nil {
				serverError(w, "save image", err)
				return nil, false
			}
			form.Image = &rel
		}
	}

	return form, ok
}

// renderPostForm shows the shared create/edit form. post is nil when
// creating.
func (h *Posts) renderPostForm(w http.ResponseWriter, r *http.Request, form *forms.PostForm, post *models.Post) {
	groups, err := h.groups.List()
	if err != nil {
		serverError(w, "list groups", err)
		return
	}

	selected := ""
	if form.GroupID != nil {
		selected = form.GroupID.String()
	}

	data := map[string]any{
		"Form":          form,
		"Groups":        groups,
		"SelectedGroup": selected,
		"IsEdit":        post != nil,
	}
	title := "New post"
	if post != nil {
		data["PostID"] = post.ID
		title = "Edit post"
	}

	h.render.Page(w, r, "post_create", &render.PageData{Title: title, Data: data})
}

// postPath builds the canonical URL of a post page.
func postPath(id uuid.UUID) string {
	return "/posts/" + id.String() + "/"
}

// writeHTML writes a rendered page with the HTML content type.
func writeHTML(w http.ResponseWriter, html []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// serverError logs the failure and answers with a plain 500.
func serverError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
