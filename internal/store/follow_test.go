// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "testing"

func TestFollowStoreIdempotence(t *testing.T) {
	db := testDB(t)
	s := NewFollowStore(db)
	follower := seedTestUser(t, db, "follower")
	author := seedTestUser(t, db, "followed")

	// Following twice leaves exactly one edge.
	if err := s.Create(follower.ID, author.ID); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Create(follower.ID, author.ID); err != nil {
		t.Fatalf("Create (repeat): %v", err)
	}

	n, err := s.CountFollowing(follower.ID)
	if err != nil {
		t.Fatalf("CountFollowing: %v", err)
	}
	if n != 1 {
		t.Errorf("edges after double follow: got %d, want 1", n)
	}

	exists, err := s.Exists(follower.ID, author.ID)
	if err != nil {
		t.Fatalf("Exists: %v", err)
	}
	if !exists {
		t.Error("expected edge to exist")
	}

	// Unfollowing twice leaves zero edges and no error.
	if err := s.Delete(follower.ID, author.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(follower.ID, author.ID); err != nil {
		t.Fatalf("Delete (repeat): %v", err)
	}

	n, err = s.CountFollowing(follower.ID)
	if err != nil {
		t.Fatalf("CountFollowing: %v", err)
	}
	if n != 0 {
		t.Errorf("edges after double unfollow: got %d, want 0", n)
	}
}

func TestFollowStoreSelfFollowRejected(t *testing.T) {
	db := testDB(t)
	s := NewFollowStore(db)
	user := seedTestUser(t, db, "narcissist")

	// The schema CHECK constraint is the backstop behind the handler's
	// own self-follow guard.
	if err := s.Create(user.ID, user.ID); err == nil {
		t.Error("expected self-follow to violate the check constraint")
	}
}

func TestFollowStoreFeedVisibility(t *testing.T) {
	db := testDB(t)
	posts := NewPostStore(db)
	follows := NewFollowStore(db)

	reader := seedTestUser(t, db, "reader")
	author := seedTestUser(t, db, "writer")
	stranger := seedTestUser(t, db, "stranger")

	seedTestPost(t, db, "followed author's post", author.ID, nil)
	seedTestPost(t, db, "stranger's post", stranger.ID, nil)

	if err := follows.Create(reader.ID, author.ID); err != nil {
		t.Fatalf("Create follow: %v", err)
	}

	feed, err := posts.ListFeed(reader.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("feed: got %d posts, want 1", len(feed))
	}
	if feed[0].Text != "followed author's post" {
		t.Errorf("feed content: got %q", feed[0].Text)
	}

	// After unfollowing, the feed is empty again.
	if err := follows.Delete(reader.ID, author.ID); err != nil {
		t.Fatalf("Delete follow: %v", err)
	}
	feed, err = posts.ListFeed(reader.ID, 10, 0)
	if err != nil {
		t.Fatalf("ListFeed after unfollow: %v", err)
	}
	if len(feed) != 0 {
		t.Errorf("feed after unfollow: got %d posts, want 0", len(feed))
	}
}
