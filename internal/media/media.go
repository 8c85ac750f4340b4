// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package media stores uploaded post images on the local filesystem.
// Files land under <root>/posts/ and are referenced from the database by
// their relative path (e.g. "posts/small.gif"), so the media root can
// move without rewriting rows.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// postsDir is the subdirectory for post images inside the media root.
const postsDir = "posts"

// unsafeChars matches anything outside the conservative filename alphabet.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// Storage writes and removes media files under a root directory.
type Storage struct {
	root string
}

// New creates a Storage rooted at dir, creating the posts subdirectory
// if needed.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Join(dir, postsDir), 0o755); err != nil {
		return nil, fmt.Errorf("media mkdir: %w", err)
	}
	return &Storage{root: dir}, nil
}

// SavePostImage stores an uploaded image and returns its relative path.
// The original filename is kept when free; on collision a short random
// suffix is inserted before the extension.
func (s *Storage) SavePostImage(name string, r io.Reader) (string, error) {
	name = sanitize(name)

	rel := filepath.Join(postsDir, name)
	if _, err := os.Stat(filepath.Join(s.root, rel)); err == nil {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		rel = filepath.Join(postsDir, fmt.Sprintf("%s_%s%s", base, uuid.NewString()[:8], ext))
	}

	f, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return "", fmt.Errorf("media create: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("media write: %w", err)
	}

	// Stored paths always use forward slashes, matching URLs.
	return filepath.ToSlash(rel), nil
}

// Open returns a reader for a stored relative path.
func (s *Storage) Open(rel string) (*os.File, error) {
	return os.Open(filepath.Join(s.root, filepath.FromSlash(rel)))
}

// Remove deletes a stored file by its relative path. Missing files are
// not an error.
func (s *Storage) Remove(rel string) error {
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("media remove: %w", err)
	}
	return nil
}

// Root returns the media root directory, for serving files over HTTP.
func (s *Storage) Root() string {
	return s.root
}

// sanitize reduces an uploaded filename to a safe basename.
func sanitize(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	name = unsafeChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == ".." {
		name = uuid.NewString()[:8]
	}
	return name
}
