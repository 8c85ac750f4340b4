package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/slug"
)

// seedGroups are the topical categories created for a fresh development
// database. Slugs are derived from the titles.
var seedGroups = []struct {
	Title       string
	Description string
}{
	{"General", "Anything that does not fit elsewhere."},
	{"Путевые заметки", "Trip reports and route ideas."},
	{"Cooking", "Recipes and kitchen experiments."},
}

// Seed populates the database with initial development data: a demo user
// and a handful of groups. It is a no-op if any users already exist.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (username, email, first_name, last_name, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`, "demo", "demo@inkwell.local", "Demo", "Author", string(hash))
	if err != nil {
		return fmt.Errorf("seed insert demo user: %w", err)
	}

	for _, g := range seedGroups {
		_, err := db.Exec(`
			INSERT INTO groups (title, slug, description)
			VALUES ($1, $2, $3)
			ON CONFLICT (slug) DO NOTHING
		`, g.Title, slug.Generate(g.Title), g.Description)
		if err != nil {
			return fmt.Errorf("seed insert group %q: %w", g.Title, err)
		}
	}

	slog.Info("database seeded with demo data",
		"username", "demo",
		"password", "demo",
		"groups", len(seedGroups),
	)

	return nil
}
