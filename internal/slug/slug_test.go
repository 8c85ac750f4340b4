// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package slug

import "testing"

func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple title", "Travel Notes", "travel-notes"},
		{"title with year", "Cooking 2026", "cooking-2026"},
		{"punctuation stripped", "Rock & Roll!", "rock-roll"},
		{"surrounding whitespace", "  General  ", "general"},
		{"hyphens collapsed", "well---known  fact", "well-known-fact"},

		// Cyrillic titles transliterate instead of vanishing.
		{"cyrillic title", "Путевые заметки", "putevye-zametki"},
		{"cyrillic with digits", "Группа 42", "gruppa-42"},
		{"soft sign dropped", "Тетрадь", "tetrad"},
		{"shch and zh", "Борщ и жизнь", "borshch-i-zhizn"},
		{"mixed scripts", "Go по-русски", "go-po-russki"},

		{"empty string", "", ""},
		{"only punctuation", "!@#$%", ""},
		{"only hyphens", "-----", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Generate(tt.input); got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// Generating a slug from an existing slug must not change it, so slugs
// survive re-saving.
func TestGenerate_Idempotent(t *testing.T) {
	for _, s := range []string{"travel-notes", "putevye-zametki", "gruppa-42", "a"} {
		t.Run(s, func(t *testing.T) {
			if got := Generate(s); got != s {
				t.Errorf("Generate(%q) = %q, want unchanged", s, got)
			}
		})
	}
}
