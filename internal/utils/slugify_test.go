package utils

import "testing"

func TestDeriveSlug(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"simple title", "Hello, World!", "hello-world"},
		{"leading and trailing whitespace kept as hyphens", "  Multi   Space  ", "-multi-space-"},
		{"already lowercase", "plain title", "plain-title"},
		{"digits survive", "Top 10 Posts of 2026", "top-10-posts-of-2026"},
		{"punctuation stripped", "What's New? (A Recap)", "whats-new-a-recap"},
		{"hyphen runs collapse", "one -- two --- three", "one-two-three"},
		{"existing hyphens kept", "well-known fact", "well-known-fact"},
		{"unicode stripped", "Café déjà vu", "caf-dj-vu"},
		{"empty input", "", ""},
		{"only punctuation", "!!!", ""},
		{"tabs and newlines are whitespace", "a\tb\nc", "a-b-c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveSlug(tt.title); got != tt.want {
				t.Errorf("DeriveSlug(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDeriveSlugIsPure(t *testing.T) {
	first := DeriveSlug("Hello, World!")
	second := DeriveSlug("Hello, World!")
	if first != second {
		t.Errorf("DeriveSlug not deterministic: %q vs %q", first, second)
	}
}

func TestDeriveSlugAlphabet(t *testing.T) {
	got := DeriveSlug("Mixed CASE with 123 & symbols #@!")
	for _, r := range got {
		isValid := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		if !isValid {
			t.Errorf("DeriveSlug output contains invalid rune %q in %q", r, got)
		}
	}
}
