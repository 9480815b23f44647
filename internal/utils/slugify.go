package utils

import (
	"regexp"
	"strings"
)

var (
	slugDisallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
)

// DeriveSlug turns a title into its URL slug: lowercase, drop everything
// outside [a-z0-9], whitespace and hyphens, collapse whitespace runs to a
// single hyphen, collapse hyphen runs to one. Leading and trailing hyphens
// are kept; existing URLs depend on that exact shape. Returns "" when the
// title has no eligible characters.
func DeriveSlug(title string) string {
	s := strings.ToLower(title)
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugWhitespace.ReplaceAllString(s, "-")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return s
}
