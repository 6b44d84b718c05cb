// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	// Matches runs of anything that cannot appear in a slug.
	nonSlugRe = regexp.MustCompile(`[^a-z0-9_]+`)
	// Matches multiple consecutive dashes.
	multipleDashRe = regexp.MustCompile(`-+`)
	// A stored tag slug: non-empty, ASCII letters, digits, dash and underscore.
	slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

// Slugify derives a URL-safe tag slug from a display name.
//
// Accented letters are folded to their ASCII base ("Crème" → "creme"),
// other non-ASCII characters are dropped, and every run of remaining
// punctuation or whitespace becomes a single dash.
//
//	"Breakfast"      → "breakfast"
//	"Crème Brûlée"   → "creme-brulee"
//	"slow_cooker"    → "slow_cooker"
//	"  Late  Night!" → "late-night"
//
// The result is empty when the name has no ASCII letters or digits.
func Slugify(name string) string {
	s := norm.NFKD.String(name)

	s = strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, s)

	s = strings.ToLower(strings.TrimSpace(s))
	s = nonSlugRe.ReplaceAllString(s, "-")
	s = multipleDashRe.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// IsValidSlug reports whether s is acceptable as a stored tag slug.
func IsValidSlug(s string) bool {
	return slugRe.MatchString(s)
}
