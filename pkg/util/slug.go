package util

import (
	"regexp"
	"strings"
)

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
)

// IsValidSlug reports whether s is a lowercase ASCII slug.
func IsValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// Slugify lowercases s and collapses everything outside [a-z0-9] into dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}
