package util

import (
	"regexp"
	"strings"
)

var displayNameRegex = regexp.MustCompile(`^[a-zA-ZÀ-ÖØ-öø-ÿ\s'-]{2,50}$`)

// IsValidDisplayName reports whether a first or last name is acceptable:
// 2-50 letters (accented included), spaces, apostrophes and hyphens.
func IsValidDisplayName(name string) bool {
	return displayNameRegex.MatchString(name)
}

// NormalizeEmail lower-cases and trims an address so it can act as the
// unique user key.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
