// internal/utils/slug.go
package utils

import (
	"regexp"
	"strings"
)

var (
	slugInvalid  = regexp.MustCompile(`[^a-z0-9]+`)
	slugTrimDash = regexp.MustCompile(`^-+|-+$`)
)

// Slugify derives a URL slug from a title: lowercase, alphanumeric
// runs joined by single dashes.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugTrimDash.ReplaceAllString(s, "")
	if len(s) > 250 {
		s = strings.Trim(s[:250], "-")
	}
	return s
}
