package ghost

import (
	"regexp"
	"strings"
)

var slugStrip = regexp.MustCompile(`[^a-z0-9\s-]`)

// Slugify derives a URL-safe identifier from a title: lowercase, strip
// everything but letters, digits, spaces and hyphens, spaces to hyphens,
// collapse runs, trim the ends. Idempotent, possibly empty.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
