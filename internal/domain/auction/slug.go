package auction

import "strings"

// Slugify normalizes arbitrary text into a URL-safe slug: lowercase
// alphanumeric runs joined by single hyphens, no leading or trailing hyphen.
func Slugify(s string) string {
	var b strings.Builder
	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// ValidSlug reports whether s is already in canonical slug form.
func ValidSlug(s string) bool {
	return s != "" && Slugify(s) == s
}
