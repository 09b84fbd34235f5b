package service

import "strings"

// Slugify derives a URL-safe key from a title: lowercase, non-alphanumerics
// stripped, whitespace runs collapsed to single hyphens, no leading or
// trailing hyphen. Deterministic and idempotent for already-slugged input.
func Slugify(title string) string {
	lower := strings.ToLower(title)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '-':
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), "-")
}
