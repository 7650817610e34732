package domain

import (
	"strings"
	"unicode"
)

// NormalizeText trims the string and compresses internal whitespace runs
// into a single space. Case is preserved.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Slugify derives a category slug from its name:
//   - trims leading/trailing whitespace
//   - converts to lowercase
//   - replaces each run of whitespace with a single hyphen
//
// Other characters, including punctuation, are preserved.
func Slugify(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(name))
	prevSpace := false
	for _, r := range name {
		if unicode.IsSpace(r) {
			if !prevSpace {
				b.WriteByte('-')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
