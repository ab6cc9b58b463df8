// Package normalize canonicalizes user-supplied event fields. Every function
// is total: input it cannot interpret is returned unchanged and left for
// validation to reject.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slugDisallowed = regexp.MustCompile(`[^\w\s-]`)
	slugSeparators = regexp.MustCompile(`[\s_-]+`)
)

// Slug derives a URL-safe identifier from a title. An empty or all-symbol
// title yields an empty slug.
func Slug(title string) string {
	s := strings.Map(spaceToBlank, strings.ToLower(title))
	s = slugDisallowed.ReplaceAllString(s, "")
	s = slugSeparators.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// spaceToBlank folds Unicode spaces (NBSP, em space, \v, BOM) into an ASCII
// blank; RE2 \s matches ASCII whitespace only.
func spaceToBlank(r rune) rune {
	if unicode.IsSpace(r) || unicode.Is(unicode.Zs, r) || r == '\uFEFF' {
		return ' '
	}
	return r
}
