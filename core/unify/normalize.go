package unify

import (
	"regexp"
	"strings"
	"unicode"
)

// decorativeSuffixes are platform branding tails that are not part of a title's identity.
// They are stripped in order.
var decorativeSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i) - Amazon Prime$`),
	regexp.MustCompile(`(?i) - Prime Gaming$`),
}

func stripDecorations(title string) string {
	for _, re := range decorativeSuffixes {
		title = re.ReplaceAllString(title, "")
	}
	return title
}

// Normalize returns the identity key for a title. Two records are the same
// game iff their keys are equal.
//
// Steps: strip decorative suffixes, lower-case, drop every rune that is not a
// word character or whitespace, collapse whitespace, trim.
func Normalize(title string) string {
	s := strings.ToLower(stripDecorations(title))

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if isWordRune(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// CleanTitle strips decorative suffixes for display. The rest of the title is left as is.
func CleanTitle(title string) string {
	return strings.TrimSpace(stripDecorations(title))
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) || unicode.Is(unicode.Pc, r)
}
