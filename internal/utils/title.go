package utils

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	nonAlnumRegex  = regexp.MustCompile(`[^a-z0-9]+`)
	trailingYearRe = regexp.MustCompile(`\s*[\(\[]\d{4}[\)\]]\s*`)
)

// Normalize lower-cases a title and collapses every run of
// non-alphanumeric characters to a single space
func Normalize(s string) string {
	return strings.TrimSpace(nonAlnumRegex.ReplaceAllString(strings.ToLower(s), " "))
}

// BaseTitle strips a parenthesized or bracketed 4-digit year from a
// show title, e.g. "Show (2025)" -> "Show"
func BaseTitle(title string) string {
	return strings.TrimSpace(trailingYearRe.ReplaceAllString(title, " "))
}

// TitleMatches reports whether a candidate video title contains the
// show's base title. Substring matching is intentionally permissive:
// search results are noisy and recall matters more than precision here.
func TitleMatches(videoTitle, showTitle string) bool {
	base := Normalize(BaseTitle(showTitle))
	return base != "" && strings.Contains(Normalize(videoTitle), base)
}

// SanitizeTitle keeps only characters safe for media file names:
// alphanumerics, spaces, hyphens and underscores, right-trimmed
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '-' || r == '_' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRight(b.String(), " ")
}
