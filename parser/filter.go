package parser

import (
	"regexp"
	"strings"
)

// Widget chrome that shows up as review-container text. Anything matching
// is rejected outright.
var boilerplate = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^reviews?$`),
	regexp.MustCompile(`(?i)^customer reviews?$`),
	regexp.MustCompile(`(?i)^write a review$`),
	regexp.MustCompile(`(?i)^see (?:all )?reviews?$`),
	regexp.MustCompile(`(?i)^read reviews?$`),
	regexp.MustCompile(`(?i)^\d+\s+reviews?$`),
	regexp.MustCompile(`(?i)^verified\s`),
	regexp.MustCompile(`(?i)^published\b`),
	regexp.MustCompile(`(?i)^showing\b`),
	regexp.MustCompile(`(?i)^see more`),
	regexp.MustCompile(`(?i)^read more`),
	regexp.MustCompile(`(?i)^load more`),
	regexp.MustCompile(`(?i)^sort by`),
	regexp.MustCompile(`(?i)^filter\b`),
}

// ValidBody reports whether text can serve as a review body: non-empty,
// not widget boilerplate, and at least three words long.
func ValidBody(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return false
	}
	for _, re := range boilerplate {
		if re.MatchString(trimmed) {
			return false
		}
	}
	return len(strings.Fields(trimmed)) >= 3
}

// Strict vocabulary used only when sampled results fail validation; see
// StrictValidBody.
var navWords = []string{"menu", "navigation", "search", "cart", "checkout", "login", "sign in", "subscribe"}

// StrictValidBody is the tightened gate applied when a harvested set looks
// suspect: at least five words and none of the navigation vocabulary.
func StrictValidBody(text string) bool {
	if !ValidBody(text) {
		return false
	}
	if len(strings.Fields(text)) < 5 {
		return false
	}
	lower := strings.ToLower(text)
	for _, w := range navWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}
