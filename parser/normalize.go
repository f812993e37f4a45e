// Package parser holds the pure text transforms applied to raw review
// candidates: normalization, boilerplate filtering and rating inference.
package parser

import (
	"regexp"
	"strings"
)

// Platform widgets append truncation labels to clipped bodies; everything
// from the first label onward is noise.
var truncationRe = regexp.MustCompile(`(?i)(read more|show more|see more)`)

// Normalize collapses whitespace, cuts the text at the first truncation
// label and drops word runs already present earlier in the text. The last
// step undoes the duplicated phrases produced by overlapping DOM text nodes.
// Normalize is idempotent.
func Normalize(text string) string {
	text = strings.Join(strings.Fields(text), " ")

	if loc := truncationRe.FindStringIndex(text); loc != nil {
		text = strings.TrimSpace(text[:loc[0]])
	}

	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	built := ""
	skipping := false
	for i, word := range words {
		end := min(i+3, len(words))
		phrase := strings.Join(words[i:end], " ")
		// A full trigram seen before starts a skip run; shorter tail
		// phrases only extend one, so legitimate short repeats survive.
		full := end-i == 3
		if (full || skipping) && built != "" && strings.Contains(built, phrase) {
			skipping = true
			continue
		}
		skipping = false
		kept = append(kept, word)
		built = strings.Join(kept, " ")
	}
	return built
}
