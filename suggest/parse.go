package suggest

import (
	"regexp"
	"strings"

	"github.com/aluiziolira/review-harvester/models"
)

var quotedRe = regexp.MustCompile(`['"]([^'"]+)['"]`)

// ParseResponse extracts a SelectorSet from the collaborator's free-form
// reply. Lines are scanned for CONTAINERS:/CONTENT:/RATINGS: section
// markers; quoted fragments under each marker become that category's
// selectors. Any category left with fewer than two entries is topped up
// with generic fallbacks, so the result is always usable.
func ParseResponse(raw string) models.SelectorSet {
	var set models.SelectorSet
	section := ""
	for _, line := range strings.Split(raw, "\n") {
		upper := strings.ToUpper(line)
		switch {
		case strings.Contains(upper, "CONTAINERS:"):
			section = "containers"
		case strings.Contains(upper, "CONTENT:"):
			section = "content"
		case strings.Contains(upper, "RATINGS:"):
			section = "ratings"
		}
		for _, m := range quotedRe.FindAllStringSubmatch(line, -1) {
			sel := strings.TrimSpace(m[1])
			if sel == "" {
				continue
			}
			switch section {
			case "containers":
				set.Containers = append(set.Containers, sel)
			case "content":
				set.Content = append(set.Content, sel)
			case "ratings":
				set.Ratings = append(set.Ratings, sel)
			}
		}
	}
	return withFallbacks(set)
}

// Fallbacks returns the generic selector set used when no suggestion is
// available at all.
func Fallbacks() models.SelectorSet {
	return withFallbacks(models.SelectorSet{})
}

func withFallbacks(set models.SelectorSet) models.SelectorSet {
	if len(set.Containers) < 2 {
		set.Containers = append(set.Containers,
			`[class*="review"]`, `[class*="testimonial"]`, `[itemprop="review"]`)
	}
	if len(set.Content) < 2 {
		set.Content = append(set.Content,
			`[class*="content"]`, `[class*="text"]`, `[class*="body"]`, `p`)
	}
	if len(set.Ratings) < 2 {
		set.Ratings = append(set.Ratings,
			`[class*="star"]`, `[class*="rating"]`, `[data-rating]`)
	}
	return set
}
