package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Filled-star icons rendered by the common review widgets.
const filledStarSelector = `[class*="star-full"], [class*="star"][class*="filled"], .spr-icon-star, [class*="yotpo-star-full"]`

var ratingAttrs = []string{"data-rating", "data-score", "data-stars", "data-value"}

var ratingTextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(\d(?:[.,]\d)?)\s*(?:out of 5|/\s*5|stars?\b)`),
	regexp.MustCompile(`(?i)\brated\s+(\d(?:[.,]\d)?)`),
	regexp.MustCompile(`(?i)\brating:?\s*(\d(?:[.,]\d)?)`),
}

var starGlyphRe = regexp.MustCompile(`[★⭐✩✭]+`)

// InferRating derives a rating in [0,5] from a review container, trying in
// order: counting filled star icons, numeric data attributes (on the
// container, then on descendants), and textual patterns. Values outside
// [0,5] are discarded and the next method tried. Returns false when no
// method yields a usable value; callers must record the rating as absent,
// never clamp or zero it.
func InferRating(sel *goquery.Selection) (float64, bool) {
	if n := sel.Find(filledStarSelector).Length(); n > 0 && n <= 5 {
		return float64(n), true
	}
	for _, attr := range ratingAttrs {
		if v, ok := sel.Attr(attr); ok {
			if r, ok := parseRatingValue(v); ok {
				return r, true
			}
		}
	}
	for _, attr := range ratingAttrs {
		if v, ok := sel.Find("[" + attr + "]").First().Attr(attr); ok {
			if r, ok := parseRatingValue(v); ok {
				return r, true
			}
		}
	}
	return InferRatingFromText(sel.Text())
}

// InferRatingFromText applies only the textual patterns: "N stars", "N/5",
// "Rated N", "Rating: N" and runs of star glyphs.
func InferRatingFromText(text string) (float64, bool) {
	for _, re := range ratingTextPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			if r, ok := parseRatingValue(m[1]); ok {
				return r, true
			}
		}
	}
	if run := starGlyphRe.FindString(text); run != "" {
		if n := len([]rune(run)); n <= 5 {
			return float64(n), true
		}
	}
	return 0, false
}

func parseRatingValue(raw string) (float64, bool) {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	r, err := strconv.ParseFloat(raw, 64)
	if err != nil || r < 0 || r > 5 {
		return 0, false
	}
	return r, true
}
