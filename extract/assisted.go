package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/aluiziolira/review-harvester/models"
	"github.com/aluiziolira/review-harvester/parser"
)

// Assisted extracts review candidates using a suggested SelectorSet.
// Selectors are untrusted input: anything that fails to compile is skipped.
// Like Static, the result is de-duplicated by body within this pass.
func Assisted(doc *goquery.Document, set models.SelectorSet) []models.ReviewRecord {
	var records []models.ReviewRecord
	seen := make(map[string]struct{})

	for _, raw := range set.Containers {
		m, err := cascadia.Compile(raw)
		if err != nil {
			continue
		}
		doc.FindMatcher(m).Each(func(_ int, s *goquery.Selection) {
			body := suggestedText(s, set.Content)
			if body == "" {
				body = parser.Normalize(s.Text())
			}
			if !parser.ValidBody(body) {
				return
			}
			if _, dup := seen[body]; dup {
				return
			}
			seen[body] = struct{}{}

			rec := models.ReviewRecord{Title: "Review", Body: body, Reviewer: "Anonymous"}
			if r, ok := suggestedRating(s, set.Ratings); ok {
				rec.Rating = &r
			} else if r, ok := parser.InferRating(s); ok {
				rec.Rating = &r
			}
			records = append(records, rec)
		})
	}
	return records
}

func suggestedText(s *goquery.Selection, selectors []string) string {
	for _, raw := range selectors {
		m, err := cascadia.Compile(raw)
		if err != nil {
			continue
		}
		found := s.FindMatcher(m).First()
		if found.Length() == 0 {
			continue
		}
		if text := parser.Normalize(found.Text()); text != "" {
			return text
		}
	}
	return ""
}

func suggestedRating(s *goquery.Selection, selectors []string) (float64, bool) {
	for _, raw := range selectors {
		m, err := cascadia.Compile(raw)
		if err != nil {
			continue
		}
		found := s.FindMatcher(m).First()
		if found.Length() == 0 {
			continue
		}
		if r, ok := parser.InferRating(found); ok {
			return r, true
		}
	}
	return 0, false
}
