package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/aluiziolira/review-harvester/models"
	"github.com/aluiziolira/review-harvester/parser"
)

// Static extracts review candidates using the fixed selector tables. When
// no table selector matches anything, it degrades to a full-document scan
// for elements whose class or id hints at review content. The returned
// slice is de-duplicated by body within this pass; cross-page identity is
// the caller's concern.
func Static(doc *goquery.Document) []models.ReviewRecord {
	containers := doc.FindMatcher(containerMatcher)
	if containers.Length() == 0 {
		containers = fallbackScan(doc)
	}

	var records []models.ReviewRecord
	seen := make(map[string]struct{})
	containers.Each(func(_ int, s *goquery.Selection) {
		rec, ok := fromContainer(s)
		if !ok {
			return
		}
		if _, dup := seen[rec.Body]; dup {
			return
		}
		seen[rec.Body] = struct{}{}
		records = append(records, rec)
	})
	return records
}

func fromContainer(s *goquery.Selection) (models.ReviewRecord, bool) {
	body := firstText(s, bodyMatchers)
	if body == "" {
		clone := s.Clone()
		clone.FindMatcher(strippedMatcher).Remove()
		body = parser.Normalize(clone.Text())
	}
	if len(body) < 10 {
		if alt := firstText(s, genericContentMatchers); alt != "" {
			body = alt
		}
	}
	if !parser.ValidBody(body) {
		return models.ReviewRecord{}, false
	}

	title := firstText(s, titleMatchers)
	if title == "" || title == body || len(title) > 100 {
		title = "Review"
	}
	reviewer := firstText(s, reviewerMatchers)
	if reviewer == "" || len(reviewer) > 60 {
		reviewer = "Anonymous"
	}

	rec := models.ReviewRecord{Title: title, Body: body, Reviewer: reviewer}
	if r, ok := parser.InferRating(s); ok {
		rec.Rating = &r
	}
	return rec, true
}

// firstText returns the normalized text of the first non-empty match,
// honoring matcher priority order.
func firstText(s *goquery.Selection, matchers []cascadia.Selector) string {
	for _, m := range matchers {
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

// fallbackScan looks for anything whose class or id mentions reviews,
// skipping bare call-to-action elements.
func fallbackScan(doc *goquery.Document) *goquery.Selection {
	return doc.Find("body *").FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		hint := strings.ToLower(class + " " + id)
		if !strings.Contains(hint, "review") && !strings.Contains(hint, "testimonial") {
			return false
		}
		if actionLabelRe.MatchString(strings.TrimSpace(s.Text())) {
			return false
		}
		return s.Children().Length() > 0
	})
}
