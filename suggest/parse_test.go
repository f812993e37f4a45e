package suggest

import (
	"slices"
	"testing"
)

func TestParseResponse(t *testing.T) {
	raw := `Here are the selectors you asked for.

CONTAINERS: ".rev-box", "[data-rev]"
CONTENT: ".rev-text", ".rev-body"
RATINGS: ".rev-stars", "[data-score]"
`
	set := ParseResponse(raw)
	if !slices.Equal(set.Containers, []string{".rev-box", "[data-rev]"}) {
		t.Errorf("containers = %v", set.Containers)
	}
	if !slices.Equal(set.Content, []string{".rev-text", ".rev-body"}) {
		t.Errorf("content = %v", set.Content)
	}
	if !slices.Equal(set.Ratings, []string{".rev-stars", "[data-score]"}) {
		t.Errorf("ratings = %v", set.Ratings)
	}
}

func TestParseResponseMultiline(t *testing.T) {
	raw := `CONTAINERS:
- ".review-wrap"
- ".review-entry"
CONTENT:
- '.text'
- '.body'
RATINGS:
- '.stars'
- '.score'`
	set := ParseResponse(raw)
	if !slices.Equal(set.Containers, []string{".review-wrap", ".review-entry"}) {
		t.Errorf("containers = %v", set.Containers)
	}
	if !slices.Equal(set.Ratings, []string{".stars", ".score"}) {
		t.Errorf("ratings = %v", set.Ratings)
	}
}

func TestParseResponseShortListsGetFallbacks(t *testing.T) {
	set := ParseResponse(`CONTAINERS: ".only-one"`)
	if len(set.Containers) < 3 || set.Containers[0] != ".only-one" {
		t.Errorf("containers = %v, want suggestion first then fallbacks", set.Containers)
	}
	if len(set.Content) == 0 || len(set.Ratings) == 0 {
		t.Errorf("empty categories should receive fallbacks: %+v", set)
	}
}

func TestParseResponseGarbage(t *testing.T) {
	set := ParseResponse("I could not find any reviews, sorry!")
	fb := Fallbacks()
	if !slices.Equal(set.Containers, fb.Containers) {
		t.Errorf("garbage reply should yield pure fallbacks, got %v", set.Containers)
	}
}

func TestFallbacksUsable(t *testing.T) {
	fb := Fallbacks()
	if fb.Empty() {
		t.Fatal("fallback set must never be empty")
	}
}
