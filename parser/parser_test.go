package parser

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "collapses whitespace",
			input:    "  Great   product\n\t works well  ",
			expected: "Great product works well",
		},
		{
			name:     "cuts at read more",
			input:    "Love this thing Read More about our policy",
			expected: "Love this thing",
		},
		{
			name:     "cuts at show more",
			input:    "Decent quality show more",
			expected: "Decent quality",
		},
		{
			name:     "drops duplicated phrase",
			input:    "Fast shipping great value Fast shipping great value",
			expected: "Fast shipping great value",
		},
		{
			name:     "keeps short repeats",
			input:    "really really good",
			expected: "really really good",
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  Great   product\n works well  ",
		"Fast shipping great value Fast shipping great value",
		"Love this thing Read More about our policy",
		"Five stars would buy again, arrived two days early",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestValidBody(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"Great product, fast shipping, would buy again", true},
		{"Does exactly what it says on the tin", true},
		{"Reviews", false},
		{"review", false},
		{"Customer Reviews", false},
		{"12 reviews", false},
		{"Write a review", false},
		{"See all reviews", false},
		{"Verified Buyer", false},
		{"Showing 1-10 of 42", false},
		{"Sort by newest", false},
		{"too short", false},
		{"", false},
		{"   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ValidBody(tt.input); got != tt.want {
				t.Errorf("ValidBody(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestStrictValidBody(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		// four words
		{"Great product would recommend", false},
		// navigation vocabulary
		{"Use the search bar to find more items today", false},
		{"Great product, fast shipping, would buy again", true},
	}
	for _, tt := range tests {
		if got := StrictValidBody(tt.input); got != tt.want {
			t.Errorf("StrictValidBody(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func selection(t *testing.T, html string) *goquery.Selection {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	return doc.Find("div").First()
}

func TestInferRating(t *testing.T) {
	tests := []struct {
		name string
		html string
		want float64
		ok   bool
	}{
		{
			name: "filled star icons",
			html: `<div><span class="star filled"></span><span class="star filled"></span><span class="star filled"></span><span class="star empty"></span></div>`,
			want: 3,
			ok:   true,
		},
		{
			name: "data attribute on container",
			html: `<div data-rating="4.5">nice</div>`,
			want: 4.5,
			ok:   true,
		},
		{
			name: "data attribute on descendant",
			html: `<div><span data-score="2">meh</span></div>`,
			want: 2,
			ok:   true,
		},
		{
			name: "out of range attribute falls through to text",
			html: `<div data-rating="9">4 out of 5</div>`,
			want: 4,
			ok:   true,
		},
		{
			name: "slash five text",
			html: `<div>3.5/5 overall</div>`,
			want: 3.5,
			ok:   true,
		},
		{
			name: "rated prefix",
			html: `<div>Rated 5 by our customers</div>`,
			want: 5,
			ok:   true,
		},
		{
			name: "out of range rated value is absent not clamped",
			html: `<div>rated 7</div>`,
			ok:   false,
		},
		{
			name: "star glyph run",
			html: `<div>★★★★ lovely</div>`,
			want: 4,
			ok:   true,
		},
		{
			name: "no signal",
			html: `<div>no rating information here</div>`,
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := InferRating(selection(t, tt.html))
			if ok != tt.ok {
				t.Fatalf("InferRating ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("InferRating = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInferRatingFromText(t *testing.T) {
	if _, ok := InferRatingFromText("shipped 7 days ago"); ok {
		t.Error("bare day count should not parse as a rating")
	}
	if got, ok := InferRatingFromText("Rating: 4.5"); !ok || got != 4.5 {
		t.Errorf("Rating: 4.5 = (%v, %v), want (4.5, true)", got, ok)
	}
}
