// Package extract turns a rendered page snapshot into review candidates.
// Two strategies exist: Static walks a fixed table of widget selectors,
// Assisted applies a SelectorSet proposed by the suggestion collaborator.
package extract

import (
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
)

// Container selectors, priority ordered: known widget platforms first
// (Judge.me, Yotpo, Shopify Product Reviews, Stamped, Loox, Okendo,
// Trustpilot), generic patterns last.
var containerSelectors = []string{
	".jdgm-rev",
	"[class*='jdgm-rev']",
	".yotpo-review",
	"[class*='yotpo-review']",
	".spr-review",
	"[class*='spr-review']",
	".stamped-review",
	"[class*='stamped-review']",
	".loox-review",
	"[class*='loox-review']",
	".okendo-review",
	"[class*='okendo-review']",
	"[class*='trustpilot-review']",
	"[data-review-id]",
	"[itemprop='review']",
	"[class*='review-item']",
	"[class*='review-card']",
	"[class*='review_item']",
	"[class*='reviewItem']",
	"[class*='testimonial']",
	".review",
}

var titleSelectors = []string{
	".jdgm-rev__title",
	".spr-review-header-title",
	".yotpo-review-title",
	"[class*='review-title']",
	"[class*='review_title']",
	"[class*='reviewTitle']",
	"h3",
	"h4",
}

var bodySelectors = []string{
	".jdgm-rev__body",
	".spr-review-content-body",
	".yotpo-review-body",
	"[class*='review-body']",
	"[class*='review-content']",
	"[class*='review-text']",
	"[class*='review_body']",
	"[itemprop='reviewBody']",
}

var reviewerSelectors = []string{
	".jdgm-rev__author",
	".spr-review-header-byline",
	"[class*='review-author']",
	"[class*='reviewer-name']",
	"[itemprop='author']",
	"[class*='author']",
}

// Elements removed from a container clone before falling back to its own
// text as the body.
var strippedSelectors = "button, a, select, option, svg, style, script, input, form, nav"

// Last-resort body lookup inside a container.
var genericContentSelectors = []string{
	"[class*='content']",
	"[class*='body']",
	"[class*='text']",
	"p",
}

// Call-to-action labels that disqualify an element found by the
// full-document fallback scan.
var actionLabelRe = regexp.MustCompile(`(?i)^(write|see|read|view)\s+(a\s+)?reviews?$`)

var (
	containerMatcher       = cascadia.MustCompile(strings.Join(containerSelectors, ", "))
	strippedMatcher        = cascadia.MustCompile(strippedSelectors)
	titleMatchers          = compileAll(titleSelectors)
	bodyMatchers           = compileAll(bodySelectors)
	reviewerMatchers       = compileAll(reviewerSelectors)
	genericContentMatchers = compileAll(genericContentSelectors)
)

func compileAll(selectors []string) []cascadia.Selector {
	compiled := make([]cascadia.Selector, len(selectors))
	for i, s := range selectors {
		compiled[i] = cascadia.MustCompile(s)
	}
	return compiled
}
