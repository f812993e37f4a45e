// Package suggest implements the selector-suggestion collaborator: an
// Ollama-backed client that proposes CSS selectors for unfamiliar review
// markup, plus the parser for its free-form replies.
package suggest

import (
	"context"

	"github.com/aluiziolira/review-harvester/models"
)

// Suggester proposes CSS selectors for review markup on a page. pageURL is
// used for caching; htmlSnippet is the rendered DOM, already truncated by
// the caller or here to SnippetLimit.
type Suggester interface {
	Suggest(ctx context.Context, pageURL, htmlSnippet string) (models.SelectorSet, error)
}

// Validator is optionally implemented by suggesters that can sanity-check
// harvested records. Implementations must degrade to returning the input
// unchanged on any failure.
type Validator interface {
	ValidateReviews(ctx context.Context, records []models.ReviewRecord) []models.ReviewRecord
}

// Noop stands in when no suggestion service is configured. It returns the
// fallback selectors so the assisted strategy still runs generically.
type Noop struct{}

func (Noop) Suggest(context.Context, string, string) (models.SelectorSet, error) {
	return Fallbacks(), nil
}
