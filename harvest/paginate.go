package harvest

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/review-harvester/browser"
)

// Outcome classifies one pagination attempt.
type Outcome int

const (
	// OutcomeNavigated means a further page was reached.
	OutcomeNavigated Outcome = iota
	// OutcomeNotFound means no pagination mechanism exists on the page.
	OutcomeNotFound
	// OutcomeError means page state could not be read or the fallback
	// navigation itself failed, with no strategy left to try.
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNavigated:
		return "navigated"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeError:
		return "error"
	}
	return "unknown"
}

var nextLabels = []string{"Next", "Next page", "Next Page", "›", "»"}

func nextPageSelectors(next int) []string {
	return []string{
		fmt.Sprintf(`a[href*="page=%d"]`, next),
		fmt.Sprintf(`[class*="pagination"] [aria-label="Page %d"]`, next),
		`a[rel="next"]`,
		`.jdgm-paginate__next-page`,
		`.yotpo_next`,
		`.pagination__next`,
		`[class*="next-page"]`,
		`.next a`,
		`li.next a`,
		`[class*="pagination"] button:not([disabled])`,
	}
}

// Paginator advances the live page to the next batch of reviews. Click
// strategies are tried first; rewriting a page= query parameter is the
// fallback. A click only counts when the URL or the rendered content
// actually changed afterwards, and a click strategy that errors is
// skipped rather than aborting the attempt.
type Paginator struct {
	settle time.Duration
	logger *slog.Logger
}

// NewPaginator returns a paginator that waits settle after each click
// before comparing page state.
func NewPaginator(settle time.Duration, logger *slog.Logger) *Paginator {
	return &Paginator{settle: settle, logger: logger}
}

// Advance tries to reach page currentPage+1.
func (p *Paginator) Advance(ctx context.Context, page browser.Page, currentPage int) Outcome {
	next := currentPage + 1

	beforeURL, err := page.URL(ctx)
	if err != nil {
		return OutcomeError
	}
	beforeHTML, err := page.HTML(ctx)
	if err != nil {
		return OutcomeError
	}

	for _, sel := range nextPageSelectors(next) {
		clicked, err := page.ClickFirstVisible(ctx, sel)
		if err != nil {
			p.logger.Debug("pagination click failed", slog.String("selector", sel), slog.Any("error", err))
			continue
		}
		if !clicked {
			continue
		}
		changed, err := p.changedSince(ctx, page, beforeURL, beforeHTML)
		if err != nil {
			p.logger.Debug("pagination state read failed", slog.String("selector", sel), slog.Any("error", err))
			continue
		}
		if changed {
			p.logger.Debug("pagination via click", slog.String("selector", sel), slog.Int("page", next))
			return OutcomeNavigated
		}
	}

	if clicked, err := page.ClickByText(ctx, nextLabels); err != nil {
		p.logger.Debug("pagination text click failed", slog.Any("error", err))
	} else if clicked {
		changed, err := p.changedSince(ctx, page, beforeURL, beforeHTML)
		if err != nil {
			p.logger.Debug("pagination state read failed", slog.Any("error", err))
		} else if changed {
			p.logger.Debug("pagination via next label", slog.Int("page", next))
			return OutcomeNavigated
		}
	}

	target, ok := NextPageURL(beforeURL, next)
	if !ok {
		return OutcomeNotFound
	}
	if err := page.Navigate(ctx, target); err != nil {
		p.logger.Debug("pagination navigate failed", slog.String("url", target), slog.Any("error", err))
		return OutcomeError
	}
	afterHTML, err := page.HTML(ctx)
	if err != nil {
		return OutcomeError
	}
	if afterHTML == beforeHTML {
		return OutcomeNotFound
	}
	p.logger.Debug("pagination via url rewrite", slog.String("url", target))
	return OutcomeNavigated
}

func (p *Paginator) changedSince(ctx context.Context, page browser.Page, beforeURL, beforeHTML string) (bool, error) {
	if err := page.Settle(ctx, p.settle); err != nil {
		return false, err
	}
	afterURL, err := page.URL(ctx)
	if err != nil {
		return false, err
	}
	if afterURL != beforeURL {
		return true, nil
	}
	afterHTML, err := page.HTML(ctx)
	if err != nil {
		return false, err
	}
	return afterHTML != beforeHTML, nil
}

var pageParamRe = regexp.MustCompile(`([?&]page=)\d+`)

// NextPageURL rewrites current so its page query parameter reads next,
// appending the parameter when absent. ok is false when current is not an
// absolute http(s) URL, which rules out javascript: and relative targets.
func NextPageURL(current string, next int) (string, bool) {
	u, err := url.Parse(current)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	if pageParamRe.MatchString(current) {
		return pageParamRe.ReplaceAllString(current, fmt.Sprintf("${1}%d", next)), true
	}
	sep := "?"
	if strings.Contains(current, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%spage=%d", current, sep, next), true
}

// DetectPaginationKind classifies how a page exposes further reviews. The
// result is diagnostic only; the paginator tries every strategy regardless.
func DetectPaginationKind(doc *goquery.Document) string {
	html, err := doc.Html()
	if err != nil {
		return "unknown"
	}
	lower := strings.ToLower(html)
	if strings.Contains(lower, "infinite-scroll") || strings.Contains(lower, "data-infinite") {
		return "infinite_scroll"
	}
	if doc.Find(`[class*="load-more"], [class*="show-more"], [class*="loadMore"]`).Length() > 0 {
		return "button"
	}
	if doc.Find(`[class*="pagination"], .page-numbers`).Length() > 0 {
		return "numbered"
	}
	if doc.Find(`a[href*="page="]`).Length() > 0 {
		return "url"
	}
	return "unknown"
}
