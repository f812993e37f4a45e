package harvest

import (
	"context"
	"log/slog"
	"time"

	"github.com/aluiziolira/review-harvester/browser"
)

// Labels and selectors for buttons that reveal more reviews in place.
var (
	loadMoreLabels    = []string{"Show More", "Load More", "Show more reviews", "Load more reviews", "More reviews"}
	loadMoreSelectors = []string{
		`[class*="load-more"]`,
		`[class*="show-more"]`,
		`[class*="loadMore"]`,
		`.jdgm-paginate__load-more`,
	}
)

// Bounds one load-more drain so a button that never disappears cannot spin
// the session forever.
const maxLoadMoreClicks = 10

// Loader reveals lazily loaded review content on the current page. Every
// step is best effort: failures are logged and swallowed, never propagated.
type Loader struct {
	settle    time.Duration
	maxPasses int
	logger    *slog.Logger
}

// NewLoader returns a loader with the given settle interval between
// interactions and a cap on scroll passes.
func NewLoader(settle time.Duration, maxPasses int, logger *slog.Logger) *Loader {
	return &Loader{settle: settle, maxPasses: maxPasses, logger: logger}
}

// Load scrolls to the bottom until the document height stabilizes, then
// drains any load-more buttons.
func (l *Loader) Load(ctx context.Context, page browser.Page) {
	l.scrollUntilStable(ctx, page)
	l.drainLoadMore(ctx, page)
}

func (l *Loader) scrollUntilStable(ctx context.Context, page browser.Page) {
	lastHeight := int64(-1)
	for pass := 0; pass < l.maxPasses; pass++ {
		if ctx.Err() != nil {
			return
		}
		height, err := page.ScrollHeight(ctx)
		if err != nil {
			l.logger.Debug("scroll height read failed", slog.Any("error", err))
			return
		}
		if height == lastHeight {
			return
		}
		lastHeight = height

		if err := page.ScrollToBottom(ctx); err != nil {
			l.logger.Debug("scroll failed", slog.Any("error", err))
			return
		}
		if err := page.Settle(ctx, l.settle); err != nil {
			return
		}
	}
}

func (l *Loader) drainLoadMore(ctx context.Context, page browser.Page) {
	for i := 0; i < maxLoadMoreClicks; i++ {
		if ctx.Err() != nil {
			return
		}
		clicked, err := page.ClickByText(ctx, loadMoreLabels)
		if err != nil {
			l.logger.Debug("load-more text click failed", slog.Any("error", err))
			return
		}
		if !clicked {
			clicked = l.clickAnySelector(ctx, page)
		}
		if !clicked {
			return
		}
		if err := page.Settle(ctx, l.settle); err != nil {
			return
		}
	}
}

func (l *Loader) clickAnySelector(ctx context.Context, page browser.Page) bool {
	for _, sel := range loadMoreSelectors {
		clicked, err := page.ClickFirstVisible(ctx, sel)
		if err != nil {
			l.logger.Debug("load-more selector click failed",
				slog.String("selector", sel),
				slog.Any("error", err))
			return false
		}
		if clicked {
			return true
		}
	}
	return false
}
