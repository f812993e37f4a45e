// Package harvest orchestrates review collection: it drives a browser page
// through dynamic loading and pagination, merges candidates from both
// extraction strategies, and owns the cross-page de-duplication authority.
package harvest

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/aluiziolira/review-harvester/browser"
	"github.com/aluiziolira/review-harvester/config"
	"github.com/aluiziolira/review-harvester/extract"
	"github.com/aluiziolira/review-harvester/models"
	"github.com/aluiziolira/review-harvester/suggest"
)

// PageOpener yields fresh browser tabs. *browser.Chrome satisfies it; tests
// substitute a scripted page.
type PageOpener interface {
	NewPage(ctx context.Context) (browser.Page, error)
}

// Harvester runs harvest sessions. It is safe for concurrent use; each
// session operates on its own tab.
type Harvester struct {
	cfg       *config.Config
	opener    PageOpener
	suggester suggest.Suggester
	metrics   *Metrics
	logger    *slog.Logger
	loader    *Loader
	paginator *Paginator
}

// New wires a harvester. metrics may be nil.
func New(cfg *config.Config, opener PageOpener, suggester suggest.Suggester, metrics *Metrics, logger *slog.Logger) *Harvester {
	return &Harvester{
		cfg:       cfg,
		opener:    opener,
		suggester: suggester,
		metrics:   metrics,
		logger:    logger,
		loader:    NewLoader(cfg.SettleInterval, cfg.MaxScrollPasses, logger),
		paginator: NewPaginator(cfg.SettleInterval, logger),
	}
}

// session is the per-run mutable state. seen holds normalized bodies and is
// the sole identity authority for reviews.
type session struct {
	seen         map[string]struct{}
	collected    []models.ReviewRecord
	pagesWithNew int
	currentPage  int
	kind         string
}

// Harvest collects up to maxReviews unique reviews starting from targetURL.
// The error return is non-nil only when a tab cannot be acquired; every
// other failure degrades to a well-formed, possibly empty result.
func (h *Harvester) Harvest(ctx context.Context, targetURL string, maxReviews int) (*models.HarvestResult, error) {
	maxReviews = h.clampMax(maxReviews)
	start := time.Now()
	h.metrics.SessionStarted()
	defer h.metrics.SessionFinished()
	defer func() { h.metrics.ObserveSession(time.Since(start)) }()

	logger := h.logger.With(slog.String("url", targetURL))
	s := &session{seen: make(map[string]struct{}), currentPage: 1}

	page, err := h.opener.NewPage(ctx)
	if err != nil {
		h.metrics.IncError("browser_launch")
		return nil, ErrBrowserLaunch{Err: err}
	}
	defer page.Close()

	if err := page.Navigate(ctx, targetURL); err != nil {
		navErr := ErrNavigation{Err: err}
		h.metrics.IncError(errorTypeLabel(navErr))
		logger.Warn("initial navigation failed", slog.Any("error", navErr))
		return h.snapshot(targetURL, s), nil
	}

	h.run(ctx, logger, page, s, targetURL, maxReviews)

	if h.cfg.ValidateReviews {
		if v, ok := h.suggester.(suggest.Validator); ok {
			s.collected = v.ValidateReviews(ctx, s.collected)
		}
	}

	result := h.snapshot(targetURL, s)
	logger.Info("harvest finished",
		slog.Int("reviews", result.ReviewsCount),
		slog.Int("pages_with_unique_reviews", result.PagesWithUniqueReviews),
		slog.String("pagination_kind", result.PaginationKind),
		slog.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (h *Harvester) run(ctx context.Context, logger *slog.Logger, page browser.Page, s *session, targetURL string, maxReviews int) {
	for s.currentPage <= h.cfg.MaxPages {
		if ctx.Err() != nil {
			return
		}

		h.loader.Load(ctx, page)

		html, err := page.HTML(ctx)
		if err != nil {
			h.metrics.IncError(errorTypeLabel(err))
			logger.Warn("page snapshot failed", slog.Int("page", s.currentPage), slog.Any("error", err))
			return
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			h.metrics.IncError("other")
			logger.Warn("page parse failed", slog.Int("page", s.currentPage), slog.Any("error", err))
			return
		}
		h.metrics.IncPage()

		if s.currentPage == 1 {
			s.kind = DetectPaginationKind(doc)
			logger.Debug("pagination kind detected", slog.String("kind", s.kind))
		}

		raw := extract.Static(doc)
		set := h.suggestSelectors(ctx, page, targetURL, html)
		raw = append(raw, extract.Assisted(doc, set)...)

		added := s.merge(raw, maxReviews)
		h.metrics.AddReviews(added)
		logger.Debug("page extracted",
			slog.Int("page", s.currentPage),
			slog.Int("candidates", len(raw)),
			slog.Int("new", added),
			slog.Int("total", len(s.collected)))

		if len(raw) == 0 {
			logger.Debug("no candidates on page, stopping", slog.Int("page", s.currentPage))
			return
		}
		if added == 0 {
			logger.Debug("no new unique reviews, stopping", slog.Int("page", s.currentPage))
			return
		}
		s.pagesWithNew++
		if len(s.collected) >= maxReviews {
			logger.Debug("review cap reached", slog.Int("max_reviews", maxReviews))
			return
		}

		outcome := h.paginator.Advance(ctx, page, s.currentPage)
		h.metrics.IncPagination(outcome.String())
		if outcome != OutcomeNavigated {
			logger.Debug("pagination exhausted", slog.String("outcome", outcome.String()))
			return
		}
		s.currentPage++
	}
}

// merge folds candidates into the session, skipping bodies already seen and
// cutting off exactly at the cap.
func (s *session) merge(candidates []models.ReviewRecord, maxReviews int) int {
	added := 0
	for _, c := range candidates {
		if len(s.collected) >= maxReviews {
			break
		}
		if _, dup := s.seen[c.Body]; dup {
			continue
		}
		s.seen[c.Body] = struct{}{}
		s.collected = append(s.collected, c)
		added++
	}
	return added
}

func (h *Harvester) suggestSelectors(ctx context.Context, page browser.Page, targetURL, html string) models.SelectorSet {
	pageURL, err := page.URL(ctx)
	if err != nil || pageURL == "" {
		pageURL = targetURL
	}
	set, err := h.suggester.Suggest(ctx, pageURL, html)
	if err != nil {
		h.metrics.IncSuggestion("error")
		h.metrics.IncError(errorTypeLabel(ErrSuggestion{Err: err}))
		h.logger.Warn("selector suggestion failed", slog.Any("error", err))
		return suggest.Fallbacks()
	}
	h.metrics.IncSuggestion("ok")
	return set
}

func (h *Harvester) clampMax(maxReviews int) int {
	if maxReviews <= 0 {
		return h.cfg.MaxReviewsDefault
	}
	if maxReviews < h.cfg.MaxReviewsMin {
		return h.cfg.MaxReviewsMin
	}
	if maxReviews > h.cfg.MaxReviewsMax {
		return h.cfg.MaxReviewsMax
	}
	return maxReviews
}

func (h *Harvester) snapshot(targetURL string, s *session) *models.HarvestResult {
	reviews := s.collected
	if reviews == nil {
		reviews = []models.ReviewRecord{}
	}
	return &models.HarvestResult{
		Reviews:                reviews,
		ReviewsCount:           len(reviews),
		PagesWithUniqueReviews: s.pagesWithNew,
		URL:                    targetURL,
		ScrapeDate:             time.Now().Format("2006-01-02 15:04:05"),
		PaginationKind:         s.kind,
	}
}
