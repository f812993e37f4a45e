package harvest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics bundles Prometheus collectors for the harvester.
type Metrics struct {
	Registry          *prometheus.Registry
	PagesVisitedTotal prometheus.Counter
	ReviewsTotal      prometheus.Counter
	HarvestDuration   prometheus.Histogram
	SuggestionsTotal  *prometheus.CounterVec
	PaginationTotal   *prometheus.CounterVec
	ErrorsTotal       *prometheus.CounterVec
	ActiveSessions    prometheus.Gauge
}

// NewMetrics constructs and registers all metrics on a dedicated registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	pagesVisited := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_pages_visited_total",
			Help: "Total pages visited across all harvest sessions.",
		},
	)
	reviews := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_reviews_total",
			Help: "Total unique reviews collected.",
		},
	)
	harvestDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harvester_session_duration_seconds",
			Help:    "Wall-clock duration of harvest sessions.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
	suggestions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_suggestions_total",
			Help: "Selector suggestion requests by outcome.",
		},
		[]string{"outcome"},
	)
	pagination := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_pagination_total",
			Help: "Pagination attempts by outcome.",
		},
		[]string{"outcome"},
	)
	errorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_errors_total",
			Help: "Total non-fatal errors by type.",
		},
		[]string{"error_type"},
	)
	activeSessions := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "harvester_active_sessions",
			Help: "Harvest sessions currently running.",
		},
	)

	registry.MustRegister(pagesVisited, reviews, harvestDuration, suggestions, pagination, errorsTotal, activeSessions)

	return &Metrics{
		Registry:          registry,
		PagesVisitedTotal: pagesVisited,
		ReviewsTotal:      reviews,
		HarvestDuration:   harvestDuration,
		SuggestionsTotal:  suggestions,
		PaginationTotal:   pagination,
		ErrorsTotal:       errorsTotal,
		ActiveSessions:    activeSessions,
	}
}

// IncPage increments the visited pages counter.
func (m *Metrics) IncPage() {
	if m == nil {
		return
	}
	m.PagesVisitedTotal.Inc()
}

// AddReviews adds n to the collected reviews counter.
func (m *Metrics) AddReviews(n int) {
	if m == nil {
		return
	}
	m.ReviewsTotal.Add(float64(n))
}

// ObserveSession records a session duration.
func (m *Metrics) ObserveSession(d time.Duration) {
	if m == nil {
		return
	}
	m.HarvestDuration.Observe(d.Seconds())
}

// IncSuggestion increments the suggestion counter for an outcome label.
func (m *Metrics) IncSuggestion(outcome string) {
	if m == nil {
		return
	}
	m.SuggestionsTotal.WithLabelValues(outcome).Inc()
}

// IncPagination increments the pagination counter for an outcome label.
func (m *Metrics) IncPagination(outcome string) {
	if m == nil {
		return
	}
	m.PaginationTotal.WithLabelValues(outcome).Inc()
}

// IncError increments the errors counter for a type label.
func (m *Metrics) IncError(errorType string) {
	if m == nil {
		return
	}
	m.ErrorsTotal.WithLabelValues(errorType).Inc()
}

// SessionStarted marks a session as active.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.ActiveSessions.Inc()
}

// SessionFinished marks a session as done.
func (m *Metrics) SessionFinished() {
	if m == nil {
		return
	}
	m.ActiveSessions.Dec()
}
