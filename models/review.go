// Package models defines the data structures shared across the harvester.
package models

// ReviewRecord is a single harvested customer review. The normalized Body
// text is the sole identity for de-duplication; all other fields are
// descriptive.
type ReviewRecord struct {
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Rating   *float64 `json:"rating"`
	Reviewer string   `json:"reviewer"`
}

// SelectorSet carries priority-ordered CSS selector lists proposed by the
// suggestion collaborator for a specific page.
type SelectorSet struct {
	Containers []string `json:"containers"`
	Content    []string `json:"content"`
	Ratings    []string `json:"ratings"`
}

// Empty reports whether the set carries no selectors at all.
func (s SelectorSet) Empty() bool {
	return len(s.Containers) == 0 && len(s.Content) == 0 && len(s.Ratings) == 0
}

// HarvestResult is the snapshot returned for one harvest request. It is
// always well-formed, even when the session terminated early or collected
// nothing.
type HarvestResult struct {
	Reviews                []ReviewRecord `json:"reviews"`
	ReviewsCount           int            `json:"reviews_count"`
	PagesWithUniqueReviews int            `json:"pages_with_unique_reviews"`
	URL                    string         `json:"url"`
	ScrapeDate             string         `json:"scrape_date"`
	PaginationKind         string         `json:"pagination_kind,omitempty"`
}

// Float64 returns a pointer to v, for optional rating literals.
func Float64(v float64) *float64 { return &v }
