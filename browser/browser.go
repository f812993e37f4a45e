// Package browser abstracts the page-automation driver behind a small
// capability surface so the harvest engine can be exercised against a
// scripted page in tests.
package browser

import (
	"context"
	"time"
)

// Page is one automated browser tab. All methods honor ctx cancellation.
type Page interface {
	// Navigate loads url and waits for the document body to be ready.
	Navigate(ctx context.Context, url string) error
	// URL returns the tab's current location.
	URL(ctx context.Context) (string, error)
	// HTML returns the serialized rendered DOM.
	HTML(ctx context.Context) (string, error)
	// ScrollHeight returns document.body.scrollHeight.
	ScrollHeight(ctx context.Context) (int64, error)
	// ScrollToBottom scrolls the window to the current bottom.
	ScrollToBottom(ctx context.Context) error
	// ClickFirstVisible clicks the first visible element matching the CSS
	// selector, reporting whether anything was clicked.
	ClickFirstVisible(ctx context.Context, selector string) (bool, error)
	// ClickByText clicks the first visible button or link whose trimmed
	// text equals one of the given labels, case-insensitively.
	ClickByText(ctx context.Context, labels []string) (bool, error)
	// Settle waits for in-flight dynamic work, bounded by d.
	Settle(ctx context.Context, d time.Duration) error
	// Close releases the tab.
	Close()
}
