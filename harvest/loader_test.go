package harvest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoaderScrollsUntilHeightStable(t *testing.T) {
	page := &fakePage{heights: []int64{100, 250, 400, 400}}
	loader := NewLoader(time.Millisecond, 10, discardLogger())

	loader.Load(context.Background(), page)

	if page.scrolls != 3 {
		t.Errorf("scrolls = %d, want 3 (stops when height repeats)", page.scrolls)
	}
}

func TestLoaderRespectsPassCap(t *testing.T) {
	heights := make([]int64, 20)
	for i := range heights {
		heights[i] = int64(100 * (i + 1))
	}
	page := &fakePage{heights: heights}
	loader := NewLoader(time.Millisecond, 4, discardLogger())

	loader.Load(context.Background(), page)

	if page.scrolls != 4 {
		t.Errorf("scrolls = %d, want pass cap of 4", page.scrolls)
	}
}

func TestLoaderDrainsLoadMore(t *testing.T) {
	page := &fakePage{heights: []int64{100, 100}, loadMoreLeft: 3}
	loader := NewLoader(time.Millisecond, 10, discardLogger())

	loader.Load(context.Background(), page)

	if page.loadClicks != 3 {
		t.Errorf("load-more clicks = %d, want 3", page.loadClicks)
	}
}

func TestLoaderBoundsLoadMoreClicks(t *testing.T) {
	// A button that never disappears must not spin forever.
	page := &fakePage{heights: []int64{100, 100}, loadMoreLeft: -1}
	loader := NewLoader(time.Millisecond, 10, discardLogger())

	loader.Load(context.Background(), page)

	if page.loadClicks != maxLoadMoreClicks {
		t.Errorf("load-more clicks = %d, want %d", page.loadClicks, maxLoadMoreClicks)
	}
}
