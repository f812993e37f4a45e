package harvest

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"
)

// fakePage is a scripted browser.Page. Its state index moves forward when
// the configured click selector fires or when a navigation lands while a
// further state exists.
type fakePage struct {
	htmls        []string
	urls         []string
	pos          int
	started      bool
	clickAdvance string
	textAdvance  bool
	heights      []int64
	heightIdx    int
	navErr       error
	clickErr     error
	scrolls      int
	loadMoreLeft int
	loadClicks   int
	navigated    []string
	closed       bool
}

func (f *fakePage) advance() {
	if f.pos+1 < len(f.htmls) {
		f.pos++
	}
}

func (f *fakePage) Navigate(_ context.Context, url string) error {
	if f.navErr != nil {
		return f.navErr
	}
	f.navigated = append(f.navigated, url)
	if !f.started {
		f.started = true
	} else {
		f.advance()
	}
	return nil
}

func (f *fakePage) URL(context.Context) (string, error) {
	if len(f.urls) == 0 {
		return "https://shop.example/reviews", nil
	}
	if f.pos < len(f.urls) {
		return f.urls[f.pos], nil
	}
	return f.urls[len(f.urls)-1], nil
}

func (f *fakePage) HTML(context.Context) (string, error) {
	if len(f.htmls) == 0 {
		return "<html><body></body></html>", nil
	}
	return f.htmls[f.pos], nil
}

func (f *fakePage) ScrollHeight(context.Context) (int64, error) {
	if f.heightIdx < len(f.heights) {
		h := f.heights[f.heightIdx]
		f.heightIdx++
		return h, nil
	}
	return 1000, nil
}

func (f *fakePage) ScrollToBottom(context.Context) error {
	f.scrolls++
	return nil
}

func (f *fakePage) ClickFirstVisible(_ context.Context, selector string) (bool, error) {
	if f.clickErr != nil {
		return false, f.clickErr
	}
	if f.clickAdvance != "" && selector == f.clickAdvance {
		f.advance()
		return true, nil
	}
	return false, nil
}

func (f *fakePage) ClickByText(_ context.Context, labels []string) (bool, error) {
	if slices.Contains(labels, "Next") {
		if f.clickErr != nil {
			return false, f.clickErr
		}
		if f.textAdvance {
			f.advance()
			return true, nil
		}
		return false, nil
	}
	if f.loadMoreLeft != 0 {
		if f.loadMoreLeft > 0 {
			f.loadMoreLeft--
		}
		f.loadClicks++
		return true, nil
	}
	return false, nil
}

func (f *fakePage) Settle(context.Context, time.Duration) error {
	return nil
}

func (f *fakePage) Close() {
	f.closed = true
}

// reviewPage renders a page fixture; marker makes page content distinct
// even when the review bodies repeat.
func reviewPage(marker string, bodies ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<html><body><!-- %s -->", marker)
	for _, body := range bodies {
		fmt.Fprintf(&b, `<div class="review-item"><div class="review-body">%s</div></div>`, body)
	}
	b.WriteString("</body></html>")
	return b.String()
}
