package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/aluiziolira/review-harvester/config"
)

// Chrome owns one headless Chrome process; tabs are created per harvest
// session and torn down independently.
type Chrome struct {
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
	navTimeout    time.Duration
	stepTimeout   time.Duration
}

// NewChrome starts the browser. A missing or broken Chrome binary is the
// one fatal condition in the whole system, so the launch happens eagerly
// here rather than on first navigation.
func NewChrome(ctx context.Context, cfg *config.Config) (*Chrome, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("blink-settings", "imagesEnabled=false"),
		chromedp.UserAgent(cfg.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("launch chrome: %w", err)
	}

	return &Chrome{
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		navTimeout:    cfg.NavigationTimeout,
		stepTimeout:   cfg.StepTimeout,
	}, nil
}

// NewPage opens a fresh tab.
func (c *Chrome) NewPage(ctx context.Context) (Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tabCtx, tabCancel := chromedp.NewContext(c.browserCtx)
	return &chromeTab{
		ctx:         tabCtx,
		cancel:      tabCancel,
		navTimeout:  c.navTimeout,
		stepTimeout: c.stepTimeout,
	}, nil
}

// Close shuts the browser process down.
func (c *Chrome) Close() {
	c.browserCancel()
	c.allocCancel()
}

type chromeTab struct {
	ctx         context.Context
	cancel      context.CancelFunc
	navTimeout  time.Duration
	stepTimeout time.Duration
}

// run executes actions against the tab with a step timeout, propagating
// cancellation from the caller's ctx.
func (t *chromeTab) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stepCtx, cancel := context.WithTimeout(t.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return chromedp.Run(stepCtx, actions...)
}

func (t *chromeTab) Navigate(ctx context.Context, url string) error {
	return t.run(ctx, t.navTimeout,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
}

func (t *chromeTab) URL(ctx context.Context) (string, error) {
	var u string
	err := t.run(ctx, t.stepTimeout, chromedp.Location(&u))
	return u, err
}

func (t *chromeTab) HTML(ctx context.Context) (string, error) {
	var html string
	err := t.run(ctx, t.stepTimeout, chromedp.OuterHTML("html", &html, chromedp.ByQuery))
	return html, err
}

func (t *chromeTab) ScrollHeight(ctx context.Context) (int64, error) {
	var h int64
	err := t.run(ctx, t.stepTimeout,
		chromedp.Evaluate(`document.body ? document.body.scrollHeight : 0`, &h))
	return h, err
}

func (t *chromeTab) ScrollToBottom(ctx context.Context) error {
	return t.run(ctx, t.stepTimeout,
		chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil))
}

func (t *chromeTab) ClickFirstVisible(ctx context.Context, selector string) (bool, error) {
	sel, err := json.Marshal(selector)
	if err != nil {
		return false, err
	}
	script := fmt.Sprintf(`(() => {
		let els;
		try { els = document.querySelectorAll(%s); } catch (e) { return false; }
		for (const el of els) {
			if (el.offsetParent === null) continue;
			el.scrollIntoView({block: "center"});
			try { el.click(); } catch (e) {
				el.dispatchEvent(new MouseEvent("click", {bubbles: true}));
			}
			return true;
		}
		return false;
	})()`, sel)

	var clicked bool
	if err := t.run(ctx, t.stepTimeout, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

func (t *chromeTab) ClickByText(ctx context.Context, labels []string) (bool, error) {
	encoded, err := json.Marshal(labels)
	if err != nil {
		return false, err
	}
	script := fmt.Sprintf(`(() => {
		const labels = %s.map((l) => l.toLowerCase());
		const els = document.querySelectorAll('button, a, [role="button"]');
		for (const el of els) {
			if (el.offsetParent === null) continue;
			const text = (el.textContent || "").trim().toLowerCase();
			if (!labels.includes(text)) continue;
			el.scrollIntoView({block: "center"});
			try { el.click(); } catch (e) {
				el.dispatchEvent(new MouseEvent("click", {bubbles: true}));
			}
			return true;
		}
		return false;
	})()`, encoded)

	var clicked bool
	if err := t.run(ctx, t.stepTimeout, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

func (t *chromeTab) Settle(ctx context.Context, d time.Duration) error {
	var ready bool
	return t.run(ctx, d+time.Second,
		chromedp.Poll(`document.readyState === "complete" || document.readyState === "interactive"`, &ready),
		chromedp.Sleep(d),
	)
}

func (t *chromeTab) Close() {
	t.cancel()
}
