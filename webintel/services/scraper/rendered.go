package scraper

import (
	"context"
	"fmt"
	"sync"
	"time"

	"webintel/webintel/utils/errs"
	"webintel/webintel/utils/logging"
	"webintel/webintel/utils/types"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"
)

const renderedTimeout = 30 * time.Second

const metaScript = `() => {
	const meta = (name) => {
		const el = document.querySelector('meta[name="' + name + '"]');
		return el ? (el.getAttribute('content') || '') : '';
	};
	return { title: document.title || '', description: meta('description'), keywords: meta('keywords') };
}`

const bodyTextScript = `() => {
	document.querySelectorAll('script, style').forEach((el) => el.remove());
	return document.body ? document.body.innerText : '';
}`

// RenderedExtractor loads the page in headless Chromium so client-side
// rendered text is available.
type RenderedExtractor struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	timeout time.Duration
	logger  *logging.Loggers
}

func NewRenderedExtractor(logger *logging.Loggers) *RenderedExtractor {
	return &RenderedExtractor{timeout: renderedTimeout, logger: logger}
}

func (r *RenderedExtractor) Kind() ExtractorKind { return KindRendered }

// driver starts playwright on first use.
func (r *RenderedExtractor) driver() (*playwright.Playwright, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pw != nil {
		return r.pw, nil
	}
	pw, err := playwright.Run()
	if err != nil {
		return nil, err
	}
	r.pw = pw
	return pw, nil
}

// Close stops Playwright
func (r *RenderedExtractor) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.pw == nil {
		return nil
	}
	err := r.pw.Stop()
	r.pw = nil
	return err
}

func (r *RenderedExtractor) Extract(ctx context.Context, url string) (*types.ExtractedContent, error) {
	defer r.logger.LogDuration(ctx, "RenderedExtractor.Extract")()
	if err := ctx.Err(); err != nil {
		return nil, errs.Extraction(err, "render "+url)
	}

	pw, err := r.driver()
	if err != nil {
		return nil, errs.Extraction(err, "start playwright")
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args:     []string{"--disable-gpu", "--no-sandbox", "--disable-dev-shm-usage"},
	})
	if err != nil {
		return nil, errs.Extraction(err, "launch browser")
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			r.logger.Error.Error("browser close failed", zap.Error(cerr), zap.String("url", url))
		}
	}()

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		UserAgent: playwright.String(UserAgent),
	})
	if err != nil {
		return nil, errs.Extraction(err, "new browser context")
	}
	page, err := bctx.NewPage()
	if err != nil {
		return nil, errs.Extraction(err, "new page")
	}

	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		timeout = time.Until(deadline)
	}
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}); err != nil {
		return nil, errs.Extraction(err, "navigate "+url)
	}

	out := &types.ExtractedContent{}
	meta, err := page.Evaluate(metaScript)
	if err != nil {
		return nil, errs.Extraction(err, "read metadata")
	}
	if m, ok := meta.(map[string]interface{}); ok {
		out.Title = asString(m["title"])
		out.MetaDescription = asString(m["description"])
		out.MetaKeywords = asString(m["keywords"])
	}

	text, err := page.Evaluate(bodyTextScript)
	if err != nil {
		return nil, errs.Extraction(err, "read body text")
	}
	out.Content = asString(text)
	return finalize(out), nil
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprint(s)
	}
}
