// Package chrome implements the document provider on a headless Chrome
// session via chromedp. It owns the browser lifecycle: New starts the
// session, Close tears it down.
package chrome

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"

	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/docview"
)

// Compile-time check that Session satisfies the provider interface.
var _ docview.Provider = (*Session)(nil)

// Session is a chromedp-backed docview.Provider over one browser tab.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	limiter *rate.Limiter
	logger  *slog.Logger
}

// element wraps a CDP node. Its full XPath re-addresses the node for
// actions that need a round trip to the page.
type element struct {
	node *cdp.Node
}

// New launches a browser session. The navigation limiter keeps the scrape
// polite toward the source site.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if logger == nil {
		logger = slog.Default()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-notifications", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.WindowSize(1920, 1080),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// Force the browser process to start now so a missing Chrome binary
	// fails here, not on the first navigation.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, fmt.Errorf("start browser: %w", err)
	}

	rps := float64(cfg.NavPerMinute) / 60.0
	return &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
		logger:  logger,
	}, nil
}

// Close tears down the tab and the browser process.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("navigation rate limit: %w", err)
	}
	s.logger.Debug("Navigating", "url", url)
	if err := chromedp.Run(s.ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	return nil
}

func (s *Session) WaitFor(ctx context.Context, selector string, timeout time.Duration) (docview.Element, error) {
	waitCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("wait for %q after %s: %w", selector, timeout, docview.ErrTimeout)
		}
		return nil, fmt.Errorf("wait for %q: %w", selector, err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("wait for %q: element vanished after wait", selector)
	}
	return element{node: nodes[0]}, nil
}

func (s *Session) QueryAll(ctx context.Context, selector string) ([]docview.Element, error) {
	var nodes []*cdp.Node
	err := chromedp.Run(s.ctx,
		chromedp.Nodes(selector, &nodes, chromedp.ByQueryAll, chromedp.AtLeast(0)),
	)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", selector, err)
	}
	els := make([]docview.Element, len(nodes))
	for i, n := range nodes {
		els[i] = element{node: n}
	}
	return els, nil
}

func (s *Session) Text(ctx context.Context, el docview.Element) (string, error) {
	e, err := asElement(el)
	if err != nil {
		return "", err
	}
	var text string
	if err := chromedp.Run(s.ctx,
		chromedp.Text(e.node.FullXPath(), &text, chromedp.BySearch),
	); err != nil {
		return "", fmt.Errorf("read text: %w", err)
	}
	return text, nil
}

func (s *Session) Attribute(ctx context.Context, el docview.Element, name string) (string, error) {
	e, err := asElement(el)
	if err != nil {
		return "", err
	}
	// Attribute values were captured when the node was queried; no page
	// round trip is needed.
	return e.node.AttributeValue(name), nil
}

func (s *Session) Execute(ctx context.Context, script string, out any) error {
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(script, out)); err != nil {
		return fmt.Errorf("execute script: %w", err)
	}
	return nil
}

func asElement(el docview.Element) (element, error) {
	e, ok := el.(element)
	if !ok {
		return element{}, fmt.Errorf("element %T does not belong to this session", el)
	}
	return e, nil
}
