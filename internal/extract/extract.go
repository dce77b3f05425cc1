package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/docview"
	"github.com/matchday/matchday-data/internal/record"
)

// FixtureExtract is the raw material read off one match page, untouched by
// any parsing beyond whitespace trimming. Downstream layers coerce it.
type FixtureExtract struct {
	Ref           string
	DateText      string
	Stadium       string
	HomeShortCode string
	Score         record.Scoreline
	StatRows      []string
}

// Reader drives individual match pages.
type Reader struct {
	provider docview.Provider
	cfg      *config.Config
	logger   *slog.Logger
}

// NewReader returns a match-page reader over the given provider.
func NewReader(p docview.Provider, cfg *config.Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{provider: p, cfg: cfg, logger: logger}
}

// ReadFixture opens the match page behind ref, switches to the stats tab,
// and pulls out the date, venue, home side code, full-time score, and the
// raw stat row texts.
func (r *Reader) ReadFixture(ctx context.Context, ref string) (*FixtureExtract, error) {
	url := FixtureURL(ref)
	if err := r.provider.Navigate(ctx, url); err != nil {
		return nil, fmt.Errorf("open match page %s: %w", url, err)
	}
	if _, err := r.provider.WaitFor(ctx, selScorebox, r.cfg.WaitTimeout); err != nil {
		return nil, fmt.Errorf("wait for scorebox: %w", err)
	}

	ext := &FixtureExtract{Ref: ref}

	var err error
	if ext.DateText, err = r.elementText(ctx, selMatchDate); err != nil {
		return nil, fmt.Errorf("read match date: %w", err)
	}
	if ext.Stadium, err = r.elementText(ctx, selStadium); err != nil {
		return nil, fmt.Errorf("read stadium: %w", err)
	}

	// The home short code span is hidden at desktop widths, so a visibility
	// wait would stall. Read it straight out of the DOM.
	if err := r.hiddenText(ctx, selHomeShortCode, &ext.HomeShortCode); err != nil {
		return nil, fmt.Errorf("read home short code: %w", err)
	}

	scoreText, err := r.elementText(ctx, selFullTimeScore)
	if err != nil {
		return nil, fmt.Errorf("read full-time score: %w", err)
	}
	if ext.Score, err = ParseScoreline(scoreText); err != nil {
		return nil, fmt.Errorf("match page %s: %w", url, err)
	}

	if ext.StatRows, err = r.readStatRows(ctx); err != nil {
		return nil, err
	}

	r.logger.Debug("Fixture read",
		"ref", ref, "date", ext.DateText, "rows", len(ext.StatRows))
	return ext, nil
}

// readStatRows opens the stats tab and returns the text of every row in the
// stats table, in document order.
func (r *Reader) readStatRows(ctx context.Context) ([]string, error) {
	if _, err := r.provider.WaitFor(ctx, selStatsTab, r.cfg.WaitTimeout); err != nil {
		return nil, fmt.Errorf("wait for stats tab: %w", err)
	}
	var clicked bool
	script := fmt.Sprintf(`(() => {
		const tab = document.querySelector(%q);
		if (!tab) return false;
		tab.click();
		return true;
	})()`, selStatsTab)
	if err := r.provider.Execute(ctx, script, &clicked); err != nil {
		return nil, fmt.Errorf("open stats tab: %w", err)
	}
	if !clicked {
		return nil, fmt.Errorf("stats tab not present")
	}

	if _, err := r.provider.WaitFor(ctx, selStatsTable, r.cfg.WaitTimeout); err != nil {
		return nil, fmt.Errorf("wait for stats table: %w", err)
	}

	els, err := r.provider.QueryAll(ctx, selStatsRows)
	if err != nil {
		return nil, fmt.Errorf("query stat rows: %w", err)
	}
	rows := make([]string, 0, len(els))
	for _, el := range els {
		text, err := r.provider.Text(ctx, el)
		if err != nil {
			return nil, fmt.Errorf("read stat row: %w", err)
		}
		if text = strings.TrimSpace(text); text != "" {
			rows = append(rows, text)
		}
	}
	return rows, nil
}

// elementText waits for the selector and returns its trimmed text.
func (r *Reader) elementText(ctx context.Context, selector string) (string, error) {
	el, err := r.provider.WaitFor(ctx, selector, r.cfg.WaitTimeout)
	if err != nil {
		return "", err
	}
	text, err := r.provider.Text(ctx, el)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// hiddenText reads textContent of a selector without a visibility wait.
func (r *Reader) hiddenText(ctx context.Context, selector string, out *string) error {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		return el ? el.textContent.trim() : "";
	})()`, selector)
	if err := r.provider.Execute(ctx, script, out); err != nil {
		return err
	}
	if *out == "" {
		return fmt.Errorf("no text at %q", selector)
	}
	return nil
}

// ParseScoreline parses a full-time score like "2-1" into its halves. The
// source renders it with either a plain hyphen or surrounding whitespace.
func ParseScoreline(text string) (record.Scoreline, error) {
	parts := strings.SplitN(strings.TrimSpace(text), "-", 2)
	if len(parts) != 2 {
		return record.Scoreline{}, fmt.Errorf("malformed scoreline %q", text)
	}
	home, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return record.Scoreline{}, fmt.Errorf("malformed scoreline %q", text)
	}
	away, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return record.Scoreline{}, fmt.Errorf("malformed scoreline %q", text)
	}
	if home < 0 || away < 0 {
		return record.Scoreline{}, fmt.Errorf("malformed scoreline %q", text)
	}
	return record.Scoreline{Home: home, Away: away}, nil
}
