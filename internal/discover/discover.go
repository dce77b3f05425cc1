// Package discover retrieves the full fixture list for a club/season and
// validates it against the expected count.
//
// The source view lazy-loads fixture rows as the page scrolls, leaving a
// short race between scroll completion and DOM population. Exact-count
// validation with a bounded retry is the correctness gate here — a fixed
// sleep is not.
package discover

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matchday/matchday-data/internal/docview"
)

// FixturePage is the already-opened results view discovery runs against.
// The extraction layer owns the selectors behind both methods.
type FixturePage interface {
	// Fixtures returns the fixture references currently in the DOM for the
	// inspected club: home fixtures first, then away. The order carries no
	// chronological meaning and callers must not assume one.
	Fixtures(ctx context.Context) ([]string, error)
	// Recover reloads the page, dismisses overlays, and re-settles the
	// scroll position so lazy-loaded rows repopulate.
	Recover(ctx context.Context) error
}

// ErrClubNotInSeason is terminal: the club did not compete that season.
var ErrClubNotInSeason = errors.New("club did not compete in this season")

// FixtureListIncompleteError is raised when the retry bound is exhausted
// without the list ever reaching the expected count.
type FixtureListIncompleteError struct {
	Expected     int
	LastObserved int
	Attempts     int
}

func (e *FixtureListIncompleteError) Error() string {
	return fmt.Sprintf("fixture list incomplete after %d attempts: want %d, last saw %d",
		e.Attempts, e.Expected, e.LastObserved)
}

// Discoverer runs the count-validated fixture query.
type Discoverer struct {
	MaxRetries  int           // recovery attempts after the first query
	SettleDelay time.Duration // fixed pause after recovery, before re-querying
	Logger      *slog.Logger
}

// New creates a Discoverer with the given bounds.
func New(maxRetries int, settleDelay time.Duration, logger *slog.Logger) *Discoverer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Discoverer{MaxRetries: maxRetries, SettleDelay: settleDelay, Logger: logger}
}

// Discover queries the page for the club's fixture references until the
// expected count is reached.
//
// A count of zero fails fast with ErrClubNotInSeason — no recovery is
// attempted. Any other mismatch triggers the page's recovery sequence and
// a bounded re-query; exhausting the bound surfaces the last observed
// count for diagnosis. Waits that time out inside a query consume an
// attempt like any short count.
func (d *Discoverer) Discover(ctx context.Context, page FixturePage, expectedCount int) ([]string, error) {
	lastObserved := 0

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		refs, err := page.Fixtures(ctx)
		switch {
		case err != nil && errors.Is(err, docview.ErrTimeout):
			d.Logger.Warn("Fixture query timed out", "attempt", attempt)
		case err != nil:
			return nil, fmt.Errorf("query fixtures: %w", err)
		case len(refs) == 0:
			return nil, ErrClubNotInSeason
		case len(refs) == expectedCount:
			d.Logger.Info("All fixtures in list", "count", expectedCount, "attempt", attempt)
			return refs, nil
		default:
			lastObserved = len(refs)
			d.Logger.Warn("Fixture list incomplete",
				"observed", lastObserved, "expected", expectedCount, "attempt", attempt)
		}

		if attempt > d.MaxRetries {
			return nil, &FixtureListIncompleteError{
				Expected:     expectedCount,
				LastObserved: lastObserved,
				Attempts:     attempt,
			}
		}

		if err := page.Recover(ctx); err != nil {
			return nil, fmt.Errorf("recover results page: %w", err)
		}
		select {
		case <-time.After(d.SettleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
