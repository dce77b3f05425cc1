// Package extract is the imperative glue between the document provider and
// the pipeline: driving the results page, recovering it when lazy-loaded
// rows go missing, and reading the raw pieces off each match page. All
// selector knowledge is confined to this package.
package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/docview"
	"github.com/matchday/matchday-data/internal/season"
)

// ResultsPage is the opened season results view for one club. It satisfies
// discover.FixturePage.
type ResultsPage struct {
	provider docview.Provider
	cfg      *config.Config
	club     string
	season   season.Season
	logger   *slog.Logger
}

// OpenResults navigates to the results view, clears overlays, selects the
// season, and settles the scroll so lazy-loaded fixtures populate.
func OpenResults(ctx context.Context, p docview.Provider, cfg *config.Config, club string, se season.Season, logger *slog.Logger) (*ResultsPage, error) {
	if logger == nil {
		logger = slog.Default()
	}
	page := &ResultsPage{provider: p, cfg: cfg, club: club, season: se, logger: logger}

	if err := p.Navigate(ctx, cfg.ResultsURL); err != nil {
		return nil, fmt.Errorf("open results page: %w", err)
	}
	if err := page.settle(ctx); err != nil {
		return nil, err
	}
	return page, nil
}

// Fixtures returns the club's fixture references currently in the DOM:
// home fixtures first, then away.
func (r *ResultsPage) Fixtures(ctx context.Context) ([]string, error) {
	if _, err := r.provider.WaitFor(ctx, selFixturesList, r.cfg.WaitTimeout); err != nil {
		return nil, fmt.Errorf("wait for fixture list: %w", err)
	}

	var refs []string
	for _, sideAttr := range []string{"data-home", "data-away"} {
		els, err := r.provider.QueryAll(ctx, selFixtureLinks(sideAttr, r.club))
		if err != nil {
			return nil, fmt.Errorf("query %s fixtures: %w", sideAttr, err)
		}
		for _, el := range els {
			ref, err := r.provider.Attribute(ctx, el, "data-href")
			if err != nil {
				return nil, fmt.Errorf("read fixture link: %w", err)
			}
			if ref != "" {
				refs = append(refs, ref)
			}
		}
	}
	return refs, nil
}

// Recover reloads the results view and re-runs the settle choreography.
// Discovery calls this between attempts when the fixture count comes up
// short.
func (r *ResultsPage) Recover(ctx context.Context) error {
	r.logger.Info("Recovering results page", "club", r.club, "season", r.season.Label)
	if err := r.provider.Navigate(ctx, r.cfg.ResultsURL); err != nil {
		return fmt.Errorf("reload results page: %w", err)
	}
	return r.settle(ctx)
}

// settle clears overlays, selects the season, and scrolls the page so the
// full fixture list loads.
func (r *ResultsPage) settle(ctx context.Context) error {
	r.dismissOverlays(ctx)
	if err := r.selectSeason(ctx); err != nil {
		return err
	}
	return r.settleScroll(ctx)
}

// dismissOverlays accepts the cookie banner and closes the ad window when
// either appears. Absence of both is the normal case after the first load.
func (r *ResultsPage) dismissOverlays(ctx context.Context) {
	if _, err := r.provider.WaitFor(ctx, selCookieAccept, r.cfg.WaitTimeout); err == nil {
		if err := r.click(ctx, selCookieAccept); err != nil {
			r.logger.Warn("Cookie banner click failed", "error", err)
		} else {
			r.logger.Info("Cookies accepted")
		}
	} else if errors.Is(err, docview.ErrTimeout) {
		r.logger.Debug("No cookie banner")
	}

	if _, err := r.provider.WaitFor(ctx, selCloseAd, r.cfg.SettleDelay); err == nil {
		if err := r.click(ctx, selCloseAd); err != nil {
			r.logger.Warn("Ad close click failed", "error", err)
		} else {
			r.logger.Info("Ad closed")
		}
	}
}

// selectSeason opens the season dropdown and clicks the entry matching the
// season label.
func (r *ResultsPage) selectSeason(ctx context.Context) error {
	if _, err := r.provider.WaitFor(ctx, selSeasonDropdown, r.cfg.WaitTimeout); err != nil {
		return fmt.Errorf("wait for season dropdown: %w", err)
	}
	if err := r.click(ctx, selSeasonDropdown); err != nil {
		return fmt.Errorf("open season dropdown: %w", err)
	}

	var clicked bool
	script := fmt.Sprintf(`(() => {
		const options = document.querySelectorAll(%q);
		for (const li of options) {
			if (li.textContent.trim() === %q) { li.click(); return true; }
		}
		return false;
	})()`, selSeasonOptions, r.season.Label)
	if err := r.provider.Execute(ctx, script, &clicked); err != nil {
		return fmt.Errorf("select season %s: %w", r.season.Label, err)
	}
	if !clicked {
		return fmt.Errorf("season %s not present in dropdown", r.season.Label)
	}

	r.logger.Info("Season selected", "season", r.season.Label)
	return nil
}

// settleScroll nudges the page toward the bottom a few times, pausing for
// the fixed settle delay between nudges so lazy-loaded rows populate.
func (r *ResultsPage) settleScroll(ctx context.Context) error {
	const passes = 5
	for i := 0; i < passes; i++ {
		script := "window.scrollTo(0, document.body.scrollHeight * 14 / 15)"
		if err := r.provider.Execute(ctx, script, nil); err != nil {
			return fmt.Errorf("scroll results page: %w", err)
		}
		select {
		case <-time.After(r.cfg.SettleDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// click dispatches a click on the first element matching the selector.
func (r *ResultsPage) click(ctx context.Context, selector string) error {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.click();
		return true;
	})()`, selector)
	var ok bool
	if err := r.provider.Execute(ctx, script, &ok); err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no element for %q", selector)
	}
	return nil
}

// FixtureURL normalizes a fixture reference into a navigable URL. The
// source emits protocol-relative links like "//www.../match/66342".
func FixtureURL(ref string) string {
	if strings.HasPrefix(ref, "//") {
		return "https:" + ref
	}
	return ref
}
