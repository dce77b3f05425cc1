// Package ingest runs the end-to-end pipeline for one club and season:
// gate on the catalog, discover the fixture list, read and normalize each
// match page, assemble the season dataset, and publish it.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/matchday/matchday-data/internal/catalog"
	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/dataset"
	"github.com/matchday/matchday-data/internal/discover"
	"github.com/matchday/matchday-data/internal/docview"
	"github.com/matchday/matchday-data/internal/extract"
	"github.com/matchday/matchday-data/internal/record"
	"github.com/matchday/matchday-data/internal/season"
	"github.com/matchday/matchday-data/internal/stats"
)

// Pipeline wires the scraping layers to the catalog.
type Pipeline struct {
	Provider docview.Provider
	Catalog  catalog.Catalog
	Config   *config.Config
	Logger   *slog.Logger

	// Force skips the idempotency gate. The publish step replaces any prior
	// dataset under the same key wholesale, so forcing a run is safe.
	Force bool
}

// Result summarizes one pipeline run.
type Result struct {
	Key                string
	Skipped            bool
	FixturesDiscovered int
	RecordsBuilt       int
	RowsPublished      int
	Duration           time.Duration
}

// Run ingests one club/season. A season already present in the catalog is
// skipped before any page is touched. Any fixture that cannot be read or
// normalized aborts the whole run; partial seasons are never published.
func (p *Pipeline) Run(ctx context.Context, club, seasonLabel string) (*Result, error) {
	start := time.Now()
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clubCode, err := config.ClubCode(club)
	if err != nil {
		return nil, err
	}
	se, err := season.Parse(seasonLabel)
	if err != nil {
		return nil, err
	}
	key := se.Key(club)
	logger = logger.With("club", club, "season", se.Label, "key", key)

	if !p.Force {
		present, err := p.Catalog.Contains(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("check catalog for %s: %w", key, err)
		}
		if present {
			logger.Info("Dataset already published, skipping")
			return &Result{Key: key, Skipped: true, Duration: time.Since(start)}, nil
		}
	}

	page, err := extract.OpenResults(ctx, p.Provider, p.Config, club, se, logger)
	if err != nil {
		return nil, err
	}

	d := discover.New(p.Config.MaxDiscoveryRetries, p.Config.SettleDelay, logger)
	refs, err := d.Discover(ctx, page, se.ExpectedFixtures())
	if err != nil {
		return nil, err
	}

	records, err := p.readFixtures(ctx, refs, clubCode, logger)
	if err != nil {
		return nil, err
	}

	ds, err := dataset.Assemble(records, club, se)
	if err != nil {
		return nil, fmt.Errorf("assemble dataset %s: %w", key, err)
	}
	if err := p.Catalog.Publish(ctx, ds); err != nil {
		return nil, fmt.Errorf("publish dataset %s: %w", key, err)
	}

	result := &Result{
		Key:                key,
		FixturesDiscovered: len(refs),
		RecordsBuilt:       len(records),
		RowsPublished:      len(ds.Rows),
		Duration:           time.Since(start),
	}
	logger.Info("Dataset published",
		"fixtures", result.FixturesDiscovered,
		"rows", result.RowsPublished,
		"duration", result.Duration.Round(time.Millisecond))
	return result, nil
}

// readFixtures reads every discovered match page in sequence and builds a
// record per fixture. Sequential on purpose: the pages share one browser
// tab and the source is rate limited.
func (p *Pipeline) readFixtures(ctx context.Context, refs []string, clubCode string, logger *slog.Logger) ([]*record.MatchRecord, error) {
	reader := extract.NewReader(p.Provider, p.Config, logger)
	records := make([]*record.MatchRecord, 0, len(refs))

	for i, ref := range refs {
		ext, err := reader.ReadFixture(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("fixture %d/%d: %w", i+1, len(refs), err)
		}
		table, err := stats.ParseAndNormalize(ext.StatRows)
		if err != nil {
			return nil, fmt.Errorf("fixture %d/%d (%s): %w", i+1, len(refs), ref, err)
		}

		side := record.SideFor(clubCode, ext.HomeShortCode)
		meta := record.MatchMeta{DateText: ext.DateText, Venue: ext.Stadium}
		rec, err := record.Build(meta, side, ext.Score, table, clubCode, ref)
		if err != nil {
			return nil, fmt.Errorf("fixture %d/%d (%s): %w", i+1, len(refs), ref, err)
		}
		records = append(records, rec)
		logger.Debug("Record built", "match_id", rec.MatchID, "progress", fmt.Sprintf("%d/%d", i+1, len(refs)))
	}
	return records, nil
}
