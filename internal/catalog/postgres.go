package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/dataset"
)

// Postgres is the production Catalog backed by the dataset_catalog and
// season_dataset_rows tables.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres wraps a connection pool as a Catalog.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Contains(ctx context.Context, key string) (bool, error) {
	var one int
	err := p.pool.QueryRow(ctx, "catalog_contains", key).Scan(&one)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check catalog for %q: %w", key, err)
	}
	return true, nil
}

func (p *Postgres) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, "catalog_keys")
	if err != nil {
		return nil, fmt.Errorf("list catalog keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan catalog key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// Publish writes the dataset and its catalog entry in one transaction.
// Any prior rows under the same key are deleted first — publication is a
// full overwrite, never an upsert of individual rows.
func (p *Postgres) Publish(ctx context.Context, ds *dataset.SeasonDataset) error {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	// The catalog entry goes in first: dataset rows reference it.
	if _, err := tx.Exec(ctx, `
		INSERT INTO `+config.CatalogTable+` (key, club, season, row_count, published_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (key) DO UPDATE SET
			row_count = EXCLUDED.row_count,
			published_at = NOW()`,
		ds.Key, ds.Club, ds.Season, len(ds.Rows),
	); err != nil {
		return fmt.Errorf("upsert catalog entry %q: %w", ds.Key, err)
	}

	if _, err := tx.Exec(ctx,
		`DELETE FROM `+config.DatasetRowsTable+` WHERE dataset_key = $1`, ds.Key); err != nil {
		return fmt.Errorf("clear prior rows for %q: %w", ds.Key, err)
	}

	for _, row := range ds.Rows {
		if _, err := tx.Exec(ctx, `
			INSERT INTO `+config.DatasetRowsTable+` (
				dataset_key, match_id, record_id, date, location,
				home_or_away, result, goals_scored, goals_against,
				possession, shots_on_target, shots, touches, passes,
				tackles, clearances, corners, offsides, fouls_conceded,
				yellow_cards, red_cards
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
			ds.Key, row.MatchID, row.RecordID, row.Date, row.Location,
			string(row.Side), string(row.Result), row.GoalsFor, row.GoalsAgainst,
			row.Possession, row.ShotsOnTarget, row.Shots, row.Touches, row.Passes,
			row.Tackles, row.Clearances, row.Corners, row.Offsides, row.FoulsConceded,
			row.YellowCards, row.RedCards,
		); err != nil {
			return fmt.Errorf("insert row %s: %w", row.MatchID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit publish %q: %w", ds.Key, err)
	}
	return nil
}
