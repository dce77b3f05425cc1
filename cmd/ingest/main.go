// Command ingest is the Matchday data ingestion CLI.
//
// Usage:
//
//	matchday-ingest run --club Chelsea --season 2021/22
//	matchday-ingest run --club Leeds --season 1999/00 --force
//	matchday-ingest catalog list
//	matchday-ingest catalog check --club Chelsea --season 2021/22
//	matchday-ingest clubs
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matchday/matchday-data/internal/catalog"
	"github.com/matchday/matchday-data/internal/config"
	"github.com/matchday/matchday-data/internal/db"
	"github.com/matchday/matchday-data/internal/docview/chrome"
	"github.com/matchday/matchday-data/internal/ingest"
	"github.com/matchday/matchday-data/internal/season"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "matchday-ingest",
		Short: "Matchday match-statistics ingestion CLI",
	}

	root.AddCommand(runCmd())
	root.AddCommand(catalogCmd())
	root.AddCommand(clubsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// run command
// --------------------------------------------------------------------------

func runCmd() *cobra.Command {
	var (
		club        string
		seasonLabel string
		force       bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape and publish one club/season dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if club == "" || seasonLabel == "" {
				return fmt.Errorf("--club and --season are required")
			}
			return withDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				session, err := chrome.New(ctx, cfg, logger)
				if err != nil {
					return fmt.Errorf("start browser: %w", err)
				}
				defer session.Close()

				p := &ingest.Pipeline{
					Provider: session,
					Catalog:  catalog.NewPostgres(pool.Pool),
					Config:   cfg,
					Logger:   logger,
					Force:    force,
				}

				start := time.Now()
				result, err := p.Run(ctx, club, seasonLabel)
				if err != nil {
					return err
				}
				if result.Skipped {
					logger.Info("Already published, nothing to do", "key", result.Key)
					return nil
				}
				logger.Info("Ingestion finished",
					"key", result.Key,
					"fixtures", result.FixturesDiscovered,
					"rows", result.RowsPublished,
					"duration", time.Since(start).Round(time.Second))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&club, "club", "", "Official club name, e.g. Chelsea")
	cmd.Flags().StringVar(&seasonLabel, "season", "", "Season label, e.g. 2021/22")
	cmd.Flags().BoolVar(&force, "force", false, "Re-ingest even if the dataset is already published")
	return cmd
}

// --------------------------------------------------------------------------
// catalog command
// --------------------------------------------------------------------------

func catalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the published dataset catalog",
	}
	cmd.AddCommand(catalogListCmd())
	cmd.AddCommand(catalogCheckCmd())
	return cmd
}

func catalogListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all published dataset keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				keys, err := catalog.NewPostgres(pool.Pool).ListKeys(ctx)
				if err != nil {
					return err
				}
				if len(keys) == 0 {
					fmt.Println("catalog is empty")
					return nil
				}
				for _, key := range keys {
					fmt.Println(key)
				}
				return nil
			})
		},
	}
}

func catalogCheckCmd() *cobra.Command {
	var (
		club        string
		seasonLabel string
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether one club/season dataset is published",
		RunE: func(cmd *cobra.Command, args []string) error {
			if club == "" || seasonLabel == "" {
				return fmt.Errorf("--club and --season are required")
			}
			if _, err := config.ClubCode(club); err != nil {
				return err
			}
			se, err := season.Parse(seasonLabel)
			if err != nil {
				return err
			}
			return withDB(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				key := se.Key(club)
				present, err := catalog.NewPostgres(pool.Pool).Contains(ctx, key)
				if err != nil {
					return err
				}
				if present {
					fmt.Printf("%s: published\n", key)
				} else {
					fmt.Printf("%s: not published\n", key)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&club, "club", "", "Official club name")
	cmd.Flags().StringVar(&seasonLabel, "season", "", "Season label, e.g. 2021/22")
	return cmd
}

// --------------------------------------------------------------------------
// clubs command
// --------------------------------------------------------------------------

func clubsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clubs",
		Short: "List registered club names and short codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ClubNames() {
				fmt.Printf("%-16s %s\n", name, config.ClubRegistry[name])
			}
			return nil
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// withDB handles config loading, DB connection, and context cancellation.
func withDB(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
