// Command ingest is the Puckboard CSV import CLI.
//
// Usage:
//
//	puckboard-ingest import --dir csv
//	puckboard-ingest import team 3 --dir csv
//	puckboard-ingest import records --file csv/records.csv
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/puckboard/puckboard/internal/config"
	"github.com/puckboard/puckboard/internal/db"
	"github.com/puckboard/puckboard/internal/ingest"
	"github.com/puckboard/puckboard/internal/league"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "puckboard-ingest",
		Short: "Puckboard CSV import CLI",
	}

	root.AddCommand(importCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import all Fantrax export files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(func(ctx context.Context, pool *db.Pool) ingest.Result {
				return ingest.ImportAll(ctx, pool.Pool, dir, logger)
			})
		},
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "csv", "CSV export root directory")
	cmd.AddCommand(importTeamCmd(&dir))
	cmd.AddCommand(importRecordsCmd())
	return cmd
}

func importTeamCmd(dir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "team <id>",
		Short: "Import one team's export files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			team := args[0]
			if !league.Known(team) {
				return fmt.Errorf("unknown team %q", team)
			}
			return runImport(func(ctx context.Context, pool *db.Pool) ingest.Result {
				return ingest.ImportTeamDir(ctx, pool.Pool, team, filepath.Join(*dir, team), logger)
			})
		},
	}
}

func importRecordsCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "records",
		Short: "Import the team season-records CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(func(ctx context.Context, pool *db.Pool) ingest.Result {
				return ingest.ImportRecords(ctx, pool.Pool, file, logger)
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "csv/records.csv", "records CSV path")
	return cmd
}

func runImport(fn func(ctx context.Context, pool *db.Pool) ingest.Result) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	start := time.Now()
	result := fn(ctx, pool)
	logger.Info("import finished",
		"duration", time.Since(start).Round(time.Second),
		"summary", result.Summary())
	for _, e := range result.Errors {
		logger.Error("import error", "error", e)
	}

	if err := ingest.RecordRun(ctx, pool.Pool, result); err != nil {
		return err
	}
	return nil
}
