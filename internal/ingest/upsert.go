package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puckboard/puckboard/internal/config"
	"github.com/puckboard/puckboard/internal/stats"
)

// replaceRows swaps in one file's rows transactionally: the previous slice
// for (team, season, report) is deleted first, so re-importing a corrected
// export is idempotent.
func replaceRows(ctx context.Context, pool *pgxpool.Pool, team string, season int, report stats.Report, parsed ParsedFile) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM `+config.SkaterStatsTable+` WHERE team_id = $1 AND season = $2 AND report = $3`,
		team, season, string(report)); err != nil {
		return fmt.Errorf("clear skaters: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM `+config.GoalieStatsTable+` WHERE team_id = $1 AND season = $2 AND report = $3`,
		team, season, string(report)); err != nil {
		return fmt.Errorf("clear goalies: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range parsed.Skaters {
		batch.Queue(`INSERT INTO `+config.SkaterStatsTable+` (
			team_id, season, report, name, games, goals, assists, points, plus_minus,
			penalty_minutes, power_play_goals, short_handed_goals, game_winning_goals,
			shots, hits, blocks
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
			team, season, string(report), r.Name, r.Games, r.Goals, r.Assists, r.Points,
			r.PlusMinus, r.PenaltyMinutes, r.PowerPlayGoals, r.ShortHandedGoals,
			r.GameWinningGoals, r.Shots, r.Hits, r.Blocks)
	}
	for _, r := range parsed.Goalies {
		batch.Queue(`INSERT INTO `+config.GoalieStatsTable+` (
			team_id, season, report, name, games, wins, losses, shutouts, saves,
			goals_against, gaa, save_percent
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
			team, season, string(report), r.Name, r.Games, r.Wins, r.Losses, r.Shutouts,
			r.Saves, r.GoalsAgainst, r.GAA, r.SavePercent)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}

	return tx.Commit(ctx)
}

// ImportRecords loads the shared team season-records CSV feeding the
// leaderboards. Malformed lines are counted and skipped.
func ImportRecords(ctx context.Context, pool *pgxpool.Pool, path string, logger *slog.Logger) Result {
	var result Result

	f, err := os.Open(path)
	if err != nil {
		result.AddErrorf("open %s: %v", path, err)
		return result
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		result.AddErrorf("read %s header: %v", path, err)
		return result
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.AddErrorf("%s line %d: %v", path, line, err)
			continue
		}
		if err := upsertRecord(ctx, pool, row, columns); err != nil {
			result.AddErrorf("%s line %d: %v", path, line, err)
			logger.Error("record import failed", "path", path, "line", line, "error", err)
			continue
		}
		result.RecordRows++
	}
	return result
}

var playoffFinishes = map[string]bool{
	"champion":     true,
	"finalist":     true,
	"semifinalist": true,
	"appearance":   true,
	"missed":       true,
}

func upsertRecord(ctx context.Context, pool *pgxpool.Pool, row []string, columns map[string]int) error {
	team := cell(row, columns, "team_id")
	season := cellInt(row, columns, "season")
	if team == "" || season == 0 {
		return fmt.Errorf("missing team_id or season")
	}
	finish := cell(row, columns, "playoff_finish")
	if finish == "" {
		finish = "missed"
	}
	if !playoffFinishes[finish] {
		return fmt.Errorf("unknown playoff_finish %q", finish)
	}

	_, err := pool.Exec(ctx, `
		INSERT INTO `+config.TeamRecordsTable+` (
			team_id, season, wins, losses, ties, div_wins, div_losses, div_ties,
			points, playoff_finish, playoff_wins
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (team_id, season) DO UPDATE SET
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			ties = EXCLUDED.ties,
			div_wins = EXCLUDED.div_wins,
			div_losses = EXCLUDED.div_losses,
			div_ties = EXCLUDED.div_ties,
			points = EXCLUDED.points,
			playoff_finish = EXCLUDED.playoff_finish,
			playoff_wins = EXCLUDED.playoff_wins`,
		team, season,
		cellInt(row, columns, "wins"), cellInt(row, columns, "losses"), cellInt(row, columns, "ties"),
		cellInt(row, columns, "div_wins"), cellInt(row, columns, "div_losses"), cellInt(row, columns, "div_ties"),
		cellInt(row, columns, "points"), finish, cellInt(row, columns, "playoff_wins"))
	return err
}

// RecordRun logs a completed import run; /api/updated reads the latest one.
func RecordRun(ctx context.Context, pool *pgxpool.Pool, result Result) error {
	_, err := pool.Exec(ctx, `
		INSERT INTO `+config.ImportRunsTable+` (imported_at, files, errors)
		VALUES (NOW(), $1, $2)`,
		result.FilesImported, len(result.Errors))
	if err != nil {
		return fmt.Errorf("record import run: %w", err)
	}
	return nil
}
