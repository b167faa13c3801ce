// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puckboard/puckboard/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers every statement the API reads with.
// All API access is read-only and parameterized; ingest writes go through
// ad-hoc statements in internal/ingest.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Per-season stat rows
		"skater_rows": `SELECT name, season, games, goals, assists, points, plus_minus,
			penalty_minutes, power_play_goals, short_handed_goals, game_winning_goals,
			shots, hits, blocks
			FROM ` + config.SkaterStatsTable + `
			WHERE team_id = $1 AND season = $2 AND report = $3
			ORDER BY name`,
		"goalie_rows": `SELECT name, season, games, wins, losses, shutouts, saves,
			goals_against, gaa, save_percent
			FROM ` + config.GoalieStatsTable + `
			WHERE team_id = $1 AND season = $2 AND report = $3
			ORDER BY name`,

		// All seasons for a team (multi-season combined views)
		"skater_rows_all": `SELECT name, season, games, goals, assists, points, plus_minus,
			penalty_minutes, power_play_goals, short_handed_goals, game_winning_goals,
			shots, hits, blocks
			FROM ` + config.SkaterStatsTable + `
			WHERE team_id = $1 AND report = $2
			ORDER BY season, name`,
		"goalie_rows_all": `SELECT name, season, games, wins, losses, shutouts, saves,
			goals_against, gaa, save_percent
			FROM ` + config.GoalieStatsTable + `
			WHERE team_id = $1 AND report = $2
			ORDER BY season, name`,

		// Season enumeration
		"known_seasons": `SELECT DISTINCT season FROM ` + config.SkaterStatsTable + `
			WHERE team_id = $1 AND report = $2
			UNION
			SELECT DISTINCT season FROM ` + config.GoalieStatsTable + `
			WHERE team_id = $1 AND report = $2
			ORDER BY 1`,

		// Teams that have any stored data at all
		"teams_with_data": `SELECT DISTINCT team_id FROM ` + config.SkaterStatsTable + `
			UNION SELECT DISTINCT team_id FROM ` + config.GoalieStatsTable + `
			UNION SELECT DISTINCT team_id FROM ` + config.TeamRecordsTable + `
			ORDER BY 1`,

		// Data freshness
		"last_import": `SELECT MAX(imported_at) FROM ` + config.ImportRunsTable,

		// Leaderboard aggregates, pre-sorted by their rank tuples
		"regular_leaderboard": `SELECT team_id, COUNT(*),
			COALESCE(SUM(wins), 0), COALESCE(SUM(losses), 0), COALESCE(SUM(ties), 0),
			COALESCE(SUM(div_wins), 0), COALESCE(SUM(div_losses), 0), COALESCE(SUM(div_ties), 0),
			COALESCE(SUM(points), 0)
			FROM ` + config.TeamRecordsTable + `
			GROUP BY team_id
			ORDER BY COALESCE(SUM(points), 0) DESC, COALESCE(SUM(wins), 0) DESC`,
		"playoff_leaderboard": `SELECT team_id,
			COUNT(*) FILTER (WHERE playoff_finish = 'champion'),
			COUNT(*) FILTER (WHERE playoff_finish = 'finalist'),
			COUNT(*) FILTER (WHERE playoff_finish = 'semifinalist'),
			COUNT(*) FILTER (WHERE playoff_finish <> 'missed'),
			COALESCE(SUM(playoff_wins), 0)
			FROM ` + config.TeamRecordsTable + `
			GROUP BY team_id
			ORDER BY 2 DESC, 3 DESC, 4 DESC, 5 DESC, 6 DESC`,
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
