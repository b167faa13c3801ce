// Package repo reads stored stat rows from Postgres. All queries run as
// prepared statements registered in internal/db; nothing here constructs
// query text from request input.
package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puckboard/puckboard/internal/stats"
)

// Store is the pgx-backed stat repository.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store over the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// SkaterRows returns one team's skater rows for a season and stored report
// category, alphabetical by name.
func (s *Store) SkaterRows(ctx context.Context, team string, season int, report stats.Report) ([]stats.SkaterRow, error) {
	rows, err := s.pool.Query(ctx, "skater_rows", team, season, string(report))
	if err != nil {
		return nil, fmt.Errorf("query skater rows: %w", err)
	}
	return scanSkaters(rows)
}

// SkaterRowsAll returns one team's skater rows across every stored season.
func (s *Store) SkaterRowsAll(ctx context.Context, team string, report stats.Report) ([]stats.SkaterRow, error) {
	rows, err := s.pool.Query(ctx, "skater_rows_all", team, string(report))
	if err != nil {
		return nil, fmt.Errorf("query skater rows: %w", err)
	}
	return scanSkaters(rows)
}

func scanSkaters(rows pgx.Rows) ([]stats.SkaterRow, error) {
	defer rows.Close()
	var out []stats.SkaterRow
	for rows.Next() {
		var r stats.SkaterRow
		if err := rows.Scan(&r.Name, &r.Season, &r.Games, &r.Goals, &r.Assists, &r.Points,
			&r.PlusMinus, &r.PenaltyMinutes, &r.PowerPlayGoals, &r.ShortHandedGoals,
			&r.GameWinningGoals, &r.Shots, &r.Hits, &r.Blocks); err != nil {
			return nil, fmt.Errorf("scan skater row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GoalieRows returns one team's goaltender rows for a season and stored
// report category, alphabetical by name.
func (s *Store) GoalieRows(ctx context.Context, team string, season int, report stats.Report) ([]stats.GoalieRow, error) {
	rows, err := s.pool.Query(ctx, "goalie_rows", team, season, string(report))
	if err != nil {
		return nil, fmt.Errorf("query goalie rows: %w", err)
	}
	return scanGoalies(rows)
}

// GoalieRowsAll returns one team's goaltender rows across every stored season.
func (s *Store) GoalieRowsAll(ctx context.Context, team string, report stats.Report) ([]stats.GoalieRow, error) {
	rows, err := s.pool.Query(ctx, "goalie_rows_all", team, string(report))
	if err != nil {
		return nil, fmt.Errorf("query goalie rows: %w", err)
	}
	return scanGoalies(rows)
}

func scanGoalies(rows pgx.Rows) ([]stats.GoalieRow, error) {
	defer rows.Close()
	var out []stats.GoalieRow
	for rows.Next() {
		var r stats.GoalieRow
		if err := rows.Scan(&r.Name, &r.Season, &r.Games, &r.Wins, &r.Losses, &r.Shutouts,
			&r.Saves, &r.GoalsAgainst, &r.GAA, &r.SavePercent); err != nil {
			return nil, fmt.Errorf("scan goalie row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Seasons returns the seasons that have any stored rows for a team and
// report category, ascending.
func (s *Store) Seasons(ctx context.Context, team string, report stats.Report) ([]int, error) {
	rows, err := s.pool.Query(ctx, "known_seasons", team, string(report))
	if err != nil {
		return nil, fmt.Errorf("query seasons: %w", err)
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var season int
		if err := rows.Scan(&season); err != nil {
			return nil, fmt.Errorf("scan season: %w", err)
		}
		out = append(out, season)
	}
	return out, rows.Err()
}

// TeamsWithData returns the IDs of teams that have any stored rows.
func (s *Store) TeamsWithData(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, "teams_with_data")
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan team id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// LastImportedAt returns the timestamp of the most recent import run, or
// nil when nothing has been imported yet.
func (s *Store) LastImportedAt(ctx context.Context) (*time.Time, error) {
	var ts *time.Time
	if err := s.pool.QueryRow(ctx, "last_import").Scan(&ts); err != nil {
		return nil, fmt.Errorf("query last import: %w", err)
	}
	return ts, nil
}

// RegularLeaderboard returns cumulative regular-season aggregates per team,
// sorted descending by the (points, wins) rank tuple.
func (s *Store) RegularLeaderboard(ctx context.Context) ([]stats.RegularRecord, error) {
	rows, err := s.pool.Query(ctx, "regular_leaderboard")
	if err != nil {
		return nil, fmt.Errorf("query regular leaderboard: %w", err)
	}
	defer rows.Close()
	var out []stats.RegularRecord
	for rows.Next() {
		var r stats.RegularRecord
		if err := rows.Scan(&r.TeamID, &r.Seasons, &r.Wins, &r.Losses, &r.Ties,
			&r.DivWins, &r.DivLosses, &r.DivTies, &r.Points); err != nil {
			return nil, fmt.Errorf("scan regular record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// PlayoffLeaderboard returns cumulative playoff-achievement aggregates per
// team, sorted descending by the full 5-tuple of counters.
func (s *Store) PlayoffLeaderboard(ctx context.Context) ([]stats.PlayoffRecord, error) {
	rows, err := s.pool.Query(ctx, "playoff_leaderboard")
	if err != nil {
		return nil, fmt.Errorf("query playoff leaderboard: %w", err)
	}
	defer rows.Close()
	var out []stats.PlayoffRecord
	for rows.Next() {
		var r stats.PlayoffRecord
		if err := rows.Scan(&r.TeamID, &r.Championships, &r.Finals, &r.Semifinals,
			&r.Appearances, &r.Wins); err != nil {
			return nil, fmt.Errorf("scan playoff record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
