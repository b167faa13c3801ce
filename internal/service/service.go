// Package service orchestrates stat queries: resolve the team, validate
// report and season before touching storage, fetch rows, merge when the
// synthetic "both" category is requested, then score and sort.
package service

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/puckboard/puckboard/internal/league"
	"github.com/puckboard/puckboard/internal/stats"
)

// Repository is the narrow storage interface the service consumes. The pgx
// implementation lives in internal/repo; tests substitute a stub.
type Repository interface {
	SkaterRows(ctx context.Context, team string, season int, report stats.Report) ([]stats.SkaterRow, error)
	SkaterRowsAll(ctx context.Context, team string, report stats.Report) ([]stats.SkaterRow, error)
	GoalieRows(ctx context.Context, team string, season int, report stats.Report) ([]stats.GoalieRow, error)
	GoalieRowsAll(ctx context.Context, team string, report stats.Report) ([]stats.GoalieRow, error)
	Seasons(ctx context.Context, team string, report stats.Report) ([]int, error)
	TeamsWithData(ctx context.Context) ([]string, error)
	LastImportedAt(ctx context.Context) (*time.Time, error)
	RegularLeaderboard(ctx context.Context) ([]stats.RegularRecord, error)
	PlayoffLeaderboard(ctx context.Context) ([]stats.PlayoffRecord, error)
}

// Error is a service failure carrying the HTTP status the boundary should
// answer with. A zero status falls back to 500 at the boundary.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func badRequest(format string, args ...interface{}) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Service answers all read queries.
type Service struct {
	repo        Repository
	defaultTeam string
}

// New creates a Service.
func New(repo Repository, defaultTeam string) *Service {
	return &Service{repo: repo, defaultTeam: defaultTeam}
}

// Query carries the common stat-query parameters as they arrive from the
// URL, before validation.
type Query struct {
	Team   string // team ID; empty resolves to the default team
	Report string // regular | playoffs | both; empty means regular
	Season int    // 0 selects the latest known season
	From   int    // all-time views: include seasons >= From; 0 means all
	Sort   string // explicit sort field; empty applies the default ordering
}

// resolveTeam maps an optional team parameter onto the roster, falling back
// to the default team for absent or unknown IDs.
func (s *Service) resolveTeam(team string) string {
	if team != "" && league.Known(team) {
		return team
	}
	return s.defaultTeam
}

// resolveSeason validates an explicit season against the known set, or
// picks the latest known season when none was given. The known set is
// always derived from the regular-season report: playoffs-only seasons are
// not separately enumerable.
func (s *Service) resolveSeason(ctx context.Context, team string, season int) (int, error) {
	known, err := s.repo.Seasons(ctx, team, stats.ReportRegular)
	if err != nil {
		return 0, err
	}
	if len(known) == 0 {
		return 0, badRequest("no seasons on record for team %s", team)
	}
	if season == 0 {
		return known[len(known)-1], nil
	}
	for _, k := range known {
		if k == season {
			return season, nil
		}
	}
	return 0, badRequest("unknown season %d", season)
}

// Skaters returns scored, sorted skater rows for one team and season.
func (s *Service) Skaters(ctx context.Context, q Query) ([]stats.SkaterRow, error) {
	report, err := stats.ParseReport(q.Report)
	if err != nil {
		return nil, badRequest("%s", err)
	}
	team := s.resolveTeam(q.Team)
	season, err := s.resolveSeason(ctx, team, q.Season)
	if err != nil {
		return nil, err
	}

	var rows []stats.SkaterRow
	if report == stats.ReportBoth {
		regular, err := s.repo.SkaterRows(ctx, team, season, stats.ReportRegular)
		if err != nil {
			return nil, err
		}
		playoffs, err := s.repo.SkaterRows(ctx, team, season, stats.ReportPlayoffs)
		if err != nil {
			return nil, err
		}
		rows = stats.MergeSkaters(regular, playoffs)
	} else {
		if rows, err = s.repo.SkaterRows(ctx, team, season, report); err != nil {
			return nil, err
		}
	}

	stats.ScoreSkaters(rows)
	stats.SortSkaters(rows, q.Sort)
	return emptyNotNilSkaters(rows), nil
}

// SkatersAllTime returns scored, sorted cumulative skater rows across all
// stored seasons (optionally from a starting season).
func (s *Service) SkatersAllTime(ctx context.Context, q Query) ([]stats.SkaterRow, error) {
	report, err := stats.ParseReport(q.Report)
	if err != nil {
		return nil, badRequest("%s", err)
	}
	team := s.resolveTeam(q.Team)

	var rows []stats.SkaterRow
	if report == stats.ReportBoth {
		regular, err := s.repo.SkaterRowsAll(ctx, team, stats.ReportRegular)
		if err != nil {
			return nil, err
		}
		playoffs, err := s.repo.SkaterRowsAll(ctx, team, stats.ReportPlayoffs)
		if err != nil {
			return nil, err
		}
		rows = append(regular, playoffs...)
	} else {
		if rows, err = s.repo.SkaterRowsAll(ctx, team, report); err != nil {
			return nil, err
		}
	}

	rows = filterSkatersFrom(rows, q.From)
	rows = stats.CombineSkaterSeasons(rows)
	stats.ScoreSkaters(rows)
	stats.SortSkaters(rows, q.Sort)
	return emptyNotNilSkaters(rows), nil
}

// Goalies returns scored, sorted goaltender rows for one team and season.
func (s *Service) Goalies(ctx context.Context, q Query) ([]stats.GoalieRow, error) {
	report, err := stats.ParseReport(q.Report)
	if err != nil {
		return nil, badRequest("%s", err)
	}
	team := s.resolveTeam(q.Team)
	season, err := s.resolveSeason(ctx, team, q.Season)
	if err != nil {
		return nil, err
	}

	var rows []stats.GoalieRow
	if report == stats.ReportBoth {
		regular, err := s.repo.GoalieRows(ctx, team, season, stats.ReportRegular)
		if err != nil {
			return nil, err
		}
		playoffs, err := s.repo.GoalieRows(ctx, team, season, stats.ReportPlayoffs)
		if err != nil {
			return nil, err
		}
		rows = stats.MergeGoalies(regular, playoffs)
	} else {
		if rows, err = s.repo.GoalieRows(ctx, team, season, report); err != nil {
			return nil, err
		}
	}

	stats.ScoreGoalies(rows)
	stats.SortGoalies(rows, q.Sort)
	return emptyNotNilGoalies(rows), nil
}

// GoaliesAllTime returns scored, sorted cumulative goaltender rows across
// all stored seasons (optionally from a starting season).
func (s *Service) GoaliesAllTime(ctx context.Context, q Query) ([]stats.GoalieRow, error) {
	report, err := stats.ParseReport(q.Report)
	if err != nil {
		return nil, badRequest("%s", err)
	}
	team := s.resolveTeam(q.Team)

	var rows []stats.GoalieRow
	if report == stats.ReportBoth {
		regular, err := s.repo.GoalieRowsAll(ctx, team, stats.ReportRegular)
		if err != nil {
			return nil, err
		}
		playoffs, err := s.repo.GoalieRowsAll(ctx, team, stats.ReportPlayoffs)
		if err != nil {
			return nil, err
		}
		rows = append(regular, playoffs...)
	} else {
		if rows, err = s.repo.GoalieRowsAll(ctx, team, report); err != nil {
			return nil, err
		}
	}

	rows = filterGoaliesFrom(rows, q.From)
	rows = stats.CombineGoalieSeasons(rows)
	stats.ScoreGoalies(rows)
	stats.SortGoalies(rows, q.Sort)
	return emptyNotNilGoalies(rows), nil
}

// Seasons returns the known seasons for a team and report category. The
// synthetic "both" category enumerates like the regular season.
func (s *Service) Seasons(ctx context.Context, q Query) ([]int, error) {
	report, err := stats.ParseReport(q.Report)
	if err != nil {
		return nil, badRequest("%s", err)
	}
	if report == stats.ReportBoth {
		report = stats.ReportRegular
	}
	team := s.resolveTeam(q.Team)
	seasons, err := s.repo.Seasons(ctx, team, report)
	if err != nil {
		return nil, err
	}
	if seasons == nil {
		seasons = []int{}
	}
	return seasons, nil
}

// TeamEntry is one roster entry with a data-availability flag.
type TeamEntry struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	HasData bool   `json:"hasData"`
}

// Teams returns the full static roster annotated with whether each team has
// any stored rows.
func (s *Service) Teams(ctx context.Context) ([]TeamEntry, error) {
	withData, err := s.repo.TeamsWithData(ctx)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(withData))
	for _, id := range withData {
		have[id] = true
	}
	teams := league.Teams()
	out := make([]TeamEntry, 0, len(teams))
	for _, t := range teams {
		out = append(out, TeamEntry{ID: t.ID, Name: t.Name, HasData: have[t.ID]})
	}
	return out, nil
}

// Freshness reports when data was last imported.
type Freshness struct {
	UpdatedAt *time.Time `json:"updatedAt"`
}

// Updated returns the data-freshness timestamp, nil before the first import.
func (s *Service) Updated(ctx context.Context) (Freshness, error) {
	ts, err := s.repo.LastImportedAt(ctx)
	if err != nil {
		return Freshness{}, err
	}
	return Freshness{UpdatedAt: ts}, nil
}

// RegularLeaderboard builds the all-time regular-season record table.
func (s *Service) RegularLeaderboard(ctx context.Context) ([]stats.RegularRecordRow, error) {
	records, err := s.repo.RegularLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return stats.BuildRegularLeaderboard(records), nil
}

// PlayoffLeaderboard builds the all-time playoff achievements table.
func (s *Service) PlayoffLeaderboard(ctx context.Context) ([]stats.PlayoffRecordRow, error) {
	records, err := s.repo.PlayoffLeaderboard(ctx)
	if err != nil {
		return nil, err
	}
	return stats.BuildPlayoffLeaderboard(records), nil
}

// --------------------------------------------------------------------------
// Helpers
// --------------------------------------------------------------------------

func filterSkatersFrom(rows []stats.SkaterRow, from int) []stats.SkaterRow {
	if from <= 0 {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Season >= from {
			out = append(out, r)
		}
	}
	return out
}

func filterGoaliesFrom(rows []stats.GoalieRow, from int) []stats.GoalieRow {
	if from <= 0 {
		return rows
	}
	out := rows[:0]
	for _, r := range rows {
		if r.Season >= from {
			out = append(out, r)
		}
	}
	return out
}

// JSON responses serve [] rather than null for empty result sets.
func emptyNotNilSkaters(rows []stats.SkaterRow) []stats.SkaterRow {
	if rows == nil {
		return []stats.SkaterRow{}
	}
	return rows
}

func emptyNotNilGoalies(rows []stats.GoalieRow) []stats.GoalieRow {
	if rows == nil {
		return []stats.GoalieRow{}
	}
	return rows
}
