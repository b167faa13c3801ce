package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puckboard/puckboard/internal/league"
	"github.com/puckboard/puckboard/internal/stats"
)

func strPtr(s string) *string { return &s }

// stubRepo serves fixture rows and records what was asked of it.
type stubRepo struct {
	seasons        []int
	skaters        map[stats.Report][]stats.SkaterRow
	goalies        map[stats.Report][]stats.GoalieRow
	teamsWithData  []string
	lastImported   *time.Time
	regularRecords []stats.RegularRecord
	playoffRecords []stats.PlayoffRecord

	requestedTeam   string
	requestedSeason int
}

func (s *stubRepo) SkaterRows(_ context.Context, team string, season int, report stats.Report) ([]stats.SkaterRow, error) {
	s.requestedTeam, s.requestedSeason = team, season
	return s.skaters[report], nil
}

func (s *stubRepo) SkaterRowsAll(_ context.Context, team string, report stats.Report) ([]stats.SkaterRow, error) {
	s.requestedTeam = team
	return s.skaters[report], nil
}

func (s *stubRepo) GoalieRows(_ context.Context, team string, season int, report stats.Report) ([]stats.GoalieRow, error) {
	s.requestedTeam, s.requestedSeason = team, season
	return s.goalies[report], nil
}

func (s *stubRepo) GoalieRowsAll(_ context.Context, team string, report stats.Report) ([]stats.GoalieRow, error) {
	s.requestedTeam = team
	return s.goalies[report], nil
}

func (s *stubRepo) Seasons(_ context.Context, team string, report stats.Report) ([]int, error) {
	return s.seasons, nil
}

func (s *stubRepo) TeamsWithData(_ context.Context) ([]string, error) {
	return s.teamsWithData, nil
}

func (s *stubRepo) LastImportedAt(_ context.Context) (*time.Time, error) {
	return s.lastImported, nil
}

func (s *stubRepo) RegularLeaderboard(_ context.Context) ([]stats.RegularRecord, error) {
	return s.regularRecords, nil
}

func (s *stubRepo) PlayoffLeaderboard(_ context.Context) ([]stats.PlayoffRecord, error) {
	return s.playoffRecords, nil
}

func newTestService(repo *stubRepo) *Service {
	return New(repo, "1")
}

func TestSkaters_UnknownReportIs400(t *testing.T) {
	svc := newTestService(&stubRepo{seasons: []int{2023}})

	_, err := svc.Skaters(context.Background(), Query{Report: "preseason"})
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
}

func TestSkaters_UnknownSeasonIs400(t *testing.T) {
	svc := newTestService(&stubRepo{seasons: []int{2022, 2023}})

	_, err := svc.Skaters(context.Background(), Query{Season: 1999})
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadRequest, se.Status)
	assert.Equal(t, "unknown season 1999", se.Message)
}

func TestSkaters_DefaultsToLatestSeason(t *testing.T) {
	repo := &stubRepo{
		seasons: []int{2021, 2022, 2023},
		skaters: map[stats.Report][]stats.SkaterRow{
			stats.ReportRegular: {{Name: "A", Season: 2023, Goals: 2}},
		},
	}
	svc := newTestService(repo)

	rows, err := svc.Skaters(context.Background(), Query{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 2023, repo.requestedSeason)
	assert.Positive(t, rows[0].Score, "rows come back scored")
}

func TestSkaters_UnknownTeamFallsBackToDefault(t *testing.T) {
	repo := &stubRepo{seasons: []int{2023}}
	svc := newTestService(repo)

	_, err := svc.Skaters(context.Background(), Query{Team: "not-a-team"})
	require.NoError(t, err)
	assert.Equal(t, "1", repo.requestedTeam)
}

func TestSkaters_BothMergesBeforeScoring(t *testing.T) {
	repo := &stubRepo{
		seasons: []int{2023},
		skaters: map[stats.Report][]stats.SkaterRow{
			stats.ReportRegular:  {{Name: "A", Season: 2023, Games: 12, Points: 6}},
			stats.ReportPlayoffs: {{Name: "A", Season: 2023, Games: 4, Points: 3}},
		},
	}
	svc := newTestService(repo)

	rows, err := svc.Skaters(context.Background(), Query{Report: "both"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 16, rows[0].Games)
	assert.Equal(t, 9, rows[0].Points)
}

func TestGoalies_BothDropsRates(t *testing.T) {
	repo := &stubRepo{
		seasons: []int{2023},
		goalies: map[stats.Report][]stats.GoalieRow{
			stats.ReportRegular: {{Name: "G", Season: 2023, Wins: 6,
				GAA: strPtr("2.20"), SavePercent: strPtr(".915")}},
			stats.ReportPlayoffs: {{Name: "G", Season: 2023, Wins: 2,
				GAA: strPtr("2.50"), SavePercent: strPtr(".905")}},
		},
	}
	svc := newTestService(repo)

	rows, err := svc.Goalies(context.Background(), Query{Report: "both"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 8, rows[0].Wins)
	assert.Nil(t, rows[0].GAA)
	assert.Nil(t, rows[0].SavePercent)
}

func TestSkatersAllTime_CombinesAndFilters(t *testing.T) {
	repo := &stubRepo{
		seasons: []int{2021, 2022, 2023},
		skaters: map[stats.Report][]stats.SkaterRow{
			stats.ReportRegular: {
				{Name: "A", Season: 2021, Points: 10},
				{Name: "A", Season: 2022, Points: 20},
				{Name: "A", Season: 2023, Points: 30},
			},
		},
	}
	svc := newTestService(repo)

	rows, err := svc.SkatersAllTime(context.Background(), Query{From: 2022})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 50, rows[0].Points)
	assert.Zero(t, rows[0].Season)
}

func TestSkaters_EmptyResultIsNotNil(t *testing.T) {
	svc := newTestService(&stubRepo{seasons: []int{2023}})

	rows, err := svc.Skaters(context.Background(), Query{})
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestSeasons_BothEnumeratesLikeRegular(t *testing.T) {
	svc := newTestService(&stubRepo{seasons: []int{2021, 2022}})

	seasons, err := svc.Seasons(context.Background(), Query{Report: "both"})
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022}, seasons)
}

func TestTeams_AnnotatesDataAvailability(t *testing.T) {
	svc := newTestService(&stubRepo{teamsWithData: []string{"1", "3"}})

	teams, err := svc.Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, league.Size())

	byID := make(map[string]TeamEntry, len(teams))
	for _, te := range teams {
		byID[te.ID] = te
	}
	assert.True(t, byID["1"].HasData)
	assert.True(t, byID["3"].HasData)
	assert.False(t, byID["2"].HasData)
}

func TestUpdated_NilBeforeFirstImport(t *testing.T) {
	svc := newTestService(&stubRepo{})

	fresh, err := svc.Updated(context.Background())
	require.NoError(t, err)
	assert.Nil(t, fresh.UpdatedAt)
}

func TestRegularLeaderboard_FullRoster(t *testing.T) {
	svc := newTestService(&stubRepo{
		regularRecords: []stats.RegularRecord{{TeamID: "2", Wins: 10, Points: 22}},
	})

	rows, err := svc.RegularLeaderboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, league.Size())
	assert.Equal(t, "2", rows[0].TeamID)
}
