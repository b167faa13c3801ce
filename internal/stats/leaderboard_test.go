package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puckboard/puckboard/internal/league"
)

func TestBuildRegularLeaderboard_ZeroFillsRoster(t *testing.T) {
	rows := BuildRegularLeaderboard([]RegularRecord{
		{TeamID: "3", Seasons: 5, Wins: 40, Losses: 20, Ties: 4, Points: 84},
	})

	require.Len(t, rows, league.Size())
	assert.Equal(t, "3", rows[0].TeamID)
	assert.Equal(t, league.Name("3"), rows[0].TeamName)

	for _, row := range rows[1:] {
		assert.Zero(t, row.Wins)
		assert.Zero(t, row.Points)
		assert.Zero(t, row.Seasons)
		assert.Zero(t, row.WinPercent)
	}
}

func TestBuildRegularLeaderboard_Ratios(t *testing.T) {
	rows := BuildRegularLeaderboard([]RegularRecord{
		{TeamID: "1", Wins: 355, Losses: 79, Ties: 46, DivWins: 30, DivLosses: 10, DivTies: 0, Points: 756},
	})

	require.NotEmpty(t, rows)
	assert.InDelta(t, 0.740, rows[0].WinPercent, 1e-9)     // 355/480
	assert.InDelta(t, 0.750, rows[0].DivWinPercent, 1e-9)  // 30/40
	assert.InDelta(t, 0.788, rows[0].PointsPercent, 1e-9)  // 756/960
}

func TestBuildRegularLeaderboard_ZeroDenominators(t *testing.T) {
	rows := BuildRegularLeaderboard(nil)
	require.Len(t, rows, league.Size())
	for _, row := range rows {
		assert.Zero(t, row.WinPercent)
		assert.Zero(t, row.DivWinPercent)
		assert.Zero(t, row.PointsPercent)
	}
}

func TestBuildRegularLeaderboard_UnknownTeamFallsBackToID(t *testing.T) {
	rows := BuildRegularLeaderboard([]RegularRecord{{TeamID: "retired-99", Wins: 1}})
	assert.Equal(t, "retired-99", rows[0].TeamName)
}

func TestBuildRegularLeaderboard_TieRankAdjacency(t *testing.T) {
	rows := BuildRegularLeaderboard([]RegularRecord{
		{TeamID: "1", Points: 100, Wins: 50},
		{TeamID: "2", Points: 100, Wins: 50},
		{TeamID: "3", Points: 100, Wins: 49}, // differs in one component
		{TeamID: "4", Points: 90, Wins: 50},
	})

	assert.False(t, rows[0].TieRank, "first row is never tied")
	assert.True(t, rows[1].TieRank)
	assert.False(t, rows[2].TieRank)
	assert.False(t, rows[3].TieRank)
}

func TestBuildPlayoffLeaderboard_TieRankUsesFullTuple(t *testing.T) {
	rows := BuildPlayoffLeaderboard([]PlayoffRecord{
		{TeamID: "1", Championships: 3, Finals: 4, Semifinals: 5, Appearances: 8, Wins: 40},
		{TeamID: "2", Championships: 3, Finals: 4, Semifinals: 5, Appearances: 8, Wins: 40},
		{TeamID: "3", Championships: 3, Finals: 4, Semifinals: 5, Appearances: 8, Wins: 39},
	})

	assert.False(t, rows[0].TieRank)
	assert.True(t, rows[1].TieRank)
	assert.False(t, rows[2].TieRank)
}

func TestBuildPlayoffLeaderboard_ZeroFilledTeamsTieEachOther(t *testing.T) {
	rows := BuildPlayoffLeaderboard([]PlayoffRecord{
		{TeamID: "1", Championships: 1, Appearances: 3},
	})
	require.Len(t, rows, league.Size())

	// every zero-filled row after the first matches its predecessor's tuple
	for i := 2; i < len(rows); i++ {
		assert.True(t, rows[i].TieRank, "row %d", i)
	}
	assert.False(t, rows[1].TieRank, "all-zero row after a real row is not tied to it")
}
