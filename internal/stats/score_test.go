package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreSkaters_EmptyListNoOp(t *testing.T) {
	assert.Empty(t, ScoreSkaters(nil))
	assert.Empty(t, ScoreSkaters([]SkaterRow{}))
}

func TestScoreSkaters_SingleContributingField(t *testing.T) {
	// Only goals is active; every other field is all-zero and skipped.
	// Composite still divides by the full table size.
	rows := []SkaterRow{
		{Name: "A", Goals: 4},
		{Name: "B", Goals: 2},
	}
	ScoreSkaters(rows)

	// goals weight 1.0, 11 fields in the table: 100/11 and 50/11.
	assert.InDelta(t, 9.09, rows[0].Score, 0.001)
	assert.InDelta(t, 4.55, rows[1].Score, 0.001)
}

func TestScoreSkaters_AllZeroFieldSkippedEntirely(t *testing.T) {
	rows := []SkaterRow{
		{Name: "A", Goals: 3},
		{Name: "B", Goals: 3},
	}
	ScoreSkaters(rows)
	// Equal on the only active field: identical scores, not dragged apart
	// by the inactive columns.
	assert.Equal(t, rows[0].Score, rows[1].Score)
	assert.Positive(t, rows[0].Score)
}

func TestScoreSkaters_PlusMinusBidirectional(t *testing.T) {
	rows := []SkaterRow{
		{Name: "A", PlusMinus: 5},
		{Name: "B", PlusMinus: -5},
	}
	ScoreSkaters(rows)

	// plusMinus weight 0.75: best gets 75/11, worst gets 0.
	assert.InDelta(t, 6.82, rows[0].Score, 0.001)
	assert.Zero(t, rows[1].Score)
}

func TestScoreSkaters_PlusMinusSkippedWhenFlat(t *testing.T) {
	rows := []SkaterRow{
		{Name: "A", PlusMinus: -3, Goals: 1},
		{Name: "B", PlusMinus: -3, Goals: 1},
	}
	ScoreSkaters(rows)
	// max == min: the field contributes nothing rather than zero.
	assert.Equal(t, rows[0].Score, rows[1].Score)
}

func TestScoreSkaters_NegativeCountsClampToZero(t *testing.T) {
	rows := []SkaterRow{
		{Name: "A", Goals: 2},
		{Name: "B", Goals: -4},
	}
	ScoreSkaters(rows)
	assert.Zero(t, rows[1].Score)
	assert.Positive(t, rows[0].Score)
}

func TestScoreSkaters_ScoresWithinRangeAndRounded(t *testing.T) {
	rows := []SkaterRow{
		{Name: "A", Games: 82, Goals: 41, Assists: 52, Points: 93, PlusMinus: 21,
			PenaltyMinutes: 34, PowerPlayGoals: 12, ShortHandedGoals: 2,
			GameWinningGoals: 7, Shots: 301, Hits: 55, Blocks: 40},
		{Name: "B", Games: 80, Goals: 17, Assists: 23, Points: 40, PlusMinus: -11,
			PenaltyMinutes: 70, PowerPlayGoals: 4, Shots: 150, Hits: 130, Blocks: 90},
		{Name: "C"},
	}
	ScoreSkaters(rows)
	for _, r := range rows {
		assert.GreaterOrEqual(t, r.Score, 0.0)
		assert.LessOrEqual(t, r.Score, 100.0)
		// rounded to exactly two decimals
		assert.Equal(t, round2(r.Score), r.Score)
	}
}

func TestScoreGoalies_EmptyListNoOp(t *testing.T) {
	assert.Empty(t, ScoreGoalies(nil))
}

func TestScoreGoalies_RateFieldsWidenDivisorOnlyWhenPresent(t *testing.T) {
	rows := []GoalieRow{
		{Name: "A", Games: 20, Wins: 6, Shutouts: 2, Saves: 300,
			GAA: strPtr("2.00"), SavePercent: strPtr(".920")},
		{Name: "B", Games: 10, Wins: 3, Saves: 150,
			GAA: strPtr("3.00"), SavePercent: strPtr(".880")},
	}
	ScoreGoalies(rows)

	// A is best everywhere: counting part 400, save% 150, GAA 100, over a
	// divisor of 6 — clamped to 100.
	assert.Equal(t, 100.0, rows[0].Score)
	// B: counting 150, save% (0.03/0.07)*100*1.5, GAA one full
	// max-difference ratio worse than best so 0; divisor 6.
	assert.InDelta(t, 35.71, rows[1].Score, 0.01)
}

func TestScoreGoalies_NoRateDataKeepsBaseDivisor(t *testing.T) {
	rows := []GoalieRow{{Name: "A", Wins: 2}}
	ScoreGoalies(rows)
	// Only wins contributes (weight 1.5), divisor stays at the 4 counting
	// fields: 150/4.
	assert.InDelta(t, 37.5, rows[0].Score, 0.001)
}

func TestScoreGoalies_SavePercentBelowBaselineScoresZero(t *testing.T) {
	rows := []GoalieRow{
		{Name: "A", SavePercent: strPtr(".930")},
		{Name: "B", SavePercent: strPtr(".820")},
	}
	ScoreGoalies(rows)

	// Both rows carry the rate so both divisors widen to 5; B's value sits
	// below the baseline and contributes 0.
	assert.InDelta(t, 30.0, rows[0].Score, 0.001) // 100*1.5/5
	assert.Zero(t, rows[1].Score)
}

func TestScoreGoalies_UnparsableRateTreatedAsAbsent(t *testing.T) {
	bad := "n/a"
	rows := []GoalieRow{
		{Name: "A", Wins: 4, SavePercent: strPtr(".910")},
		{Name: "B", Wins: 4, SavePercent: &bad},
	}
	ScoreGoalies(rows)
	require.Len(t, rows, 2)
	// B's rate is ignored: same wins contribution, no rate contribution,
	// and no widened divisor.
	assert.InDelta(t, 37.5, rows[1].Score, 0.001)
}

func TestScoreGoalies_GAABestIsLowest(t *testing.T) {
	rows := []GoalieRow{
		{Name: "A", GAA: strPtr("2.00")},
		{Name: "B", GAA: strPtr("2.50")},
		{Name: "C", GAA: strPtr("3.50")},
	}
	ScoreGoalies(rows)

	// divisor 5 (4 counting + gaa). A: 100/5. B: halfway through the
	// max-difference ratio, 50/5. C: beyond it, 0.
	assert.InDelta(t, 20.0, rows[0].Score, 0.001)
	assert.InDelta(t, 10.0, rows[1].Score, 0.001)
	assert.Zero(t, rows[2].Score)
}
