// Package stats implements the scoring, merging, sorting, and leaderboard
// core. Everything in this package is pure computation over in-memory rows;
// storage and HTTP concerns live elsewhere.
package stats

import (
	"fmt"
	"math"
	"strconv"
)

// Report selects which stored report category a query reads. Both is
// synthetic: it is never persisted and is produced by merging the other two.
type Report string

const (
	ReportRegular  Report = "regular"
	ReportPlayoffs Report = "playoffs"
	ReportBoth     Report = "both"
)

// ParseReport validates a report query value. The empty string defaults to
// the regular season.
func ParseReport(s string) (Report, error) {
	switch s {
	case "", string(ReportRegular):
		return ReportRegular, nil
	case string(ReportPlayoffs):
		return ReportPlayoffs, nil
	case string(ReportBoth):
		return ReportBoth, nil
	}
	return "", fmt.Errorf("unknown report category %q", s)
}

// SkaterRow is one skater's counting stats for a team, season, and report.
// Score is always derived; it is recomputed for every query result set and
// never read from storage.
type SkaterRow struct {
	Name             string  `json:"name"`
	Season           int     `json:"season,omitempty"`
	Games            int     `json:"games"`
	Goals            int     `json:"goals"`
	Assists          int     `json:"assists"`
	Points           int     `json:"points"`
	PlusMinus        int     `json:"plusMinus"`
	PenaltyMinutes   int     `json:"penaltyMinutes"`
	PowerPlayGoals   int     `json:"powerPlayGoals"`
	ShortHandedGoals int     `json:"shortHandedGoals"`
	GameWinningGoals int     `json:"gameWinningGoals"`
	Shots            int     `json:"shots"`
	Hits             int     `json:"hits"`
	Blocks           int     `json:"blocks"`
	Score            float64 `json:"score"`
}

// GoalieRow is one goaltender's stats for a team, season, and report. GAA
// and SavePercent are rate statistics stored as decimal text; they are nil
// when the source data has no value and always nil on merged rows, where no
// honest value exists.
type GoalieRow struct {
	Name         string  `json:"name"`
	Season       int     `json:"season,omitempty"`
	Games        int     `json:"games"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	Shutouts     int     `json:"shutouts"`
	Saves        int     `json:"saves"`
	GoalsAgainst int     `json:"goalsAgainst"`
	GAA          *string `json:"gaa"`
	SavePercent  *string `json:"savePercent"`
	Score        float64 `json:"score"`
}

// rateValue parses a stored decimal-text rate. It reports false for absent,
// unparsable, non-finite, or negative values, so callers never act on a
// nonsense rate.
func rateValue(raw *string) (float64, bool) {
	if raw == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(*raw, 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, false
	}
	return v, true
}

// round2 rounds to two decimal places (scores).
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 rounds to three decimal places (leaderboard ratios).
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
