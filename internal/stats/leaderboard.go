package stats

import "github.com/puckboard/puckboard/internal/league"

// Leaderboards are all-time tables: one row per franchise, cumulative
// across every season, zero-filled for teams with no stored data yet.
//
// Rows arrive pre-sorted by the repository query in descending rank order.
// TieRank is an adjacency check only: a row is flagged tied when its
// rank-defining tuple exactly equals the immediately preceding row's. That
// is rank-table semantics — ties are about rank position in the sorted
// sequence, not global equivalence classes — so a duplicate tuple reached
// after a strictly greater intervening row is deliberately not flagged.

// RegularRecord is a cumulative regular-season aggregate for one team, as
// produced by the repository.
type RegularRecord struct {
	TeamID    string
	Seasons   int
	Wins      int
	Losses    int
	Ties      int
	DivWins   int
	DivLosses int
	DivTies   int
	Points    int
}

// RegularRecordRow is one entry of the regular-season record leaderboard.
type RegularRecordRow struct {
	TeamID        string  `json:"teamId"`
	TeamName      string  `json:"teamName"`
	Seasons       int     `json:"seasons"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	DivWins       int     `json:"divWins"`
	DivLosses     int     `json:"divLosses"`
	DivTies       int     `json:"divTies"`
	Points        int     `json:"points"`
	WinPercent    float64 `json:"winPercent"`
	DivWinPercent float64 `json:"divWinPercent"`
	PointsPercent float64 `json:"pointsPercent"`
	TieRank       bool    `json:"tieRank"`
}

// BuildRegularLeaderboard left-joins the supplied pre-sorted aggregates
// onto the full roster. Teams absent from records get all-zero counters and
// rank after the supplied rows. Every ratio is 0 when its denominator is 0.
func BuildRegularLeaderboard(records []RegularRecord) []RegularRecordRow {
	rows := make([]RegularRecordRow, 0, league.Size())
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		seen[rec.TeamID] = true
		rows = append(rows, regularRow(rec))
	}
	for _, team := range league.Teams() {
		if !seen[team.ID] {
			rows = append(rows, regularRow(RegularRecord{TeamID: team.ID}))
		}
	}

	for i := range rows {
		rows[i].TieRank = i > 0 &&
			rows[i].Points == rows[i-1].Points &&
			rows[i].Wins == rows[i-1].Wins
	}
	return rows
}

func regularRow(rec RegularRecord) RegularRecordRow {
	row := RegularRecordRow{
		TeamID:    rec.TeamID,
		TeamName:  league.Name(rec.TeamID),
		Seasons:   rec.Seasons,
		Wins:      rec.Wins,
		Losses:    rec.Losses,
		Ties:      rec.Ties,
		DivWins:   rec.DivWins,
		DivLosses: rec.DivLosses,
		DivTies:   rec.DivTies,
		Points:    rec.Points,
	}
	if games := rec.Wins + rec.Losses + rec.Ties; games > 0 {
		row.WinPercent = round3(float64(rec.Wins) / float64(games))
		row.PointsPercent = round3(float64(rec.Points) / float64(2*games))
	}
	if divGames := rec.DivWins + rec.DivLosses + rec.DivTies; divGames > 0 {
		row.DivWinPercent = round3(float64(rec.DivWins) / float64(divGames))
	}
	return row
}

// PlayoffRecord is a cumulative playoff-achievement aggregate for one team,
// as produced by the repository.
type PlayoffRecord struct {
	TeamID        string
	Championships int
	Finals        int
	Semifinals    int
	Appearances   int
	Wins          int
}

// PlayoffRecordRow is one entry of the playoff achievements leaderboard.
type PlayoffRecordRow struct {
	TeamID        string `json:"teamId"`
	TeamName      string `json:"teamName"`
	Championships int    `json:"championships"`
	Finals        int    `json:"finals"`
	Semifinals    int    `json:"semifinals"`
	Appearances   int    `json:"appearances"`
	Wins          int    `json:"wins"`
	TieRank       bool   `json:"tieRank"`
}

// BuildPlayoffLeaderboard left-joins the supplied pre-sorted aggregates
// onto the full roster. The rank tuple is the full 5-tuple of counters.
func BuildPlayoffLeaderboard(records []PlayoffRecord) []PlayoffRecordRow {
	rows := make([]PlayoffRecordRow, 0, league.Size())
	seen := make(map[string]bool, len(records))

	for _, rec := range records {
		seen[rec.TeamID] = true
		rows = append(rows, playoffRow(rec))
	}
	for _, team := range league.Teams() {
		if !seen[team.ID] {
			rows = append(rows, playoffRow(PlayoffRecord{TeamID: team.ID}))
		}
	}

	for i := range rows {
		rows[i].TieRank = i > 0 &&
			rows[i].Championships == rows[i-1].Championships &&
			rows[i].Finals == rows[i-1].Finals &&
			rows[i].Semifinals == rows[i-1].Semifinals &&
			rows[i].Appearances == rows[i-1].Appearances &&
			rows[i].Wins == rows[i-1].Wins
	}
	return rows
}

func playoffRow(rec PlayoffRecord) PlayoffRecordRow {
	return PlayoffRecordRow{
		TeamID:        rec.TeamID,
		TeamName:      league.Name(rec.TeamID),
		Championships: rec.Championships,
		Finals:        rec.Finals,
		Semifinals:    rec.Semifinals,
		Appearances:   rec.Appearances,
		Wins:          rec.Wins,
	}
}
