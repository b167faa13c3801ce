package stats

// Report merging builds the synthetic "both" category: regular-season and
// playoff rows for the same player and season collapse into one row whose
// counting stats are the arithmetic sum. Goaltender rates are dropped in
// the process; summing or averaging GAA and save% without weighting by
// appearances would misrepresent performance, so merged rows surface no
// rate value rather than a wrong one.
//
// Merging must happen before scoring: the scoring engine normalizes over
// the final result set, and merging already-scored lists would mix two
// different baselines.

type mergeKey struct {
	name   string
	season int
}

// MergeSkaters combines regular and playoff skater rows per (name, season).
// A player present in only one category is carried through unchanged.
// Output preserves the order of the regular list, then playoff-only rows.
func MergeSkaters(regular, playoffs []SkaterRow) []SkaterRow {
	merged := make([]SkaterRow, 0, len(regular)+len(playoffs))
	index := make(map[mergeKey]int, len(regular))

	for _, row := range regular {
		index[mergeKey{row.Name, row.Season}] = len(merged)
		merged = append(merged, row)
	}
	for _, row := range playoffs {
		key := mergeKey{row.Name, row.Season}
		i, ok := index[key]
		if !ok {
			merged = append(merged, row)
			continue
		}
		addSkater(&merged[i], row)
	}
	return merged
}

func addSkater(dst *SkaterRow, src SkaterRow) {
	dst.Games += src.Games
	dst.Goals += src.Goals
	dst.Assists += src.Assists
	dst.Points += src.Points
	dst.PlusMinus += src.PlusMinus
	dst.PenaltyMinutes += src.PenaltyMinutes
	dst.PowerPlayGoals += src.PowerPlayGoals
	dst.ShortHandedGoals += src.ShortHandedGoals
	dst.GameWinningGoals += src.GameWinningGoals
	dst.Shots += src.Shots
	dst.Hits += src.Hits
	dst.Blocks += src.Blocks
}

// MergeGoalies combines regular and playoff goaltender rows per
// (name, season). Rate fields are cleared on every output row, including
// rows present in only one category, so the "both" view is uniform.
func MergeGoalies(regular, playoffs []GoalieRow) []GoalieRow {
	merged := make([]GoalieRow, 0, len(regular)+len(playoffs))
	index := make(map[mergeKey]int, len(regular))

	for _, row := range regular {
		row.GAA = nil
		row.SavePercent = nil
		index[mergeKey{row.Name, row.Season}] = len(merged)
		merged = append(merged, row)
	}
	for _, row := range playoffs {
		key := mergeKey{row.Name, row.Season}
		i, ok := index[key]
		if !ok {
			row.GAA = nil
			row.SavePercent = nil
			merged = append(merged, row)
			continue
		}
		addGoalie(&merged[i], row)
	}
	return merged
}

func addGoalie(dst *GoalieRow, src GoalieRow) {
	dst.Games += src.Games
	dst.Wins += src.Wins
	dst.Losses += src.Losses
	dst.Shutouts += src.Shutouts
	dst.Saves += src.Saves
	dst.GoalsAgainst += src.GoalsAgainst
}

// CombineSkaterSeasons collapses multi-season rows into one cumulative row
// per player. The season tag is cleared on combined rows. Input order of
// first appearance is preserved.
func CombineSkaterSeasons(rows []SkaterRow) []SkaterRow {
	combined := make([]SkaterRow, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		if i, ok := index[row.Name]; ok {
			addSkater(&combined[i], row)
			continue
		}
		row.Season = 0
		index[row.Name] = len(combined)
		combined = append(combined, row)
	}
	return combined
}

// CombineGoalieSeasons collapses multi-season goaltender rows into one
// cumulative row per player. Like merged rows, combined rows carry no rate
// fields: a rate averaged across seasons without weighting is meaningless.
func CombineGoalieSeasons(rows []GoalieRow) []GoalieRow {
	combined := make([]GoalieRow, 0, len(rows))
	index := make(map[string]int, len(rows))

	for _, row := range rows {
		if i, ok := index[row.Name]; ok {
			addGoalie(&combined[i], row)
			continue
		}
		row.Season = 0
		row.GAA = nil
		row.SavePercent = nil
		index[row.Name] = len(combined)
		combined = append(combined, row)
	}
	return combined
}
