package stats

import "sort"

// Default orderings are strict three-key tie-breaks; beyond the third key
// the incoming order stands. An explicit sort field orders by that field
// alone, descending. "name" and unrecognized keys leave the default in
// place — rows arrive from storage already alphabetical.

// SortSkaters orders rows in place. Empty or unknown sortKey applies the
// default score → points → goals descending ordering; "name" is a no-op.
func SortSkaters(rows []SkaterRow, sortKey string) {
	if sortKey == "name" {
		return
	}
	if get, ok := skaterSortKeys[sortKey]; ok && sortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return get(&rows[i]) > get(&rows[j])
		})
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.Goals > b.Goals
	})
}

// SortGoalies orders rows in place. Empty or unknown sortKey applies the
// default score → wins → games descending ordering; "name" is a no-op.
func SortGoalies(rows []GoalieRow, sortKey string) {
	if sortKey == "name" {
		return
	}
	if get, ok := goalieSortKeys[sortKey]; ok && sortKey != "" {
		sort.SliceStable(rows, func(i, j int) bool {
			return get(&rows[i]) > get(&rows[j])
		})
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := &rows[i], &rows[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Games > b.Games
	})
}
