package stats

// The scoring loop is data-driven but type-checked: each scored field gets
// an explicit accessor instead of a string-keyed lookup into the row.

// skaterField is one scored skater stat. Bidirectional marks the single
// field whose raw values are meaningful below zero (plus/minus): it is
// normalized over its true min..max instead of 0..max.
type skaterField struct {
	key           string
	weight        float64
	bidirectional bool
	get           func(*SkaterRow) int
}

// skaterFields is the fixed weight table. The composite divisor is the
// length of this table, whether or not a field contributed (see Score).
var skaterFields = []skaterField{
	{key: "goals", weight: 1.0, get: func(r *SkaterRow) int { return r.Goals }},
	{key: "assists", weight: 1.0, get: func(r *SkaterRow) int { return r.Assists }},
	{key: "points", weight: 1.5, get: func(r *SkaterRow) int { return r.Points }},
	{key: "plusMinus", weight: 0.75, bidirectional: true, get: func(r *SkaterRow) int { return r.PlusMinus }},
	{key: "penaltyMinutes", weight: 0.25, get: func(r *SkaterRow) int { return r.PenaltyMinutes }},
	{key: "powerPlayGoals", weight: 0.5, get: func(r *SkaterRow) int { return r.PowerPlayGoals }},
	{key: "shortHandedGoals", weight: 0.5, get: func(r *SkaterRow) int { return r.ShortHandedGoals }},
	{key: "gameWinningGoals", weight: 0.5, get: func(r *SkaterRow) int { return r.GameWinningGoals }},
	{key: "shots", weight: 0.75, get: func(r *SkaterRow) int { return r.Shots }},
	{key: "hits", weight: 0.5, get: func(r *SkaterRow) int { return r.Hits }},
	{key: "blocks", weight: 0.5, get: func(r *SkaterRow) int { return r.Blocks }},
}

// goalieField is one scored goaltender counting stat.
type goalieField struct {
	key    string
	weight float64
	get    func(*GoalieRow) int
}

// goalieFields is the fixed counting-stat weight table for goaltenders. The
// two rate stats (save%, GAA) are scored separately because they are often
// absent and cannot be normalized like counters.
var goalieFields = []goalieField{
	{key: "games", weight: 0.5, get: func(r *GoalieRow) int { return r.Games }},
	{key: "wins", weight: 1.5, get: func(r *GoalieRow) int { return r.Wins }},
	{key: "shutouts", weight: 1.0, get: func(r *GoalieRow) int { return r.Shutouts }},
	{key: "saves", weight: 1.0, get: func(r *GoalieRow) int { return r.Saves }},
}

// Rate stat weights and thresholds.
const (
	savePercentWeight = 1.5
	gaaWeight         = 1.0

	// savePercentBaseline is the floor below which a save percentage scores
	// zero; values between the baseline and the set's best scale linearly.
	savePercentBaseline = 0.850

	// gaaMaxDiffRatio caps how far above the set's best (lowest) GAA a value
	// can sit before it scores zero: 0.5 means 50% worse than best.
	gaaMaxDiffRatio = 0.5
)

// Sort accessors: query sort keys to comparable values. "name" is handled
// upstream (rows arrive alphabetical from storage, so it is a no-op).

var skaterSortKeys = map[string]func(*SkaterRow) float64{
	"score":            func(r *SkaterRow) float64 { return r.Score },
	"games":            func(r *SkaterRow) float64 { return float64(r.Games) },
	"goals":            func(r *SkaterRow) float64 { return float64(r.Goals) },
	"assists":          func(r *SkaterRow) float64 { return float64(r.Assists) },
	"points":           func(r *SkaterRow) float64 { return float64(r.Points) },
	"plusMinus":        func(r *SkaterRow) float64 { return float64(r.PlusMinus) },
	"penaltyMinutes":   func(r *SkaterRow) float64 { return float64(r.PenaltyMinutes) },
	"powerPlayGoals":   func(r *SkaterRow) float64 { return float64(r.PowerPlayGoals) },
	"shortHandedGoals": func(r *SkaterRow) float64 { return float64(r.ShortHandedGoals) },
	"gameWinningGoals": func(r *SkaterRow) float64 { return float64(r.GameWinningGoals) },
	"shots":            func(r *SkaterRow) float64 { return float64(r.Shots) },
	"hits":             func(r *SkaterRow) float64 { return float64(r.Hits) },
	"blocks":           func(r *SkaterRow) float64 { return float64(r.Blocks) },
}

var goalieSortKeys = map[string]func(*GoalieRow) float64{
	"score":        func(r *GoalieRow) float64 { return r.Score },
	"games":        func(r *GoalieRow) float64 { return float64(r.Games) },
	"wins":         func(r *GoalieRow) float64 { return float64(r.Wins) },
	"losses":       func(r *GoalieRow) float64 { return float64(r.Losses) },
	"shutouts":     func(r *GoalieRow) float64 { return float64(r.Shutouts) },
	"saves":        func(r *GoalieRow) float64 { return float64(r.Saves) },
	"goalsAgainst": func(r *GoalieRow) float64 { return float64(r.GoalsAgainst) },
	"gaa": func(r *GoalieRow) float64 {
		v, ok := rateValue(r.GAA)
		if !ok {
			return 0
		}
		return v
	},
	"savePercent": func(r *GoalieRow) float64 {
		v, ok := rateValue(r.SavePercent)
		if !ok {
			return 0
		}
		return v
	},
}
