package stats

// The scoring engine turns heterogeneous counting stats into one composite
// 0–100 score per player. Every field is normalized against the current
// result set only — there is no global baseline, so a player's score can
// change between queries as the comparison set changes.
//
// Per field: the set maximum is floored at 0 (negative raw values clamp to
// 0), except plus/minus, which normalizes over its true min..max. A field
// whose set maximum is <= 0 — including an all-zero column — contributes
// nothing at all; it is skipped rather than scored as 0, so players are not
// dragged down by stats nobody in the set had a chance to accumulate.
//
// Divisor policy: the skater composite divides by the fixed size of the
// field table regardless of how many fields contributed. Goaltender rate
// fields instead grow the divisor only when they contribute, since not
// every goaltender has rate data. The asymmetry is intentional and matches
// the long-standing behavior of the league site.

// ScoreSkaters populates Score on every row in place and returns the slice.
// An empty input is returned unchanged.
func ScoreSkaters(rows []SkaterRow) []SkaterRow {
	if len(rows) == 0 {
		return rows
	}

	type extreme struct {
		min, max float64
		active   bool
	}
	extremes := make([]extreme, len(skaterFields))

	for fi, f := range skaterFields {
		if f.bidirectional {
			lo := float64(f.get(&rows[0]))
			hi := lo
			for i := 1; i < len(rows); i++ {
				v := float64(f.get(&rows[i]))
				if v < lo {
					lo = v
				}
				if v > hi {
					hi = v
				}
			}
			extremes[fi] = extreme{min: lo, max: hi, active: hi != lo}
			continue
		}

		hi := 0.0
		for i := range rows {
			if v := float64(f.get(&rows[i])); v > hi {
				hi = v
			}
		}
		extremes[fi] = extreme{max: hi, active: hi > 0}
	}

	divisor := float64(len(skaterFields))
	for i := range rows {
		total := 0.0
		for fi, f := range skaterFields {
			ext := extremes[fi]
			if !ext.active {
				continue
			}
			v := float64(f.get(&rows[i]))
			var relative float64
			if f.bidirectional {
				relative = (v - ext.min) / (ext.max - ext.min) * 100
			} else {
				if v < 0 {
					v = 0
				}
				relative = v / ext.max * 100
			}
			total += relative * f.weight
		}
		rows[i].Score = round2(clamp(total/divisor, 0, 100))
	}
	return rows
}

// ScoreGoalies populates Score on every row in place and returns the slice.
// Counting stats normalize like skater fields. Save percentage scores
// linearly between a fixed baseline and the set's best; GAA scores
// inversely off the set's lowest value, reaching 0 once a goaltender is
// gaaMaxDiffRatio worse than the best. A rate field contributes — and
// widens that row's divisor — only when the row actually carries a valid
// value for it.
func ScoreGoalies(rows []GoalieRow) []GoalieRow {
	if len(rows) == 0 {
		return rows
	}

	maxes := make([]float64, len(goalieFields))
	for fi, f := range goalieFields {
		for i := range rows {
			if v := float64(f.get(&rows[i])); v > maxes[fi] {
				maxes[fi] = v
			}
		}
	}

	bestSavePct, savePctActive := 0.0, false
	bestGAA, gaaActive := 0.0, false
	for i := range rows {
		if v, ok := rateValue(rows[i].SavePercent); ok {
			if !savePctActive || v > bestSavePct {
				bestSavePct = v
			}
			savePctActive = true
		}
		if v, ok := rateValue(rows[i].GAA); ok {
			if !gaaActive || v < bestGAA {
				bestGAA = v
			}
			gaaActive = true
		}
	}
	// Degenerate sets make the linear scales meaningless; drop the field.
	if bestSavePct <= savePercentBaseline {
		savePctActive = false
	}
	if bestGAA <= 0 {
		gaaActive = false
	}

	for i := range rows {
		total := 0.0
		divisor := float64(len(goalieFields))

		for fi, f := range goalieFields {
			if maxes[fi] <= 0 {
				continue
			}
			v := float64(f.get(&rows[i]))
			if v < 0 {
				v = 0
			}
			total += v / maxes[fi] * 100 * f.weight
		}

		if savePctActive {
			if v, ok := rateValue(rows[i].SavePercent); ok {
				relative := (v - savePercentBaseline) / (bestSavePct - savePercentBaseline) * 100
				total += clamp(relative, 0, 100) * savePercentWeight
				divisor++
			}
		}
		if gaaActive {
			if v, ok := rateValue(rows[i].GAA); ok {
				gap := (v - bestGAA) / bestGAA
				relative := (1 - gap/gaaMaxDiffRatio) * 100
				total += clamp(relative, 0, 100) * gaaWeight
				divisor++
			}
		}

		rows[i].Score = round2(clamp(total/divisor, 0, 100))
	}
	return rows
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
