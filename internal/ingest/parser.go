package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/puckboard/puckboard/internal/stats"
)

// Fantrax exports one CSV per team, season, and report category, named
// regular-YYYY-YYYY.csv or playoffs-YYYY-YYYY.csv. Inside, two sections are
// introduced by single-cell marker rows ("Skaters", "Goalies"), each
// followed by a header row starting with "Pos". A trailing "Totals" row per
// section is skipped. Older exports occasionally vary column order, so
// columns are located by header name, never by position.

var filenameRe = regexp.MustCompile(`^(regular|playoffs)-(\d{4})-(\d{4})\.csv$`)

// ParseFilename extracts the report category and starting season year from
// an export filename.
func ParseFilename(name string) (report stats.Report, season int, ok bool) {
	m := filenameRe.FindStringSubmatch(name)
	if m == nil {
		return "", 0, false
	}
	season, err := strconv.Atoi(m[2])
	if err != nil {
		return "", 0, false
	}
	return stats.Report(m[1]), season, true
}

// ParsedFile holds the rows parsed from one export file.
type ParsedFile struct {
	Skaters []stats.SkaterRow
	Goalies []stats.GoalieRow
}

type section int

const (
	sectionNone section = iota
	sectionSkaters
	sectionGoalies
)

// ParseFile reads one Fantrax export. Season is stamped onto every row.
func ParseFile(r io.Reader, season int) (ParsedFile, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ParsedFile{}, fmt.Errorf("read csv: %w", err)
	}

	var (
		parsed  ParsedFile
		current section
		columns map[string]int
	)

	for _, row := range records {
		if len(row) == 0 {
			continue
		}
		if len(row) == 1 {
			switch row[0] {
			case "Skaters":
				current, columns = sectionSkaters, nil
			case "Goalies":
				current, columns = sectionGoalies, nil
			}
			continue
		}
		if current == sectionNone {
			continue
		}
		if row[0] == "Pos" {
			columns = headerIndex(row)
			continue
		}
		if columns == nil || isTotalsRow(row, columns) {
			continue
		}

		switch current {
		case sectionSkaters:
			parsed.Skaters = append(parsed.Skaters, skaterFromRow(row, columns, season))
		case sectionGoalies:
			parsed.Goalies = append(parsed.Goalies, goalieFromRow(row, columns, season))
		}
	}

	if len(parsed.Skaters) == 0 && len(parsed.Goalies) == 0 {
		return ParsedFile{}, fmt.Errorf("no skater or goalie sections found")
	}
	return parsed, nil
}

func headerIndex(row []string) map[string]int {
	idx := make(map[string]int, len(row))
	for i, name := range row {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func isTotalsRow(row []string, columns map[string]int) bool {
	if row[0] == "Totals" {
		return true
	}
	if i, ok := columns["Player"]; ok && i < len(row) {
		return row[i] == "Totals"
	}
	return false
}

func skaterFromRow(row []string, columns map[string]int, season int) stats.SkaterRow {
	return stats.SkaterRow{
		Name:             cell(row, columns, "Player"),
		Season:           season,
		Games:            cellInt(row, columns, "GP"),
		Goals:            cellInt(row, columns, "G"),
		Assists:          cellInt(row, columns, "A"),
		Points:           cellInt(row, columns, "PTS"),
		PlusMinus:        cellInt(row, columns, "+/-"),
		PenaltyMinutes:   cellInt(row, columns, "PIM"),
		PowerPlayGoals:   cellInt(row, columns, "PPG"),
		ShortHandedGoals: cellInt(row, columns, "SHG"),
		GameWinningGoals: cellInt(row, columns, "GWG"),
		Shots:            cellInt(row, columns, "SOG"),
		Hits:             cellInt(row, columns, "Hit"),
		Blocks:           cellInt(row, columns, "Blk"),
	}
}

func goalieFromRow(row []string, columns map[string]int, season int) stats.GoalieRow {
	return stats.GoalieRow{
		Name:         cell(row, columns, "Player"),
		Season:       season,
		Games:        cellInt(row, columns, "GP"),
		Wins:         cellInt(row, columns, "W-G"),
		Losses:       cellInt(row, columns, "L-G"),
		Shutouts:     cellInt(row, columns, "SO"),
		Saves:        cellInt(row, columns, "SV"),
		GoalsAgainst: cellInt(row, columns, "GA"),
		GAA:          cellRate(row, columns, "GAA"),
		SavePercent:  cellRate(row, columns, "SV%"),
	}
}

func cell(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

var intPrefixRe = regexp.MustCompile(`^\s*(-?\d+)`)

// cellInt parses a counting stat tolerantly: Fantrax sometimes suffixes
// values, so only the leading integer counts. Anything unparsable is 0.
func cellInt(row []string, columns map[string]int, name string) int {
	m := intPrefixRe.FindStringSubmatch(cell(row, columns, name))
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// cellRate keeps a rate stat as its stored decimal text, nil when the cell
// is empty or not a number.
func cellRate(row []string, columns map[string]int, name string) *string {
	raw := cell(row, columns, name)
	if raw == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return nil
	}
	return &raw
}
