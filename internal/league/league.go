// Package league holds the static league roster. The set of franchises is
// closed: it changes only with a code release, never at runtime.
package league

import "sort"

// Team is one franchise in the league.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// roster maps team ID to display name. IDs match the folder names the
// Fantrax exports are organized under.
var roster = map[string]string{
	"1":  "Nordic Knights",
	"2":  "Bay Street Bruisers",
	"3":  "Prairie Dogs",
	"4":  "Granite Wolves",
	"5":  "Harbour Cats",
	"6":  "Midnight Sun",
	"7":  "Iron Pike",
	"8":  "Valley Thunder",
	"9":  "Capital Chiefs",
	"10": "Lakeshore Loons",
}

// Teams returns the full roster ordered by numeric-ish ID (lexicographic on
// the padded key keeps "10" after "9").
func Teams() []Team {
	teams := make([]Team, 0, len(roster))
	for id, name := range roster {
		teams = append(teams, Team{ID: id, Name: name})
	}
	sort.Slice(teams, func(i, j int) bool {
		a, b := teams[i].ID, teams[j].ID
		if len(a) != len(b) {
			return len(a) < len(b)
		}
		return a < b
	})
	return teams
}

// Name resolves a team ID to its display name. Unknown IDs fall back to the
// ID itself so stale data still renders.
func Name(id string) string {
	if name, ok := roster[id]; ok {
		return name
	}
	return id
}

// Known reports whether the ID belongs to the roster.
func Known(id string) bool {
	_, ok := roster[id]
	return ok
}

// Size returns the number of franchises.
func Size() int {
	return len(roster)
}
