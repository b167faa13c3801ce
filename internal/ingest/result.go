// Package ingest imports Fantrax CSV exports into Postgres. Parse failures
// are counted per unit of work and never abort the rest of the batch.
package ingest

import "fmt"

// Result tracks counts and errors from an import run.
type Result struct {
	FilesImported int
	SkaterRows    int
	GoalieRows    int
	RecordRows    int
	Errors        []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.FilesImported += other.FilesImported
	r.SkaterRows += other.SkaterRows
	r.GoalieRows += other.GoalieRows
	r.RecordRows += other.RecordRows
	r.Errors = append(r.Errors, other.Errors...)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the import run.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"files=%d skater_rows=%d goalie_rows=%d record_rows=%d errors=%d",
		r.FilesImported, r.SkaterRows, r.GoalieRows, r.RecordRows, len(r.Errors),
	)
}
