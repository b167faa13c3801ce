package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/puckboard/puckboard/internal/stats"
)

// ImportAll walks csvRoot, importing every team directory it finds plus the
// shared records.csv when present. Each failing file is recorded on the
// Result and skipped; the batch always runs to completion.
func ImportAll(ctx context.Context, pool *pgxpool.Pool, csvRoot string, logger *slog.Logger) Result {
	var result Result

	entries, err := os.ReadDir(csvRoot)
	if err != nil {
		result.AddErrorf("read csv root %s: %v", csvRoot, err)
		return result
	}

	var teams []string
	for _, e := range entries {
		if e.IsDir() {
			teams = append(teams, e.Name())
		}
	}
	sort.Strings(teams)

	for _, team := range teams {
		teamResult := ImportTeamDir(ctx, pool, team, filepath.Join(csvRoot, team), logger)
		result.Add(teamResult)
	}

	recordsPath := filepath.Join(csvRoot, "records.csv")
	if _, err := os.Stat(recordsPath); err == nil {
		result.Add(ImportRecords(ctx, pool, recordsPath, logger))
	}

	return result
}

// ImportTeamDir imports every export file in one team's directory.
func ImportTeamDir(ctx context.Context, pool *pgxpool.Pool, team, dir string, logger *slog.Logger) Result {
	var result Result

	entries, err := os.ReadDir(dir)
	if err != nil {
		result.AddErrorf("read team dir %s: %v", dir, err)
		return result
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		report, season, ok := ParseFilename(e.Name())
		if !ok {
			continue
		}
		path := filepath.Join(dir, e.Name())
		parsed, err := importFile(ctx, pool, team, season, report, path)
		if err != nil {
			result.AddErrorf("%s: %v", path, err)
			logger.Error("import file failed", "path", path, "error", err)
			continue
		}
		result.FilesImported++
		result.SkaterRows += len(parsed.Skaters)
		result.GoalieRows += len(parsed.Goalies)
		logger.Info("imported", "team", team, "season", season, "report", string(report),
			"skaters", len(parsed.Skaters), "goalies", len(parsed.Goalies))
	}
	return result
}

func importFile(ctx context.Context, pool *pgxpool.Pool, team string, season int, report stats.Report, path string) (ParsedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParsedFile{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	parsed, err := ParseFile(f, season)
	if err != nil {
		return ParsedFile{}, fmt.Errorf("parse: %w", err)
	}
	if err := replaceRows(ctx, pool, team, season, report, parsed); err != nil {
		return ParsedFile{}, err
	}
	return parsed, nil
}
