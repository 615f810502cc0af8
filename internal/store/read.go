package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a requested run or roster does not exist.
var ErrNotFound = errors.New("not found")

// ListRuns returns every run ordered by seq, newest last.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.seq, r.source_hash, r.strategy, r.capacity, COUNT(ro.area)
		FROM runs r
		LEFT JOIN rosters ro ON ro.run_id = r.id
		GROUP BY r.id
		ORDER BY r.seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Seq, &run.SourceHash, &run.Strategy, &run.Capacity, &run.AreaCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRun returns the run with the highest seq.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	var run Run
	err := s.db.QueryRowContext(ctx, `
		SELECT r.id, r.seq, r.source_hash, r.strategy, r.capacity,
		       (SELECT COUNT(*) FROM rosters ro WHERE ro.run_id = r.id)
		FROM runs r
		ORDER BY r.seq DESC
		LIMIT 1
	`).Scan(&run.ID, &run.Seq, &run.SourceHash, &run.Strategy, &run.Capacity, &run.AreaCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("latest run: %w", ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// Rosters returns every roster of a run in ordinal order.
//
// Returns an empty slice (not nil) if the run has no rosters.
func (s *Store) Rosters(ctx context.Context, runID string) ([]Roster, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, area, ordinal, difficulty, slots, overridden, roster_hash
		FROM rosters
		WHERE run_id = ?
		ORDER BY ordinal ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query rosters: %w", err)
	}
	defer rows.Close()

	rosters := []Roster{}
	for rows.Next() {
		r, err := scanRoster(rows)
		if err != nil {
			return nil, err
		}
		rosters = append(rosters, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rosters: %w", err)
	}
	return rosters, nil
}

// RosterForArea returns the roster recorded for area in a run.
func (s *Store) RosterForArea(ctx context.Context, runID, area string) (Roster, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT run_id, area, ordinal, difficulty, slots, overridden, roster_hash
		FROM rosters
		WHERE run_id = ? AND area = ?
	`, runID, area)
	r, err := scanRoster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Roster{}, fmt.Errorf("roster %s/%s: %w", runID, area, ErrNotFound)
	}
	return r, err
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRoster(row scanner) (Roster, error) {
	var (
		r     Roster
		slots string
	)
	if err := row.Scan(&r.RunID, &r.Area, &r.Ordinal, &r.Difficulty, &slots, &r.Overridden, &r.Hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Roster{}, err
		}
		return Roster{}, fmt.Errorf("scan roster: %w", err)
	}
	decoded, err := unmarshalSlots(slots)
	if err != nil {
		return Roster{}, err
	}
	r.Slots = decoded
	return r, nil
}
