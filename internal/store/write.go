package store

import (
	"context"
	"fmt"
)

// WriteRun records a run and its rosters in one transaction.
//
// The run's Seq is assigned here as one past the highest recorded seq and
// returned. Roster Ordinal is each roster's position in rosters; Hash and
// RunID are computed, so callers leave them empty.
func (s *Store) WriteRun(ctx context.Context, run Run, rosters []Roster) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, seq, source_hash, strategy, capacity)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, seq, run.SourceHash, run.Strategy, run.Capacity)
	if err != nil {
		return 0, fmt.Errorf("write run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO rosters (run_id, area, ordinal, difficulty, slots, overridden, roster_hash)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("write run: prepare roster insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rosters {
		slots, err := marshalSlots(r.Slots)
		if err != nil {
			return 0, fmt.Errorf("write roster %s: %w", r.Area, err)
		}
		hash, err := RosterHash(r.Slots)
		if err != nil {
			return 0, fmt.Errorf("write roster %s: %w", r.Area, err)
		}
		if _, err := stmt.ExecContext(ctx, run.ID, r.Area, i, r.Difficulty, slots, r.Overridden, hash); err != nil {
			return 0, fmt.Errorf("write roster %s: %w", r.Area, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write run: commit: %w", err)
	}
	return seq, nil
}
