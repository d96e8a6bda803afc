package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/eeep-admissions/pkg/db"
)

// InsertRun stores a run and all of its list entries in one transaction
func (d *DB) InsertRun(ctx context.Context, run *db.Run, entries []db.RunEntry) error {
	createdAt, err := time.Parse(time.RFC3339, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid run timestamp %q: %w", run.CreatedAt, err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO run (id, created_at, source, total_processed, dropped_rows, unmatched_courses, course_count, selected_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, run.ID, createdAt.UTC(), run.Source, run.TotalProcessed, run.DroppedRows, run.UnmatchedCourses, run.CourseCount, run.SelectedCount)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		var allocatedIn *string
		if e.AllocatedIn != "" {
			allocatedIn = &e.AllocatedIn
		}
		batch.Queue(`
			INSERT INTO run_entry (
				id, run_id, course, list_title, category, waiting, rank,
				candidate_id, registration_number, name, final_score, portuguese_score, mathematics_score,
				status, allocated_in, via_reversion
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, e.ID, run.ID, e.Course, e.List, e.Category, e.Waiting, e.Rank,
			e.CandidateID, e.RegistrationNumber, e.Name, e.FinalScore, e.Portuguese, e.Mathematics,
			e.Status, allocatedIn, e.ViaReversion)
	}

	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to insert run entries: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetRuns retrieves every archived run, newest first
func (d *DB) GetRuns(ctx context.Context) ([]db.Run, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, created_at, source, total_processed, dropped_rows, unmatched_courses, course_count, selected_count
		FROM run
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []db.Run
	for rows.Next() {
		var r db.Run
		var createdAt time.Time
		if err := rows.Scan(&r.ID, &createdAt, &r.Source, &r.TotalProcessed, &r.DroppedRows, &r.UnmatchedCourses, &r.CourseCount, &r.SelectedCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRunEntries retrieves the entries of a run in publication order
func (d *DB) GetRunEntries(ctx context.Context, runID string) ([]db.RunEntry, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, run_id, course, list_title, category, waiting, rank,
			candidate_id, registration_number, name, final_score, portuguese_score, mathematics_score,
			status, allocated_in, via_reversion
		FROM run_entry
		WHERE run_id = $1
		ORDER BY course, waiting,
			array_position(ARRAY['PCD', 'PUBLICA_CENTRO', 'PUBLICA_AMPLA', 'PRIVADA_CENTRO', 'PRIVADA_AMPLA'], category),
			rank
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run entries: %w", err)
	}
	defer rows.Close()

	var entries []db.RunEntry
	for rows.Next() {
		var e db.RunEntry
		var allocatedIn *string
		if err := rows.Scan(&e.ID, &e.RunID, &e.Course, &e.List, &e.Category, &e.Waiting, &e.Rank,
			&e.CandidateID, &e.RegistrationNumber, &e.Name, &e.FinalScore, &e.Portuguese, &e.Mathematics,
			&e.Status, &allocatedIn, &e.ViaReversion); err != nil {
			return nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		if allocatedIn != nil {
			e.AllocatedIn = *allocatedIn
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run entries: %w", err)
	}

	return entries, nil
}
