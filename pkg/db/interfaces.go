package db

import "context"

// ResultStore defines the interface for archiving allocation runs.
// postgres.DB implements this interface.
type ResultStore interface {
	InsertRun(ctx context.Context, run *Run, entries []RunEntry) error
	GetRuns(ctx context.Context) ([]Run, error)
	GetRunEntries(ctx context.Context, runID string) ([]RunEntry, error)
}
