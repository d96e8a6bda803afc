package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
	"github.com/jakechorley/eeep-admissions/pkg/db"
)

// RunView is an archived run with its entries
type RunView struct {
	Run     db.Run
	Entries []db.RunEntry
}

// SaveRun archives the outcome of an allocation run
func SaveRun(
	ctx context.Context,
	store db.ResultStore,
	summary *model.Summary,
	source string,
	now time.Time,
	logger *zap.Logger,
) (*db.Run, error) {
	run := &db.Run{
		ID:               uuid.New().String(),
		CreatedAt:        now.UTC().Format(time.RFC3339),
		Source:           source,
		TotalProcessed:   summary.TotalProcessed,
		DroppedRows:      summary.DroppedRows,
		UnmatchedCourses: summary.UnmatchedCourses,
		CourseCount:      len(summary.Results),
	}

	entries := runEntries(run.ID, summary)
	for _, e := range entries {
		if !e.Waiting {
			run.SelectedCount++
		}
	}

	logger.Debug("Saving run", zap.String("id", run.ID), zap.Int("entries", len(entries)))

	if err := store.InsertRun(ctx, run, entries); err != nil {
		return nil, fmt.Errorf("failed to save run: %w", err)
	}

	logger.Info("Run saved", zap.String("id", run.ID), zap.Int("selected", run.SelectedCount))
	return run, nil
}

// ListRuns returns every archived run, newest first
func ListRuns(ctx context.Context, store db.ResultStore, logger *zap.Logger) ([]db.Run, error) {
	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	logger.Debug("Fetched runs", zap.Int("count", len(runs)))
	return runs, nil
}

// ViewRun returns an archived run and its entries
func ViewRun(ctx context.Context, store db.ResultStore, runID string, logger *zap.Logger) (*RunView, error) {
	if _, err := uuid.Parse(runID); err != nil {
		return nil, fmt.Errorf("invalid run id %q: %w", runID, err)
	}

	runs, err := store.GetRuns(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch runs: %w", err)
	}

	var found *db.Run
	for i := range runs {
		if runs[i].ID == runID {
			found = &runs[i]
			break
		}
	}
	if found == nil {
		return nil, fmt.Errorf("run %s not found", runID)
	}

	entries, err := store.GetRunEntries(ctx, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch run entries: %w", err)
	}

	logger.Debug("Fetched run", zap.String("id", runID), zap.Int("entries", len(entries)))
	return &RunView{Run: *found, Entries: entries}, nil
}

// runEntries flattens every list of the summary into archive records
func runEntries(runID string, summary *model.Summary) []db.RunEntry {
	var entries []db.RunEntry
	for i := range summary.Results {
		result := &summary.Results[i]
		for _, group := range result.Groups() {
			for _, entry := range group.Entries {
				entries = append(entries, db.RunEntry{
					ID:                 uuid.New().String(),
					RunID:              runID,
					Course:             result.Course,
					List:               group.Title,
					Category:           string(group.Category),
					Waiting:            group.Waiting,
					Rank:               entry.Rank,
					CandidateID:        entry.Candidate.ID,
					RegistrationNumber: entry.Candidate.RegistrationNumber,
					Name:               entry.Candidate.Name,
					FinalScore:         entry.Candidate.Scores.Final,
					Portuguese:         entry.Candidate.Scores.Portuguese,
					Mathematics:        entry.Candidate.Scores.Mathematics,
					Status:             string(entry.Status),
					AllocatedIn:        string(entry.AllocatedIn),
					ViaReversion:       entry.ViaReversion,
				})
			}
		}
	}
	return entries
}
