package services

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jakechorley/eeep-admissions/internal/config"
	"github.com/jakechorley/eeep-admissions/pkg/applicants"
	"github.com/jakechorley/eeep-admissions/pkg/core/allocator"
	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// AllocateAdmissionsResult contains the allocation of every configured course
type AllocateAdmissionsResult struct {
	Summary model.Summary

	// Reversions holds the reverted seat counts per course
	Reversions map[string]allocator.Reversion

	// ValidationErrors lists invariant violations across all courses (expected to be empty)
	ValidationErrors []allocator.ValidationError

	// UnmatchedCourseNames are the course options no configured course matched
	UnmatchedCourseNames []string
}

// AllocateAdmissions scores and classifies the raw applicant rows, then runs
// the seat allocation of every configured course. Courses share no state and
// are allocated concurrently; results keep the configured course order.
func AllocateAdmissions(
	ctx context.Context,
	rows []map[string]string,
	cfg *config.Config,
	now func() time.Time,
	logger *zap.Logger,
) (*AllocateAdmissionsResult, error) {
	logger.Debug("Allocating admissions", zap.Int("rows", len(rows)), zap.Int("courses", len(cfg.Courses)))

	opts := cfg.ApplicantOptions()
	opts.Now = now
	parsed := applicants.Parse(rows, opts)

	logger.Info("Parsed applicants",
		zap.Int("candidates", len(parsed.Candidates)),
		zap.Int("dropped_rows", parsed.Dropped))

	byCourse, unmatched, unmatchedNames := groupByCourse(parsed.Candidates, cfg.CourseNames())
	if unmatched > 0 {
		logger.Warn("Candidates with an unknown course were left out",
			zap.Int("count", unmatched),
			zap.Strings("courses", unmatchedNames))
	}

	outcomes := make([]*allocator.AllocationOutcome, len(cfg.Courses))
	g, gctx := errgroup.WithContext(ctx)
	for i, course := range cfg.CourseNames() {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return fmt.Errorf("allocation of %s cancelled: %w", course, err)
			}

			outcomes[i] = allocator.Allocate(allocator.AllocationConfig{
				Course:       course,
				Candidates:   byCourse[course],
				Capacity:     cfg.CapacityFor(course),
				ScoreEpsilon: cfg.ScoreEpsilon,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &AllocateAdmissionsResult{
		Summary: model.Summary{
			TotalProcessed:   len(parsed.Candidates),
			Results:          make([]model.CourseResult, 0, len(outcomes)),
			DroppedRows:      parsed.Dropped,
			UnmatchedCourses: unmatched,
		},
		Reversions:           make(map[string]allocator.Reversion, len(outcomes)),
		UnmatchedCourseNames: unmatchedNames,
	}

	for _, outcome := range outcomes {
		course := outcome.Result.Course
		result.Summary.Results = append(result.Summary.Results, outcome.Result)
		result.Reversions[course] = outcome.Reversion
		result.ValidationErrors = append(result.ValidationErrors, outcome.ValidationErrors...)

		logger.Info("Course allocated",
			zap.String("course", course),
			zap.Int("candidates", len(byCourse[course])),
			zap.Int("seats", outcome.Result.Capacity.Total()),
			zap.Int("selected", outcome.Result.Selected.Len()),
			zap.Int("reverted_seats", outcome.Reversion.Total()))

		for _, verr := range outcome.ValidationErrors {
			logger.Warn("Validation error",
				zap.String("course", verr.Course),
				zap.String("list", verr.List),
				zap.String("description", verr.Description))
		}
	}

	return result, nil
}

// groupByCourse buckets candidates by configured course, preserving input order.
// Candidates whose course matches none are counted and their course names collected.
func groupByCourse(candidates []*model.Candidate, courses []string) (map[string][]*model.Candidate, int, []string) {
	byCourse := make(map[string][]*model.Candidate, len(courses))
	var unmatched int
	var unmatchedNames []string

	for _, c := range candidates {
		if !slices.Contains(courses, c.Course) {
			unmatched++
			if !slices.Contains(unmatchedNames, c.Course) {
				unmatchedNames = append(unmatchedNames, c.Course)
			}
			continue
		}
		byCourse[c.Course] = append(byCourse[c.Course], c)
	}

	return byCourse, unmatched, unmatchedNames
}
