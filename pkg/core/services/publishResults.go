package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// ResultPublisher writes course results to a spreadsheet
type ResultPublisher interface {
	PublishResults(spreadsheetID string, summary *model.Summary) error
}

// PublishResults writes one tab per course into the result spreadsheet
func PublishResults(
	ctx context.Context,
	publisher ResultPublisher,
	spreadsheetID string,
	summary *model.Summary,
	logger *zap.Logger,
) error {
	if spreadsheetID == "" {
		return fmt.Errorf("resultSheetID is not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	logger.Debug("Publishing results",
		zap.String("sheet_id", spreadsheetID),
		zap.Int("courses", len(summary.Results)))

	if err := publisher.PublishResults(spreadsheetID, summary); err != nil {
		return fmt.Errorf("failed to publish results: %w", err)
	}

	logger.Info("Results published", zap.String("sheet_id", spreadsheetID), zap.Int("courses", len(summary.Results)))
	return nil
}
