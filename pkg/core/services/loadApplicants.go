package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/internal/config"
	"github.com/jakechorley/eeep-admissions/pkg/applicants"
)

// ApplicantSheet reads form responses from a spreadsheet
type ApplicantSheet interface {
	ListApplicantRows(spreadsheetID, tab string) ([]map[string]string, error)
}

// ApplicantForm reads responses straight from the application form
type ApplicantForm interface {
	ListApplicantRows(formID string) ([]map[string]string, error)
}

// ApplicantSources are the remote applicant sources; either may be nil
type ApplicantSources struct {
	Form  ApplicantForm
	Sheet ApplicantSheet
}

// LoadApplicantRows reads raw applicant rows from csvPath when set, otherwise
// from the configured form, otherwise from the configured sheet.
// Returns the rows and a description of the source.
func LoadApplicantRows(
	ctx context.Context,
	csvPath string,
	sources ApplicantSources,
	cfg *config.Config,
	logger *zap.Logger,
) ([]map[string]string, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	if csvPath != "" {
		logger.Debug("Reading applicants from CSV", zap.String("path", csvPath))
		rows, err := applicants.ReadCSVFile(csvPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read applicants: %w", err)
		}
		return rows, csvPath, nil
	}

	if cfg.ApplicantFormID != "" {
		if sources.Form == nil {
			return nil, "", fmt.Errorf("no forms client available to read %s", cfg.ApplicantFormID)
		}
		logger.Debug("Reading applicants from form", zap.String("form_id", cfg.ApplicantFormID))
		rows, err := sources.Form.ListApplicantRows(cfg.ApplicantFormID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read applicants: %w", err)
		}
		return rows, "form:" + cfg.ApplicantFormID, nil
	}

	if cfg.ApplicantSheetID == "" {
		return nil, "", fmt.Errorf("no applicant source: pass --csv or set applicantFormID or applicantSheetID in the config")
	}
	if sources.Sheet == nil {
		return nil, "", fmt.Errorf("no sheets client available to read %s", cfg.ApplicantSheetID)
	}

	logger.Debug("Reading applicants from sheet",
		zap.String("sheet_id", cfg.ApplicantSheetID),
		zap.String("tab", cfg.ApplicantSheetTab))
	rows, err := sources.Sheet.ListApplicantRows(cfg.ApplicantSheetID, cfg.ApplicantSheetTab)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read applicants: %w", err)
	}

	return rows, fmt.Sprintf("sheet:%s/%s", cfg.ApplicantSheetID, cfg.ApplicantSheetTab), nil
}
