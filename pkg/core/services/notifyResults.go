package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/eeep-admissions/pkg/core/model"
)

// Mailer sends plain text emails
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// FailedEmail is a notification that could not be delivered
type FailedEmail struct {
	Email string
	Error string
}

const notifySubject = "Resultado da seleção EEEP"

// NotifyResults emails a run summary to every recipient. A failed send is
// recorded and the remaining recipients are still notified.
func NotifyResults(
	ctx context.Context,
	mailer Mailer,
	recipients []string,
	summary *model.Summary,
	resultSheetID string,
	logger *zap.Logger,
) ([]string, []FailedEmail, error) {
	if len(recipients) == 0 {
		logger.Debug("No notification recipients configured")
		return nil, nil, nil
	}

	body := NotificationBody(summary, Summarize(summary), resultSheetID)

	var sent []string
	var failed []FailedEmail
	for _, to := range recipients {
		if err := ctx.Err(); err != nil {
			return sent, failed, err
		}

		logger.Debug("Sending result notification", zap.String("email", to))
		if err := mailer.SendEmail(to, notifySubject, body); err != nil {
			logger.Warn("Failed to send result notification", zap.String("email", to), zap.Error(err))
			failed = append(failed, FailedEmail{Email: to, Error: err.Error()})
			continue
		}
		sent = append(sent, to)
	}

	logger.Info("Result notifications sent", zap.Int("sent", len(sent)), zap.Int("failed", len(failed)))
	return sent, failed, nil
}

// NotificationBody renders the summary email text
func NotificationBody(summary *model.Summary, stats Stats, resultSheetID string) string {
	var b strings.Builder

	b.WriteString("O resultado da seleção foi processado.\n\n")
	fmt.Fprintf(&b, "Candidatos: %d\n", stats.UniqueCandidates)
	fmt.Fprintf(&b, "Classificados: %d\n", stats.Selected)
	fmt.Fprintf(&b, "Classificáveis: %d\n", stats.Waitlisted)
	if stats.DroppedRows > 0 {
		fmt.Fprintf(&b, "Linhas descartadas: %d\n", stats.DroppedRows)
	}
	if stats.UnmatchedCourses > 0 {
		fmt.Fprintf(&b, "Candidatos com curso não encontrado: %d\n", stats.UnmatchedCourses)
	}

	b.WriteString("\nPor curso:\n")
	for i := range summary.Results {
		r := &summary.Results[i]
		fmt.Fprintf(&b, "- %s: %d de %d vagas ocupadas, %d classificáveis\n",
			r.Course, r.Selected.Len(), r.Capacity.Total(), r.Waiting.Len())
	}

	if resultSheetID != "" {
		fmt.Fprintf(&b, "\nListas completas: https://docs.google.com/spreadsheets/d/%s\n", resultSheetID)
	}

	return b.String()
}
