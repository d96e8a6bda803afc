package formsclient

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/forms/v1"
	"google.golang.org/api/option"

	"github.com/jakechorley/eeep-admissions/internal/config"
	"github.com/jakechorley/eeep-admissions/pkg/applicants"
	"github.com/jakechorley/eeep-admissions/pkg/utils"
)

// Client wraps the Google Forms API client
type Client struct {
	service *forms.Service
	ctx     context.Context
}

// NewClient creates a Forms client reusing a token obtained by the sheets client
func NewClient(ctx context.Context, oauthCfg *config.OAuthClientConfig, token *oauth2.Token) (*Client, error) {
	oauthConfig, err := utils.GetOAuthConfig(oauthCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth config: %w", err)
	}

	httpClient := oauthConfig.Client(ctx, token)

	service, err := forms.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create forms service: %w", err)
	}

	return &Client{service: service, ctx: ctx}, nil
}

// ListApplicantRows reads every response of the application form as header->value rows
func (c *Client) ListApplicantRows(formID string) ([]map[string]string, error) {
	form, err := c.service.Forms.Get(formID).Context(c.ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	var responses []*forms.FormResponse
	call := c.service.Forms.Responses.List(formID).Context(c.ctx)
	err = call.Pages(c.ctx, func(page *forms.ListFormResponsesResponse) error {
		responses = append(responses, page.Responses...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list form responses: %w", err)
	}

	return RowsFromForm(form, responses), nil
}

// QuestionColumns maps question IDs to the column header a spreadsheet export would use.
// Rows of a grid question become "<row> - <grid title>", e.g. "PORTUGUÊS - 6º ANO".
func QuestionColumns(form *forms.Form) map[string]string {
	columns := make(map[string]string)
	for _, item := range form.Items {
		switch {
		case item.QuestionItem != nil && item.QuestionItem.Question != nil:
			columns[item.QuestionItem.Question.QuestionId] = strings.TrimSpace(item.Title)
		case item.QuestionGroupItem != nil:
			for _, q := range item.QuestionGroupItem.Questions {
				if q.RowQuestion == nil {
					continue
				}
				columns[q.QuestionId] = strings.TrimSpace(q.RowQuestion.Title) + " - " + strings.TrimSpace(item.Title)
			}
		}
	}
	return columns
}

// RowsFromForm converts form responses into rows, oldest submission first.
// Answers to unknown questions are skipped and multiple answers are joined with ", ".
func RowsFromForm(form *forms.Form, responses []*forms.FormResponse) []map[string]string {
	columns := QuestionColumns(form)

	ordered := slices.Clone(responses)
	slices.SortStableFunc(ordered, func(a, b *forms.FormResponse) int {
		return submittedAt(a).Compare(submittedAt(b))
	})

	rows := make([]map[string]string, 0, len(ordered))
	for _, resp := range ordered {
		row := make(map[string]string, len(columns)+1)
		if t := submittedAt(resp); !t.IsZero() {
			row[applicants.ColumnTimestamp[0]] = t.Format("02/01/2006 15:04:05")
		}

		for questionID, answer := range resp.Answers {
			header, ok := columns[questionID]
			if !ok || answer.TextAnswers == nil {
				continue
			}
			values := make([]string, 0, len(answer.TextAnswers.Answers))
			for _, a := range answer.TextAnswers.Answers {
				values = append(values, a.Value)
			}
			row[header] = strings.Join(values, ", ")
		}

		rows = append(rows, row)
	}

	return rows
}

func submittedAt(resp *forms.FormResponse) time.Time {
	raw := resp.LastSubmittedTime
	if raw == "" {
		raw = resp.CreateTime
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
