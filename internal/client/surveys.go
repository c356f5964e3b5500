package client

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
)

const (
	PathSurveys      = "/api/survey"
	PathSaveResult   = "/api/survey/save-result"
	PathSubmitSurvey = "/api/surveys/result"
	resultsField     = "results"
)

func (c *Client) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	surveys := make([]models.Survey, 0)
	if err := c.get(ctx, PathSurveys, &surveys); err != nil {
		return nil, err
	}
	return surveys, nil
}

func (c *Client) GetSurvey(ctx context.Context, surveyID models.ID) (*models.Survey, error) {
	var survey models.Survey
	if err := c.get(ctx, pathf("/api/survey/%s", surveyID.String()), &survey); err != nil {
		return nil, err
	}
	if survey.ID.IsZero() {
		survey.ID = surveyID
	}
	return &survey, nil
}

// GetSurveyResults fetches a survey's results and statistics. Older backends
// send the result array directly as data; both shapes are accepted.
func (c *Client) GetSurveyResults(ctx context.Context, surveyID models.ID) (*SurveyResults, error) {
	var data json.RawMessage
	if err := c.get(ctx, pathf("/api/surveys/%s/results", surveyID.String()), &data); err != nil {
		return nil, err
	}

	out := &SurveyResults{Results: make([]models.SurveyResult, 0)}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return out, nil
	}

	if data[0] == '[' {
		out.Results = decodeResults(data)
		return out, nil
	}

	var payload models.ResultsPayload
	if err := json.Unmarshal(data, &payload); err == nil {
		out.Results = results.NormalizeAll(payload.Results)
		out.Statistics = payload.Statistics
	}
	return out, nil
}

func (c *Client) GetStatistics(ctx context.Context, surveyID models.ID) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.get(ctx, pathf("/api/survey/%s/statistics", surveyID.String()), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) GetClassStatistics(ctx context.Context, surveyID models.ID, class string) (*models.Statistics, error) {
	var stats models.Statistics
	if err := c.get(ctx, pathf("/api/survey/%s/class-stats/%s", surveyID.String(), class), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) GetExport(ctx context.Context, surveyID models.ID) (*Export, error) {
	var payload models.ExportPayload
	if err := c.get(ctx, pathf("/api/survey/%s/export", surveyID.String()), &payload); err != nil {
		return nil, err
	}
	if payload.Survey.ID.IsZero() {
		payload.Survey.ID = surveyID
	}
	return &Export{
		Survey:      payload.Survey,
		Results:     results.NormalizeAll(payload.Results),
		GeneratedAt: payload.GeneratedAt,
	}, nil
}

// SaveResult posts to the legacy persistence endpoint.
func (c *Client) SaveResult(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	return c.postSubmission(ctx, PathSaveResult, req)
}

// SubmitSurvey posts to the current submission endpoint.
func (c *Client) SubmitSurvey(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	return c.postSubmission(ctx, PathSubmitSurvey, req)
}

func (c *Client) postSubmission(ctx context.Context, path string, req models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	var receipt models.SubmissionReceipt
	if err := c.do(ctx, http.MethodPost, path, req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) getResultList(ctx context.Context, path string) ([]models.SurveyResult, error) {
	var data json.RawMessage
	if err := c.get(ctx, path, &data); err != nil {
		return nil, err
	}
	return decodeResults(data), nil
}

// decodeResults accepts either a bare array or an object holding it under "results".
func decodeResults(data json.RawMessage) []models.SurveyResult {
	data = bytes.TrimSpace(data)
	var raws []models.RawSurveyResult
	if len(data) > 0 && data[0] == '{' {
		var wrapper map[string]json.RawMessage
		if json.Unmarshal(data, &wrapper) == nil {
			data = wrapper[resultsField]
		}
	}
	if len(data) > 0 {
		_ = json.Unmarshal(data, &raws)
	}
	return results.NormalizeAll(raws)
}
