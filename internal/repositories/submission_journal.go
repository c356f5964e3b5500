package repositories

import (
	"context"
	"time"

	"github.com/rehber-app/anket-client/internal/models"
)

// SubmissionFilters narrows a journal listing.
type SubmissionFilters struct {
	SurveyID  string                    `json:"survey_id"`
	StudentID string                    `json:"student_id"`
	Outcome   *models.SubmissionOutcome `json:"outcome"`
	DateFrom  *time.Time                `json:"date_from"`
	DateTo    *time.Time                `json:"date_to"`
	Limit     int                       `json:"limit"`
	Offset    int                       `json:"offset"`
	SortBy    string                    `json:"sort_by"`    // "created_at", "survey_id", "outcome"
	SortOrder string                    `json:"sort_order"` // "asc", "desc"
}

// OutcomeCount is one row of a per-outcome tally.
type OutcomeCount struct {
	Outcome models.SubmissionOutcome `json:"outcome"`
	Count   int64                    `json:"count"`
}

// SubmissionJournal is the append-only log of submission attempts.
type SubmissionJournal interface {
	Append(ctx context.Context, record *models.SubmissionRecord) error
	List(ctx context.Context, filters SubmissionFilters) ([]*models.SubmissionRecord, int64, error)
	CountByOutcome(ctx context.Context, surveyID string) ([]OutcomeCount, error)
}

// NoopJournal discards everything. Used when no database is configured.
type NoopJournal struct{}

func (NoopJournal) Append(context.Context, *models.SubmissionRecord) error { return nil }

func (NoopJournal) List(context.Context, SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	return []*models.SubmissionRecord{}, 0, nil
}

func (NoopJournal) CountByOutcome(context.Context, string) ([]OutcomeCount, error) {
	return []OutcomeCount{}, nil
}
