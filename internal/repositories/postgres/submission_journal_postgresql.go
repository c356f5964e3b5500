package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/repositories"
)

var journalSortColumns = map[string]bool{
	"created_at": true,
	"survey_id":  true,
	"outcome":    true,
}

type SubmissionJournalPostgreSQL struct {
	db *gorm.DB
}

func NewSubmissionJournalPostgreSQL(db *gorm.DB) repositories.SubmissionJournal {
	return &SubmissionJournalPostgreSQL{db: db}
}

func (j *SubmissionJournalPostgreSQL) Append(ctx context.Context, record *models.SubmissionRecord) error {
	return j.db.WithContext(ctx).Create(record).Error
}

func (j *SubmissionJournalPostgreSQL) List(ctx context.Context, filters repositories.SubmissionFilters) ([]*models.SubmissionRecord, int64, error) {
	var records []*models.SubmissionRecord
	var total int64

	// apply filter first
	query := j.db.WithContext(ctx).Model(&models.SubmissionRecord{})
	query = j.applyFilters(query, filters)

	// Count on its own session so the SELECT count(*) it builds stays off query.
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPaginationAndSort(query, filters.SortBy, filters.SortOrder, journalSortColumns, filters.Limit, filters.Offset)
	if err := query.Find(&records).Error; err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (j *SubmissionJournalPostgreSQL) CountByOutcome(ctx context.Context, surveyID string) ([]repositories.OutcomeCount, error) {
	var counts []repositories.OutcomeCount
	query := j.db.WithContext(ctx).
		Model(&models.SubmissionRecord{}).
		Select("outcome, COUNT(*) AS count").
		Group("outcome").
		Order("outcome")
	if surveyID != "" {
		query = query.Where("survey_id = ?", surveyID)
	}
	if err := query.Scan(&counts).Error; err != nil {
		return nil, err
	}
	return counts, nil
}

func (j *SubmissionJournalPostgreSQL) applyFilters(query *gorm.DB, filters repositories.SubmissionFilters) *gorm.DB {
	if filters.SurveyID != "" {
		query = query.Where("survey_id = ?", filters.SurveyID)
	}
	if filters.StudentID != "" {
		query = query.Where("student_id = ?", filters.StudentID)
	}
	if filters.Outcome != nil {
		query = query.Where("outcome = ?", *filters.Outcome)
	}
	if filters.DateFrom != nil {
		query = query.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		query = query.Where("created_at <= ?", *filters.DateTo)
	}
	return query
}
