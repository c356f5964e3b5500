package models

import (
	"time"

	"gorm.io/datatypes"
)

type SubmissionOutcome string

const (
	OutcomeAccepted SubmissionOutcome = "accepted"
	OutcomeRejected SubmissionOutcome = "rejected"
	OutcomeFailed   SubmissionOutcome = "failed"
)

// SubmissionRecord is one line of the append-only submission journal.
// It is an audit trail only and is never read back into client state.
type SubmissionRecord struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	SurveyID  string            `json:"survey_id" gorm:"not null;size:64;index"`
	StudentID string            `json:"student_id" gorm:"not null;size:64;index"`
	Endpoint  string            `json:"endpoint" gorm:"not null;size:100"`
	Outcome   SubmissionOutcome `json:"outcome" gorm:"not null;size:20;index"`
	Message   string            `json:"message" gorm:"type:text"`
	Missing   datatypes.JSON    `json:"missing" gorm:"type:jsonb"`
	Payload   datatypes.JSON    `json:"payload" gorm:"type:jsonb"`
	CreatedAt time.Time         `json:"created_at"`
}

func (SubmissionRecord) TableName() string {
	return "submission_journal"
}
