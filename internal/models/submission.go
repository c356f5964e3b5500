package models

import "time"

// SubmissionRequest is the body of a completed survey submission.
type SubmissionRequest struct {
	SurveyID    ID         `json:"surveyId" validate:"required"`
	StudentID   ID         `json:"studentId" validate:"required"`
	Answers     []Answer   `json:"cevaplar" validate:"required,min=1,dive"`
	CompletedAt time.Time  `json:"completedAt"`
	GuideID     ID         `json:"rehberId,omitempty"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
}

// SubmissionReceipt is what the backend echoes for an accepted submission.
type SubmissionReceipt struct {
	ResultID ID     `json:"id"`
	Message  string `json:"message,omitempty"`
}
