package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the kinds of survey events this client emits
type EventType string

const (
	EventResultSubmitted    EventType = "survey.result.submitted"
	EventSubmissionRejected EventType = "survey.submission.rejected"
	EventSubmissionFailed   EventType = "survey.submission.failed"
)

const (
	eventSource  = "anket-client"
	eventVersion = "1.0"
)

// SurveyEvent is the envelope for every published survey event
type SurveyEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type ResultSubmittedEvent struct {
	SurveyID    string    `json:"survey_id"`
	StudentID   string    `json:"student_id"`
	ResultID    string    `json:"result_id,omitempty"`
	AnswerCount int       `json:"answer_count"`
	Endpoint    string    `json:"endpoint"`
	CompletedAt time.Time `json:"completed_at"`
}

type SubmissionRejectedEvent struct {
	SurveyID       string `json:"survey_id"`
	StudentID      string `json:"student_id"`
	MissingIndices []int  `json:"missing_indices"`
}

type SubmissionFailedEvent struct {
	SurveyID  string `json:"survey_id"`
	StudentID string `json:"student_id"`
	Endpoint  string `json:"endpoint"`
	Reason    string `json:"reason"`
}

func newEvent(eventType EventType, data interface{}) *SurveyEvent {
	return &SurveyEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

func NewResultSubmittedEvent(surveyID, studentID, resultID string, answerCount int, endpoint string, completedAt time.Time) *SurveyEvent {
	return newEvent(EventResultSubmitted, ResultSubmittedEvent{
		SurveyID:    surveyID,
		StudentID:   studentID,
		ResultID:    resultID,
		AnswerCount: answerCount,
		Endpoint:    endpoint,
		CompletedAt: completedAt,
	})
}

func NewSubmissionRejectedEvent(surveyID, studentID string, missing []int) *SurveyEvent {
	return newEvent(EventSubmissionRejected, SubmissionRejectedEvent{
		SurveyID:       surveyID,
		StudentID:      studentID,
		MissingIndices: missing,
	})
}

func NewSubmissionFailedEvent(surveyID, studentID, endpoint, reason string) *SurveyEvent {
	return newEvent(EventSubmissionFailed, SubmissionFailedEvent{
		SurveyID:  surveyID,
		StudentID: studentID,
		Endpoint:  endpoint,
		Reason:    reason,
	})
}
