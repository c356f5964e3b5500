package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"gorm.io/datatypes"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/events"
	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/repositories"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/validator"
)

type SubmissionConfig struct {
	// UseLegacyEndpoint sends submissions to /api/survey/save-result instead
	// of /api/surveys/result.
	UseLegacyEndpoint bool
}

type submissionService struct {
	ops       *store.Operations
	publisher events.EventPublisher
	journal   repositories.SubmissionJournal
	logger    *slog.Logger
	validator *validator.Validator
	config    SubmissionConfig
	now       func() time.Time
}

func NewSubmissionService(
	ops *store.Operations,
	publisher events.EventPublisher,
	journal repositories.SubmissionJournal,
	logger *slog.Logger,
	validator *validator.Validator,
	config SubmissionConfig,
) SubmissionService {
	if journal == nil {
		journal = repositories.NoopJournal{}
	}
	return &submissionService{
		ops:       ops,
		publisher: publisher,
		journal:   journal,
		logger:    logger,
		validator: validator,
		config:    config,
		now:       time.Now,
	}
}

func (s *submissionService) Endpoint() string {
	if s.config.UseLegacyEndpoint {
		return client.PathSaveResult
	}
	return client.PathSubmitSurvey
}

// Submit runs the local gate and, when it passes, sends one submission.
func (s *submissionService) Submit(ctx context.Context, st *store.Store, req *SubmitRequest) (*models.SubmissionReceipt, error) {
	if req.Survey.ID.IsZero() {
		return nil, ErrInvalidSurveyID
	}
	if req.StudentID.IsZero() {
		return nil, ErrInvalidStudentID
	}

	surveyID := req.Survey.ID.String()
	studentID := req.StudentID.String()

	answers, err := CheckSubmission(req.Survey.Questions, req.Selections)
	if err != nil {
		if missingErr, ok := err.(*MissingAnswersError); ok {
			s.logger.WarnContext(ctx, "Submission blocked by missing answers",
				"survey_id", surveyID, "student_id", studentID, "missing", missingErr.Indices)
			s.record(ctx, &models.SubmissionRecord{
				SurveyID:  surveyID,
				StudentID: studentID,
				Endpoint:  s.Endpoint(),
				Outcome:   models.OutcomeRejected,
				Message:   missingErr.UserMessage(),
				Missing:   toJSON(missingErr.Indices),
			})
			s.publish(ctx, events.NewSubmissionRejectedEvent(surveyID, studentID, missingErr.Indices))
		}
		return nil, err
	}

	submission := models.SubmissionRequest{
		SurveyID:    req.Survey.ID,
		StudentID:   req.StudentID,
		Answers:     answers,
		CompletedAt: s.now().UTC(),
		GuideID:     req.GuideID,
		StartedAt:   req.StartedAt,
	}
	if err := s.validator.Validate(submission); err != nil {
		return nil, err
	}

	op := s.ops.SubmitSurvey(submission)
	if s.config.UseLegacyEndpoint {
		op = s.ops.SaveResult(submission)
	}

	payload, err := st.Run(ctx, op)
	if err != nil {
		reason := client.UserMessage(err, "Anket gönderilemedi")
		s.record(ctx, &models.SubmissionRecord{
			SurveyID:  surveyID,
			StudentID: studentID,
			Endpoint:  s.Endpoint(),
			Outcome:   models.OutcomeFailed,
			Message:   reason,
			Payload:   toJSON(submission),
		})
		s.publish(ctx, events.NewSubmissionFailedEvent(surveyID, studentID, s.Endpoint(), reason))
		return nil, err
	}

	receipt, _ := payload.(*models.SubmissionReceipt)
	if receipt == nil {
		receipt = &models.SubmissionReceipt{}
	}

	s.logger.InfoContext(ctx, "Survey submitted",
		"survey_id", surveyID, "student_id", studentID, "endpoint", s.Endpoint(), "result_id", receipt.ResultID.String())
	s.record(ctx, &models.SubmissionRecord{
		SurveyID:  surveyID,
		StudentID: studentID,
		Endpoint:  s.Endpoint(),
		Outcome:   models.OutcomeAccepted,
		Message:   receipt.Message,
		Payload:   toJSON(submission),
	})
	s.publish(ctx, events.NewResultSubmittedEvent(surveyID, studentID, receipt.ResultID.String(),
		len(answers), s.Endpoint(), submission.CompletedAt))

	return receipt, nil
}

// record and publish never fail a submission; problems are only logged.
func (s *submissionService) record(ctx context.Context, rec *models.SubmissionRecord) {
	if err := s.journal.Append(ctx, rec); err != nil {
		s.logger.ErrorContext(ctx, "Failed to append submission journal", "survey_id", rec.SurveyID, "error", err)
	}
}

func (s *submissionService) publish(ctx context.Context, event *events.SurveyEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish survey event", "type", string(event.Type), "error", err)
	}
}

func toJSON(v interface{}) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return datatypes.JSON(raw)
}
