// Package screens holds the presentation models of the two example screens:
// the step-by-step question flow and the results dashboard. They read store
// state, dispatch through services and expose plain values a UI can render.
package screens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
)

var (
	ErrUnknownOption  = errors.New("option is not offered by this question")
	ErrOutOfRange     = errors.New("question index out of range")
	ErrAlreadyDone    = errors.New("survey already submitted")
	ErrSurveyRequired = errors.New("survey has no questions")
)

const msgSubmitFailed = "Anket gönderilemedi"

// QuestionView is what the flow shows for one step.
type QuestionView struct {
	Number   int      `json:"number"`
	Total    int      `json:"total"`
	Text     string   `json:"text"`
	Options  []string `json:"options"`
	Selected string   `json:"selected,omitempty"`
	IsFirst  bool     `json:"isFirst"`
	IsLast   bool     `json:"isLast"`
}

type Progress struct {
	Answered int `json:"answered"`
	Total    int `json:"total"`
	Percent  int `json:"percent"`
}

// QuestionFlow walks a student through a survey one question at a time. It
// is not safe for concurrent use.
type QuestionFlow struct {
	survey      models.Survey
	studentID   models.ID
	guideID     models.ID
	index       int
	selections  map[int]string
	startedAt   time.Time
	submissions services.SubmissionService

	receipt *models.SubmissionReceipt
	errMsg  string
}

type FlowOption func(*QuestionFlow)

func WithGuide(guideID models.ID) FlowOption {
	return func(f *QuestionFlow) { f.guideID = guideID }
}

func WithStartTime(t time.Time) FlowOption {
	return func(f *QuestionFlow) { f.startedAt = t }
}

func NewQuestionFlow(survey models.Survey, studentID models.ID, submissions services.SubmissionService, opts ...FlowOption) (*QuestionFlow, error) {
	if len(survey.Questions) == 0 {
		return nil, ErrSurveyRequired
	}
	f := &QuestionFlow{
		survey:      survey,
		studentID:   studentID,
		selections:  make(map[int]string, len(survey.Questions)),
		startedAt:   time.Now(),
		submissions: submissions,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *QuestionFlow) Survey() models.Survey {
	return f.survey
}

func (f *QuestionFlow) Current() QuestionView {
	q := f.survey.Questions[f.index]
	return QuestionView{
		Number:   f.index + 1,
		Total:    len(f.survey.Questions),
		Text:     q.Text,
		Options:  q.Options,
		Selected: f.selections[f.index],
		IsFirst:  f.index == 0,
		IsLast:   f.index == len(f.survey.Questions)-1,
	}
}

// Select records option for the current question.
func (f *QuestionFlow) Select(option string) error {
	return f.SelectAt(f.index, option)
}

// SelectAt records option for question i (0-based). The option must be one of
// the question's own choices.
func (f *QuestionFlow) SelectAt(i int, option string) error {
	if f.receipt != nil {
		return ErrAlreadyDone
	}
	if i < 0 || i >= len(f.survey.Questions) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i+1)
	}
	for _, opt := range f.survey.Questions[i].Options {
		if opt == option {
			f.selections[i] = option
			f.errMsg = ""
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownOption, option)
}

func (f *QuestionFlow) Next() bool {
	if f.index >= len(f.survey.Questions)-1 {
		return false
	}
	f.index++
	return true
}

func (f *QuestionFlow) Prev() bool {
	if f.index == 0 {
		return false
	}
	f.index--
	return true
}

func (f *QuestionFlow) GoTo(i int) error {
	if i < 0 || i >= len(f.survey.Questions) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, i+1)
	}
	f.index = i
	return nil
}

func (f *QuestionFlow) Progress() Progress {
	total := len(f.survey.Questions)
	answered := total - len(f.Missing())
	return Progress{
		Answered: answered,
		Total:    total,
		Percent:  results.ParticipationPercent(total, answered),
	}
}

// Missing returns the 1-based numbers of unanswered questions.
func (f *QuestionFlow) Missing() []int {
	return services.MissingAnswers(f.survey.Questions, f.selections)
}

func (f *QuestionFlow) CanSubmit() bool {
	return f.receipt == nil && len(f.Missing()) == 0
}

// Submit sends the answers. When questions are missing nothing is sent and
// the flow jumps to the first missing one.
func (f *QuestionFlow) Submit(ctx context.Context, st *store.Store) (*models.SubmissionReceipt, error) {
	if f.receipt != nil {
		return f.receipt, ErrAlreadyDone
	}

	startedAt := f.startedAt
	receipt, err := f.submissions.Submit(ctx, st, &services.SubmitRequest{
		Survey:     f.survey,
		StudentID:  f.studentID,
		GuideID:    f.guideID,
		Selections: f.selections,
		StartedAt:  &startedAt,
	})
	if err != nil {
		var missingErr *services.MissingAnswersError
		if errors.As(err, &missingErr) {
			f.index = missingErr.Indices[0] - 1
			f.errMsg = missingErr.UserMessage()
		} else {
			f.errMsg = client.UserMessage(err, msgSubmitFailed)
		}
		return nil, err
	}

	f.receipt = receipt
	f.errMsg = ""
	return receipt, nil
}

// Error is the message to show under the current question, if any.
func (f *QuestionFlow) Error() string {
	return f.errMsg
}

func (f *QuestionFlow) Done() bool {
	return f.receipt != nil
}
