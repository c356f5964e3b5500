package store

import (
	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
)

// State is the whole client state. It is treated as immutable: the reducer
// replaces any map or slice it changes instead of writing into it, so a
// State handed out by Store.State stays valid after later dispatches.
type State struct {
	Requests map[OpKey]Request
	User     UserState
	Admin    AdminState
	Guide    GuideState
	Student  StudentState
	Survey   SurveyState
	Results  ResultState
}

type UserState struct {
	Current *models.User
	Token   string
}

type AdminState struct {
	Guides []models.Guide
}

type GuideState struct {
	Profiles map[models.ID]models.Guide
	Students map[models.ID][]models.Student
	Results  map[models.ID][]models.SurveyResult
}

type StudentState struct {
	Records map[models.ID]models.Student
	ByClass map[string][]models.Student
	Results map[models.ID][]models.SurveyResult
}

type SurveyState struct {
	List []models.Survey
	ByID map[models.ID]models.Survey
}

// ClassKey addresses per-class statistics of one survey.
type ClassKey struct {
	SurveyID models.ID
	Class    string
}

type ResultState struct {
	BySurvey        map[models.ID][]models.SurveyResult
	Statistics      map[models.ID]models.Statistics
	ClassStatistics map[ClassKey]models.Statistics
	Exports         map[models.ID]client.Export
	Receipts        map[models.ID]models.SubmissionReceipt
}

// Request returns the lifecycle record for op/key, idle when never run.
func (s State) Request(op Op, key string) Request {
	if r, ok := s.Requests[OpKey{Op: op, Key: key}]; ok {
		return r
	}
	return Request{Status: StatusIdle}
}

// SurveyResults returns the stored results of a survey. ok is false when the
// survey has not been fetched, which is different from fetched-but-empty.
func (s State) SurveyResults(surveyID models.ID) ([]models.SurveyResult, bool) {
	r, ok := s.Results.BySurvey[surveyID]
	return r, ok
}

func (s State) Statistics(surveyID models.ID) (models.Statistics, bool) {
	st, ok := s.Results.Statistics[surveyID]
	return st, ok
}

func (s State) ClassStatistics(surveyID models.ID, class string) (models.Statistics, bool) {
	st, ok := s.Results.ClassStatistics[ClassKey{SurveyID: surveyID, Class: class}]
	return st, ok
}

func (s State) Export(surveyID models.ID) (client.Export, bool) {
	e, ok := s.Results.Exports[surveyID]
	return e, ok
}

func (s State) SurveyByID(surveyID models.ID) (models.Survey, bool) {
	sv, ok := s.Survey.ByID[surveyID]
	return sv, ok
}

func (s State) StudentByID(studentID models.ID) (models.Student, bool) {
	st, ok := s.Student.Records[studentID]
	return st, ok
}

func (s State) StudentsInClass(class string) ([]models.Student, bool) {
	st, ok := s.Student.ByClass[class]
	return st, ok
}

func (s State) StudentResults(studentID models.ID) ([]models.SurveyResult, bool) {
	r, ok := s.Student.Results[studentID]
	return r, ok
}

func (s State) GuideByID(guideID models.ID) (models.Guide, bool) {
	g, ok := s.Guide.Profiles[guideID]
	return g, ok
}

func (s State) GuideStudents(guideID models.ID) ([]models.Student, bool) {
	st, ok := s.Guide.Students[guideID]
	return st, ok
}

func (s State) GuideResults(guideID models.ID) ([]models.SurveyResult, bool) {
	r, ok := s.Guide.Results[guideID]
	return r, ok
}

// with returns a copy of m with k set; m itself is not modified.
func with[K comparable, V any](m map[K]V, k K, v V) map[K]V {
	out := make(map[K]V, len(m)+1)
	for key, val := range m {
		out[key] = val
	}
	out[k] = v
	return out
}

// without returns a copy of m with k removed.
func without[K comparable, V any](m map[K]V, k K) map[K]V {
	out := make(map[K]V, len(m))
	for key, val := range m {
		if key != k {
			out[key] = val
		}
	}
	return out
}
