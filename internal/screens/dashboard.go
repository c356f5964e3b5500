package screens

import (
	"context"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
)

type Tab string

const (
	TabOverview  Tab = "genel"
	TabQuestions Tab = "sorular"
	TabStudents  Tab = "ogrenciler"
)

var Tabs = []Tab{TabOverview, TabQuestions, TabStudents}

func ParseTab(s string) Tab {
	for _, t := range Tabs {
		if string(t) == s {
			return t
		}
	}
	return TabOverview
}

// DashboardOptions are the user's current choices on the dashboard.
// TotalStudents is the eligible head count; it comes from outside the results.
type DashboardOptions struct {
	Class         string
	TotalStudents int
	Tab           Tab
	Question      int
}

type Participation struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Percent   int `json:"percent"`
}

type StudentRow struct {
	ResultID    models.ID `json:"resultId,omitempty"`
	StudentID   models.ID `json:"studentId"`
	Name        string    `json:"name"`
	Class       string    `json:"sinif"`
	CompletedAt string    `json:"completedAt,omitempty"`
	Score       *float64  `json:"puan,omitempty"`
}

type QuestionSummary struct {
	Number   int                   `json:"number"`
	Text     string                `json:"text"`
	Answered int                   `json:"answered"`
	Options  []results.OptionCount `json:"options"`
}

type QuestionDetail struct {
	QuestionSummary
	Answers []results.Contribution `json:"answers"`
}

// DashboardView is a fully derived dashboard, ready to render.
type DashboardView struct {
	SurveyID      models.ID          `json:"surveyId"`
	Title         string             `json:"title"`
	Loading       bool               `json:"loading"`
	Loaded        bool               `json:"loaded"`
	Error         string             `json:"error,omitempty"`
	Stale         bool               `json:"stale"`
	Tab           Tab                `json:"tab"`
	Tabs          []Tab              `json:"tabs"`
	Classes       []string           `json:"classes"`
	SelectedClass string             `json:"selectedClass"`
	Participation Participation      `json:"participation"`
	Completed     []StudentRow       `json:"completed,omitempty"`
	Incomplete    []StudentRow       `json:"incomplete,omitempty"`
	Questions     []QuestionSummary  `json:"questions,omitempty"`
	Question      *QuestionDetail    `json:"question,omitempty"`
	Statistics    *models.Statistics `json:"statistics,omitempty"`
}

// BuildDashboard derives the view from loaded data. It never fails: missing
// pieces leave their part of the view empty.
func BuildDashboard(surveyID models.ID, data *services.DashboardData, opts DashboardOptions) DashboardView {
	view := DashboardView{
		SurveyID:      surveyID,
		Tab:           opts.Tab,
		Tabs:          Tabs,
		SelectedClass: opts.Class,
		Classes:       []string{results.AllClasses},
	}
	if view.Tab == "" {
		view.Tab = TabOverview
	}
	if view.SelectedClass == "" {
		view.SelectedClass = results.AllClasses
	}
	if data == nil {
		return view
	}

	view.Title = data.Survey.Value.Title
	view.Loading = data.SurveyRequest.Loading() || data.ResultsRequest.Loading()
	view.Loaded = data.Results.Present
	switch {
	case data.ResultsRequest.Failed():
		view.Error = data.ResultsRequest.Error
	case data.SurveyRequest.Failed():
		view.Error = data.SurveyRequest.Error
	}
	view.Stale = data.ResultsRequest.Failed() && data.Results.Present

	if !data.Results.Present {
		return view
	}

	all := data.Results.Value
	view.Classes = results.ClassList(all)
	filtered := results.FilterByClass(all, view.SelectedClass)

	completed, incomplete := results.PartitionCompletion(filtered)
	view.Participation = Participation{
		Total:     opts.TotalStudents,
		Completed: len(completed),
		Percent:   results.ParticipationPercent(opts.TotalStudents, len(completed)),
	}

	if data.Statistics.Present {
		stats := data.Statistics.Value
		view.Statistics = &stats
	}

	switch view.Tab {
	case TabStudents:
		view.Completed = studentRows(completed)
		view.Incomplete = studentRows(incomplete)
	case TabQuestions:
		view.Questions = questionSummaries(data.Survey.Value.Questions, filtered)
		if opts.Question >= 0 && opts.Question < len(data.Survey.Value.Questions) {
			contributions := results.Rollup(filtered, opts.Question)
			view.Question = &QuestionDetail{
				QuestionSummary: summarize(opts.Question, data.Survey.Value.Questions[opts.Question], contributions),
				Answers:         contributions,
			}
		}
	}
	return view
}

func studentRows(rs []models.SurveyResult) []StudentRow {
	rows := make([]StudentRow, 0, len(rs))
	for _, r := range rs {
		name := r.Student.FirstName
		if r.Student.LastName != "" {
			if name != "" {
				name += " "
			}
			name += r.Student.LastName
		}
		rows = append(rows, StudentRow{
			ResultID:    r.ID,
			StudentID:   r.StudentID,
			Name:        name,
			Class:       r.Student.Class,
			CompletedAt: r.CompletedAt,
			Score:       r.Score,
		})
	}
	return rows
}

func questionSummaries(questions []models.Question, rs []models.SurveyResult) []QuestionSummary {
	out := make([]QuestionSummary, 0, len(questions))
	for i, q := range questions {
		out = append(out, summarize(i, q, results.Rollup(rs, i)))
	}
	return out
}

func summarize(i int, q models.Question, contributions []results.Contribution) QuestionSummary {
	return QuestionSummary{
		Number:   i + 1,
		Text:     q.Text,
		Answered: len(contributions),
		Options:  results.TallyOptions(q, contributions),
	}
}

// Dashboard is the results screen for one survey in one session.
type Dashboard struct {
	surveyID  models.ID
	st        *store.Store
	dashboard services.DashboardService
	results   services.ResultService
}

func NewDashboard(surveyID models.ID, st *store.Store, dashboard services.DashboardService, results services.ResultService) *Dashboard {
	return &Dashboard{surveyID: surveyID, st: st, dashboard: dashboard, results: results}
}

// Load fetches the survey and its results, then builds the view. The view is
// returned with the error so stale data stays visible.
func (d *Dashboard) Load(ctx context.Context, opts DashboardOptions) (DashboardView, error) {
	data, err := d.dashboard.Load(ctx, d.st, d.surveyID)
	if data == nil {
		data = services.DashboardFromState(d.st.State(), d.surveyID)
	}
	return BuildDashboard(d.surveyID, data, opts), err
}

// View rebuilds the view from the store without any network call, e.g. after
// the user changes tab or class.
func (d *Dashboard) View(opts DashboardOptions) DashboardView {
	return BuildDashboard(d.surveyID, services.DashboardFromState(d.st.State(), d.surveyID), opts)
}

// Unmount discards the survey's results from the session.
func (d *Dashboard) Unmount() {
	d.results.Clear(d.st, d.surveyID)
}
