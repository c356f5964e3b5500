package services

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
	"github.com/rehber-app/anket-client/internal/store"
)

type dashboardService struct {
	surveys SurveyService
	results ResultService
	logger  *slog.Logger
}

func NewDashboardService(surveys SurveyService, results ResultService, logger *slog.Logger) DashboardService {
	return &dashboardService{surveys: surveys, results: results, logger: logger}
}

// Load fetches the survey definition and its results side by side. The two
// use different op keys, so neither can clobber the other. A failure in one
// does not cancel the other; whatever the store holds is returned with the
// first error.
func (s *dashboardService) Load(ctx context.Context, st *store.Store, surveyID models.ID) (*DashboardData, error) {
	if surveyID.IsZero() {
		return nil, ErrInvalidSurveyID
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := s.surveys.Get(ctx, st, surveyID)
		return err
	})
	g.Go(func() error {
		_, err := s.results.FetchResults(ctx, st, surveyID)
		return err
	})
	err := g.Wait()
	if err != nil {
		s.logger.WarnContext(ctx, "Dashboard loaded with errors", "survey_id", surveyID.String(), "error", err)
	}

	return DashboardFromState(st.State(), surveyID), err
}

// DashboardFromState reads the dashboard inputs for one survey. Statistics
// fall back to values derived from the stored results.
func DashboardFromState(state store.State, surveyID models.ID) *DashboardData {
	data := &DashboardData{
		SurveyRequest:  state.Request(store.OpFetchSurvey, surveyID.String()),
		ResultsRequest: state.Request(store.OpFetchSurveyResults, surveyID.String()),
	}
	data.Survey.Value, data.Survey.Present = state.SurveyByID(surveyID)
	data.Results.Value, data.Results.Present = state.SurveyResults(surveyID)

	if stats, ok := state.Statistics(surveyID); ok {
		data.Statistics = Loaded[models.Statistics]{Value: stats, Present: true}
	} else if data.Results.Present {
		data.Statistics = Loaded[models.Statistics]{Value: results.ComputeStatistics(data.Results.Value), Present: true}
	}
	return data
}
