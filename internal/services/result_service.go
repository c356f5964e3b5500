package services

import (
	"context"
	"log/slog"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
	"github.com/rehber-app/anket-client/internal/store"
)

type resultService struct {
	ops    *store.Operations
	logger *slog.Logger
}

func NewResultService(ops *store.Operations, logger *slog.Logger) ResultService {
	return &resultService{ops: ops, logger: logger}
}

func (s *resultService) FetchResults(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[[]models.SurveyResult], error) {
	if surveyID.IsZero() {
		return Loaded[[]models.SurveyResult]{}, ErrInvalidSurveyID
	}
	loaded, err := runAndRead(ctx, st, s.ops.FetchSurveyResults(surveyID), func(state store.State) ([]models.SurveyResult, bool) {
		return state.SurveyResults(surveyID)
	})
	if err == nil {
		s.logger.DebugContext(ctx, "Survey results stored", "survey_id", surveyID.String(), "count", len(loaded.Value))
	}
	return loaded, err
}

// FetchStatistics asks the backend for precomputed statistics. When the
// backend has none but results are already loaded, they are derived locally.
func (s *resultService) FetchStatistics(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[models.Statistics], error) {
	if surveyID.IsZero() {
		return Loaded[models.Statistics]{}, ErrInvalidSurveyID
	}
	loaded, err := runAndRead(ctx, st, s.ops.FetchStatistics(surveyID), func(state store.State) (models.Statistics, bool) {
		return state.Statistics(surveyID)
	})
	if loaded.Present {
		return loaded, err
	}
	if stored, ok := st.State().SurveyResults(surveyID); ok {
		return Loaded[models.Statistics]{Value: results.ComputeStatistics(stored), Present: true}, err
	}
	return loaded, err
}

func (s *resultService) FetchClassStatistics(ctx context.Context, st *store.Store, surveyID models.ID, class string) (Loaded[models.Statistics], error) {
	if surveyID.IsZero() {
		return Loaded[models.Statistics]{}, ErrInvalidSurveyID
	}
	return runAndRead(ctx, st, s.ops.FetchClassStatistics(surveyID, class), func(state store.State) (models.Statistics, bool) {
		return state.ClassStatistics(surveyID, class)
	})
}

func (s *resultService) FetchExport(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[client.Export], error) {
	if surveyID.IsZero() {
		return Loaded[client.Export]{}, ErrInvalidSurveyID
	}
	return runAndRead(ctx, st, s.ops.FetchExport(surveyID), func(state store.State) (client.Export, bool) {
		return state.Export(surveyID)
	})
}

// Clear drops one survey's results, or all of them when surveyID is empty.
func (s *resultService) Clear(st *store.Store, surveyID models.ID) {
	st.Clear(store.OpClearResults, surveyID.String())
}
