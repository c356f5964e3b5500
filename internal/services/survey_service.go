package services

import (
	"context"
	"log/slog"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/store"
)

type surveyService struct {
	ops    *store.Operations
	logger *slog.Logger
}

func NewSurveyService(ops *store.Operations, logger *slog.Logger) SurveyService {
	return &surveyService{ops: ops, logger: logger}
}

func (s *surveyService) List(ctx context.Context, st *store.Store) (Loaded[[]models.Survey], error) {
	return runAndRead(ctx, st, s.ops.ListSurveys(), func(state store.State) ([]models.Survey, bool) {
		return state.Survey.List, state.Survey.List != nil
	})
}

func (s *surveyService) Get(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[models.Survey], error) {
	return s.load(ctx, st, surveyID, s.ops.FetchSurvey)
}

// Refresh reloads the survey from the backend, replacing any cached copy.
func (s *surveyService) Refresh(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[models.Survey], error) {
	return s.load(ctx, st, surveyID, s.ops.RefreshSurvey)
}

func (s *surveyService) load(ctx context.Context, st *store.Store, surveyID models.ID, op func(models.ID) store.Operation) (Loaded[models.Survey], error) {
	if surveyID.IsZero() {
		return Loaded[models.Survey]{}, ErrInvalidSurveyID
	}
	loaded, err := runAndRead(ctx, st, op(surveyID), func(state store.State) (models.Survey, bool) {
		return state.SurveyByID(surveyID)
	})
	if err != nil && IsNotFound(err) {
		return loaded, ErrSurveyNotFound
	}
	return loaded, err
}
