package store

import (
	"context"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
)

const (
	OpListSurveys Op = "survey/list"
	OpFetchSurvey Op = "survey/fetch"
	OpClearSurvey Op = "survey/clear"
)

const (
	msgSurveysFailed = "Anket listesi alınamadı"
	msgSurveyFailed  = "Anket bilgileri alınamadı"
)

func (o *Operations) ListSurveys() Operation {
	return Operation{
		Op:       OpListSurveys,
		Fallback: msgSurveysFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.ListSurveys(ctx)
		},
	}
}

func (o *Operations) FetchSurvey(surveyID models.ID) Operation {
	return Operation{
		Op:       OpFetchSurvey,
		Key:      surveyID.String(),
		Fallback: msgSurveyFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			if o.cache != nil {
				if survey, ok := o.cache.GetSurvey(ctx, surveyID); ok {
					return survey, nil
				}
			}
			return o.fetchSurvey(ctx, surveyID)
		},
	}
}

// RefreshSurvey is FetchSurvey that skips the cache and replaces the cached
// definition. A survey the backend no longer has is dropped from the cache.
func (o *Operations) RefreshSurvey(surveyID models.ID) Operation {
	return Operation{
		Op:       OpFetchSurvey,
		Key:      surveyID.String(),
		Fallback: msgSurveyFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			survey, err := o.fetchSurvey(ctx, surveyID)
			if o.cache != nil && client.IsNotFound(err) {
				_ = o.cache.Invalidate(ctx, surveyID)
			}
			return survey, err
		},
	}
}

func (o *Operations) fetchSurvey(ctx context.Context, surveyID models.ID) (*models.Survey, error) {
	survey, err := o.api.GetSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if o.cache != nil && survey != nil {
		o.cache.SetSurvey(ctx, *survey)
	}
	return survey, nil
}

func reduceListSurveys(s State, a Action) State {
	surveys, ok := a.Payload.([]models.Survey)
	if !ok {
		return s
	}
	if surveys == nil {
		surveys = []models.Survey{}
	}
	s.Survey.List = surveys
	return s
}

func reduceFetchSurvey(s State, a Action) State {
	survey, ok := a.Payload.(*models.Survey)
	if !ok || survey == nil {
		return s
	}
	s.Survey.ByID = with(s.Survey.ByID, models.ID(a.Key), *survey)
	return s
}

func reduceClearSurvey(s State, _ Action) State {
	s.Survey = SurveyState{}
	s.Requests = dropRequests(s.Requests, OpClearSurvey.Slice(), "")
	return s
}
