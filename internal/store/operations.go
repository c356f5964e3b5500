package store

import (
	"context"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
)

// SurveyCache is an optional read-through cache for survey definitions.
// Results are never cached.
type SurveyCache interface {
	GetSurvey(ctx context.Context, surveyID models.ID) (*models.Survey, bool)
	SetSurvey(ctx context.Context, survey models.Survey)
	Invalidate(ctx context.Context, surveyID models.ID) error
}

// Operations builds the Operation values for every backend call.
type Operations struct {
	api   client.API
	cache SurveyCache
}

type OperationsOption func(*Operations)

func WithSurveyCache(cache SurveyCache) OperationsOption {
	return func(o *Operations) { o.cache = cache }
}

func NewOperations(api client.API, opts ...OperationsOption) *Operations {
	o := &Operations{api: api}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
