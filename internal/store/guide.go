package store

import (
	"context"

	"github.com/rehber-app/anket-client/internal/models"
)

const (
	OpFetchGuide         Op = "guide/fetch"
	OpFetchGuideStudents Op = "guide/fetchStudents"
	OpFetchGuideResults  Op = "guide/fetchResults"
	OpClearGuide         Op = "guide/clear"
)

const (
	msgGuideFailed         = "Rehber bilgileri alınamadı"
	msgGuideStudentsFailed = "Öğrenci listesi alınamadı"
	msgGuideResultsFailed  = "Anket sonuçları alınamadı"
)

func (o *Operations) FetchGuide(guideID models.ID) Operation {
	return Operation{
		Op:       OpFetchGuide,
		Key:      guideID.String(),
		Fallback: msgGuideFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetGuide(ctx, guideID)
		},
	}
}

func (o *Operations) FetchGuideStudents(guideID models.ID) Operation {
	return Operation{
		Op:       OpFetchGuideStudents,
		Key:      guideID.String(),
		Fallback: msgGuideStudentsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.ListGuideStudents(ctx, guideID)
		},
	}
}

func (o *Operations) FetchGuideResults(guideID models.ID) Operation {
	return Operation{
		Op:       OpFetchGuideResults,
		Key:      guideID.String(),
		Fallback: msgGuideResultsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetGuideResults(ctx, guideID)
		},
	}
}

func reduceFetchGuide(s State, a Action) State {
	guide, ok := a.Payload.(*models.Guide)
	if !ok || guide == nil {
		return s
	}
	s.Guide.Profiles = with(s.Guide.Profiles, models.ID(a.Key), *guide)
	return s
}

func reduceFetchGuideStudents(s State, a Action) State {
	students, ok := a.Payload.([]models.Student)
	if !ok {
		return s
	}
	if students == nil {
		students = []models.Student{}
	}
	s.Guide.Students = with(s.Guide.Students, models.ID(a.Key), students)
	return s
}

func reduceFetchGuideResults(s State, a Action) State {
	results, ok := a.Payload.([]models.SurveyResult)
	if !ok {
		return s
	}
	if results == nil {
		results = []models.SurveyResult{}
	}
	s.Guide.Results = with(s.Guide.Results, models.ID(a.Key), results)
	return s
}

func reduceClearGuide(s State, _ Action) State {
	s.Guide = GuideState{}
	s.Requests = dropRequests(s.Requests, OpClearGuide.Slice(), "")
	return s
}
