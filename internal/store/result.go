package store

import (
	"context"
	"strings"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
)

const (
	OpFetchSurveyResults   Op = "surveyResult/fetchResults"
	OpFetchStatistics      Op = "surveyResult/fetchStatistics"
	OpFetchClassStatistics Op = "surveyResult/fetchClassStatistics"
	OpFetchExport          Op = "surveyResult/fetchExport"
	OpSaveResult           Op = "surveyResult/saveResult"
	OpSubmitSurvey         Op = "surveyResult/submit"
	OpClearResults         Op = "surveyResult/clear"
)

const (
	msgResultsFailed    = "Anket sonuçları yüklenemedi"
	msgStatisticsFailed = "İstatistikler alınamadı"
	msgExportFailed     = "Dışa aktarma verisi alınamadı"
	msgSubmitFailed     = "Anket gönderilemedi"
)

func (o *Operations) FetchSurveyResults(surveyID models.ID) Operation {
	return Operation{
		Op:       OpFetchSurveyResults,
		Key:      surveyID.String(),
		Fallback: msgResultsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetSurveyResults(ctx, surveyID)
		},
	}
}

func (o *Operations) FetchStatistics(surveyID models.ID) Operation {
	return Operation{
		Op:       OpFetchStatistics,
		Key:      surveyID.String(),
		Fallback: msgStatisticsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetStatistics(ctx, surveyID)
		},
	}
}

func (o *Operations) FetchClassStatistics(surveyID models.ID, class string) Operation {
	return Operation{
		Op:       OpFetchClassStatistics,
		Key:      ClassStatisticsKey(surveyID, class),
		Fallback: msgStatisticsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			stats, err := o.api.GetClassStatistics(ctx, surveyID, class)
			if err != nil {
				return nil, err
			}
			return classStatistics{key: ClassKey{SurveyID: surveyID, Class: class}, stats: stats}, nil
		},
	}
}

func (o *Operations) FetchExport(surveyID models.ID) Operation {
	return Operation{
		Op:       OpFetchExport,
		Key:      surveyID.String(),
		Fallback: msgExportFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetExport(ctx, surveyID)
		},
	}
}

// SaveResult posts through the legacy submission endpoint.
func (o *Operations) SaveResult(req models.SubmissionRequest) Operation {
	return Operation{
		Op:       OpSaveResult,
		Key:      req.SurveyID.String(),
		Fallback: msgSubmitFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.SaveResult(ctx, req)
		},
	}
}

func (o *Operations) SubmitSurvey(req models.SubmissionRequest) Operation {
	return Operation{
		Op:       OpSubmitSurvey,
		Key:      req.SurveyID.String(),
		Fallback: msgSubmitFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.SubmitSurvey(ctx, req)
		},
	}
}

// ClassStatisticsKey is the op key of a per-class statistics request.
func ClassStatisticsKey(surveyID models.ID, class string) string {
	return surveyID.String() + "/" + class
}

type classStatistics struct {
	key   ClassKey
	stats *models.Statistics
}

// reduceFetchSurveyResults replaces the survey's results wholesale. Statistics
// are replaced only when the response carried them.
func reduceFetchSurveyResults(s State, a Action) State {
	payload, ok := a.Payload.(*client.SurveyResults)
	if !ok || payload == nil {
		return s
	}
	id := models.ID(a.Key)
	results := payload.Results
	if results == nil {
		results = []models.SurveyResult{}
	}
	s.Results.BySurvey = with(s.Results.BySurvey, id, results)
	if payload.Statistics != nil {
		s.Results.Statistics = with(s.Results.Statistics, id, *payload.Statistics)
	}
	return s
}

func reduceFetchStatistics(s State, a Action) State {
	stats, ok := a.Payload.(*models.Statistics)
	if !ok || stats == nil {
		return s
	}
	s.Results.Statistics = with(s.Results.Statistics, models.ID(a.Key), *stats)
	return s
}

func reduceFetchClassStatistics(s State, a Action) State {
	payload, ok := a.Payload.(classStatistics)
	if !ok || payload.stats == nil {
		return s
	}
	s.Results.ClassStatistics = with(s.Results.ClassStatistics, payload.key, *payload.stats)
	return s
}

func reduceFetchExport(s State, a Action) State {
	export, ok := a.Payload.(*client.Export)
	if !ok || export == nil {
		return s
	}
	s.Results.Exports = with(s.Results.Exports, models.ID(a.Key), *export)
	return s
}

// reduceSubmission records the receipt. Stored results are left alone; the
// next fetch brings the new submission in.
func reduceSubmission(s State, a Action) State {
	receipt, ok := a.Payload.(*models.SubmissionReceipt)
	if !ok || receipt == nil {
		return s
	}
	s.Results.Receipts = with(s.Results.Receipts, models.ID(a.Key), *receipt)
	return s
}

// reduceClearResults drops one survey's result data when a key is given,
// otherwise the whole slice.
func reduceClearResults(s State, a Action) State {
	slice := OpClearResults.Slice()
	if a.Key == "" {
		s.Results = ResultState{}
		s.Requests = dropRequests(s.Requests, slice, "")
		return s
	}

	id := models.ID(a.Key)
	s.Results.BySurvey = without(s.Results.BySurvey, id)
	s.Results.Statistics = without(s.Results.Statistics, id)
	s.Results.Exports = without(s.Results.Exports, id)
	s.Results.Receipts = without(s.Results.Receipts, id)

	classStats := make(map[ClassKey]models.Statistics, len(s.Results.ClassStatistics))
	for k, v := range s.Results.ClassStatistics {
		if k.SurveyID != id {
			classStats[k] = v
		}
	}
	s.Results.ClassStatistics = classStats

	// dropRequests returned a fresh map, so deleting from it is safe.
	requests := dropRequests(s.Requests, slice, a.Key)
	for k := range requests {
		if k.Op == OpFetchClassStatistics && strings.HasPrefix(k.Key, a.Key+"/") {
			delete(requests, k)
		}
	}
	s.Requests = requests
	return s
}
