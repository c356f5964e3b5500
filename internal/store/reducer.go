package store

type handler func(State, Action) State

// handlers maps each fulfilled or local op to the slice code that applies it.
var handlers = map[Op]handler{
	OpLogin:  reduceLogin,
	OpLogout: reduceLogout,

	OpListGuides: reduceListGuides,
	OpClearAdmin: reduceClearAdmin,

	OpFetchGuide:         reduceFetchGuide,
	OpFetchGuideStudents: reduceFetchGuideStudents,
	OpFetchGuideResults:  reduceFetchGuideResults,
	OpClearGuide:         reduceClearGuide,

	OpFetchStudent:        reduceStoreStudent,
	OpUpdateStudent:       reduceStoreStudent,
	OpListStudentsByClass: reduceListStudentsByClass,
	OpFetchStudentResults: reduceFetchStudentResults,
	OpClearStudent:        reduceClearStudent,

	OpListSurveys: reduceListSurveys,
	OpFetchSurvey: reduceFetchSurvey,
	OpClearSurvey: reduceClearSurvey,

	OpFetchSurveyResults:   reduceFetchSurveyResults,
	OpFetchStatistics:      reduceFetchStatistics,
	OpFetchClassStatistics: reduceFetchClassStatistics,
	OpFetchExport:          reduceFetchExport,
	OpSaveResult:           reduceSubmission,
	OpSubmitSurvey:         reduceSubmission,
	OpClearResults:         reduceClearResults,
}

// Reduce applies one action and returns the next state. It never mutates s.
//
// Pending and rejected actions only touch the request record: a failed
// refresh keeps whatever data was stored before it.
func Reduce(s State, a Action) State {
	switch a.Phase {
	case PhasePending:
		s.Requests = with(s.Requests, a.OpKey(), Request{Status: StatusPending, UpdatedAt: a.At})
	case PhaseRejected:
		s.Requests = with(s.Requests, a.OpKey(), Request{Status: StatusRejected, Error: a.Error, UpdatedAt: a.At})
	case PhaseFulfilled:
		s.Requests = with(s.Requests, a.OpKey(), Request{Status: StatusFulfilled, UpdatedAt: a.At})
		if h, ok := handlers[a.Op]; ok {
			s = h(s, a)
		}
	case PhaseLocal:
		if h, ok := handlers[a.Op]; ok {
			s = h(s, a)
		}
	}
	return s
}

// dropRequests removes request records of one slice, optionally limited to a key.
func dropRequests(requests map[OpKey]Request, slice string, key string) map[OpKey]Request {
	out := make(map[OpKey]Request, len(requests))
	for k, r := range requests {
		if k.Op.Slice() == slice && (key == "" || k.Key == key) {
			continue
		}
		out[k] = r
	}
	return out
}
