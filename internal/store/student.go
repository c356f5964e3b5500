package store

import (
	"context"

	"github.com/rehber-app/anket-client/internal/models"
)

const (
	OpFetchStudent        Op = "student/fetch"
	OpUpdateStudent       Op = "student/update"
	OpListStudentsByClass Op = "student/listByClass"
	OpFetchStudentResults Op = "student/fetchResults"
	OpClearStudent        Op = "student/clear"
)

const (
	msgStudentFailed        = "Öğrenci bilgileri alınamadı"
	msgStudentUpdateFailed  = "Öğrenci bilgileri güncellenemedi"
	msgClassStudentsFailed  = "Sınıf listesi alınamadı"
	msgStudentResultsFailed = "Öğrencinin anket sonuçları alınamadı"
)

func (o *Operations) FetchStudent(studentID models.ID) Operation {
	return Operation{
		Op:       OpFetchStudent,
		Key:      studentID.String(),
		Fallback: msgStudentFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetStudent(ctx, studentID)
		},
	}
}

func (o *Operations) UpdateStudent(studentID models.ID, update models.StudentUpdate) Operation {
	return Operation{
		Op:       OpUpdateStudent,
		Key:      studentID.String(),
		Fallback: msgStudentUpdateFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.UpdateStudent(ctx, studentID, update)
		},
	}
}

// ListStudentsByClass is keyed by the verbatim class label.
func (o *Operations) ListStudentsByClass(class string) Operation {
	return Operation{
		Op:       OpListStudentsByClass,
		Key:      class,
		Fallback: msgClassStudentsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.ListStudentsByClass(ctx, class)
		},
	}
}

func (o *Operations) FetchStudentResults(studentID models.ID) Operation {
	return Operation{
		Op:       OpFetchStudentResults,
		Key:      studentID.String(),
		Fallback: msgStudentResultsFailed,
		Call: func(ctx context.Context) (interface{}, error) {
			return o.api.GetStudentResults(ctx, studentID)
		},
	}
}

func reduceStoreStudent(s State, a Action) State {
	student, ok := a.Payload.(*models.Student)
	if !ok || student == nil {
		return s
	}
	id := student.ID
	if id.IsZero() {
		id = models.ID(a.Key)
	}
	s.Student.Records = with(s.Student.Records, id, *student)
	return s
}

func reduceListStudentsByClass(s State, a Action) State {
	students, ok := a.Payload.([]models.Student)
	if !ok {
		return s
	}
	if students == nil {
		students = []models.Student{}
	}
	s.Student.ByClass = with(s.Student.ByClass, a.Key, students)
	return s
}

func reduceFetchStudentResults(s State, a Action) State {
	results, ok := a.Payload.([]models.SurveyResult)
	if !ok {
		return s
	}
	if results == nil {
		results = []models.SurveyResult{}
	}
	s.Student.Results = with(s.Student.Results, models.ID(a.Key), results)
	return s
}

func reduceClearStudent(s State, _ Action) State {
	s.Student = StudentState{}
	s.Requests = dropRequests(s.Requests, OpClearStudent.Slice(), "")
	return s
}
