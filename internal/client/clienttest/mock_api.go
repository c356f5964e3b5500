// Package clienttest provides a testify mock of client.API.
package clienttest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
)

// MockAPI is a mock implementation of client.API
type MockAPI struct {
	mock.Mock
}

var _ client.API = (*MockAPI)(nil)

// get returns args[i] as T, or T's zero value when the mock was told to return nil.
func get[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

func (m *MockAPI) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	args := m.Called(ctx, req)
	return get[*models.LoginResponse](args, 0), args.Error(1)
}

func (m *MockAPI) ListGuides(ctx context.Context) ([]models.Guide, error) {
	args := m.Called(ctx)
	return get[[]models.Guide](args, 0), args.Error(1)
}

func (m *MockAPI) GetGuide(ctx context.Context, guideID models.ID) (*models.Guide, error) {
	args := m.Called(ctx, guideID)
	return get[*models.Guide](args, 0), args.Error(1)
}

func (m *MockAPI) ListGuideStudents(ctx context.Context, guideID models.ID) ([]models.Student, error) {
	args := m.Called(ctx, guideID)
	return get[[]models.Student](args, 0), args.Error(1)
}

func (m *MockAPI) GetGuideResults(ctx context.Context, guideID models.ID) ([]models.SurveyResult, error) {
	args := m.Called(ctx, guideID)
	return get[[]models.SurveyResult](args, 0), args.Error(1)
}

func (m *MockAPI) GetStudent(ctx context.Context, studentID models.ID) (*models.Student, error) {
	args := m.Called(ctx, studentID)
	return get[*models.Student](args, 0), args.Error(1)
}

func (m *MockAPI) UpdateStudent(ctx context.Context, studentID models.ID, update models.StudentUpdate) (*models.Student, error) {
	args := m.Called(ctx, studentID, update)
	return get[*models.Student](args, 0), args.Error(1)
}

func (m *MockAPI) ListStudentsByClass(ctx context.Context, class string) ([]models.Student, error) {
	args := m.Called(ctx, class)
	return get[[]models.Student](args, 0), args.Error(1)
}

func (m *MockAPI) GetStudentResults(ctx context.Context, studentID models.ID) ([]models.SurveyResult, error) {
	args := m.Called(ctx, studentID)
	return get[[]models.SurveyResult](args, 0), args.Error(1)
}

func (m *MockAPI) ListSurveys(ctx context.Context) ([]models.Survey, error) {
	args := m.Called(ctx)
	return get[[]models.Survey](args, 0), args.Error(1)
}

func (m *MockAPI) GetSurvey(ctx context.Context, surveyID models.ID) (*models.Survey, error) {
	args := m.Called(ctx, surveyID)
	return get[*models.Survey](args, 0), args.Error(1)
}

func (m *MockAPI) GetSurveyResults(ctx context.Context, surveyID models.ID) (*client.SurveyResults, error) {
	args := m.Called(ctx, surveyID)
	return get[*client.SurveyResults](args, 0), args.Error(1)
}

func (m *MockAPI) GetStatistics(ctx context.Context, surveyID models.ID) (*models.Statistics, error) {
	args := m.Called(ctx, surveyID)
	return get[*models.Statistics](args, 0), args.Error(1)
}

func (m *MockAPI) GetClassStatistics(ctx context.Context, surveyID models.ID, class string) (*models.Statistics, error) {
	args := m.Called(ctx, surveyID, class)
	return get[*models.Statistics](args, 0), args.Error(1)
}

func (m *MockAPI) GetExport(ctx context.Context, surveyID models.ID) (*client.Export, error) {
	args := m.Called(ctx, surveyID)
	return get[*client.Export](args, 0), args.Error(1)
}

func (m *MockAPI) SaveResult(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	args := m.Called(ctx, req)
	return get[*models.SubmissionReceipt](args, 0), args.Error(1)
}

func (m *MockAPI) SubmitSurvey(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionReceipt, error) {
	args := m.Called(ctx, req)
	return get[*models.SubmissionReceipt](args, 0), args.Error(1)
}
