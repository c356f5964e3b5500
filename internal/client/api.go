package client

import (
	"context"

	"github.com/rehber-app/anket-client/internal/models"
)

// API is the backend surface. *Client implements it; tests substitute mocks.
type API interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
	ListGuides(ctx context.Context) ([]models.Guide, error)
	GetGuide(ctx context.Context, guideID models.ID) (*models.Guide, error)
	ListGuideStudents(ctx context.Context, guideID models.ID) ([]models.Student, error)
	GetGuideResults(ctx context.Context, guideID models.ID) ([]models.SurveyResult, error)

	GetStudent(ctx context.Context, studentID models.ID) (*models.Student, error)
	UpdateStudent(ctx context.Context, studentID models.ID, update models.StudentUpdate) (*models.Student, error)
	ListStudentsByClass(ctx context.Context, class string) ([]models.Student, error)
	GetStudentResults(ctx context.Context, studentID models.ID) ([]models.SurveyResult, error)

	ListSurveys(ctx context.Context) ([]models.Survey, error)
	GetSurvey(ctx context.Context, surveyID models.ID) (*models.Survey, error)

	GetSurveyResults(ctx context.Context, surveyID models.ID) (*SurveyResults, error)
	GetStatistics(ctx context.Context, surveyID models.ID) (*models.Statistics, error)
	GetClassStatistics(ctx context.Context, surveyID models.ID, class string) (*models.Statistics, error)
	GetExport(ctx context.Context, surveyID models.ID) (*Export, error)
	SaveResult(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionReceipt, error)
	SubmitSurvey(ctx context.Context, req models.SubmissionRequest) (*models.SubmissionReceipt, error)
}

var _ API = (*Client)(nil)

// SurveyResults is a survey's normalized results plus the backend's statistics,
// which may be absent.
type SurveyResults struct {
	Results    []models.SurveyResult
	Statistics *models.Statistics
}

// Export is the normalized export payload of one survey.
type Export struct {
	Survey      models.Survey
	Results     []models.SurveyResult
	GeneratedAt string
}
