package services

import (
	"context"
	"io"
	"time"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/store"
)

// Every service method takes the caller's store: state is per session and
// services hold none of their own.

type UserService interface {
	Login(ctx context.Context, st *store.Store, req models.LoginRequest) (*models.User, error)
	Logout(st *store.Store)
	ListGuides(ctx context.Context, st *store.Store) (Loaded[[]models.Guide], error)
	GetGuide(ctx context.Context, st *store.Store, guideID models.ID) (Loaded[models.Guide], error)
	GetGuideStudents(ctx context.Context, st *store.Store, guideID models.ID) (Loaded[[]models.Student], error)
	GetGuideResults(ctx context.Context, st *store.Store, guideID models.ID) (Loaded[[]models.SurveyResult], error)
}

type SurveyService interface {
	List(ctx context.Context, st *store.Store) (Loaded[[]models.Survey], error)
	Get(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[models.Survey], error)
	Refresh(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[models.Survey], error)
}

type ResultService interface {
	FetchResults(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[[]models.SurveyResult], error)
	FetchStatistics(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[models.Statistics], error)
	FetchClassStatistics(ctx context.Context, st *store.Store, surveyID models.ID, class string) (Loaded[models.Statistics], error)
	FetchExport(ctx context.Context, st *store.Store, surveyID models.ID) (Loaded[client.Export], error)
	Clear(st *store.Store, surveyID models.ID)
}

type StudentService interface {
	Get(ctx context.Context, st *store.Store, studentID models.ID) (Loaded[models.Student], error)
	Update(ctx context.Context, st *store.Store, studentID models.ID, update models.StudentUpdate) (*models.Student, error)
	ListByClass(ctx context.Context, st *store.Store, class string) (Loaded[[]models.Student], error)
	GetResults(ctx context.Context, st *store.Store, studentID models.ID) (Loaded[[]models.SurveyResult], error)
	Clear(st *store.Store)
}

type SubmissionService interface {
	Submit(ctx context.Context, st *store.Store, req *SubmitRequest) (*models.SubmissionReceipt, error)
	Endpoint() string
}

type DashboardService interface {
	Load(ctx context.Context, st *store.Store, surveyID models.ID) (*DashboardData, error)
}

type ExportService interface {
	WriteWorkbook(ctx context.Context, st *store.Store, surveyID models.ID, w io.Writer) error
}

// ===== REQUEST / RESPONSE TYPES =====

// Loaded is what the store holds after an operation. Present is false when
// nothing was ever stored for the key; after a rejected refresh Value is the
// last good data.
type Loaded[T any] struct {
	Value   T
	Present bool
}

// SubmitRequest carries the answers collected by the question flow. Selections
// maps a 0-based question index to the chosen option.
type SubmitRequest struct {
	Survey     models.Survey
	StudentID  models.ID
	GuideID    models.ID
	Selections map[int]string
	StartedAt  *time.Time
}

// DashboardData is everything the results dashboard renders from.
type DashboardData struct {
	Survey         Loaded[models.Survey]
	Results        Loaded[[]models.SurveyResult]
	Statistics     Loaded[models.Statistics]
	SurveyRequest  store.Request
	ResultsRequest store.Request
}
