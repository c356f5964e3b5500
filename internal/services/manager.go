package services

import (
	"log/slog"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/events"
	"github.com/rehber-app/anket-client/internal/repositories"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
	"github.com/rehber-app/anket-client/internal/validator"
)

// ServiceManager groups the services and builds the per-session stores they
// operate on.
type ServiceManager interface {
	User() UserService
	Survey() SurveyService
	Result() ResultService
	Student() StudentService
	Submission() SubmissionService
	Dashboard() DashboardService
	Export() ExportService

	NewStore() *store.Store
}

type Dependencies struct {
	API         client.API
	SurveyCache store.SurveyCache
	Publisher   events.EventPublisher
	Journal     repositories.SubmissionJournal
	Logger      *slog.Logger
	Validator   *validator.Validator
	Submission  SubmissionConfig
}

type serviceManager struct {
	user       UserService
	survey     SurveyService
	result     ResultService
	student    StudentService
	submission SubmissionService
	dashboard  DashboardService
	export     ExportService

	opLogger *ServiceLogger
	logger   *slog.Logger
}

func NewServiceManager(deps Dependencies) ServiceManager {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	v := deps.Validator
	if v == nil {
		v = validator.New()
	}

	var opts []store.OperationsOption
	if deps.SurveyCache != nil {
		opts = append(opts, store.WithSurveyCache(deps.SurveyCache))
	}
	ops := store.NewOperations(deps.API, opts...)

	surveys := NewSurveyService(ops, logger)
	results := NewResultService(ops, logger)

	return &serviceManager{
		user:       NewUserService(ops, logger, v),
		survey:     surveys,
		result:     results,
		student:    NewStudentService(ops, logger, v),
		submission: NewSubmissionService(ops, deps.Publisher, deps.Journal, logger, v, deps.Submission),
		dashboard:  NewDashboardService(surveys, results, logger),
		export:     NewExportService(results, logger),
		opLogger:   NewServiceLogger(logger, LogConfig{Service: "anket-client", Component: "store"}),
		logger:     logger,
	}
}

func (m *serviceManager) User() UserService             { return m.user }
func (m *serviceManager) Survey() SurveyService         { return m.survey }
func (m *serviceManager) Result() ResultService         { return m.result }
func (m *serviceManager) Student() StudentService       { return m.student }
func (m *serviceManager) Submission() SubmissionService { return m.submission }
func (m *serviceManager) Dashboard() DashboardService   { return m.dashboard }
func (m *serviceManager) Export() ExportService         { return m.export }

// NewStore returns an empty store whose operations are logged.
func (m *serviceManager) NewStore() *store.Store {
	return store.New(
		store.WithObserver(m.opLogger.Observe),
		store.WithLogger(utils.NewSlogLogger(m.logger)),
	)
}
