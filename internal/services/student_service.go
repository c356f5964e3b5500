package services

import (
	"context"
	"log/slog"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/validator"
)

type studentService struct {
	ops       *store.Operations
	logger    *slog.Logger
	validator *validator.Validator
}

func NewStudentService(ops *store.Operations, logger *slog.Logger, validator *validator.Validator) StudentService {
	return &studentService{
		ops:       ops,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Get(ctx context.Context, st *store.Store, studentID models.ID) (Loaded[models.Student], error) {
	if studentID.IsZero() {
		return Loaded[models.Student]{}, ErrInvalidStudentID
	}
	loaded, err := runAndRead(ctx, st, s.ops.FetchStudent(studentID), func(state store.State) (models.Student, bool) {
		return state.StudentByID(studentID)
	})
	if err != nil && IsNotFound(err) {
		return loaded, ErrStudentNotFound
	}
	return loaded, err
}

func (s *studentService) Update(ctx context.Context, st *store.Store, studentID models.ID, update models.StudentUpdate) (*models.Student, error) {
	if studentID.IsZero() {
		return nil, ErrInvalidStudentID
	}
	if err := s.validator.Validate(update); err != nil {
		return nil, err
	}

	if _, err := st.Run(ctx, s.ops.UpdateStudent(studentID, update)); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Student updated", "student_id", studentID.String())
	student, ok := st.State().StudentByID(studentID)
	if !ok {
		return nil, ErrStudentNotFound
	}
	return &student, nil
}

// ListByClass uses the class label exactly as given.
func (s *studentService) ListByClass(ctx context.Context, st *store.Store, class string) (Loaded[[]models.Student], error) {
	return runAndRead(ctx, st, s.ops.ListStudentsByClass(class), func(state store.State) ([]models.Student, bool) {
		return state.StudentsInClass(class)
	})
}

func (s *studentService) GetResults(ctx context.Context, st *store.Store, studentID models.ID) (Loaded[[]models.SurveyResult], error) {
	if studentID.IsZero() {
		return Loaded[[]models.SurveyResult]{}, ErrInvalidStudentID
	}
	return runAndRead(ctx, st, s.ops.FetchStudentResults(studentID), func(state store.State) ([]models.SurveyResult, bool) {
		return state.StudentResults(studentID)
	})
}

func (s *studentService) Clear(st *store.Store) {
	st.Clear(store.OpClearStudent, "")
}
