package services

import (
	"context"
	"log/slog"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/validator"
)

type userService struct {
	ops       *store.Operations
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(ops *store.Operations, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		ops:       ops,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) Login(ctx context.Context, st *store.Store, req models.LoginRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := st.Run(ctx, s.ops.Login(req)); err != nil {
		return nil, err
	}

	user := st.State().User.Current
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.validator.Validate(user); err != nil {
		s.logger.WarnContext(ctx, "Login returned an unknown role", "user_id", user.ID.String(), "role", string(user.Role))
		st.Clear(store.OpLogout, "")
		return nil, err
	}
	s.logger.InfoContext(ctx, "User logged in", "user_id", user.ID.String(), "role", string(user.Role))
	return user, nil
}

func (s *userService) Logout(st *store.Store) {
	st.Clear(store.OpLogout, "")
}

func (s *userService) ListGuides(ctx context.Context, st *store.Store) (Loaded[[]models.Guide], error) {
	return runAndRead(ctx, st, s.ops.ListGuides(), func(state store.State) ([]models.Guide, bool) {
		return state.Admin.Guides, state.Admin.Guides != nil
	})
}

func (s *userService) GetGuide(ctx context.Context, st *store.Store, guideID models.ID) (Loaded[models.Guide], error) {
	if guideID.IsZero() {
		return Loaded[models.Guide]{}, ErrGuideNotFound
	}
	return runAndRead(ctx, st, s.ops.FetchGuide(guideID), func(state store.State) (models.Guide, bool) {
		return state.GuideByID(guideID)
	})
}

func (s *userService) GetGuideStudents(ctx context.Context, st *store.Store, guideID models.ID) (Loaded[[]models.Student], error) {
	if guideID.IsZero() {
		return Loaded[[]models.Student]{}, ErrGuideNotFound
	}
	return runAndRead(ctx, st, s.ops.FetchGuideStudents(guideID), func(state store.State) ([]models.Student, bool) {
		return state.GuideStudents(guideID)
	})
}

func (s *userService) GetGuideResults(ctx context.Context, st *store.Store, guideID models.ID) (Loaded[[]models.SurveyResult], error) {
	if guideID.IsZero() {
		return Loaded[[]models.SurveyResult]{}, ErrGuideNotFound
	}
	return runAndRead(ctx, st, s.ops.FetchGuideResults(guideID), func(state store.State) ([]models.SurveyResult, bool) {
		return state.GuideResults(guideID)
	})
}
