package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rehber-app/anket-client/internal/client"
	apperrors "github.com/rehber-app/anket-client/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")

	ErrSurveyNotFound   = errors.New("survey not found")
	ErrInvalidSurveyID  = errors.New("invalid survey id")
	ErrSurveyHasNoItems = errors.New("survey has no questions")

	ErrStudentNotFound  = errors.New("student not found")
	ErrInvalidStudentID = errors.New("invalid student id")

	ErrGuideNotFound = errors.New("guide not found")

	ErrMissingAnswers = errors.New("survey has unanswered questions")
)

// ===== CUSTOM ERROR TYPES =====

type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// MissingAnswersError is the local submission gate's rejection. Indices are
// 1-based question positions.
type MissingAnswersError struct {
	Indices []int `json:"missing"`
}

func (e *MissingAnswersError) Error() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	return fmt.Sprintf("%s: %s", ErrMissingAnswers, strings.Join(parts, ", "))
}

func (e *MissingAnswersError) Is(target error) bool {
	return target == ErrMissingAnswers
}

// UserMessage is the Turkish text shown for the gate's rejection.
func (e *MissingAnswersError) UserMessage() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	return "Lütfen tüm soruları cevaplayın. Eksik sorular: " + strings.Join(parts, ", ")
}

// ===== ERROR HELPERS =====

// NewSelectionError reports an option that is not one of question n's choices (1-based).
func NewSelectionError(n int, option string) *ValidationError {
	return apperrors.NewValidationErrorWithRule("selections."+strconv.Itoa(n), "is not one of the question's options", "oneof", option)
}

// IsNotFound checks if error represents a "not found" condition, local or upstream.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSurveyNotFound) ||
		errors.Is(err, ErrStudentNotFound) ||
		errors.Is(err, ErrGuideNotFound) ||
		client.IsNotFound(err)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrInvalidSurveyID) ||
		errors.Is(err, ErrInvalidStudentID) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsMissingAnswers(err error) bool {
	return errors.Is(err, ErrMissingAnswers)
}

// IsUpstream reports whether err came from the backend or the network.
func IsUpstream(err error) bool {
	var apiErr *client.APIError
	var transportErr *client.TransportError
	return errors.As(err, &apiErr) || errors.As(err, &transportErr)
}
