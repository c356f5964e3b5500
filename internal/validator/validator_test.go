package validator

import (
	"testing"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestValidate_StudentUpdate(t *testing.T) {
	v := New()

	tests := []struct {
		name      string
		update    models.StudentUpdate
		wantField string
	}{
		{name: "empty update is valid", update: models.StudentUpdate{}},
		{name: "class label accepted verbatim", update: models.StudentUpdate{Class: strPtr(" 9a ")}},
		{name: "blank class rejected", update: models.StudentUpdate{Class: strPtr("   ")}, wantField: "sinif"},
		{name: "bad email rejected", update: models.StudentUpdate{Email: strPtr("not-an-email")}, wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.update)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidate_SubmissionRequest(t *testing.T) {
	v := New()

	req := models.SubmissionRequest{
		SurveyID:  "42",
		StudentID: "s1",
		Answers:   []models.Answer{{QuestionText: "Q1", Value: "A"}, {QuestionText: "Q2"}},
	}

	var errs ValidationErrors
	require.ErrorAs(t, v.Validate(req), &errs)
	assert.Equal(t, "chosenAnswer", errs[0].Field)

	req.Answers[1].Value = "B"
	assert.NoError(t, v.Validate(req))
}

func TestValidate_UserRole(t *testing.T) {
	type roleHolder struct {
		Role string `json:"role" validate:"user_role"`
	}

	v := New()
	assert.NoError(t, v.Validate(roleHolder{Role: "rehber"}))
	assert.Error(t, v.Validate(roleHolder{Role: "teacher"}))
}
