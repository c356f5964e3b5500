package client

import (
	"context"
	"net/http"

	"github.com/rehber-app/anket-client/internal/models"
)

func (c *Client) GetStudent(ctx context.Context, studentID models.ID) (*models.Student, error) {
	var student models.Student
	if err := c.get(ctx, pathf("/api/ogrenci/%s", studentID.String()), &student); err != nil {
		return nil, err
	}
	return &student, nil
}

func (c *Client) UpdateStudent(ctx context.Context, studentID models.ID, update models.StudentUpdate) (*models.Student, error) {
	var student models.Student
	if err := c.do(ctx, http.MethodPut, pathf("/api/ogrenci/%s", studentID.String()), update, &student); err != nil {
		return nil, err
	}
	if student.ID.IsZero() {
		student.ID = studentID
	}
	return &student, nil
}

func (c *Client) ListStudentsByClass(ctx context.Context, class string) ([]models.Student, error) {
	students := make([]models.Student, 0)
	if err := c.get(ctx, pathf("/api/ogrenci/sinif/%s", class), &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudentResults(ctx context.Context, studentID models.ID) ([]models.SurveyResult, error) {
	return c.getResultList(ctx, pathf("/api/ogrenci/%s/anket-sonuclari", studentID.String()))
}
