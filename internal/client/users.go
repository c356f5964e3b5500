package client

import (
	"context"
	"net/http"

	"github.com/rehber-app/anket-client/internal/models"
)

const (
	PathLogin  = "/api/auth/login"
	PathGuides = "/api/admin/rehberler"
)

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, PathLogin, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListGuides(ctx context.Context) ([]models.Guide, error) {
	guides := make([]models.Guide, 0)
	if err := c.get(ctx, PathGuides, &guides); err != nil {
		return nil, err
	}
	return guides, nil
}

func (c *Client) GetGuide(ctx context.Context, guideID models.ID) (*models.Guide, error) {
	var guide models.Guide
	if err := c.get(ctx, pathf("/api/rehber/%s", guideID.String()), &guide); err != nil {
		return nil, err
	}
	return &guide, nil
}

func (c *Client) ListGuideStudents(ctx context.Context, guideID models.ID) ([]models.Student, error) {
	students := make([]models.Student, 0)
	if err := c.get(ctx, pathf("/api/rehber/%s/ogrenciler", guideID.String()), &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetGuideResults(ctx context.Context, guideID models.ID) ([]models.SurveyResult, error) {
	return c.getResultList(ctx, pathf("/api/rehber/%s/anket-sonuclari", guideID.String()))
}
