package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/rehber-app/anket-client/internal/client"
	"github.com/rehber-app/anket-client/internal/client/clienttest"
	"github.com/rehber-app/anket-client/internal/events"
	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/results"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

type testServer struct {
	router   *gin.Engine
	api      *clienttest.MockAPI
	sessions *store.Sessions
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	api := new(clienttest.MockAPI)
	manager := services.NewServiceManager(services.Dependencies{
		API:       api,
		Publisher: events.NewMockEventPublisher(logger),
		Logger:    logger,
	})
	sessions := store.NewSessions(manager.NewStore)

	router := gin.New()
	NewHandlerManager(manager, sessions, utils.NewSlogLogger(logger)).SetupRoutes(router)
	return &testServer{router: router, api: api, sessions: sessions}
}

func (s *testServer) do(method, path, session string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set(SessionHeader, session)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func survey42() *models.Survey {
	return &models.Survey{
		ID:    "42",
		Title: "Sınav Kaygısı",
		Questions: []models.Question{
			{Text: "Sınavdan önce gergin hisseder misin?", Options: []string{"A", "B"}},
			{Text: "Uyku düzenin bozulur mu?", Options: []string{"A", "B"}},
		},
	}
}

func results42() *client.SurveyResults {
	return &client.SurveyResults{Results: results.NormalizeAll([]models.RawSurveyResult{
		{StudentID: "s1", StudentInfo: []byte(`{"sinif":"9A"}`), Answers: []byte(`["A","B"]`), CompletedAt: []byte(`true`)},
		{StudentID: "s2", StudentInfo: []byte(`{"sinif":"9B"}`), Answers: []byte(`["B"]`)},
	})}
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", decode(t, w)["status"])
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
	assert.Equal(t, 0, s.sessions.Len())
}

func TestSession_GeneratedAndEchoed(t *testing.T) {
	s := newTestServer(t)
	s.api.On("ListSurveys", mock.Anything).Return([]models.Survey{*survey42()}, nil)

	w := s.do(http.MethodGet, "/api/v1/surveys", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	generated := w.Header().Get(SessionHeader)
	assert.NotEmpty(t, generated)

	w = s.do(http.MethodGet, "/api/v1/surveys", "abc", nil)
	assert.Equal(t, "abc", w.Header().Get(SessionHeader))
	assert.Equal(t, 2, s.sessions.Len())

	w = s.do(http.MethodDelete, "/api/v1/session", "abc", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(http.MethodDelete, "/api/v1/session", "abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1, s.sessions.Len())
}

func TestGetDashboard(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(survey42(), nil)
	s.api.On("GetSurveyResults", mock.Anything, models.ID("42")).Return(results42(), nil)

	w := s.do(http.MethodGet, "/api/v1/surveys/42/dashboard?total=4&tab=sorular&question=1", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Sınav Kaygısı", body["title"])
	assert.Equal(t, []interface{}{results.AllClasses, "9A", "9B"}, body["classes"])
	assert.Equal(t, float64(25), body["participation"].(map[string]interface{})["percent"])

	question := body["question"].(map[string]interface{})
	answers := question["answers"].([]interface{})
	require.Len(t, answers, 1)
	assert.Equal(t, "s1", answers[0].(map[string]interface{})["studentId"])
	assert.Equal(t, "B", answers[0].(map[string]interface{})["value"])
}

func TestGetResults_StaleAfterFailedRefresh(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurveyResults", mock.Anything, models.ID("42")).Return(results42(), nil).Once()
	s.api.On("GetSurveyResults", mock.Anything, models.ID("42")).
		Return(nil, &client.APIError{StatusCode: 500, Method: "GET", Path: "/api/surveys/42/results"}).Once()

	w := s.do(http.MethodGet, "/api/v1/surveys/42/results", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w), "error")

	w = s.do(http.MethodGet, "/api/v1/surveys/42/results", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Anket sonuçları yüklenemedi", body["error"])
	assert.Len(t, body["data"], 2)
}

func TestGetResults_FailureWithoutData(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurveyResults", mock.Anything, models.ID("42")).
		Return(nil, &client.APIError{StatusCode: 500, Message: "Veritabanı hatası"})

	w := s.do(http.MethodGet, "/api/v1/surveys/42/results", "sess", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Veritabanı hatası", decode(t, w)["message"])
}

func TestGetSurvey_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("7")).
		Return(nil, &client.APIError{StatusCode: 404, Message: "Anket bulunamadı"})

	w := s.do(http.MethodGet, "/api/v1/surveys/7", "sess", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Anket bulunamadı", decode(t, w)["message"])
}

func TestGetSurvey_RefreshReloads(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(survey42(), nil).Once()
	renamed := survey42()
	renamed.Title = "Sınav Kaygısı v2"
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(renamed, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/surveys/42", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/v1/surveys/42?refresh=true", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "Sınav Kaygısı v2", data["title"])
	s.api.AssertNumberOfCalls(t, "GetSurvey", 2)
}

func TestGetClassStatistics_VerbatimClass(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetClassStatistics", mock.Anything, models.ID("42"), "9 A").
		Return(&models.Statistics{TotalParticipants: 3}, nil)

	w := s.do(http.MethodGet, "/api/v1/surveys/42/class-stats/9%20A", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(3), data["totalParticipants"])
	s.api.AssertExpectations(t)
}

func TestSubmitSurvey_MissingAnswers(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(survey42(), nil)

	w := s.do(http.MethodPost, "/api/v1/surveys/42/submit", "sess", SubmitSurveyRequest{
		StudentID:  "s1",
		Selections: map[int]string{0: "A"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Contains(t, body["message"], "Eksik sorular: 2")
	assert.Equal(t, []interface{}{float64(2)}, body["details"].(map[string]interface{})["missing"])
	s.api.AssertNotCalled(t, "SubmitSurvey", mock.Anything, mock.Anything)
}

func TestSubmitSurvey_UnknownOption(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(survey42(), nil)

	w := s.do(http.MethodPost, "/api/v1/surveys/42/submit", "sess", SubmitSurveyRequest{
		StudentID:  "s1",
		Selections: map[int]string{0: "A", 1: "Z"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	details := decode(t, w)["details"].(map[string]interface{})
	assert.Equal(t, "selections.2", details["field"])
	assert.Equal(t, "oneof", details["rule"])
	assert.Equal(t, "Z", details["value"])
}

func TestSubmitSurvey_Accepted(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(survey42(), nil)
	s.api.On("SubmitSurvey", mock.Anything, mock.MatchedBy(func(req models.SubmissionRequest) bool {
		return req.StudentID == "s1" && len(req.Answers) == 2 && req.Answers[1].Value == "B"
	})).Return(&models.SubmissionReceipt{ResultID: "r9"}, nil)

	w := s.do(http.MethodPost, "/api/v1/surveys/42/submit", "sess", SubmitSurveyRequest{
		StudentID:  "s1",
		Selections: map[int]string{0: "A", 1: "B"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "r9", decode(t, w)["data"].(map[string]interface{})["id"])
}

func TestSubmitSurvey_BackendRejects(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurvey", mock.Anything, models.ID("42")).Return(survey42(), nil)
	s.api.On("SubmitSurvey", mock.Anything, mock.Anything).
		Return(nil, &client.APIError{StatusCode: 400, Message: "Bu anket zaten cevaplanmış"})

	w := s.do(http.MethodPost, "/api/v1/surveys/42/submit", "sess", SubmitSurveyRequest{
		StudentID:  "s1",
		Selections: map[int]string{0: "A", 1: "B"},
	})
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "Bu anket zaten cevaplanmış", decode(t, w)["message"])
}

func TestSubmitSurvey_StudentRequired(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/surveys/42/submit", "sess", map[string]interface{}{
		"selections": map[string]string{"0": "A"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportResults(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetExport", mock.Anything, models.ID("42")).
		Return(&client.Export{Survey: *survey42(), Results: results42().Results}, nil)

	w := s.do(http.MethodGet, "/api/v1/surveys/42/export.xlsx", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(w.Header().Get("Content-Disposition"), "anket-42.xlsx"))

	wb, err := excelize.OpenReader(w.Body)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(services.SheetResults)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestClearResults(t *testing.T) {
	s := newTestServer(t)
	s.api.On("GetSurveyResults", mock.Anything, models.ID("42")).Return(results42(), nil)

	s.do(http.MethodGet, "/api/v1/surveys/42/results", "sess", nil)
	w := s.do(http.MethodDelete, "/api/v1/surveys/42/results", "sess", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	_, ok := s.sessions.Get("sess").State().SurveyResults("42")
	assert.False(t, ok)
}

func TestUpdateStudent_Validation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPut, "/api/v1/students/s1", "sess", map[string]interface{}{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	s.api.AssertNotCalled(t, "UpdateStudent", mock.Anything, mock.Anything, mock.Anything)
}

func TestListByClass(t *testing.T) {
	s := newTestServer(t)
	s.api.On("ListStudentsByClass", mock.Anything, "9A").
		Return([]models.Student{{ID: "s1"}}, nil)

	w := s.do(http.MethodGet, "/api/v1/classes/9A/students", "sess", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	s := newTestServer(t)
	s.api.On("Login", mock.Anything, mock.Anything).
		Return(nil, &client.APIError{StatusCode: 401, Message: "E-posta veya şifre hatalı"})

	w := s.do(http.MethodPost, "/api/v1/auth/login", "sess", models.LoginRequest{Email: "a@b.co", Password: "secret1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "E-posta veya şifre hatalı", decode(t, w)["message"])
}
