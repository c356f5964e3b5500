package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rehber-app/anket-client/internal/models"
	"github.com/rehber-app/anket-client/internal/screens"
	"github.com/rehber-app/anket-client/internal/services"
	"github.com/rehber-app/anket-client/internal/store"
	"github.com/rehber-app/anket-client/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SubmitSurveyRequest is a completed question flow. Selections maps the
// 0-based question index to the chosen option.
type SubmitSurveyRequest struct {
	StudentID  models.ID      `json:"studentId" binding:"required"`
	GuideID    models.ID      `json:"rehberId"`
	Selections map[int]string `json:"selections"`
	StartedAt  *time.Time     `json:"startedAt"`
}

type SurveyHandler struct {
	BaseHandler
	surveyService     services.SurveyService
	resultService     services.ResultService
	submissionService services.SubmissionService
	dashboardService  services.DashboardService
	exportService     services.ExportService
}

func NewSurveyHandler(serviceManager services.ServiceManager, logger utils.Logger) *SurveyHandler {
	return &SurveyHandler{
		BaseHandler:       NewBaseHandler(logger),
		surveyService:     serviceManager.Survey(),
		resultService:     serviceManager.Result(),
		submissionService: serviceManager.Submission(),
		dashboardService:  serviceManager.Dashboard(),
		exportService:     serviceManager.Export(),
	}
}

// @Router /surveys [get]
func (h *SurveyHandler) ListSurveys(c *gin.Context) {
	surveys, err := h.surveyService.List(c.Request.Context(), sessionStore(c))
	respondLoaded(&h.BaseHandler, c, surveys, err, store.OpListSurveys, "")
}

// @Router /surveys/{id} [get]
func (h *SurveyHandler) GetSurvey(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	load := h.surveyService.Get
	if c.Query("refresh") == "true" {
		load = h.surveyService.Refresh
	}
	survey, err := load(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, survey, err, store.OpFetchSurvey, id.String())
}

// @Router /surveys/{id}/results [get]
func (h *SurveyHandler) GetResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	h.LogRequest(c, "Fetching survey results", "survey_id", id.String())

	results, err := h.resultService.FetchResults(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, results, err, store.OpFetchSurveyResults, id.String())
}

// @Router /surveys/{id}/statistics [get]
func (h *SurveyHandler) GetStatistics(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	stats, err := h.resultService.FetchStatistics(c.Request.Context(), sessionStore(c), id)
	respondLoaded(&h.BaseHandler, c, stats, err, store.OpFetchStatistics, id.String())
}

// GetClassStatistics returns one class's statistics. The class label is used
// exactly as given.
// @Router /surveys/{id}/class-stats/{class} [get]
func (h *SurveyHandler) GetClassStatistics(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}
	class := c.Param("class")

	stats, err := h.resultService.FetchClassStatistics(c.Request.Context(), sessionStore(c), id, class)
	respondLoaded(&h.BaseHandler, c, stats, err, store.OpFetchClassStatistics, store.ClassStatisticsKey(id, class))
}

// GetDashboard loads the survey and its results and returns the derived
// dashboard. Query: class, total (eligible students), tab, question (0-based).
// @Router /surveys/{id}/dashboard [get]
func (h *SurveyHandler) GetDashboard(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	opts := screens.DashboardOptions{
		Class:         c.Query("class"),
		TotalStudents: parseIntQuery(c, "total", 0),
		Tab:           screens.ParseTab(c.Query("tab")),
		Question:      parseIntQuery(c, "question", -1),
	}

	dashboard := screens.NewDashboard(id, sessionStore(c), h.dashboardService, h.resultService)
	view, err := dashboard.Load(c.Request.Context(), opts)
	if err != nil && !view.Loaded {
		h.handleServiceError(c, err, failureMessage(c, err, store.OpFetchSurveyResults, id.String()))
		return
	}
	if err != nil {
		h.LogWarn(c, "Dashboard built from stale data", "survey_id", id.String(), "error", err.Error())
	}

	c.JSON(http.StatusOK, view)
}

// @Router /surveys/{id}/export.xlsx [get]
func (h *SurveyHandler) ExportResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	h.LogRequest(c, "Exporting survey results", "survey_id", id.String())

	var buf bytes.Buffer
	if err := h.exportService.WriteWorkbook(c.Request.Context(), sessionStore(c), id, &buf); err != nil {
		h.handleServiceError(c, err, failureMessage(c, err, store.OpFetchExport, id.String()))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="anket-%s.xlsx"`, exportName(id)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// SubmitSurvey replays the selections through the question flow and submits.
// Missing answers are rejected locally with 422.
// @Router /surveys/{id}/submit [post]
func (h *SurveyHandler) SubmitSurvey(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	var req SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	st := sessionStore(c)

	survey, err := h.surveyService.Get(ctx, st, id)
	if !survey.Present {
		if err == nil {
			err = services.ErrSurveyNotFound
		}
		h.handleServiceError(c, err, failureMessage(c, err, store.OpFetchSurvey, id.String()))
		return
	}

	opts := []screens.FlowOption{screens.WithGuide(req.GuideID)}
	if req.StartedAt != nil {
		opts = append(opts, screens.WithStartTime(*req.StartedAt))
	}
	flow, err := screens.NewQuestionFlow(survey.Value, req.StudentID, h.submissionService, opts...)
	if err != nil {
		h.handleServiceError(c, services.ErrSurveyHasNoItems, "")
		return
	}

	for index, option := range req.Selections {
		if option == "" {
			continue
		}
		if err := flow.SelectAt(index, option); err != nil {
			h.RespondWithError(c, http.StatusUnprocessableEntity, "Invalid selection", err,
				services.NewSelectionError(index+1, option))
			return
		}
	}

	h.LogRequest(c, "Submitting survey",
		"survey_id", id.String(),
		"student_id", req.StudentID.String(),
		"endpoint", h.submissionService.Endpoint())

	receipt, err := flow.Submit(ctx, st)
	if err != nil {
		h.handleServiceError(c, err, flow.Error())
		return
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Anket başarıyla gönderildi", receipt,
		"survey_id", id.String(), "result_id", receipt.ResultID.String())
}

// ClearResults drops the survey's results from the session.
// @Router /surveys/{id}/results [delete]
func (h *SurveyHandler) ClearResults(c *gin.Context) {
	id := ParseStringIDParam(c, "id")
	if id.IsZero() {
		return
	}

	h.resultService.Clear(sessionStore(c), id)
	c.Status(http.StatusNoContent)
}

func exportName(id models.ID) string {
	return strings.Map(func(r rune) rune {
		if r == '"' || r == '/' || r == '\\' {
			return '_'
		}
		return r
	}, id.String())
}
